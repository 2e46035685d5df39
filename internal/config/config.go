package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Pixabay  PixabayConfig  `mapstructure:"pixabay"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	S3       S3Config       `mapstructure:"s3"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	ReleaseMode  bool          `mapstructure:"release_mode"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// GeminiConfig configures the generative-language client.
// Timeout bounds a single generation call; there are no retries.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type PixabayConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FirebaseConfig holds the web API key used against the Identity Toolkit.
type FirebaseConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	// PublicBaseURL is prefixed to object keys to build the URL stored on exercises.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// Enabled reports whether media uploads are configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

type LogConfig struct {
	Production bool   `mapstructure:"production"`
	Level      string `mapstructure:"level"`
}

var (
	ErrMissingGeminiKey   = errors.New("config: gemini.api_key is required")
	ErrMissingFirebaseKey = errors.New("config: firebase.api_key is required")
)

// LoadConfig reads configuration from an optional .env file, a config.yaml in path,
// and environment variables (server.address -> SERVER_ADDRESS).
func LoadConfig(path string) (config Config, err error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	// AutomaticEnv only applies to keys viper already knows; bind the secrets explicitly
	// so they can come from the environment alone.
	for _, key := range []string{"gemini.api_key", "pixabay.api_key", "firebase.api_key", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name", "s3.endpoint", "s3.region", "s3.public_base_url"} {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.release_mode", false)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "FitChallenge")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeout", "60s")
	v.SetDefault("pixabay.base_url", "https://pixabay.com/api/")
	v.SetDefault("pixabay.timeout", "10s")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("log.production", false)
	v.SetDefault("log.level", "info")
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return ErrMissingGeminiKey
	}
	if c.Firebase.APIKey == "" {
		return ErrMissingFirebaseKey
	}
	return nil
}
