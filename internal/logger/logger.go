package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerConnectProps struct {
	Production bool
	Level      string
}

type LogMiddleware struct {
	logger *zap.Logger
}

// Connect builds the application logger. Production uses JSON output, otherwise the
// zap development config is used.
func Connect(args LoggerConnectProps) (*LogMiddleware, error) {
	cfg := zap.NewDevelopmentConfig()
	if args.Production {
		cfg = zap.NewProductionConfig()
	}
	if args.Level != "" {
		level, err := zapcore.ParseLevel(args.Level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if args.Production {
		zap.ReplaceGlobals(logger)
		logger.Info("[Logger] Starting Logger with Prod Config")
	}
	return &LogMiddleware{logger: logger}, nil
}

// New wraps an existing zap logger, mostly for tests.
func New(l *zap.Logger) *LogMiddleware {
	return &LogMiddleware{logger: l}
}

// Nop discards everything.
func Nop() *LogMiddleware {
	return &LogMiddleware{logger: zap.NewNop()}
}

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the HTTP request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logger returns the base logger, annotated with the request ID and with trace and
// span IDs when ctx carries them.
func (l *LogMiddleware) Logger(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		fields = append(fields,
			zap.String("trace_id", spanContext.TraceID().String()),
			zap.String("span_id", spanContext.SpanID().String()),
		)
	}
	if len(fields) == 0 {
		return l.logger
	}
	return l.logger.With(fields...)
}

func (l *LogMiddleware) Sync() error {
	return l.logger.Sync()
}
