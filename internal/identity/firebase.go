// Package identity delegates account management to Firebase Authentication through the
// Identity Toolkit REST API.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitchallenge/internal/logger"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

var ErrInvalidToken = errors.New("identity: invalid id token")

// ProviderError carries the message the identity provider returned, e.g. EMAIL_EXISTS.
type ProviderError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity %s: %s", e.Op, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Session is what the client keeps after signing up or in.
type Session struct {
	LocalID      string    `json:"localId"`
	Email        string    `json:"email"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresIn    int64     `json:"expiresIn"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
}

// Provider creates, authenticates and signs out accounts.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignOut confirms a sign-out after the provider accepts the token. An empty
	// token is accepted and does nothing, since sessions are held by the client.
	SignOut(ctx context.Context, idToken string) error
}

type FirebaseConnectProps struct {
	APIKey string
	Logger *logger.LogMiddleware
	// Options are appended after the API key, e.g. option.WithEndpoint in tests.
	Options []option.ClientOption
}

type Firebase struct {
	service *identitytoolkit.Service
	logger  *logger.LogMiddleware
}

func Connect(ctx context.Context, args FirebaseConnectProps) (*Firebase, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(args.APIKey)}, args.Options...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating identity toolkit client: %w", err)
	}
	return &Firebase{service: svc, logger: args.Logger}, nil
}

func (f *Firebase) SignUp(ctx context.Context, email, password string) (*Session, error) {
	resp, err := f.service.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return nil, f.providerError(ctx, "sign-up", err)
	}

	f.logger.Logger(ctx).Info("[Identity] account created", zap.String("localId", resp.LocalId))
	return newSession(resp.LocalId, resp.Email, resp.IdToken, resp.RefreshToken, resp.ExpiresIn), nil
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) (*Session, error) {
	resp, err := f.service.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, f.providerError(ctx, "sign-in", err)
	}

	f.logger.Logger(ctx).Info("[Identity] signed in", zap.String("localId", resp.LocalId))
	return newSession(resp.LocalId, resp.Email, resp.IdToken, resp.RefreshToken, resp.ExpiresIn), nil
}

// SignOut checks the token with the provider and confirms the sign-out. Sessions are
// held by the client, and revoking refresh tokens needs admin credentials this service
// does not have, so nothing is revoked.
func (f *Firebase) SignOut(ctx context.Context, idToken string) error {
	if strings.TrimSpace(idToken) == "" {
		return nil
	}

	resp, err := f.service.Relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		return f.providerError(ctx, "sign-out", err)
	}
	if len(resp.Users) == 0 || resp.Users[0].LocalId == "" {
		return fmt.Errorf("%w: no account for token", ErrInvalidToken)
	}

	f.logger.Logger(ctx).Info("[Identity] signed out", zap.String("localId", resp.Users[0].LocalId))
	return nil
}

func (f *Firebase) providerError(ctx context.Context, op string, err error) error {
	msg := err.Error()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		msg = gerr.Message
	}
	f.logger.Logger(ctx).Warn("[Identity] provider rejected request", zap.String("op", op), zap.String("message", msg))
	return &ProviderError{Op: op, Message: msg, Err: err}
}

func newSession(localID, email, idToken, refreshToken string, expiresIn int64) *Session {
	s := &Session{
		LocalID:      localID,
		Email:        email,
		IDToken:      idToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}
	if claims, err := parseIDToken(idToken); err == nil && claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return s
}

type idTokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func (c *idTokenClaims) userID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// parseIDToken decodes the claims only; the signature is not checked. Only use it on
// tokens the provider just issued.
func parseIDToken(token string) (*idTokenClaims, error) {
	claims := &idTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.userID() == "" {
		return nil, fmt.Errorf("%w: no user id claim", ErrInvalidToken)
	}
	return claims, nil
}
