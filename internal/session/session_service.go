package session

import (
	"context"
	"time"

	sessionerrors "go-roster/internal/session/errors"
	"go-roster/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=session_service.go -destination=mock/session_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, passcode string) (LoginResponse, error)
	Resolve(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	passcode string
	ttl      time.Duration
	store    Store
	tokens   *TokenSigner
	logger   *zap.Logger
}

func NewService(passcode string, ttl time.Duration, store Store, tokens *TokenSigner, logger ...*zap.Logger) Service {
	l := zap.L().Named("session.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.service")
	}
	return &service{
		passcode: passcode,
		ttl:      ttl,
		store:    store,
		tokens:   tokens,
		logger:   l,
	}
}

// Login opens a new session when passcode matches in full.
func (s *service) Login(ctx context.Context, passcode string) (LoginResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	sess := New(uuid.NewString(), s.passcode)
	if !sess.Authenticate(passcode) {
		s.logger.Warn("login rejected", zap.String("request_id", rid))
		return LoginResponse{}, sessionerrors.ErrInvalidPasscode
	}

	if err := s.store.MarkAuthenticated(ctx, sess.ID(), s.ttl); err != nil {
		s.logger.Error("mark session authenticated failed",
			zap.String("request_id", rid),
			zap.String("session_id", sess.ID()),
			zap.Error(err),
		)
		return LoginResponse{}, sessionerrors.ErrSessionStoreUnavailable.WithErr(err)
	}

	token, expiresAt, err := s.tokens.Sign(sess.ID())
	if err != nil {
		s.logger.Error("sign session token failed", zap.String("request_id", rid), zap.Error(err))
		_ = s.store.Clear(ctx, sess.ID())
		return LoginResponse{}, err
	}

	s.logger.Info("session started",
		zap.String("request_id", rid),
		zap.String("session_id", sess.ID()),
	)
	return LoginResponse{Token: token, SessionID: sess.ID(), ExpiresAt: expiresAt}, nil
}

// Resolve returns the active session behind token. A token whose flag has been
// cleared or has expired no longer resolves.
func (s *service) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, sessionerrors.ErrSessionRequired
	}

	sid, expiresAt, err := s.tokens.Parse(token)
	if err != nil {
		s.logger.Debug("session token rejected", zap.Error(err))
		return nil, sessionerrors.ErrSessionInvalid.WithErr(err)
	}

	ok, err := s.store.IsAuthenticated(ctx, sid)
	if err != nil {
		s.logger.Error("read session flag failed", zap.String("session_id", sid), zap.Error(err))
		return nil, sessionerrors.ErrSessionStoreUnavailable.WithErr(err)
	}
	if !ok {
		return nil, sessionerrors.ErrSessionInvalid
	}
	return restored(sid, expiresAt), nil
}

// Logout clears the flag behind token. Logging out twice is not an error.
func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return sessionerrors.ErrSessionRequired
	}

	sid, _, err := s.tokens.Parse(token)
	if err != nil {
		return sessionerrors.ErrSessionInvalid.WithErr(err)
	}

	if err := s.store.Clear(ctx, sid); err != nil {
		s.logger.Error("clear session flag failed", zap.String("session_id", sid), zap.Error(err))
		return sessionerrors.ErrSessionStoreUnavailable.WithErr(err)
	}

	s.logger.Info("session ended",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("session_id", sid),
	)
	return nil
}
