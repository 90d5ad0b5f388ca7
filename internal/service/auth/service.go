package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/platform/logger"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// codeCleanupTimeout bounds the delete of an undelivered verification code.
const codeCleanupTimeout = 5 * time.Second

// Mailer sends verification codes to users.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token string
	User  *domain.User
}

// Service provides the registration lifecycle operations.
type Service interface {
	// Register creates or reuses an unverified account for email and
	// emails it a fresh verification code.
	Register(ctx context.Context, email string) error

	// Verify checks the emailed code, sets the password and marks the account verified.
	Verify(ctx context.Context, email, code, password string) error

	// Login checks the credentials of a verified account and issues a session token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// Options configures a Service.
type Options struct {
	Users    store.UserStore
	Codes    store.VerificationCodeStore
	Tx       store.TxRunner
	Mailer   Mailer
	Hasher   PasswordHasher
	Tokens   JWTService
	CodeTTL  time.Duration
	Logger   *slog.Logger
	TimeFunc func() time.Time
}

type serviceImpl struct {
	users    store.UserStore
	codes    store.VerificationCodeStore
	tx       store.TxRunner
	mailer   Mailer
	hasher   PasswordHasher
	tokens   JWTService
	codeTTL  time.Duration
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewService creates the auth service. All collaborators are required.
func NewService(opts Options) (Service, error) {
	switch {
	case opts.Users == nil:
		return nil, fmt.Errorf("user store cannot be nil")
	case opts.Codes == nil:
		return nil, fmt.Errorf("verification code store cannot be nil")
	case opts.Tx == nil:
		return nil, fmt.Errorf("transaction runner cannot be nil")
	case opts.Mailer == nil:
		return nil, fmt.Errorf("mailer cannot be nil")
	case opts.Hasher == nil:
		return nil, fmt.Errorf("password hasher cannot be nil")
	case opts.Tokens == nil:
		return nil, fmt.Errorf("jwt service cannot be nil")
	case opts.CodeTTL <= 0:
		return nil, fmt.Errorf("code ttl must be positive, got %s", opts.CodeTTL)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	timeFunc := opts.TimeFunc
	if timeFunc == nil {
		timeFunc = time.Now
	}

	return &serviceImpl{
		users:    opts.Users,
		codes:    opts.Codes,
		tx:       opts.Tx,
		mailer:   opts.Mailer,
		hasher:   opts.Hasher,
		tokens:   opts.Tokens,
		codeTTL:  opts.CodeTTL,
		logger:   log.With(slog.String("component", "auth_service")),
		timeFunc: timeFunc,
	}, nil
}

// Register implements Service.
// The user upsert, code replacement and code insert commit together; the
// email is sent afterwards and a failed send deletes the new code.
func (s *serviceImpl) Register(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("action", "register"))

	if err := domain.ValidateEmail(email); err != nil {
		log.Debug("rejected registration", slog.String("email", email), slog.String("error", err.Error()))
		return err
	}

	var issued *domain.VerificationCode
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		codes := s.codes.WithTx(tx)

		user, created, err := users.GetOrCreateUnverified(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to resolve user: %w", err)
		}
		if user.IsVerified {
			return ErrEmailTaken
		}

		if err := codes.DeleteByUserID(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to delete previous codes: %w", err)
		}

		code, err := domain.NewVerificationCode(user.ID, s.timeFunc(), s.codeTTL)
		if err != nil {
			return err
		}
		if err := codes.Create(ctx, code); err != nil {
			return fmt.Errorf("failed to store verification code: %w", err)
		}

		log.Debug("verification code issued",
			slog.Int64("user_id", user.ID),
			slog.Bool("new_user", created))
		issued = code
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			log.Debug("registration for verified email", slog.String("email", email))
			return err
		}
		log.Error("registration failed", slog.String("email", email), slog.String("error", err.Error()))
		return err
	}

	if err := s.mailer.SendVerificationCode(ctx, email, issued.Code, s.codeTTL); err != nil {
		log.Error("failed to send verification email",
			slog.String("email", email),
			slog.String("error", err.Error()))

		// The request may already be cancelled by the time the send fails.
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), codeCleanupTimeout)
		defer cancel()
		if delErr := s.codes.DeleteByUserAndCode(cleanupCtx, issued.UserID, issued.Code); delErr != nil {
			log.Error("failed to delete undelivered verification code",
				slog.Int64("user_id", issued.UserID),
				slog.String("error", delErr.Error()))
		}
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	log.Info("verification code sent", slog.String("email", email), slog.Int64("user_id", issued.UserID))
	return nil
}

// Verify implements Service.
func (s *serviceImpl) Verify(ctx context.Context, email, code, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("action", "verify"))

	if email == "" || code == "" || password == "" {
		return ErrMissingVerifyFields
	}
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("verification for unknown email", slog.String("email", email))
			return ErrUserNotFound
		}
		log.Error("failed to load user", slog.String("email", email), slog.String("error", err.Error()))
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	if domain.ValidateCodeFormat(code) != nil {
		log.Debug("malformed verification code", slog.Int64("user_id", user.ID))
		return ErrInvalidCode
	}

	if _, err := s.codes.FindActive(ctx, user.ID, code, s.timeFunc()); err != nil {
		if errors.Is(err, store.ErrCodeNotFound) {
			log.Debug("verification code rejected", slog.Int64("user_id", user.ID))
			return ErrInvalidCode
		}
		log.Error("failed to look up verification code",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to look up verification code: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
		return err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.users.WithTx(tx).MarkVerified(ctx, user.ID, hash); err != nil {
			return err
		}
		return s.codes.WithTx(tx).DeleteByUserID(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyVerified) {
			log.Debug("concurrent verification lost", slog.Int64("user_id", user.ID))
			return ErrAlreadyVerified
		}
		log.Error("failed to complete verification",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to complete verification: %w", err)
	}

	log.Info("account verified", slog.String("email", email), slog.Int64("user_id", user.ID))
	return nil
}

// Login implements Service.
func (s *serviceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("action", "login"))

	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			compareDummy(s.hasher, password)
			log.Debug("login for unknown email", slog.String("email", email))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user", slog.String("email", email), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CanLogin() {
		compareDummy(s.hasher, password)
		log.Debug("login for unverified account", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		log.Debug("login with wrong password", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		log.Error("failed to issue token", slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("login succeeded", slog.Int64("user_id", user.ID))
	return &LoginResult{Token: token, User: user}, nil
}
