package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/mocks"
	"github.com/phrazzld/lexilearn-api/internal/service/auth"
	"github.com/phrazzld/lexilearn-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users  *mocks.MockUserStore
	codes  *mocks.MockVerificationCodeStore
	tx     *mocks.MockTxRunner
	mailer *mocks.MockMailer
	hasher *mocks.MockPasswordHasher
	tokens *mocks.MockJWTService
	now    time.Time
	svc    auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:  mocks.NewMockUserStore(),
		codes:  mocks.NewMockVerificationCodeStore(),
		tx:     &mocks.MockTxRunner{},
		mailer: &mocks.MockMailer{},
		hasher: &mocks.MockPasswordHasher{},
		tokens: &mocks.MockJWTService{},
		now:    time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	svc, err := auth.NewService(auth.Options{
		Users:    f.users,
		Codes:    f.codes,
		Tx:       f.tx,
		Mailer:   f.mailer,
		Hasher:   f.hasher,
		Tokens:   f.tokens,
		CodeTTL:  10 * time.Minute,
		TimeFunc: func() time.Time { return f.now },
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

// registerAndReadCode registers email and returns the code that was mailed.
func (f *fixture) registerAndReadCode(t *testing.T, email string) string {
	t.Helper()
	require.NoError(t, f.svc.Register(context.Background(), email))
	code, ok := f.mailer.LastCode(email)
	require.True(t, ok, "no code mailed to %s", email)
	return code
}

func TestNewService(t *testing.T) {
	_, err := auth.NewService(auth.Options{})
	assert.Error(t, err)

	f := newFixture(t)
	_, err = auth.NewService(auth.Options{
		Users: f.users, Codes: f.codes, Tx: f.tx, Mailer: f.mailer,
		Hasher: f.hasher, Tokens: f.tokens, CodeTTL: 0,
	})
	assert.Error(t, err, "zero code ttl is rejected")
}

func TestRegister(t *testing.T) {
	t.Run("invalid emails mutate nothing", func(t *testing.T) {
		for _, email := range []string{"", "plainaddress", "no-dot@domain", "sp ace@b.com"} {
			f := newFixture(t)
			err := f.svc.Register(context.Background(), email)
			assert.ErrorIs(t, err, domain.ErrValidation, "email %q", email)
			assert.Equal(t, 0, f.users.Count())
			assert.Equal(t, 0, f.tx.Calls)
			assert.Empty(t, f.mailer.Sent())
		}
	})

	t.Run("new email gets an unverified user and one code", func(t *testing.T) {
		f := newFixture(t)
		code := f.registerAndReadCode(t, "new@example.com")

		user, err := f.users.GetByEmail(context.Background(), "new@example.com")
		require.NoError(t, err)
		assert.False(t, user.IsVerified)
		assert.Empty(t, user.PasswordHash)

		codes := f.codes.ForUser(user.ID)
		require.Len(t, codes, 1)
		assert.Equal(t, code, codes[0].Code)
		assert.Equal(t, f.now.Add(10*time.Minute), codes[0].ExpiresAt)
		assert.NoError(t, domain.ValidateCodeFormat(code))

		sent := f.mailer.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, 10*time.Minute, sent[0].TTL)
	})

	t.Run("re-registering reuses the user and replaces the code", func(t *testing.T) {
		f := newFixture(t)
		f.registerAndReadCode(t, "again@example.com")
		first, err := f.users.GetByEmail(context.Background(), "again@example.com")
		require.NoError(t, err)

		second := f.registerAndReadCode(t, "again@example.com")
		user, err := f.users.GetByEmail(context.Background(), "again@example.com")
		require.NoError(t, err)

		assert.Equal(t, first.ID, user.ID)
		assert.Equal(t, 1, f.users.Count())
		codes := f.codes.ForUser(user.ID)
		require.Len(t, codes, 1)
		assert.Equal(t, second, codes[0].Code)
	})

	t.Run("verified email conflicts", func(t *testing.T) {
		f := newFixture(t)
		f.users.Put(domain.User{Email: "taken@example.com", PasswordHash: "hashed:secret1", IsVerified: true})

		err := f.svc.Register(context.Background(), "taken@example.com")
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
		assert.Empty(t, f.mailer.Sent())
	})

	t.Run("mail failure deletes the code but keeps the user", func(t *testing.T) {
		f := newFixture(t)
		f.mailer.Err = errors.New("535 authentication failed")

		err := f.svc.Register(context.Background(), "bounce@example.com")
		assert.ErrorIs(t, err, auth.ErrMailDelivery)

		user, err := f.users.GetByEmail(context.Background(), "bounce@example.com")
		require.NoError(t, err, "the unverified user is not rolled back")
		assert.Empty(t, f.codes.ForUser(user.ID))
	})

	t.Run("mail failure after the request is cancelled still deletes the code", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		f.mailer.SendFn = func(ctx context.Context, to, code string, ttl time.Duration) error {
			cancel()
			return ctx.Err()
		}

		var cleanupCtxErr error
		var cleanupHasDeadline bool
		f.codes.DeleteByUserAndCodeFn = func(ctx context.Context, userID int64, code string) error {
			cleanupCtxErr = ctx.Err()
			_, cleanupHasDeadline = ctx.Deadline()
			if cleanupCtxErr != nil {
				return cleanupCtxErr
			}
			f.codes.DeleteByUserAndCodeFn = nil
			return f.codes.DeleteByUserAndCode(ctx, userID, code)
		}

		err := f.svc.Register(ctx, "gone@example.com")
		assert.ErrorIs(t, err, auth.ErrMailDelivery)
		assert.NoError(t, cleanupCtxErr, "cleanup must not inherit the request cancellation")
		assert.True(t, cleanupHasDeadline, "cleanup is bounded by its own timeout")

		user, err := f.users.GetByEmail(context.Background(), "gone@example.com")
		require.NoError(t, err)
		assert.Empty(t, f.codes.ForUser(user.ID))
	})

	t.Run("database failure", func(t *testing.T) {
		f := newFixture(t)
		dbErr := errors.New("connection refused")
		f.users.GetOrCreateUnverifiedFn = func(ctx context.Context, email string) (*domain.User, bool, error) {
			return nil, false, dbErr
		}

		err := f.svc.Register(context.Background(), "a@example.com")
		assert.ErrorIs(t, err, dbErr)
		assert.Empty(t, f.mailer.Sent())
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("input validation", func(t *testing.T) {
		f := newFixture(t)
		tests := []struct {
			email, code, password string
			want                  error
		}{
			{"", "123456", "secret1", auth.ErrMissingVerifyFields},
			{"a@b.com", "", "secret1", auth.ErrMissingVerifyFields},
			{"a@b.com", "123456", "", auth.ErrMissingVerifyFields},
			{"a@b.com", "123456", "short", domain.ErrPasswordTooShort},
			{"a@b.com", "123456", string(make([]byte, 73)), domain.ErrPasswordTooLong},
		}
		for _, tt := range tests {
			assert.ErrorIs(t, f.svc.Verify(ctx, tt.email, tt.code, tt.password), tt.want)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.Verify(ctx, "ghost@example.com", "123456", "secret1"), auth.ErrUserNotFound)
	})

	t.Run("wrong and malformed codes are indistinguishable", func(t *testing.T) {
		f := newFixture(t)
		code := f.registerAndReadCode(t, "a@example.com")
		wrong := "100000"
		if code == wrong {
			wrong = "100001"
		}

		assert.ErrorIs(t, f.svc.Verify(ctx, "a@example.com", wrong, "secret1"), auth.ErrInvalidCode)
		assert.ErrorIs(t, f.svc.Verify(ctx, "a@example.com", "12ab56", "secret1"), auth.ErrInvalidCode)
	})

	t.Run("code is rejected one tick past expiry", func(t *testing.T) {
		f := newFixture(t)
		code := f.registerAndReadCode(t, "a@example.com")

		f.now = f.now.Add(10 * time.Minute)
		assert.ErrorIs(t, f.svc.Verify(ctx, "a@example.com", code, "secret1"), auth.ErrInvalidCode)

		f.now = f.now.Add(-time.Nanosecond)
		assert.NoError(t, f.svc.Verify(ctx, "a@example.com", code, "secret1"))
	})

	t.Run("success consumes codes and replay fails", func(t *testing.T) {
		f := newFixture(t)
		code := f.registerAndReadCode(t, "a@example.com")

		require.NoError(t, f.svc.Verify(ctx, "a@example.com", code, "secret1"))

		user, err := f.users.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.True(t, user.IsVerified)
		assert.Equal(t, "hashed:secret1", user.PasswordHash)
		assert.Empty(t, f.codes.ForUser(user.ID))

		assert.ErrorIs(t, f.svc.Verify(ctx, "a@example.com", code, "secret1"), auth.ErrAlreadyVerified)
	})

	t.Run("concurrent verification loses", func(t *testing.T) {
		f := newFixture(t)
		code := f.registerAndReadCode(t, "a@example.com")
		f.users.MarkVerifiedFn = func(ctx context.Context, id int64, hash string) error {
			return store.ErrAlreadyVerified
		}

		assert.ErrorIs(t, f.svc.Verify(ctx, "a@example.com", code, "secret1"), auth.ErrAlreadyVerified)
	})

	t.Run("hash failure", func(t *testing.T) {
		f := newFixture(t)
		code := f.registerAndReadCode(t, "a@example.com")
		hashErr := errors.New("bcrypt exploded")
		f.hasher.HashFn = func(string) (string, error) { return "", hashErr }

		assert.ErrorIs(t, f.svc.Verify(ctx, "a@example.com", code, "secret1"), hashErr)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	newVerified := func(t *testing.T) *fixture {
		f := newFixture(t)
		f.users.Put(domain.User{Email: "ok@example.com", PasswordHash: "hashed:secret1", IsVerified: true})
		f.users.Put(domain.User{Email: "pending@example.com"})
		return f
	}

	t.Run("missing fields", func(t *testing.T) {
		f := newVerified(t)
		_, err := f.svc.Login(ctx, "", "secret1")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
		_, err = f.svc.Login(ctx, "ok@example.com", "")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	})

	t.Run("failures are identical", func(t *testing.T) {
		cases := map[string][2]string{
			"unknown user":   {"ghost@example.com", "secret1"},
			"unverified":     {"pending@example.com", "secret1"},
			"wrong password": {"ok@example.com", "wrong-pass"},
		}
		var messages []string
		for name, c := range cases {
			f := newVerified(t)
			res, err := f.svc.Login(ctx, c[0], c[1])
			assert.Nil(t, res, name)
			require.ErrorIs(t, err, auth.ErrInvalidCredentials, name)
			assert.Equal(t, 1, f.hasher.CompareCallCount, "%s runs exactly one password comparison", name)
			messages = append(messages, err.Error())
		}
		assert.Len(t, messages, 3)
		assert.Equal(t, messages[0], messages[1])
		assert.Equal(t, messages[1], messages[2])
	})

	t.Run("success", func(t *testing.T) {
		f := newVerified(t)
		res, err := f.svc.Login(ctx, "ok@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "ok@example.com", res.User.Email)

		claims, err := f.tokens.ValidateToken(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, claims.UserID)
		assert.Equal(t, "ok@example.com", claims.Email)
	})

	t.Run("token failure", func(t *testing.T) {
		f := newVerified(t)
		signErr := errors.New("signing failed")
		f.tokens.GenerateTokenFn = func(ctx context.Context, id int64, email string) (string, error) {
			return "", signErr
		}
		_, err := f.svc.Login(ctx, "ok@example.com", "secret1")
		assert.ErrorIs(t, err, signErr)
	})
}

// TestRegistrationScenario walks one account through the full lifecycle.
func TestRegistrationScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	code := f.registerAndReadCode(t, "flow@example.com")

	wrong := "999999"
	if code == wrong {
		wrong = "999998"
	}
	assert.ErrorIs(t, f.svc.Verify(ctx, "flow@example.com", wrong, "secret1"), auth.ErrInvalidCode)
	assert.ErrorIs(t, f.svc.Verify(ctx, "flow@example.com", code, "12345"), domain.ErrPasswordTooShort)

	_, err := f.svc.Login(ctx, "flow@example.com", "secret1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "unverified accounts cannot log in")

	require.NoError(t, f.svc.Verify(ctx, "flow@example.com", code, "secret1"))

	res, err := f.svc.Login(ctx, "flow@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = f.svc.Login(ctx, "flow@example.com", "secret2")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	assert.ErrorIs(t, f.svc.Register(ctx, "flow@example.com"), auth.ErrEmailTaken)
}
