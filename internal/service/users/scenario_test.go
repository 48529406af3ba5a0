package users

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/skyflow/internal/auth"
	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/repository"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type world struct {
	store  *repository.MemoryStore
	tokens *auth.TokenService
	svc    *UserService
}

func newWorld() *world {
	store := repository.NewMemoryStore()
	tokens := auth.NewTokenService("secret", time.Hour)
	logger, _ := test.NewNullLogger()
	svc := NewUserService(
		store.Users(),
		auth.NewBcryptHasher(bcrypt.MinCost),
		tokens,
		auth.NewExtractor(tokens, store.Users()),
		WithLogger(logger),
	)
	return &world{store: store, tokens: tokens, svc: svc}
}

func TestScenario_RegisterTwice(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	resp, err := w.svc.Register(ctx, RegisterInput{Email: "alice@x.io", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.False(t, resp.User.IsAdmin)

	_, err = w.svc.Register(ctx, RegisterInput{Email: "alice@x.io", Password: "p2"})
	assertDomainError(t, err, domain.KindForbidden, "Email is taken")
}

func TestScenario_LoginThenLoginAgain(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	_, err := w.svc.Register(ctx, RegisterInput{Email: "alice@x.io", Password: "p1"})
	require.NoError(t, err)

	resp, err := w.svc.Login(ctx, LoginInput{Email: "alice@x.io", Password: "p1"}, auth.Anonymous())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	subject, err := w.tokens.Subject(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.io", subject)

	_, err = w.svc.Login(ctx, LoginInput{Email: "alice@x.io", Password: "p1"}, auth.WithAuthorization("Bearer "+resp.Token))
	assertDomainError(t, err, domain.KindAuth, "You cannot log in while you are logged in")

	_, err = w.svc.Login(ctx, LoginInput{Email: "alice@x.io", Password: "nope"}, auth.Anonymous())
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}

func TestScenario_RegisterAdmin(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	root := &domain.User{Email: "root@x.io", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, w.store.Users().Create(ctx, root))
	_, err := w.svc.Register(ctx, RegisterInput{Email: "bob@x.io", Password: "p"})
	require.NoError(t, err)

	rootToken, err := w.tokens.Issue("root@x.io")
	require.NoError(t, err)
	bobToken, err := w.tokens.Issue("bob@x.io")
	require.NoError(t, err)

	_, err = w.svc.RegisterAdmin(ctx, RegisterInput{Email: "new@x.io"}, auth.WithAuthorization("Bearer "+bobToken))
	assertDomainError(t, err, domain.KindInvalidBusinessArgument, "You cannot register new admin as standard user")

	_, err = w.svc.RegisterAdmin(ctx, RegisterInput{Email: "notvalid", Password: "p"}, auth.WithAuthorization("Bearer "+rootToken))
	assertDomainError(t, err, domain.KindInvalidData, "Wrong register input")

	resp, err := w.svc.RegisterAdmin(ctx, RegisterInput{Email: "new@x.io", Password: "p"}, auth.WithAuthorization("Bearer "+rootToken))
	require.NoError(t, err)
	assert.Equal(t, "Successfully registered admin user account", resp.Message)

	stored, err := w.store.Users().FindByEmail(ctx, "new@x.io")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	_, err = w.svc.RegisterAdmin(ctx, RegisterInput{Email: "new@x.io", Password: "p"}, auth.WithAuthorization("Bearer "+rootToken))
	assertDomainError(t, err, domain.KindForbidden, "Email is taken")

	_, err = w.svc.RegisterAdmin(ctx, RegisterInput{Email: "other@x.io"}, auth.Anonymous())
	assertDomainError(t, err, domain.KindForbidden, "You are not authorized")
}

func TestScenario_UpdateEmptyFieldsAreIgnored(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	reg, err := w.svc.Register(ctx, RegisterInput{FirstName: "Alice", Email: "alice@x.io", Password: "p1"})
	require.NoError(t, err)

	resp, err := w.svc.Update(ctx, reg.User.ID, UpdateInput{FirstName: strPtr(""), Password: strPtr("p2")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.User.FirstName)

	_, err = w.svc.Login(ctx, LoginInput{Email: "alice@x.io", Password: "p2"}, auth.Anonymous())
	assert.NoError(t, err)

	_, err = w.svc.Update(ctx, reg.User.ID, UpdateInput{Email: strPtr("alice@x.io")})
	assertDomainError(t, err, domain.KindDuplicatedData, "User with given email already exists")
}
