package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

type mockUserStore struct {
	byStaticID map[string]*models.User
	byID       map[string]*models.User
	created    []*models.User
}

func newMockUserStore(users ...*models.User) *mockUserStore {
	m := &mockUserStore{
		byStaticID: make(map[string]*models.User),
		byID:       make(map[string]*models.User),
	}
	for _, u := range users {
		m.byStaticID[u.StaticID] = u
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUserStore) Create(user *models.User) error {
	m.created = append(m.created, user)
	m.byStaticID[user.StaticID] = user
	m.byID[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, gorm.ErrRecordNotFound)
	}
	return u, nil
}

func (m *mockUserStore) GetByStaticID(staticID string) (*models.User, error) {
	u, ok := m.byStaticID[staticID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", staticID, gorm.ErrRecordNotFound)
	}
	return u, nil
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testService(t *testing.T, users *mockUserStore) *Service {
	t.Helper()
	issuer := NewTokenIssuer("test-secret", time.Hour)
	denylist := NewDenylist(testRedis(t))
	return NewService(users, issuer, denylist, logger.New("debug", "json", "stdout"))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-pass"))
}

func TestTokenIssueAndValidate(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("user-1", "#1234", "agent", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "#1234", claims.StaticID)
	assert.Equal(t, "agent", claims.Nickname)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenValidateRejections(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer("other-secret", time.Hour)
		token, err := other.Issue("user-1", "#1", "a", models.RoleUser)
		require.NoError(t, err)

		_, err = issuer.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired", func(t *testing.T) {
		short := NewTokenIssuer("test-secret", -time.Minute)
		token, err := short.Issue("user-1", "#1", "a", models.RoleUser)
		require.NoError(t, err)

		_, err = issuer.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestDenylist(t *testing.T) {
	ctx := context.Background()
	denylist := NewDenylist(testRedis(t))

	revoked, err := denylist.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "token-a", time.Hour))

	revoked, err = denylist.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens stay valid.
	revoked, err = denylist.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	// Expired tokens need no entry at all.
	require.NoError(t, denylist.Revoke(ctx, "token-c", -time.Minute))
	revoked, err = denylist.IsRevoked(ctx, "token-c")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	user := &models.User{ID: "user-1", StaticID: "#1234", Nickname: "agent", Password: hash, Role: models.RoleUser}

	t.Run("success", func(t *testing.T) {
		svc := testService(t, newMockUserStore(user))

		session, err := svc.Login(context.Background(), LoginInput{StaticID: "#1234", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "user-1", session.User.ID)

		claims, err := svc.issuer.Validate(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := testService(t, newMockUserStore(user))

		_, err := svc.Login(context.Background(), LoginInput{StaticID: "#1234", Password: "nope"})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("unknown static id", func(t *testing.T) {
		svc := testService(t, newMockUserStore())

		_, err := svc.Login(context.Background(), LoginInput{StaticID: "#9999", Password: "correct-horse"})
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestRegister(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		store := newMockUserStore()
		svc := testService(t, store)

		session, err := svc.Register(context.Background(), RegisterInput{
			StaticID: "#5678",
			Nickname: "recruit",
			Password: "secret-pw",
		})
		require.NoError(t, err)
		require.Len(t, store.created, 1)

		created := store.created[0]
		assert.Equal(t, models.RoleUser, created.Role)
		assert.EqualValues(t, defaultRankID, created.RankID)
		assert.Nil(t, created.DepartmentID)
		assert.NotEqual(t, "secret-pw", created.Password)
		assert.True(t, CheckPassword(created.Password, "secret-pw"))
		assert.NotEmpty(t, session.Token)
	})

	t.Run("duplicate static id", func(t *testing.T) {
		store := newMockUserStore(&models.User{ID: "user-1", StaticID: "#5678"})
		svc := testService(t, store)

		_, err := svc.Register(context.Background(), RegisterInput{
			StaticID: "#5678",
			Nickname: "copycat",
			Password: "secret-pw",
		})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("short password", func(t *testing.T) {
		svc := testService(t, newMockUserStore())

		_, err := svc.Register(context.Background(), RegisterInput{
			StaticID: "#1",
			Nickname: "x",
			Password: "abc",
		})
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	user := &models.User{ID: "user-1", StaticID: "#1234", Password: hash}
	svc := testService(t, newMockUserStore(user))

	session, err := svc.Login(context.Background(), LoginInput{StaticID: "#1234", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.Token))

	revoked, err := svc.denylist.IsRevoked(context.Background(), session.Token)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Logging out garbage is a no-op.
	assert.NoError(t, svc.Logout(context.Background(), "not.a.token"))
}
