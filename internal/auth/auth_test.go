package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studiosadmin/admin-console/internal/domain"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	token, exp, err := tm.GenerateToken("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	session, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Username)
	assert.Equal(t, domain.RoleAdmin, session.Role)
	assert.WithinDuration(t, exp, session.ExpiresAt, time.Second)
}

func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	issued := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issued }
	token, _, err := tm.GenerateToken("admin")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", 60).GenerateToken("admin")
	require.NoError(t, err)

	_, err = NewTokenManager("two", 60).ParseToken(token)
	assert.Error(t, err)

	_, err = NewTokenManager("one", 60).ParseToken(token + "x")
	assert.Error(t, err)
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, time.Hour, NewTokenManager("s", 0).TTL())
}

func TestAllowList(t *testing.T) {
	hashed, err := HashPassword("pa55", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hashed))

	users := map[string]string{"alice": "plain", "bob": hashed}
	list := NewAllowList(users)
	users["mallory"] = "x"
	assert.Equal(t, 2, list.Len())

	assert.True(t, list.Verify("alice", "plain"))
	assert.True(t, list.Verify("bob", "pa55"))
	assert.False(t, list.Verify("alice", "Plain"))
	assert.False(t, list.Verify("bob", hashed))
	assert.False(t, list.Verify("mallory", "x"))
	assert.False(t, list.Verify("", ""))

	var empty *AllowList
	assert.False(t, empty.Verify("alice", "plain"))
	assert.Zero(t, empty.Len())
}

func newGuardedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Message, "code": de.Code})
		},
	})
	app.Use(NewSessionMiddleware(tm).Handle)
	app.Get("/private", RequireAdmin(), func(c *fiber.Ctx) error {
		session, _ := SessionFromContext(c)
		return c.SendString(session.Username)
	})
	return app
}

func TestRequireAdmin(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := newGuardedApp(tm)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, _, err := tm.GenerateToken("admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCookies(t *testing.T) {
	c := SessionCookie("tok", 2*time.Hour, true)
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, 7200, c.MaxAge)
	assert.True(t, c.HTTPOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, "/", c.Path)

	expired := ExpiredCookie(false)
	assert.Empty(t, expired.Value)
	assert.Negative(t, expired.MaxAge)
	assert.False(t, expired.Secure)
}
