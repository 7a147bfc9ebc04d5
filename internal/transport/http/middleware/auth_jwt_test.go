package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/core/auth"
	"blog-backend/internal/domain"
)

type fakeUserLoader struct {
	users map[string]*domain.User
	err   error
}

func (f *fakeUserLoader) FindByID(_ context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeUserLoader) Create(context.Context, *domain.User) error { return nil }
func (f *fakeUserLoader) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (f *fakeUserLoader) FindByResetTokenHash(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (f *fakeUserLoader) Update(context.Context, *domain.User) error { return nil }
func (f *fakeUserLoader) Delete(context.Context, string) error       { return nil }
func (f *fakeUserLoader) List(context.Context) ([]domain.User, error) {
	return nil, nil
}
func (f *fakeUserLoader) Search(context.Context, string) ([]domain.User, error) {
	return nil, nil
}

func newGateEngine(j *auth.JWTer, users domain.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(j, users), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "role": u.Role})
	})
	r.GET("/admin", RequireAuth(j, users), RequireRole(domain.RoleSet(domain.RoleAdmin)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	// 守卫顺序错误：角色守卫前没有认证守卫，必须拒绝而不是 panic
	r.GET("/broken", RequireRole(domain.RoleSet(domain.RoleAdmin)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	return r
}

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("gate-secret"), Issuer: "test", TTL: 24 * time.Hour}
}

func do(r *gin.Engine, path string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if decorate != nil {
		decorate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingToken(t *testing.T) {
	r := newGateEngine(testJWTer(), &fakeUserLoader{users: map[string]*domain.User{}})

	w := do(r, "/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := newGateEngine(testJWTer(), &fakeUserLoader{users: map[string]*domain.User{}})

	w := do(r, "/me", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not.a.jwt")
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	j := testJWTer()
	u := &domain.User{ID: "u1", Email: "a@x.com", Role: domain.RoleUser}
	r := newGateEngine(j, &fakeUserLoader{users: map[string]*domain.User{"u1": u}})

	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	w := do(r, "/me", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":"u1"`)
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	j := testJWTer()
	u := &domain.User{ID: "u1", Email: "a@x.com", Role: domain.RoleUser}
	r := newGateEngine(j, &fakeUserLoader{users: map[string]*domain.User{"u1": u}})

	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	w := do(r, "/me", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tok})
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_UserGone(t *testing.T) {
	j := testJWTer()
	r := newGateEngine(j, &fakeUserLoader{users: map[string]*domain.User{}})

	tok, err := j.Issue("deleted-user", "user")
	require.NoError(t, err)

	w := do(r, "/me", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_StaleToken(t *testing.T) {
	j := testJWTer()
	changed := time.Now().Add(time.Hour) // 改密时间在签发之后
	u := &domain.User{ID: "u1", Email: "a@x.com", Role: domain.RoleUser, PasswordChangedAt: &changed}
	r := newGateEngine(j, &fakeUserLoader{users: map[string]*domain.User{"u1": u}})

	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	w := do(r, "/me", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "password changed")
}

func TestRequireAuth_FreshTokenAfterChange(t *testing.T) {
	j := testJWTer()
	changed := time.Now().Add(-time.Hour) // 改密发生在签发之前
	u := &domain.User{ID: "u1", Email: "a@x.com", Role: domain.RoleUser, PasswordChangedAt: &changed}
	r := newGateEngine(j, &fakeUserLoader{users: map[string]*domain.User{"u1": u}})

	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	w := do(r, "/me", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_StoreFault(t *testing.T) {
	j := testJWTer()
	r := newGateEngine(j, &fakeUserLoader{err: errors.New("db down")})

	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	w := do(r, "/me", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRole(t *testing.T) {
	j := testJWTer()
	user := &domain.User{ID: "u1", Role: domain.RoleUser}
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	r := newGateEngine(j, &fakeUserLoader{users: map[string]*domain.User{"u1": user, "a1": admin}})

	userTok, err := j.Issue("u1", "user")
	require.NoError(t, err)
	adminTok, err := j.Issue("a1", "admin")
	require.NoError(t, err)

	w := do(r, "/admin", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+userTok)
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, "/admin", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+adminTok)
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_NoIdentityFailsClosed(t *testing.T) {
	r := newGateEngine(testJWTer(), &fakeUserLoader{users: map[string]*domain.User{}})

	w := do(r, "/broken", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
