package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byMail map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byMail: map[string]*models.User{}}
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byMail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byMail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	f.byMail[u.Email] = u
	return nil
}

func (f *fakeUsers) EmailTaken(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byMail[email]
	return ok, nil
}

type memoryRevocations struct {
	mu  sync.Mutex
	ids map[string]time.Time
}

func (m *memoryRevocations) Revoke(_ context.Context, jti string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[jti] = until
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ids[jti]
	return ok, nil
}

func authRouter(users *fakeUsers, lookup func(string) bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	issuer := auth.NewIssuer("test-secret", time.Hour)
	revoked := &memoryRevocations{ids: map[string]time.Time{}}
	h := NewAuthHandler(users, issuer, revoked, lookup, zap.NewNop())
	me := NewMeHandler(users, zap.NewNop())

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	secured := r.Group("/", middleware.AuthMiddleware(issuer, revoked, zap.NewNop()))
	secured.POST("/auth/logout", h.Logout)
	secured.GET("/me", me.GetMe)
	return r
}

func postJSON(r http.Handler, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func getWithToken(r http.Handler, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

const registerBody = `{"name": "Maria", "email": "Maria@Example.com", "password": "secret123"}`

func TestRegister_CreatesCustomer(t *testing.T) {
	users := newFakeUsers()
	r := authRouter(users, nil)

	w := postJSON(r, "/auth/register", registerBody, "")

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tokenFrom(t, w)

	u, err := users.FindByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, string(auth.RoleCustomer), u.Role)
	assert.NotEqual(t, "secret123", u.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := authRouter(newFakeUsers(), nil)

	require.Equal(t, http.StatusCreated, postJSON(r, "/auth/register", registerBody, "").Code)

	w := postJSON(r, "/auth/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_exists", errorCode(t, w))
}

func TestRegister_RejectsUnknownDomain(t *testing.T) {
	r := authRouter(newFakeUsers(), func(string) bool { return false })

	w := postJSON(r, "/auth/register", registerBody, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email_domain", errorCode(t, w))
}

func TestLogin(t *testing.T) {
	r := authRouter(newFakeUsers(), nil)
	require.Equal(t, http.StatusCreated, postJSON(r, "/auth/register", registerBody, "").Code)

	w := postJSON(r, "/auth/login", `{"email": "maria@example.com", "password": "wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))

	w = postJSON(r, "/auth/login", `{"email": "nobody@example.com", "password": "secret123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/login", `{"email": "maria@example.com", "password": "secret123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	tokenFrom(t, w)
}

func TestLogout_RevokesToken(t *testing.T) {
	r := authRouter(newFakeUsers(), nil)
	token := tokenFrom(t, postJSON(r, "/auth/register", registerBody, ""))

	require.Equal(t, http.StatusOK, getWithToken(r, "/me", token).Code)

	assert.Equal(t, http.StatusNoContent, postJSON(r, "/auth/logout", "", token).Code)

	w := getWithToken(r, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_revoked", errorCode(t, w))
}
