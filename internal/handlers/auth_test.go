package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/leave-request-manager/internal/constants"
	"github.com/yukikurage/leave-request-manager/internal/dto"
	apierrors "github.com/yukikurage/leave-request-manager/internal/errors"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/ratelimit"
	"github.com/yukikurage/leave-request-manager/internal/repository"
	"github.com/yukikurage/leave-request-manager/internal/services"
	"github.com/yukikurage/leave-request-manager/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db           *gorm.DB
	router       *gin.Engine
	authService  *services.AuthService
	leaveService *services.LeaveService
	employee     *models.User
	admin        *models.User
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)

	authService := services.NewAuthService(repository.NewUserRepository(db), bcrypt.MinCost, nil)
	leaveService := services.NewLeaveService(repository.NewLeaveRequestRepository(db), services.NewValidator(30), nil)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(r, authService, leaveService, ratelimit.NewMemoryLimiter(3, time.Minute))

	return testEnv{
		db:           db,
		router:       r,
		authService:  authService,
		leaveService: leaveService,
		employee:     testutil.CreateUser(t, db, "john.doe", "John Doe", models.RoleEmployee),
		admin:        testutil.CreateUser(t, db, "admin", "Administrator", models.RoleAdmin),
	}
}

func (env testEnv) do(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login signs in with the fixture password and returns the session cookies.
func (env testEnv) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "John.Doe",
		"password": "password123",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, env.employee.ID, response.ID)
	require.Equal(t, "John Doe", response.EmployeeName)
	require.Equal(t, models.RoleEmployee, response.Role)
	require.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "john.doe",
		"password": "wrong-password1",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, decodeError(t, w).Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, apierrors.ErrCodeUserNotFound, decodeError(t, w).Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "john.doe"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_RateLimited(t *testing.T) {
	env := setupTestEnv(t)

	payload := map[string]string{"username": "john.doe", "password": "wrong-password1"}
	for i := 0; i < 3; i++ {
		w := env.do(t, http.MethodPost, "/api/auth/login", payload, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := env.do(t, http.MethodPost, "/api/auth/login", payload, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, apierrors.ErrCodeTooManyAttempts, decodeError(t, w).Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := env.login(t, "admin")
	w = env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, env.admin.ID, response.ID)
	require.Equal(t, models.RoleAdmin, response.Role)
}

func TestAuthHandler_DeactivatedUserLosesSession(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "john.doe")

	require.NoError(t, env.db.Model(env.employee).Update("is_active", false).Error)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.login(t, "john.doe")

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser_FromContext(t *testing.T) {
	env := setupTestEnv(t)

	session := services.NewSession()
	_, err := env.authService.Restore(context.Background(), session, env.employee.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeySession, session)

	NewAuthHandler(env.authService).GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "john.doe", response.Username)
}
