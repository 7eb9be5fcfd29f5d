package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"risk-assessment/internal/models"
)

func newRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("test-secret"))))
	r.Use(InjectUser(db))

	r.POST("/login/:email", func(c *gin.Context) {
		user := models.User{Email: c.Param("email")}
		require.NoError(t, db.Create(&user).Error)
		require.NoError(t, Login(c, user))
		c.Status(http.StatusNoContent)
	})
	r.POST("/logout", func(c *gin.Context) {
		require.NoError(t, Logout(c))
		c.Status(http.StatusNoContent)
	})

	auth := r.Group("/", RequireAuth())
	auth.GET("/me", func(c *gin.Context) {
		u, _ := CurrentUser(c)
		active, _ := ActiveProject(c)
		c.JSON(http.StatusOK, gin.H{"email": u.Email, "project": active})
	})
	auth.POST("/activate/:id", func(c *gin.Context) {
		require.NoError(t, SetActiveProject(c, c.Param("id")))
		c.Status(http.StatusNoContent)
	})
	return r, db
}

func do(r *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_NoSession(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"login required"}`, w.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/login/a@example.com", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = do(r, http.MethodGet, "/me", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"a@example.com","project":""}`, w.Body.String())

	w = do(r, http.MethodPost, "/activate/p-1", cookies)
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies = w.Result().Cookies()

	w = do(r, http.MethodGet, "/me", cookies)
	assert.JSONEq(t, `{"email":"a@example.com","project":"p-1"}`, w.Body.String())

	w = do(r, http.MethodPost, "/logout", cookies)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodGet, "/me", w.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInjectUser_DeletedUser(t *testing.T) {
	r, db := newRouter(t)

	w := do(r, http.MethodPost, "/login/gone@example.com", nil)
	cookies := w.Result().Cookies()
	require.NoError(t, db.Unscoped().Where("email = ?", "gone@example.com").Delete(&models.User{}).Error)

	w = do(r, http.MethodGet, "/me", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
