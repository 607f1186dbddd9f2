package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/internal/service"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

type validatorStub struct {
	claims *models.JWTClaims
}

func (v validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return v.claims, nil
}

func newProtectedRouter(role models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := validatorStub{claims: &models.JWTClaims{UserID: "user-1", Role: role}}
	r.POST("/drafts", JWT(auth), RequireRoles(models.RoleSupervisor, models.RoleAdmin), Audit(nil, "shift_draft"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAndRoles(t *testing.T) {
	cases := []struct {
		name   string
		header string
		role   models.UserRole
		status int
	}{
		{name: "missing header", role: models.RoleSupervisor, status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", role: models.RoleSupervisor, status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer bad", role: models.RoleSupervisor, status: http.StatusUnauthorized},
		{name: "supervisor", header: "Bearer good", role: models.RoleSupervisor, status: http.StatusNoContent},
		{name: "manager forbidden", header: "Bearer good", role: models.RoleManager, status: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newProtectedRouter(tc.role)
			req := httptest.NewRequest(http.MethodPost, "/drafts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireRoles(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTChallengesMalformedHeader(t *testing.T) {
	r := newProtectedRouter(models.RoleSupervisor)
	for _, header := range []string{"", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodPost, "/drafts", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
	}
}

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CurrentUser(c)
	assert.False(t, ok)

	c.Set(ContextUserKey, "not-claims")
	_, ok = CurrentUser(c)
	assert.False(t, ok)

	c.Set(ContextUserKey, &models.JWTClaims{UserID: "user-2", Role: models.RoleManager})
	claims, ok := CurrentUser(c)
	assert.True(t, ok)
	assert.Equal(t, "user-2", claims.UserID)
}

func TestMetricsSkipsScrapeAndLabelsUnmatched(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics, "/metrics"))
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/shift-reports/:code", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/metrics", "/shift-reports/SR-1", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, uint64(2), metrics.Snapshot().RequestsTotal)
}
