package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nehemiah-317/ictlogbook/internal/models"
	"github.com/nehemiah-317/ictlogbook/internal/policy"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withActor(actor policy.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor.Authenticated() {
			c.Set(currentActorKey, actor)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }

	for _, tc := range []struct {
		actor policy.Actor
		code  int
	}{
		{policy.Actor{}, http.StatusFound},
		{policy.Actor{ID: 2, Role: models.RoleStaff}, http.StatusForbidden},
		{policy.Actor{ID: 1, Role: models.RoleAdmin}, http.StatusOK},
	} {
		r := gin.New()
		r.GET("/audit", withActor(tc.actor), RequireAuth(), RequireRole(models.RoleAdmin), ok)
		assert.Equal(t, tc.code, serve(r, "/audit", nil).Code, tc.actor.Role)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, "/", nil)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	given := uuid.NewString()
	w = serve(r, "/", http.Header{RequestIDHeader: {given}})
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))

	w = serve(r, "/", http.Header{RequestIDHeader: {"not-a-uuid"}})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestCurrentActor_DefaultsToAnonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.False(t, CurrentActor(c).Authenticated())
	assert.Nil(t, CurrentUser(c))
}
