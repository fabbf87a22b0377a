package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
	"github.com/buttcoder420/FinalYear-backend/utils"
)

var testSecret = []byte("test-secret")

func newAuthRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.NewMemory()
	auth := &Auth{Secret: testSecret, Users: st.Users}

	r := gin.New()
	r.GET("/signed", auth.RequireSign(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c).Hex()})
	})
	r.GET("/seller", auth.RequireSign(), auth.RequireSeller(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin", auth.RequireSign(), auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, st
}

func insertUser(t *testing.T, st *store.Store, userField, role string, verified bool) (*models.User, string) {
	t.Helper()
	user := &models.User{
		UserName:   "tester",
		Email:      "tester@example.com",
		UserField:  userField,
		Role:       role,
		IsVerified: verified,
	}
	require.NoError(t, st.Users.Insert(context.Background(), user))
	token, err := utils.GenerateToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)
	return user, token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSign(t *testing.T) {
	r, st := newAuthRouter(t)
	user, token := insertUser(t, st, models.FieldBuyer, models.RoleUser, true)

	w := get(r, "/signed", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.Hex())

	w = get(r, "/signed", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or missing token")

	w = get(r, "/signed", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSeller(t *testing.T) {
	r, st := newAuthRouter(t)

	_, buyerToken := insertUser(t, st, models.FieldBuyer, models.RoleUser, true)
	w := get(r, "/seller", buyerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied! Sellers only.")

	st2 := store.NewMemory()
	auth2 := &Auth{Secret: testSecret, Users: st2.Users}
	r2 := gin.New()
	r2.GET("/seller", auth2.RequireSign(), auth2.RequireSeller(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	_, sellerToken := insertUser(t, st2, models.FieldSeller, models.RoleUser, true)
	w = get(r2, "/seller", sellerToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSellerUnverified(t *testing.T) {
	r, st := newAuthRouter(t)
	_, token := insertUser(t, st, models.FieldSeller, models.RoleUser, false)

	w := get(r, "/seller", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Please verify your email before logging in.")
}

func TestRequireAdmin(t *testing.T) {
	r, st := newAuthRouter(t)
	_, userToken := insertUser(t, st, models.FieldBuyer, models.RoleUser, true)

	w := get(r, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied! admin only.")

	st2 := store.NewMemory()
	auth2 := &Auth{Secret: testSecret, Users: st2.Users}
	r2 := gin.New()
	r2.GET("/admin", auth2.RequireSign(), auth2.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	_, adminToken := insertUser(t, st2, models.FieldBuyer, models.RoleAdmin, true)
	w = get(r2, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSignDeletedUser(t *testing.T) {
	r, st := newAuthRouter(t)
	user, token := insertUser(t, st, models.FieldSeller, models.RoleUser, true)
	require.NoError(t, st.Users.DeleteByID(context.Background(), user.ID))

	w := get(r, "/seller", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied!")
}
