package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
	"github.com/buttcoder420/FinalYear-backend/utils"
)

const userIDKey = "userId"

// Auth owns the JWT gate and the role gates behind it.
type Auth struct {
	Secret []byte
	Users  store.Users
}

// RequireSign verifies the bearer token and stashes the caller's id.
func (a *Auth) RequireSign() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Invalid or missing token",
			})
			return
		}
		id, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "), a.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Invalid or missing token",
			})
			return
		}
		c.Set(userIDKey, id.Hex())
		c.Next()
	}
}

// RequireSeller admits only verified sellers.
func (a *Auth) RequireSeller() gin.HandlerFunc {
	return a.requireUserField(models.FieldSeller, "Access denied! Sellers only.")
}

// RequireAdmin admits only verified admins.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := a.loadUser(c)
		if user == nil {
			return
		}
		if user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false, "message": "Access denied! admin only.",
			})
			return
		}
		c.Next()
	}
}

func (a *Auth) requireUserField(field, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := a.loadUser(c)
		if user == nil {
			return
		}
		if user.UserField != field {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false, "message": message,
			})
			return
		}
		c.Next()
	}
}

// loadUser resolves the authenticated user and enforces that unverified
// identities never pass a role gate. Aborts and returns nil on failure.
func (a *Auth) loadUser(c *gin.Context) *models.User {
	user, err := a.Users.FindByID(c.Request.Context(), UserID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false, "message": "Access denied!",
		})
		return nil
	}
	if !user.IsVerified {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false, "message": "Please verify your email before logging in.",
		})
		return nil
	}
	return user
}

// UserID returns the authenticated caller's id set by RequireSign.
func UserID(c *gin.Context) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(c.GetString(userIDKey))
	return id
}
