package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/core/auth"
	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

// Context keys the guard fills in for downstream handlers.
const (
	KeyUserID = "userId"
	KeyRoleID = "roleId"
)

// AuthJWT gates protected routes: missing bearer → 401, failed verification
// (expired or forged alike) → 403. On success the decoded identity lands in
// the gin context. A non-zero requireRole additionally demands that exact
// role id (admin surfaces pass domain.RoleAdminID).
func AuthJWT(codec *auth.Codec, requireRole uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.Unauthorized("access token required"))
			return
		}
		claims := codec.VerifyAccess(strings.TrimPrefix(ah, "Bearer "))
		if claims == nil {
			resp.Abort(c, resp.Forbidden("invalid or expired access token"))
			return
		}
		if requireRole != 0 && claims.RoleID != requireRole {
			resp.Abort(c, resp.Forbidden("forbidden"))
			return
		}
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRoleID, claims.RoleID)
		c.Next()
	}
}

// RefreshJWT is the guard variant for the token-refresh exchange: the token
// comes from the JSON body, falling back to the refreshToken cookie.
func RefreshJWT(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.ShouldBindJSON(&body)
		token := body.RefreshToken
		if token == "" {
			token, _ = c.Cookie("refreshToken")
		}
		if token == "" {
			resp.Abort(c, resp.Unauthorized("refresh token required"))
			return
		}
		claims := codec.VerifyRefresh(token)
		if claims == nil {
			resp.Abort(c, resp.Forbidden("invalid or expired refresh token"))
			return
		}
		c.Set(KeyUserID, claims.UserID)
		c.Next()
	}
}

// UserID reads the authenticated user id the guard stored. Handlers behind
// AuthJWT may assume ok == true.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(KeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// RoleID reads the role id from context; zero when absent.
func RoleID(c *gin.Context) uint {
	v, exists := c.Get(KeyRoleID)
	if !exists {
		return 0
	}
	id, _ := v.(uint)
	return id
}
