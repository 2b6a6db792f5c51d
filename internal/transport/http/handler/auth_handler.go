package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/core/auth"
	"github.com/SharkyKing/EduSpace/internal/domain"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

type AuthHandler struct {
	codec *auth.Codec
}

func NewAuthHandler(codec *auth.Codec) *AuthHandler {
	return &AuthHandler{codec: codec}
}

// Check 当前访问令牌的存活探测；能走到这里说明守卫已放行。
func (h *AuthHandler) Check(c *gin.Context) {
	userID, _ := mdw.UserID(c)
	resp.OK(c, gin.H{
		"message": "User is authenticated",
		"user": gin.H{
			"userId": userID,
			"roleId": mdw.RoleID(c),
			"tier":   domain.ResolveTier(mdw.RoleID(c)),
		},
	})
}

// Refresh exchanges a valid refresh token (already verified by the refresh
// guard) for a new access token. Refresh claims carry no role, so the new
// access token is minted from the stored user.
func (h *AuthHandler) Refresh(users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mdw.UserID(c)
		if !ok {
			resp.Fail(c, resp.Unauthorized("refresh token required"))
			return
		}
		u, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			resp.Fail(c, resp.Internal("Error refreshing token", err))
			return
		}
		if u == nil {
			resp.Fail(c, resp.Forbidden("invalid or expired refresh token"))
			return
		}
		access, err := h.codec.IssueAccess(u.ID, u.RoleID)
		if err != nil {
			resp.Fail(c, resp.Internal("Error refreshing token", err))
			return
		}
		resp.OK(c, gin.H{"accessToken": access})
	}
}
