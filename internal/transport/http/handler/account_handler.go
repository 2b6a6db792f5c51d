package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/service"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

const refreshCookie = "refreshToken"

type AccountHandler struct {
	svc          *service.AccountService
	refreshTTL   time.Duration
	secureCookie bool
}

func NewAccountHandler(svc *service.AccountService, refreshTTL time.Duration, secureCookie bool) *AccountHandler {
	return &AccountHandler{svc: svc, refreshTTL: refreshTTL, secureCookie: secureCookie}
}

type loginIn struct {
	Email    string `json:"Email" binding:"required,email"`
	Password string `json:"Password" binding:"required"`
}

// Login 校验凭证，刷新令牌走 httpOnly cookie，访问令牌走响应体。
func (h *AccountHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.BadRequest("Invalid email format or missing password"))
		return
	}

	pair, u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		resp.Fail(c, resp.NotFound("User not found"))
		return
	case errors.Is(err, service.ErrInvalidPassword):
		resp.Fail(c, resp.Unauthorized("Invalid password"))
		return
	case err != nil:
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, pair.Refresh, int(h.refreshTTL.Seconds()), "/", "", h.secureCookie, true)
	resp.OK(c, gin.H{
		"message":     "User logged in successfully",
		"accessToken": pair.Access,
		"user":        u,
	})
}

// Logout 无服务端会话可销毁，只清 cookie。
func (h *AccountHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.secureCookie, true)
	resp.OK(c, gin.H{"message": "Logged out successfully"})
}

// Role returns the role id from the verified token, 204 when absent.
func (h *AccountHandler) Role(c *gin.Context) {
	roleID := mdw.RoleID(c)
	if roleID == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	resp.OK(c, gin.H{"roleId": roleID})
}
