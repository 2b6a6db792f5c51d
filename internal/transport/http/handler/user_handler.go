package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/domain"
	"github.com/SharkyKing/EduSpace/internal/service"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

type UserHandler struct {
	users domain.UserRepository
	svc   *service.AccountService
}

func NewUserHandler(users domain.UserRepository, svc *service.AccountService) *UserHandler {
	return &UserHandler{users: users, svc: svc}
}

type registerIn struct {
	FirstName string `json:"FirstName" binding:"required"`
	LastName  string `json:"LastName" binding:"required"`
	Email     string `json:"Email" binding:"required,email"`
	Password  string `json:"Password" binding:"required"`
	Username  string `json:"Username" binding:"required"`
}

// Register 新用户默认拿 "User" 角色。
func (h *UserHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.BadRequest("Missing required fields."))
		return
	}

	u, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Username:  in.Username,
	})
	switch {
	case errors.Is(err, service.ErrNoUserRole):
		resp.Fail(c, resp.BadRequest("Failed to attach role."))
		return
	case errors.Is(err, service.ErrEmailTaken):
		resp.Fail(c, resp.BadRequest("Email already exists."))
		return
	case errors.Is(err, service.ErrUsernameTaken):
		resp.Fail(c, resp.BadRequest("Username already exists."))
		return
	case err != nil:
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	resp.Created(c, gin.H{"message": "User created", "user": u})
}

// List 返回除调用者外的全部用户（带角色名）。
func (h *UserHandler) List(c *gin.Context) {
	callerID, _ := mdw.UserID(c)
	users, err := h.users.ListExcept(c.Request.Context(), callerID)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while fetching users.", err))
		return
	}
	resp.OK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.FindByID(c.Request.Context(), mdw.ParamUint(c, "id"))
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	if u == nil {
		resp.Fail(c, resp.NotFound("User not found"))
		return
	}
	resp.OK(c, u)
}

type userPatchIn struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	Username  string `json:"Username"`
}

func (h *UserHandler) Patch(c *gin.Context) {
	var in userPatchIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.BadRequest("No fields to update provided"))
		return
	}
	upd := domain.UserUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Username:  in.Username,
	}
	if upd.Empty() {
		resp.Fail(c, resp.BadRequest("No fields to update provided"))
		return
	}

	u, err := h.users.Update(c.Request.Context(), mdw.ParamUint(c, "id"), upd)
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	if u == nil {
		resp.Fail(c, resp.NotFound("User not found"))
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	err := h.users.Delete(c.Request.Context(), mdw.ParamUint(c, "id"))
	if err != nil {
		if isNotFound(err) {
			resp.Fail(c, resp.NotFound("User not found"))
			return
		}
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	resp.OK(c, gin.H{"message": "User deleted successfully"})
}
