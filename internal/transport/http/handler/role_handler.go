package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/domain"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

type RoleHandler struct {
	roles domain.RoleRepository
}

func NewRoleHandler(roles domain.RoleRepository) *RoleHandler {
	return &RoleHandler{roles: roles}
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	resp.OK(c, roles)
}

func (h *RoleHandler) Get(c *gin.Context) {
	role, err := h.roles.FindByID(c.Request.Context(), mdw.ParamUint(c, "id"))
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	if role == nil {
		resp.Fail(c, resp.NotFound("Role not found"))
		return
	}
	resp.OK(c, role)
}

func (h *RoleHandler) Create(c *gin.Context) {
	var in struct {
		RoleName string `json:"RoleName"`
	}
	_ = c.ShouldBindJSON(&in)
	name, msg := validateName(in.RoleName)
	if msg != "" {
		resp.Fail(c, resp.BadRequest(msg))
		return
	}
	role := &domain.Role{RoleName: name}
	if err := h.roles.Create(c.Request.Context(), role); err != nil {
		if isDupKey(err) {
			resp.Fail(c, resp.BadRequest("Role already exists."))
			return
		}
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	resp.Created(c, role)
}

func (h *RoleHandler) Patch(c *gin.Context) {
	var in struct {
		RoleName string `json:"RoleName"`
	}
	_ = c.ShouldBindJSON(&in)
	name, msg := validateName(in.RoleName)
	if msg != "" {
		resp.Fail(c, resp.BadRequest(msg))
		return
	}
	role, err := h.roles.Rename(c.Request.Context(), mdw.ParamUint(c, "id"), name)
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	if role == nil {
		resp.Fail(c, resp.NotFound("Role not found"))
		return
	}
	resp.OK(c, role)
}

// Delete 角色仍被引用时拒绝删除，避免留下悬空的 RoleID。
func (h *RoleHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := mdw.ParamUint(c, "id")
	n, err := h.roles.CountUsers(ctx, id)
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	if n > 0 {
		resp.Fail(c, resp.BadRequest("Role is in use and cannot be deleted."))
		return
	}
	if err := h.roles.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			resp.Fail(c, resp.NotFound("Role not found"))
			return
		}
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	resp.OK(c, gin.H{"message": "Role deleted successfully"})
}
