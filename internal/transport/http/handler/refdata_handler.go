package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/core/cache"
	"github.com/SharkyKing/EduSpace/internal/domain"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

const (
	cacheKeyCategories = "refdata:categories"
	cacheKeyGrades     = "refdata:grades"
	refdataTTL         = 5 * time.Minute
)

// CategoryHandler 参考数据读多写少：列表走 redis 读穿缓存，管理端写后失效。
type CategoryHandler struct {
	categories domain.CategoryRepository
	cache      *cache.Cache
}

func NewCategoryHandler(categories domain.CategoryRepository, c *cache.Cache) *CategoryHandler {
	return &CategoryHandler{categories: categories, cache: c}
}

func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if h.cache != nil {
		cats, err := cache.GetOrLoadJSON[[]domain.Category](h.cache, ctx, cacheKeyCategories, refdataTTL,
			func(ctx context.Context) (*[]domain.Category, error) {
				v, e := h.categories.List(ctx)
				return &v, e
			})
		if err == nil && cats != nil {
			resp.OK(c, *cats)
			return
		}
	}
	cats, err := h.categories.List(ctx)
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	resp.OK(c, cats)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in struct {
		CategoryName string `json:"CategoryName"`
	}
	_ = c.ShouldBindJSON(&in)
	name, msg := validateName(in.CategoryName)
	if msg != "" {
		resp.Fail(c, resp.BadRequest(msg))
		return
	}
	cat := &domain.Category{CategoryName: name}
	if err := h.categories.Create(c.Request.Context(), cat); err != nil {
		if isDupKey(err) {
			resp.Fail(c, resp.BadRequest("Category already exists."))
			return
		}
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	h.invalidate(c)
	resp.Created(c, cat)
}

func (h *CategoryHandler) Patch(c *gin.Context) {
	var in struct {
		CategoryName string `json:"CategoryName"`
	}
	_ = c.ShouldBindJSON(&in)
	name, msg := validateName(in.CategoryName)
	if msg != "" {
		resp.Fail(c, resp.BadRequest(msg))
		return
	}
	cat, err := h.categories.Rename(c.Request.Context(), mdw.ParamUint(c, "id"), name)
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	if cat == nil {
		resp.Fail(c, resp.NotFound("Category not found"))
		return
	}
	h.invalidate(c)
	resp.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), mdw.ParamUint(c, "id")); err != nil {
		if isNotFound(err) {
			resp.Fail(c, resp.NotFound("Category not found"))
			return
		}
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	h.invalidate(c)
	resp.OK(c, gin.H{"message": "Category deleted successfully"})
}

func (h *CategoryHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), cacheKeyCategories)
	}
}

type GradeHandler struct {
	grades domain.GradeRepository
	cache  *cache.Cache
}

func NewGradeHandler(grades domain.GradeRepository, c *cache.Cache) *GradeHandler {
	return &GradeHandler{grades: grades, cache: c}
}

func (h *GradeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if h.cache != nil {
		grades, err := cache.GetOrLoadJSON[[]domain.Grade](h.cache, ctx, cacheKeyGrades, refdataTTL,
			func(ctx context.Context) (*[]domain.Grade, error) {
				v, e := h.grades.List(ctx)
				return &v, e
			})
		if err == nil && grades != nil {
			resp.OK(c, *grades)
			return
		}
	}
	grades, err := h.grades.List(ctx)
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	resp.OK(c, grades)
}

func (h *GradeHandler) Create(c *gin.Context) {
	var in struct {
		GradeName string `json:"GradeName"`
	}
	_ = c.ShouldBindJSON(&in)
	name, msg := validateName(in.GradeName)
	if msg != "" {
		resp.Fail(c, resp.BadRequest(msg))
		return
	}
	g := &domain.Grade{GradeName: name}
	if err := h.grades.Create(c.Request.Context(), g); err != nil {
		if isDupKey(err) {
			resp.Fail(c, resp.BadRequest("Grade already exists."))
			return
		}
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	h.invalidate(c)
	resp.Created(c, g)
}

func (h *GradeHandler) Patch(c *gin.Context) {
	var in struct {
		GradeName string `json:"GradeName"`
	}
	_ = c.ShouldBindJSON(&in)
	name, msg := validateName(in.GradeName)
	if msg != "" {
		resp.Fail(c, resp.BadRequest(msg))
		return
	}
	g, err := h.grades.Rename(c.Request.Context(), mdw.ParamUint(c, "id"), name)
	if err != nil {
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	if g == nil {
		resp.Fail(c, resp.NotFound("Grade not found"))
		return
	}
	h.invalidate(c)
	resp.OK(c, g)
}

func (h *GradeHandler) Delete(c *gin.Context) {
	if err := h.grades.Delete(c.Request.Context(), mdw.ParamUint(c, "id")); err != nil {
		if isNotFound(err) {
			resp.Fail(c, resp.NotFound("Grade not found"))
			return
		}
		resp.Fail(c, resp.Internal("Internal Server Error", err))
		return
	}
	h.invalidate(c)
	resp.OK(c, gin.H{"message": "Grade deleted successfully"})
}

func (h *GradeHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), cacheKeyGrades)
	}
}
