package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/domain"
	"github.com/SharkyKing/EduSpace/internal/service"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

type ThreadHandler struct {
	threads    domain.ThreadRepository
	categories domain.CategoryRepository
	grades     domain.GradeRepository
	votes      *service.VoteService
}

func NewThreadHandler(
	threads domain.ThreadRepository,
	categories domain.CategoryRepository,
	grades domain.GradeRepository,
	votes *service.VoteService,
) *ThreadHandler {
	return &ThreadHandler{threads: threads, categories: categories, grades: grades, votes: votes}
}

// List 支持 ?category=&grade=&search= 过滤。
func (h *ThreadHandler) List(c *gin.Context) {
	var f domain.ThreadFilter
	if v, err := strconv.ParseUint(c.Query("category"), 10, 64); err == nil {
		f.CategoryID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("grade"), 10, 64); err == nil {
		f.GradeID = uint(v)
	}
	f.Search = strings.TrimSpace(c.Query("search"))

	threads, err := h.threads.List(c.Request.Context(), f)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while fetching threads.", err))
		return
	}
	resp.OK(c, threads)
}

type threadIn struct {
	ThreadName string `json:"ThreadName"`
	ThreadText string `json:"ThreadText"`
	CategoryID uint   `json:"CategoryID"`
	GradeID    uint   `json:"GradeID"`
}

func (h *ThreadHandler) Create(c *gin.Context) {
	var in threadIn
	_ = c.ShouldBindJSON(&in)
	name := strings.TrimSpace(in.ThreadName)
	text := strings.TrimSpace(in.ThreadText)
	if name == "" || text == "" || in.CategoryID == 0 || in.GradeID == 0 {
		resp.Fail(c, resp.BadRequest("Missing required fields."))
		return
	}

	ctx := c.Request.Context()
	cat, err := h.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while creating the thread.", err))
		return
	}
	grade, err := h.grades.FindByID(ctx, in.GradeID)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while creating the thread.", err))
		return
	}
	if cat == nil || grade == nil {
		resp.Fail(c, resp.NotFound("Category or Grade not found."))
		return
	}

	userID, _ := mdw.UserID(c)
	t := &domain.Thread{
		ThreadName: name,
		ThreadText: text,
		CategoryID: in.CategoryID,
		GradeID:    in.GradeID,
		UserID:     userID,
	}
	if err := h.threads.Create(ctx, t); err != nil {
		resp.Fail(c, resp.Internal("An error occurred while creating the thread.", err))
		return
	}
	resp.Created(c, gin.H{"message": "Thread created successfully!", "thread": t})
}

func (h *ThreadHandler) Get(c *gin.Context) {
	t, err := h.threads.FindByID(c.Request.Context(), mdw.ParamUint(c, "threadId"))
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while fetching the thread.", err))
		return
	}
	if t == nil {
		resp.Fail(c, resp.NotFound("Thread not found."))
		return
	}
	resp.OK(c, t)
}

// Patch 仅作者可达；行不存在与非作者统一折叠成 404，不泄露归属。
func (h *ThreadHandler) Patch(c *gin.Context) {
	var in threadIn
	_ = c.ShouldBindJSON(&in)
	name := strings.TrimSpace(in.ThreadName)
	text := strings.TrimSpace(in.ThreadText)
	if name == "" || text == "" || in.CategoryID == 0 || in.GradeID == 0 {
		resp.Fail(c, resp.BadRequest("Missing required fields."))
		return
	}

	ctx := c.Request.Context()
	cat, err := h.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while updating the thread.", err))
		return
	}
	grade, err := h.grades.FindByID(ctx, in.GradeID)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while updating the thread.", err))
		return
	}
	if cat == nil || grade == nil {
		resp.Fail(c, resp.NotFound("Category or Grade not found."))
		return
	}

	userID, _ := mdw.UserID(c)
	t, err := h.threads.UpdateOwned(ctx, mdw.ParamUint(c, "threadId"), userID, domain.ThreadUpdate{
		ThreadName: name,
		ThreadText: text,
		CategoryID: in.CategoryID,
		GradeID:    in.GradeID,
	})
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while updating the thread.", err))
		return
	}
	if t == nil {
		resp.Fail(c, resp.NotFound("Thread not found or you are not authorized."))
		return
	}
	resp.OK(c, gin.H{"message": "Thread updated successfully!", "thread": t})
}

func (h *ThreadHandler) Delete(c *gin.Context) {
	userID, _ := mdw.UserID(c)
	ok, err := h.threads.DeleteOwned(c.Request.Context(), mdw.ParamUint(c, "threadId"), userID)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while deleting the thread.", err))
		return
	}
	if !ok {
		resp.Fail(c, resp.NotFound("Thread not found or you are not authorized."))
		return
	}
	resp.OK(c, gin.H{"message": "Thread deleted successfully."})
}

type voteIn struct {
	Vote int `json:"vote"`
}

// Vote 投票状态机入口。
func (h *ThreadHandler) Vote(c *gin.Context) {
	var in voteIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.BadRequest("vote must be 1 or -1"))
		return
	}
	userID, _ := mdw.UserID(c)
	thread, tv, err := h.votes.Cast(c.Request.Context(), mdw.ParamUint(c, "threadId"), userID, in.Vote)
	switch {
	case errors.Is(err, domain.ErrInvalidVote):
		resp.Fail(c, resp.BadRequest("vote must be 1 or -1"))
		return
	case errors.Is(err, domain.ErrThreadNotFound):
		resp.Fail(c, resp.NotFound("Thread not found."))
		return
	case err != nil:
		resp.Fail(c, resp.Internal("An error occurred while voting on the thread.", err))
		return
	}
	resp.OK(c, gin.H{
		"message":    "Vote recorded successfully!",
		"threadVote": tv,
		"relevancy":  thread.RelevancyCount,
	})
}
