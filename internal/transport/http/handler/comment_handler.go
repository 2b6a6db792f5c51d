package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/domain"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

const maxCommentLength = 500

type CommentHandler struct {
	comments domain.CommentRepository
	threads  domain.ThreadRepository
}

func NewCommentHandler(comments domain.CommentRepository, threads domain.ThreadRepository) *CommentHandler {
	return &CommentHandler{comments: comments, threads: threads}
}

type commentIn struct {
	CommentText string `json:"CommentText"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var in commentIn
	_ = c.ShouldBindJSON(&in)
	text := strings.TrimSpace(in.CommentText)
	if text == "" {
		resp.Fail(c, resp.BadRequest("CommentText is required and must be a non-empty string."))
		return
	}
	// 上限按字符数算，不是字节数
	if utf8.RuneCountInString(in.CommentText) > maxCommentLength {
		resp.Fail(c, resp.BadRequest("CommentText is too long, maximum length is 500 characters."))
		return
	}

	ctx := c.Request.Context()
	threadID := mdw.ParamUint(c, "threadId")
	thread, err := h.threads.FindByID(ctx, threadID)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while creating the comment.", err))
		return
	}
	if thread == nil {
		resp.Fail(c, resp.NotFound("Thread not found."))
		return
	}

	userID, _ := mdw.UserID(c)
	comment := &domain.Comment{
		CommentText: text,
		ThreadID:    threadID,
		UserID:      userID,
	}
	if err := h.comments.Create(ctx, comment); err != nil {
		resp.Fail(c, resp.Internal("An error occurred while creating the comment.", err))
		return
	}
	resp.Created(c, gin.H{"message": "Comment created successfully!", "comment": comment})
}

func (h *CommentHandler) ListByThread(c *gin.Context) {
	comments, err := h.comments.ListByThread(c.Request.Context(), mdw.ParamUint(c, "threadId"))
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while fetching comments.", err))
		return
	}
	if len(comments) == 0 {
		resp.OK(c, gin.H{"message": "No comments found for the specified thread."})
		return
	}
	resp.OK(c, gin.H{"message": "Comments fetched successfully", "comments": comments})
}

func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.comments.FindByID(c.Request.Context(), mdw.ParamUint(c, "commentId"))
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while fetching the comment.", err))
		return
	}
	if comment == nil {
		resp.Fail(c, resp.NotFound("Comment not found."))
		return
	}
	resp.OK(c, comment)
}

// Patch 只有作者能改；越权是 403 而不是 404（评论的存在不是秘密）。
func (h *CommentHandler) Patch(c *gin.Context) {
	var in commentIn
	_ = c.ShouldBindJSON(&in)
	text := strings.TrimSpace(in.CommentText)
	if text == "" {
		resp.Fail(c, resp.BadRequest("CommentText must be a non-empty string."))
		return
	}
	if utf8.RuneCountInString(in.CommentText) > maxCommentLength {
		resp.Fail(c, resp.BadRequest("CommentText is too long, maximum length is 500 characters."))
		return
	}

	ctx := c.Request.Context()
	comment, err := h.comments.FindInThread(ctx, mdw.ParamUint(c, "commentId"), mdw.ParamUint(c, "threadId"))
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while updating the comment.", err))
		return
	}
	if comment == nil {
		resp.Fail(c, resp.NotFound("Comment not found or does not belong to the specified thread."))
		return
	}
	userID, _ := mdw.UserID(c)
	if comment.UserID != userID {
		resp.Fail(c, resp.Forbidden("You do not have permission to modify this comment."))
		return
	}

	updated, err := h.comments.UpdateText(ctx, comment.ID, text)
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while updating the comment.", err))
		return
	}
	resp.OK(c, gin.H{"message": "Comment updated successfully!", "comment": updated})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	comment, err := h.comments.FindInThread(ctx, mdw.ParamUint(c, "commentId"), mdw.ParamUint(c, "threadId"))
	if err != nil {
		resp.Fail(c, resp.Internal("An error occurred while deleting the comment.", err))
		return
	}
	if comment == nil {
		resp.Fail(c, resp.NotFound("Comment not found or does not belong to the specified thread."))
		return
	}
	userID, _ := mdw.UserID(c)
	if comment.UserID != userID {
		resp.Fail(c, resp.Forbidden("You do not have permission to delete this comment."))
		return
	}

	if err := h.comments.Delete(ctx, comment.ID); err != nil {
		resp.Fail(c, resp.Internal("An error occurred while deleting the comment.", err))
		return
	}
	resp.OK(c, gin.H{"message": "Comment deleted successfully!"})
}
