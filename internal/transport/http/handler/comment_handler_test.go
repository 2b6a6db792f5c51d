package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SharkyKing/EduSpace/internal/domain"
	"github.com/SharkyKing/EduSpace/internal/repo"
	"github.com/SharkyKing/EduSpace/internal/service"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
)

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Category{},
		&domain.Grade{},
		&domain.Thread{},
		&domain.ThreadVote{},
		&domain.Comment{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := repo.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

// asUser 测试用守卫替身：跳过签名校验，直接注入身份。
func asUser(id, roleID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(mdw.KeyUserID, id)
		c.Set(mdw.KeyRoleID, roleID)
		c.Next()
	}
}

type commentFixture struct {
	db        *gorm.DB
	threadID  uint
	commentID uint
	authorID  uint
	otherID   uint
}

func newCommentFixture(t *testing.T) commentFixture {
	t.Helper()
	db := newHandlerDB(t)

	author := domain.User{
		FirstName: "A", LastName: "Author",
		Email: "author@example.com", Username: "author",
		PasswordHash: "x", RoleID: domain.RoleUserID,
	}
	other := domain.User{
		FirstName: "B", LastName: "Other",
		Email: "other@example.com", Username: "other",
		PasswordHash: "x", RoleID: domain.RoleUserID,
	}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("create author: %v", err)
	}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create other: %v", err)
	}
	th := domain.Thread{
		ThreadName: "Topic", ThreadText: "Body",
		CategoryID: 1, GradeID: 1, UserID: author.ID,
	}
	if err := db.Create(&th).Error; err != nil {
		t.Fatalf("create thread: %v", err)
	}
	cm := domain.Comment{CommentText: "original", ThreadID: th.ID, UserID: author.ID}
	if err := db.Create(&cm).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return commentFixture{db: db, threadID: th.ID, commentID: cm.ID, authorID: author.ID, otherID: other.ID}
}

func commentEngine(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCommentHandler(repo.NewCommentRepo(db), repo.NewThreadRepo(db))
	r := gin.New()
	auth := asUser(userID, domain.RoleUserID)
	r.POST("/api/threads/:threadId/comment", auth, h.Create)
	r.PATCH("/api/threads/:threadId/comment/:commentId", auth, h.Patch)
	r.DELETE("/api/threads/:threadId/comment/:commentId", auth, h.Delete)
	return r
}

func TestCommentDeleteNonAuthorForbidden(t *testing.T) {
	fx := newCommentFixture(t)
	r := commentEngine(fx.db, fx.otherID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/threads/1/comment/1", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	// 行必须原封不动
	var cm domain.Comment
	if err := fx.db.First(&cm, fx.commentID).Error; err != nil {
		t.Fatalf("comment row gone: %v", err)
	}
	if cm.CommentText != "original" {
		t.Fatalf("comment mutated: %q", cm.CommentText)
	}
}

func TestCommentDeleteAuthor(t *testing.T) {
	fx := newCommentFixture(t)
	r := commentEngine(fx.db, fx.authorID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/threads/1/comment/1", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	var rows int64
	fx.db.Model(&domain.Comment{}).Count(&rows)
	if rows != 0 {
		t.Fatalf("comment rows = %d, want 0", rows)
	}
}

func TestCommentPatchNonAuthorForbidden(t *testing.T) {
	fx := newCommentFixture(t)
	r := commentEngine(fx.db, fx.otherID)

	body := bytes.NewBufferString(`{"CommentText":"hijacked"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/threads/1/comment/1", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestCommentCreateValidation(t *testing.T) {
	fx := newCommentFixture(t)
	r := commentEngine(fx.db, fx.authorID)

	// 空文本
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/threads/1/comment", bytes.NewBufferString(`{"CommentText":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank text status = %d, want 400", w.Code)
	}

	// 超长
	long := strings.Repeat("x", 501)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/threads/1/comment", bytes.NewBufferString(`{"CommentText":"`+long+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("long text status = %d, want 400", w.Code)
	}

	// 多字节文本按字符计数：400 个汉字远超 500 字节但只有 400 字符
	cjk := strings.Repeat("题", 400)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/threads/1/comment", bytes.NewBufferString(`{"CommentText":"`+cjk+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("multibyte text status = %d, want 201; body = %s", w.Code, w.Body.String())
	}

	cjkLong := strings.Repeat("题", 501)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/threads/1/comment", bytes.NewBufferString(`{"CommentText":"`+cjkLong+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("multibyte long text status = %d, want 400", w.Code)
	}

	// 贴子不存在
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/threads/999/comment", bytes.NewBufferString(`{"CommentText":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing thread status = %d, want 404", w.Code)
	}

	// 正常创建
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/threads/1/comment", bytes.NewBufferString(`{"CommentText":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201; body = %s", w.Code, w.Body.String())
	}
}

func TestThreadVoteEndpoint(t *testing.T) {
	fx := newCommentFixture(t)
	gin.SetMode(gin.TestMode)
	threads := repo.NewThreadRepo(fx.db)
	h := NewThreadHandler(threads, repo.NewCategoryRepo(fx.db), repo.NewGradeRepo(fx.db), service.NewVoteService(threads))
	r := gin.New()
	r.POST("/api/threads/:threadId/vote", asUser(fx.otherID, domain.RoleUserID), h.Vote)

	// 非法值
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/threads/1/vote", bytes.NewBufferString(`{"vote":5}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid vote status = %d, want 400", w.Code)
	}

	// 首投 +1
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/threads/1/vote", bytes.NewBufferString(`{"vote":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("vote status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"relevancy":1`) {
		t.Fatalf("body = %s, want relevancy 1", w.Body.String())
	}

	// 不存在的贴子
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/threads/999/vote", bytes.NewBufferString(`{"vote":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing thread status = %d, want 404", w.Code)
	}
}
