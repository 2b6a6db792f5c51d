package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SharkyKing/EduSpace/internal/core/auth"
	"github.com/SharkyKing/EduSpace/internal/domain"
	"github.com/SharkyKing/EduSpace/internal/repo"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
)

func refreshEngine(t *testing.T) (*gin.Engine, *gorm.DB, *auth.Codec, uint) {
	t.Helper()
	db := newHandlerDB(t)
	u := domain.User{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@example.com", Username: "jane",
		PasswordHash: "x", RoleID: domain.RoleUserID,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	codec := &auth.Codec{
		AccessSecret:  []byte("r-access"),
		RefreshSecret: []byte("r-refresh"),
		Issuer:        "eduspace-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
	h := NewAuthHandler(codec)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/refresh-token", mdw.RefreshJWT(codec), h.Refresh(repo.NewUserRepo(db)))
	return r, db, codec, u.ID
}

func postRefresh(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: token})
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRefreshEndpointMintsAccessToken(t *testing.T) {
	r, _, codec, userID := refreshEngine(t)
	tok, _ := codec.IssueRefresh(userID)

	w := postRefresh(r, tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	start := strings.Index(body, `"accessToken":"`)
	if start < 0 {
		t.Fatalf("body = %s, want accessToken", body)
	}
	access := body[start+len(`"accessToken":"`):]
	access = access[:strings.IndexByte(access, '"')]
	claims := codec.VerifyAccess(access)
	if claims == nil {
		t.Fatal("minted access token does not verify")
	}
	// 角色来自存储的用户，不来自刷新令牌
	if claims.UserID != userID || claims.RoleID != domain.RoleUserID {
		t.Fatalf("claims = {user %d, role %d}, want {%d, %d}", claims.UserID, claims.RoleID, userID, domain.RoleUserID)
	}
}

func TestRefreshEndpointDeletedUser(t *testing.T) {
	r, db, codec, userID := refreshEngine(t)
	tok, _ := codec.IssueRefresh(userID)
	if err := db.Delete(&domain.User{}, userID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	w := postRefresh(r, tok)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if strings.Contains(w.Body.String(), "accessToken") {
		t.Fatal("deleted user must not receive a new access token")
	}
}

func TestRefreshEndpointMissingToken(t *testing.T) {
	r, _, _, _ := refreshEngine(t)
	w := postRefresh(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
