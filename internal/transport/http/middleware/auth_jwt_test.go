package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SharkyKing/EduSpace/internal/core/auth"
	"github.com/SharkyKing/EduSpace/internal/domain"
)

func newGuardCodec() *auth.Codec {
	return &auth.Codec{
		AccessSecret:  []byte("guard-access-secret"),
		RefreshSecret: []byte("guard-refresh-secret"),
		Issuer:        "eduspace-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func guardedEngine(codec *auth.Codec, requireRole uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthJWT(codec, requireRole), func(c *gin.Context) {
		uid, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": uid, "roleId": RoleID(c)})
	})
	return r
}

func TestAuthJWTMissingHeader(t *testing.T) {
	r := guardedEngine(newGuardCodec(), 0)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthJWTGarbageToken(t *testing.T) {
	r := guardedEngine(newGuardCodec(), 0)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAuthJWTExpiredIsForbidden(t *testing.T) {
	// 过期与伪造同路：403 而不是 401
	codec := newGuardCodec()
	expired := *codec
	expired.AccessTTL = -time.Minute
	tok, _ := expired.IssueAccess(7, 2)

	r := guardedEngine(codec, 0)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAuthJWTHappyPath(t *testing.T) {
	codec := newGuardCodec()
	tok, _ := codec.IssueAccess(7, 2)

	r := guardedEngine(codec, 0)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"userId":7`) || !strings.Contains(body, `"roleId":2`) {
		t.Fatalf("context not populated, body = %s", body)
	}
}

func TestAuthJWTRoleGate(t *testing.T) {
	codec := newGuardCodec()
	r := guardedEngine(codec, domain.RoleAdminID)

	userTok, _ := codec.IssueAccess(7, domain.RoleUserID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin status = %d, want 403", w.Code)
	}

	adminTok, _ := codec.IssueAccess(1, domain.RoleAdminID)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", w.Code)
	}
}

func TestRefreshJWTCookieFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := newGuardCodec()
	r := gin.New()
	r.POST("/refresh", RefreshJWT(codec), func(c *gin.Context) {
		uid, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": uid})
	})

	// 无 token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", w.Code)
	}

	// cookie 兜底
	tok, _ := codec.IssueRefresh(9)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: tok})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("cookie status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"userId":9`) {
		t.Fatalf("userId not set, body = %s", w.Body.String())
	}

	// 访问令牌混进刷新口 → 403
	access, _ := codec.IssueAccess(9, 2)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: access})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("access-as-refresh status = %d, want 403", w.Code)
	}
}

func TestValidateNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/user/:id", ValidateNumber("id"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": ParamUint(c, "id")})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric status = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/12", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("numeric status = %d, want 200", w.Code)
	}
}
