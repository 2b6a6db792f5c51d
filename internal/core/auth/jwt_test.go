package auth

import (
	"testing"
	"time"
)

func newTestCodec() *Codec {
	return &Codec{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		Issuer:        "eduspace-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func TestAccessRoundTrip(t *testing.T) {
	c := newTestCodec()
	tok, err := c.IssueAccess(42, 2)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	claims := c.VerifyAccess(tok)
	if claims == nil {
		t.Fatal("VerifyAccess returned nil for a fresh token")
	}
	if claims.UserID != 42 || claims.RoleID != 2 {
		t.Fatalf("claims = {user %d, role %d}, want {42, 2}", claims.UserID, claims.RoleID)
	}
}

func TestRefreshRoundTrip(t *testing.T) {
	c := newTestCodec()
	tok, err := c.IssueRefresh(42)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	claims := c.VerifyRefresh(tok)
	if claims == nil {
		t.Fatal("VerifyRefresh returned nil for a fresh token")
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	c := newTestCodec()
	other := newTestCodec()
	other.AccessSecret = []byte("a completely different secret")

	tok, _ := c.IssueAccess(1, 1)
	if other.VerifyAccess(tok) != nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerifyCrossSecret(t *testing.T) {
	// 刷新密钥不能验出访问令牌，反之亦然
	c := newTestCodec()

	access, _ := c.IssueAccess(1, 1)
	if c.VerifyRefresh(access) != nil {
		t.Fatal("refresh secret verified an access token")
	}

	refresh, _ := c.IssueRefresh(1)
	if c.VerifyAccess(refresh) != nil {
		t.Fatal("access secret verified a refresh token")
	}
}

func TestVerifyExpired(t *testing.T) {
	c := newTestCodec()
	c.AccessTTL = -time.Minute
	c.RefreshTTL = -time.Minute

	access, _ := c.IssueAccess(1, 1)
	if c.VerifyAccess(access) != nil {
		t.Fatal("expired access token must verify to nil")
	}
	refresh, _ := c.IssueRefresh(1)
	if c.VerifyRefresh(refresh) != nil {
		t.Fatal("expired refresh token must verify to nil")
	}
}

func TestVerifyMalformed(t *testing.T) {
	c := newTestCodec()
	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		if c.VerifyAccess(tok) != nil {
			t.Fatalf("VerifyAccess(%q) should be nil", tok)
		}
		if c.VerifyRefresh(tok) != nil {
			t.Fatalf("VerifyRefresh(%q) should be nil", tok)
		}
	}
}
