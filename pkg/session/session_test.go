package session

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeClaims(t *testing.T) {
	access := signedToken(t, jwt.MapClaims{
		"user_id":  float64(42),
		"username": "ada",
		"is_admin": true,
	})

	claims, err := DecodeClaims(access)
	if err != nil {
		t.Fatalf("DecodeClaims returned error: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "ada" || !claims.IsAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestDecodeClaimsRejectsGarbage(t *testing.T) {
	if _, err := DecodeClaims("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestEstablishAndToken(t *testing.T) {
	access := signedToken(t, jwt.MapClaims{"user_id": float64(7)})
	sess, err := Establish(access, "refresh-token")
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}
	token, ok := sess.Token()
	if !ok || token != access {
		t.Fatalf("unexpected token: %q ok=%v", token, ok)
	}

	var absent *Session
	if _, ok := absent.Token(); ok {
		t.Fatal("nil session must report no token")
	}
}

func TestStoreLifecycle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewStore(dir)

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	access := signedToken(t, jwt.MapClaims{"user_id": float64(9), "is_admin": true})
	sess, err := Establish(access, "refresh")
	if err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load after save: ok=%v err=%v", ok, err)
	}
	if loaded.Access != access || loaded.Refresh != "refresh" {
		t.Fatalf("unexpected loaded session: %+v", loaded)
	}
	if loaded.Claims.UserID != 9 || !loaded.Claims.IsAdmin {
		t.Fatalf("claims not rebuilt on load: %+v", loaded.Claims)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatal("expected store empty after clear")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear must be a no-op, got %v", err)
	}
}
