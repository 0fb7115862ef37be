package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer   xyz ", "xyz", true},
		{"rawtoken", "rawtoken", true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("test-secret")
	ctx := context.Background()

	token, err := v.Sign(Identity{UserID: "42", Name: "Ada"}, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatal(err)
	}
	id, err := v.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != "42" || id.Name != "Ada" {
		t.Errorf("identity = %+v", id)
	}

	expired, _ := v.Sign(Identity{UserID: "42"}, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	if _, err := v.Verify(ctx, expired); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("expired token: err = %v", err)
	}

	other, _ := NewJWTVerifier("another-secret").Sign(Identity{UserID: "42"}, nil)
	if _, err := v.Verify(ctx, other); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("wrong secret: err = %v", err)
	}

	if _, err := v.Verify(ctx, "not-a-jwt"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("garbage: err = %v", err)
	}
}

func TestJWTVerifierNumericUserClaim(t *testing.T) {
	secret := []byte("s")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user": 7, "pass": true}).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	id, err := NewJWTVerifier("s").Verify(context.Background(), token)
	if err != nil {
		t.Fatal(err)
	}
	if id.UserID != "7" {
		t.Errorf("UserID = %q, want 7", id.UserID)
	}
}

func TestJWTVerifierRejectsOtherAlgorithms(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "1"}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTVerifier("k").Verify(context.Background(), token); err == nil {
		t.Error("HS512 token should be rejected")
	}
}

func TestRemoteVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/validate_session" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			w.Write([]byte(`{"status":"valid","user_id":12}`))
		case "Bearer broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`"Invalid token"`))
		}
	}))
	defer srv.Close()

	v := NewRemoteVerifier(srv.URL+"/", nil)
	ctx := context.Background()

	id, err := v.Verify(ctx, "good")
	if err != nil || id.UserID != "12" {
		t.Errorf("good token: %+v, %v", id, err)
	}
	if _, err := v.Verify(ctx, "bad"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("bad token: err = %v", err)
	}
	_, err = v.Verify(ctx, "broken")
	if err == nil || errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("server failure should not look like a rejected token: %v", err)
	}
}

func TestRequire(t *testing.T) {
	if _, err := Require(context.Background()); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("empty context: err = %v", err)
	}
	ctx := WithIdentity(context.Background(), Identity{UserID: "u1"})
	id, err := Require(ctx)
	if err != nil || id.UserID != "u1" {
		t.Errorf("Require = %+v, %v", id, err)
	}
}
