package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
)

// JWTVerifier checks HS256 tokens signed with a shared secret. The user id
// is read from "sub", falling back to a numeric "user" claim.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTVerifier creates a verifier for tokens signed with secret
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Identity{}, apperror.Unauthorized("token expired")
	}
	if err != nil {
		return Identity{}, apperror.Unauthorized("invalid token")
	}

	id := Identity{UserID: userID(claims)}
	if id.UserID == "" {
		return Identity{}, apperror.Unauthorized("token has no subject")
	}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	return id, nil
}

func userID(claims jwt.MapClaims) string {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	switch u := claims["user"].(type) {
	case float64:
		if u > 0 {
			return strconv.FormatInt(int64(u), 10)
		}
	case string:
		return u
	}
	return ""
}

// Sign issues an HS256 token for id. It backs local tooling and tests; production
// tokens come from the identity service.
func (v *JWTVerifier) Sign(id Identity, claims jwt.MapClaims) (string, error) {
	all := jwt.MapClaims{"sub": id.UserID}
	if id.Name != "" {
		all["name"] = id.Name
	}
	for k, val := range claims {
		all[k] = val
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, all).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
