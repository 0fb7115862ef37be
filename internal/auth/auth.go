// Package auth verifies bearer tokens issued by the external identity service.
// The rest of the server only ever sees an Identity.
package auth

import (
	"context"
	"strings"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
)

// Identity is the authenticated caller
type Identity struct {
	UserID string
	Name   string
}

// Verifier turns a bearer token into an Identity. Invalid or expired tokens
// yield an error wrapping apperror.ErrUnauthorized.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// BearerToken extracts the token from an Authorization header value.
// ok is false when the header is empty.
func BearerToken(header string) (token string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header, header != ""
}

type ctxKey struct{}

// WithIdentity stores id in ctx
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by WithIdentity
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Require returns the identity in ctx or an unauthorized error
func Require(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok || id.UserID == "" {
		return Identity{}, apperror.Unauthorized("please log in")
	}
	return id, nil
}
