package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/auth"
	"github.com/jengzang/studyspots-backend-go/internal/logger"
	"github.com/jengzang/studyspots-backend-go/pkg/response"
)

// Authenticate verifies a bearer token when one is present and stores the
// identity on the request context. A request without a token passes through
// anonymously; a request with a bad token is refused.
func Authenticate(verifier auth.Verifier) gin.HandlerFunc {
	return authenticate(verifier, true)
}

// OptionalAuthenticate is Authenticate for public reads: a token that fails
// verification is treated as no token.
func OptionalAuthenticate(verifier auth.Verifier) gin.HandlerFunc {
	return authenticate(verifier, false)
}

func authenticate(verifier auth.Verifier, strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			unauthorized := errors.Is(err, apperror.ErrUnauthorized)
			if !unauthorized {
				logger.L().Error("token verification failed", zap.Error(err))
			}
			if !strict {
				c.Next()
				return
			}
			response.FromError(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireAuth refuses requests that Authenticate left anonymous
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := auth.Require(c.Request.Context()); err != nil {
			response.FromError(c, err)
			return
		}
		c.Next()
	}
}
