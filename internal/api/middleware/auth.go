package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusway/campus-events-api/internal/api/handler/v1/response"
	"github.com/campusway/campus-events-api/internal/pkg/jwthelper"
)

type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

// VerifyJWT authenticates the Bearer token and stores the user ID on the
// gin context for downstream handlers.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, response.NewErr(http.StatusUnauthorized, "missing authorization header"))
			return
		}

		segments := strings.SplitN(header, " ", 2)
		if len(segments) != 2 || segments[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, response.NewErr(http.StatusUnauthorized, "malformed authorization header"))
			return
		}

		claims, err := jwthelper.ParseToken([]byte(a.signingKey), segments[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, response.NewErr(http.StatusUnauthorized, "invalid or expired token"))
			return
		}

		// A token replayed from a different client is rejected.
		if claims.UserAgent != ctx.Request.UserAgent() {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, response.NewErr(http.StatusUnauthorized, "invalid or expired token"))
			return
		}

		ctx.Set("userID", claims.UserID)
		ctx.Next()
	}
}
