package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adilhasan/mufradat/utils"
)

const (
	// ContextUserIDKey holds the authenticated user id inside Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey holds the authenticated username inside Gin context.
	ContextUsernameKey = "username"
)

// AuthRequired rejects requests without a valid, non-revoked bearer token
// and stores the token identity in the request context.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, appCode, msg := bearerToken(ctx)
		if appCode != 0 {
			reject(ctx, appCode, msg)
			return
		}
		if utils.IsTokenBlacklisted(token) {
			reject(ctx, 40104, "token revoked")
			return
		}
		claims, err := utils.ParseToken(token)
		if err != nil {
			reject(ctx, 40105, "invalid token")
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) (token string, appCode int, msg string) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", 40101, "authorization header missing"
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", 40102, "invalid authorization header format"
	}
	token = strings.TrimSpace(rest)
	if token == "" {
		return "", 40103, "empty bearer token"
	}
	return token, 0, ""
}

func reject(ctx *gin.Context, appCode int, msg string) {
	utils.Error(ctx, http.StatusUnauthorized, appCode, msg)
	ctx.Abort()
}
