package http

import (
	"fmt"
	"net/http"
	"strings"

	"storefront-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "cart_session"
	sessionCookieAge  = 30 * 24 * 60 * 60

	userIDKey     = "userID"
	sessionKeyKey = "sessionKey"
)

// loginURL is where unauthenticated callers get redirected. The login flow
// itself lives in the external identity provider.
const loginURL = "/login"

func userIDFromToken(tokenString, secret string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("unexpected claims type")
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, fmt.Errorf("subject claim missing")
	}
	return uint(sub), nil
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireAuth guards routes that need an authenticated user. Anyone without
// a valid token is sent to the login flow.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.Redirect(http.StatusFound, loginURL)
			ctx.Abort()
			return
		}

		userID, err := userIDFromToken(token, secret)
		if err != nil {
			ctx.Redirect(http.StatusFound, loginURL)
			ctx.Abort()
			return
		}

		ctx.Set(userIDKey, userID)
		ctx.Next()
	}
}

// CartIdentity resolves who owns the cart for this request: the
// authenticated user when a valid token is present, otherwise an anonymous
// session cookie minted on first use.
func CartIdentity(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if userID, err := userIDFromToken(token, secret); err == nil {
				ctx.Set(userIDKey, userID)
				ctx.Next()
				return
			}
		}

		sessionKey, err := ctx.Cookie(sessionCookieName)
		if err != nil || sessionKey == "" {
			sessionKey = uuid.NewString()
			ctx.SetCookie(sessionCookieName, sessionKey, sessionCookieAge, "/", "", false, true)
		}
		ctx.Set(sessionKeyKey, sessionKey)
		ctx.Next()
	}
}

func identityFromContext(ctx *gin.Context) domain.Identity {
	return domain.Identity{
		UserID:     ctx.GetUint(userIDKey),
		SessionKey: ctx.GetString(sessionKeyKey),
	}
}
