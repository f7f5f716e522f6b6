package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
)

// AuthMiddleware creates a Gin middleware handler that validates HMAC-signed JWT bearer tokens
// and records the token subject as the acting user.
func AuthMiddleware(jwtSecret string, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()})}
		if issuer != "" {
			parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
		}

		token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		}, parserOpts...)

		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			abortUnauthorized(c, msg)
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Warn("Invalid token claims or token is not valid")
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		setUser(c, claims.Subject, logger)
		c.Next()
	}
}

// abortUnauthorized stops the chain with a 401 and records the failure on the gin context.
func abortUnauthorized(c *gin.Context, reason string) {
	_ = c.Error(fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, reason))
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reason})
}

// AnonymousUserMiddleware records a fixed actor for deployments that run without authentication.
func AnonymousUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		setUser(c, anonymousUser, GetLoggerFromCtx(c.Request.Context()))
		c.Next()
	}
}

func setUser(c *gin.Context, userID string, logger *slog.Logger) {
	enriched := logger.With(slog.String("user_id", userID))
	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	c.Request = c.Request.WithContext(WithLogger(ctx, enriched))
	c.Set(string(userIDKey), userID)
	c.Set(string(loggerKey), enriched)
}
