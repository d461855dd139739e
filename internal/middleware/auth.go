package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextBranchID = "branchID"
	ContextUserRole = "userRole"
	ContextClaims   = "claims"
)

func AuthMiddleware(issuer *auth.Issuer, revoked auth.RevocationStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "expected a bearer token")
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "token is invalid or expired")
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Error("auth: revocation lookup failed", zap.Error(err))
				httperr.Abort(c, http.StatusServiceUnavailable, "auth_unavailable", "cannot verify token")
				return
			}
			if isRevoked {
				httperr.Abort(c, http.StatusUnauthorized, "token_revoked", "token has been revoked")
				return
			}
		}

		userID, _ := claims.UserID()

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextClaims, claims)
		if claims.BranchID != nil {
			c.Set(ContextBranchID, *claims.BranchID)
		}

		c.Next()
	}
}

// RequireCapability must run after AuthMiddleware.
func RequireCapability(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextUserRole)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "unauthenticated", "authentication required")
			return
		}
		if r, _ := role.(auth.Role); !r.Can(capability) {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "missing capability "+string(capability))
			return
		}
		c.Next()
	}
}
