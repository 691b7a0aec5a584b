package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/emredk/scholaris/internal/app/auth"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/auth"
)

// actorContextKey is the gin context key the authenticated actor is stored
// under.
const actorContextKey = "actor"

// AuthMiddleware validates session tokens and deposits the resulting actor
// into the request context.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// ActorFromContext returns the actor set by the auth middleware. The zero
// actor means the request carried no valid identity.
func ActorFromContext(c *gin.Context) appauth.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(appauth.Actor); ok {
			return actor
		}
	}
	return appauth.Actor{}
}

// RequireAuth rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := m.resolveActor(c)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			detail = detail.WithDetails(err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// RequireAdmin rejects requests whose actor is not an administrator. Must be
// mounted after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := appauth.Decide(appauth.PolicyAdminOnly, ActorFromContext(c), appauth.Target{}); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the actor when a token is present but lets
// anonymous requests through. Handlers behind it decide per operation what
// anonymity is allowed to do.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if actor, err := m.resolveActor(c); err == nil {
				c.Set(actorContextKey, actor)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolveActor(c *gin.Context) (appauth.Actor, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return appauth.Actor{}, errors.New("authorization header missing")
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return appauth.Actor{}, err
	}

	claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		return appauth.Actor{}, err
	}

	return appauth.Actor{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}
