package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/utils"
)

const (
	ContextUserKey    = "current_user"
	ContextTokenIDKey = "current_token_id"
)

// JWTAuthMiddleware authenticates the bearer token and loads the account.
// A token passes only when its signature checks out AND its jti still has a
// live access-token row, so deleting the row revokes the session.
//
// Suspension is enforced here on every request: currently suspended accounts
// get a 423 and lose the presented token; expired suspensions are normalized
// back to active before the request proceeds.
func JWTAuthMiddleware(tokenRepo repositories.AccessTokenRepository, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondUnauthenticated(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondUnauthenticated(c)
			c.Abort()
			return
		}

		tokenID, err := uuid.Parse(claims.ID)
		if err != nil {
			utils.RespondUnauthenticated(c)
			c.Abort()
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.RespondUnauthenticated(c)
			c.Abort()
			return
		}

		ctx := c.Request.Context()

		token, err := tokenRepo.FindById(ctx, tokenID)
		if err != nil || token == nil || token.UserID != userID {
			utils.RespondUnauthenticated(c)
			c.Abort()
			return
		}

		user, err := userRepo.FindById(ctx, userID)
		if err != nil || user == nil {
			utils.RespondUnauthenticated(c)
			c.Abort()
			return
		}

		if user.IsCurrentlySuspended() {
			_ = tokenRepo.Delete(ctx, tokenID)
			utils.RespondLocked(c, utils.NewSuspendedError(user.SuspendedUntil))
			c.Abort()
			return
		}

		if user.SuspensionExpired() {
			if err := userRepo.ClearSuspension(ctx, user.ID); err == nil {
				user.IsSuspended = false
				user.SuspendedUntil = nil
				user.SuspensionReason = nil
			}
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenIDKey, tokenID)
		c.Next()
	}
}

// RoleMiddleware requires the authenticated account to hold requiredRole.
func RoleMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.HasRole(requiredRole) {
			utils.RespondForbidden(c, "Forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account loaded by JWTAuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *db_models.User {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*db_models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentTokenID returns the jti of the presented token.
func CurrentTokenID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextTokenIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
