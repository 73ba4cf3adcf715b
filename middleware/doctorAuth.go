package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthDoctorMiddleware authenticates a doctor from the Authorization
// header. The token hash is checked against the Redis auth cache first; on a
// miss the doctor's existence is verified in the database and the hash cached.
func JWTAuthDoctorMiddleware(repo doctorRepo.DoctorRepository) gin.HandlerFunc {
	return authMiddleware("doctor", "doctorID", func(ctx context.Context, id string) bool {
		_, err := repo.GetByID(ctx, id)
		return err == nil
	})
}

func authMiddleware(principal, contextKey string, exists func(ctx context.Context, id string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied, token missing"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		id, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + principal + ":" + id
		authCache := utils.GetAuthCacheClient()

		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash != computedHash {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token mismatch"})
				return
			}
			_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
			c.Set(contextKey, id)
			c.Next()
			return
		}
		if err != redis.Nil {
			utils.GetLogger().Sugar().Warnf("auth cache lookup failed: %v; falling back to DB", err)
		}

		// Cache miss: verify the principal still exists, then re-cache.
		if !exists(ctx, id) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication error"})
			return
		}
		_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()

		c.Set(contextKey, id)
		c.Next()
	}
}
