package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"medicore/utils"

	doctorRepo "medicore/database/repository/doctor"
	patientRepo "medicore/database/repository/patient"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// ContextAccountID is the gin context key holding the authenticated account ID.
const ContextAccountID = "accountID"

// ContextRole is the gin context key holding the authenticated role.
const ContextRole = "role"

// JWTAuthPatientMiddleware authenticates requests from patient accounts.
func JWTAuthPatientMiddleware(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return authMiddleware(utils.RolePatient, func(id string) (string, error) {
		p, err := repo.GetByID(id)
		if err != nil || p == nil {
			return "", fmt.Errorf("account not found")
		}
		return p.TokenHash, nil
	})
}

// JWTAuthDoctorMiddleware authenticates requests from doctor accounts.
func JWTAuthDoctorMiddleware(repo doctorRepo.DoctorRepository) gin.HandlerFunc {
	return authMiddleware(utils.RoleDoctor, func(id string) (string, error) {
		d, err := repo.GetByID(id)
		if err != nil || d == nil {
			return "", fmt.Errorf("account not found")
		}
		return d.TokenHash, nil
	})
}

// authMiddleware validates the bearer token for the expected role, checking
// the token hash against the auth cache first and the database on a miss.
func authMiddleware(expectedRole string, lookupTokenHash func(id string) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		ctx := context.Background()

		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		accountID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || accountID == "" || role != expectedRole {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + role + ":" + accountID

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil
		if !cacheEnabled {
			log.Printf("WARNING: auth cache client not available, falling back to DB lookup")
		}

		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash == computedHash {
					_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
					c.Set(ContextAccountID, accountID)
					c.Set(ContextRole, role)
					c.Next()
					return
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
				return
			} else if err != redis.Nil {
				log.Printf("WARNING: error retrieving auth cache key: %v, falling back to DB lookup", err)
			}
		}

		storedHash, err := lookupTokenHash(accountID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if storedHash == "" || storedHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		c.Set(ContextAccountID, accountID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
