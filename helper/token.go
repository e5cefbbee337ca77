package helper

import (
	"context"
	"errors"
	"time"

	"cab_booking/config"
	"cab_booking/database"
	"cab_booking/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func jwtSecret() []byte {
	return []byte(config.ConfigDefault("JWT_SECRET", "cab-booking-dev-secret"))
}

func GenerateAccessToken(claim model.TokenClaim) (string, error) {
	return signToken(claim, accessTokenTTL)
}

func GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	return signToken(claim, refreshTokenTTL)
}

func signToken(claim model.TokenClaim, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  claim.UserId,
		"email":   claim.Email,
		"isAdmin": claim.IsAdmin,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString(jwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
}

// BlacklistToken revokes a token until its natural expiry. The entry
// lives in redis so every instance sees the revocation.
func BlacklistToken(ctx context.Context, tokenString string) error {
	if database.Redis == nil {
		return errors.New("redis unavailable, cannot revoke token")
	}

	ttl := accessTokenTTL
	if token, err := ParseToken(tokenString); err == nil {
		if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
			if remaining := time.Until(exp.Time); remaining > 0 {
				ttl = remaining
			}
		}
	}
	return database.Redis.Set(ctx, "blacklist:"+tokenString, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the token was revoked. With redis
// down it fails open, tokens then expire on their own schedule.
func IsTokenBlacklisted(ctx context.Context, tokenString string) bool {
	if database.Redis == nil {
		return false
	}
	n, err := database.Redis.Exists(ctx, "blacklist:"+tokenString).Result()
	return err == nil && n > 0
}
