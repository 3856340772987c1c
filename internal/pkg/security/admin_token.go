package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dltpay/paygate/internal/pkg/env"
)

type AdminTokenClaims struct {
	AdminID   uint   `json:"admin_id"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"exp"`
}

// AdminTokenSecret returns the HMAC secret for admin session tokens. A
// missing ADMIN_TOKEN_SECRET falls back to an insecure development default
// and logs a warning.
func AdminTokenSecret() string {
	secret := env.GetEnv("ADMIN_TOKEN_SECRET", "")
	if secret == "" {
		log.Println("[Security] WARNING: ADMIN_TOKEN_SECRET not set, using insecure default")
		return "insecure-dev-admin-secret"
	}
	return secret
}

func GenerateAdminToken(adminID uint, username string, ttl time.Duration, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret is required for token generation")
	}
	claims := AdminTokenClaims{
		AdminID:   adminID,
		Username:  username,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	sig := mac.Sum(nil)
	token := fmt.Sprintf("%s.%s", base64.RawURLEncoding.EncodeToString(payload), base64.RawURLEncoding.EncodeToString(sig))
	return token, nil
}

func VerifyAdminToken(token, secret string) (*AdminTokenClaims, error) {
	if secret == "" {
		return nil, errors.New("secret is required for token verification")
	}
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return nil, errors.New("invalid token format")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errors.New("invalid payload encoding")
	}
	sigBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.New("invalid signature encoding")
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payloadBytes)
	expected := mac.Sum(nil)
	if !hmac.Equal(sigBytes, expected) {
		return nil, errors.New("invalid token signature")
	}
	var claims AdminTokenClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return nil, errors.New("invalid payload")
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}
