package jwt

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/utils"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const tokenTTL = 120 * time.Minute

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, string, error)
		RevokeToken(token string) error
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string

		mu sync.Mutex
		// token id -> expiry; entries are dropped once the token expires anyway
		revoked map[string]time.Time
	}
)

func getSecretKey() string {
	secretKey := utils.GetConfig("JWT_SECRET")
	if secretKey != "" {
		return secretKey
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("failed to generate JWT secret: %v", err)
	}
	log.Warn("JWT_SECRET not set, tokens will not survive a restart")
	return hex.EncodeToString(buf)
}

func NewJWTService() JWTService {
	return NewJWTServiceWithKey(getSecretKey())
}

func NewJWTServiceWithKey(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "DONATION-HUB",
		revoked:   make(map[string]time.Time),
	}
}

func (j *jwtService) GenerateTokenUser(userId string, role string) (string, error) {
	claims := jwtUserClaim{
		userId,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	claims, err := j.claims(token)
	if err != nil {
		return "", "", err
	}
	if j.isRevoked(claims.ID) {
		return "", "", domain.ErrTokenRevoked
	}
	return claims.UserID, claims.Role, nil
}

// RevokeToken rejects the token for the rest of its lifetime. Revocations
// live in memory and do not survive a restart.
func (j *jwtService) RevokeToken(token string) error {
	claims, err := j.claims(token)
	if err != nil {
		return err
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return domain.ErrTokenInvalid
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	for id, expiry := range j.revoked {
		if now.After(expiry) {
			delete(j.revoked, id)
		}
	}
	j.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (j *jwtService) isRevoked(id string) bool {
	if id == "" {
		return false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.revoked[id]
	return ok
}

func (j *jwtService) claims(token string) (*jwtUserClaim, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
