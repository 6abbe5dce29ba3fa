package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"resto-dashboard/pkg/errors"
)

// SessionClaim - содержимое cookie сессии. Токены удалённого API в cookie не попадают.
type SessionClaim struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateSessionToken(sessionID string) (string, error)
	ValidateToken(tokenString string) (*SessionClaim, error)
	GetSessionTTL() time.Duration
}

type jwtService struct {
	SecretKey  string
	SessionExp time.Duration
	logger     *zap.Logger
}

func NewJWTService(secretKey string, sessionExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		SecretKey:  secretKey,
		SessionExp: sessionExp,
		logger:     logger,
	}
}

func (service *jwtService) GenerateSessionToken(sessionID string) (string, error) {
	now := time.Now()
	claims := &SessionClaim{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.SessionExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(service.SecretKey))
}

func (service *jwtService) GetSessionTTL() time.Duration {
	return service.SessionExp
}

func (service *jwtService) ValidateToken(tokenString string) (*SessionClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, errors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		service.logger.Debug("Ошибка парсинга или проверки подписи cookie сессии", zap.Error(err))
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaim)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, errors.ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.ErrTokenExpired
	}

	if claims.IssuedAt != nil && claims.IssuedAt.Time.After(time.Now().Add(time.Minute)) {
		return nil, errors.ErrTokenNotYetValid
	}

	return claims, nil
}
