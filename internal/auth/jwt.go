package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

const (
	userIDClaim      = "user_id"
	tokenTypeClaim   = "typ"
	refreshTokenType = "refresh"
)

func GenerateToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		userIDClaim: userID.String(),
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken signs a refresh token carrying tokenID as its jti.
// Refresh tokens are rejected by ParseToken.
func GenerateRefreshToken(secret string, userID, tokenID uuid.UUID, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		userIDClaim:    userID.String(),
		tokenTypeClaim: refreshTokenType,
		"jti":          tokenID.String(),
		"iat":          time.Now().Unix(),
		"exp":          time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry of an access token and returns
// the user_id claim.
func ParseToken(secret, tokenStr string) (string, error) {
	claims, err := parse(secret, tokenStr)
	if err != nil {
		return "", err
	}
	if typ, _ := claims[tokenTypeClaim].(string); typ == refreshTokenType {
		return "", ErrInvalidToken
	}

	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", ErrInvalidClaims
	}
	return userID, nil
}

// ParseRefreshToken validates a token made by GenerateRefreshToken and
// returns its user and token ids.
func ParseRefreshToken(secret, tokenStr string) (userID, tokenID uuid.UUID, err error) {
	claims, err := parse(secret, tokenStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if typ, _ := claims[tokenTypeClaim].(string); typ != refreshTokenType {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}

	sub, _ := claims[userIDClaim].(string)
	jti, _ := claims["jti"].(string)
	userID, err = uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidClaims
	}
	tokenID, err = uuid.Parse(jti)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidClaims
	}
	return userID, tokenID, nil
}

func parse(secret, tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
