package service

import (
	"errors"
	"fmt"
	"time"

	"ecommerce-transactions/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// transactionClaims is the JWT body handed to the client that opened the transaction.
type transactionClaims struct {
	TransactionID string   `json:"transactionId"`
	RptIDs        []string `json:"rptIds,omitempty"`
	ClientID      string   `json:"clientId,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService using HS256 JWT.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate signs a token scoped to one transaction.
func (s *JWTTokenService) Generate(claims ports.TransactionClaims) (string, time.Time, error) {
	if claims.TransactionID == "" {
		return "", time.Time{}, errors.New("missing transaction id")
	}

	now := time.Now()
	expiresAt := now.Add(s.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, transactionClaims{
		TransactionID: claims.TransactionID,
		RptIDs:        claims.RptIDs,
		ClientID:      claims.ClientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   claims.TransactionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Validate parses a token and returns its claims.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TransactionClaims, error) {
	var claims transactionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if claims.TransactionID == "" {
		return nil, errors.New("missing transactionId claim")
	}

	return &ports.TransactionClaims{
		TransactionID: claims.TransactionID,
		RptIDs:        claims.RptIDs,
		ClientID:      claims.ClientID,
	}, nil
}
