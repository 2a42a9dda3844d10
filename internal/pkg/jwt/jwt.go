package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenTypeAccess is the "type" claim the HRIS backend puts on access tokens
const TokenTypeAccess = "access"

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(claims user.Claims, ttl time.Duration) (token string, expiresAt int64, err error)
	ParseAccessToken(tokenString string) (user.Claims, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

// NewJWTService verifies tokens signed with the secret shared with the HRIS backend
func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken issues a token shaped like the backend's access tokens.
// The portal never logs users in; this is used by tests and local tooling.
func (j *JWTService) GenerateAccessToken(claims user.Claims, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(ttl).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":     claims.UserID,
		"email":       claims.Email,
		"employee_id": valueOrNil(claims.EmployeeID),
		"company_id":  valueOrNil(claims.CompanyID),
		"role":        string(claims.Role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseAccessToken(tokenString string) (user.Claims, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return user.Claims{}, err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return user.Claims{}, err
	}
	return ClaimsFromMap(claims)
}

// ClaimsFromMap reads access-token claims as produced by jwtauth.FromContext
func ClaimsFromMap(claims map[string]interface{}) (user.Claims, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != TokenTypeAccess {
		return user.Claims{}, user.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Claims{}, user.ErrInvalidToken
	}

	c := user.Claims{UserID: userID}
	c.Email, _ = claims["email"].(string)
	c.EmployeeID, _ = claims["employee_id"].(string)
	c.CompanyID, _ = claims["company_id"].(string)
	role, _ := claims["role"].(string)
	c.Role = user.Role(role)
	return c, nil
}

// ClaimsFromContext extracts the caller verified by jwtauth.Verifier
func ClaimsFromContext(ctx context.Context) (user.Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	return ClaimsFromMap(claims)
}

// EmployeeClaimsFromContext is ClaimsFromContext for callers that must be linked to an employee
func EmployeeClaimsFromContext(ctx context.Context) (user.Claims, error) {
	c, err := ClaimsFromContext(ctx)
	if err != nil {
		return c, err
	}
	if c.EmployeeID == "" {
		return c, user.ErrEmployeeIDRequired
	}
	return c, nil
}

// NewContext stores claims the same way jwtauth.Verifier does.
func NewContext(ctx context.Context, claims user.Claims) (context.Context, error) {
	token := jwt.New()
	values := map[string]interface{}{
		"user_id":     claims.UserID,
		"email":       claims.Email,
		"employee_id": claims.EmployeeID,
		"company_id":  claims.CompanyID,
		"role":        string(claims.Role),
		"type":        TokenTypeAccess,
	}
	for k, v := range values {
		if err := token.Set(k, v); err != nil {
			return ctx, errors.Join(user.ErrInvalidToken, err)
		}
	}
	return jwtauth.NewContext(ctx, token, nil), nil
}

func valueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
