package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Tokens are issued by the identity service; this package only verifies them
// and reads the tenant claims.

var (
	ErrInvalidToken         = errors.New("invalid or missing token")
	ErrCompanyClaimMissing  = errors.New("company_id claim is missing or invalid")
	ErrEmployeeClaimMissing = errors.New("employee_id claim is missing or invalid")
	ErrAdminAccessRequired  = errors.New("owner or manager role required")
)

type Role string

const (
	RoleOwner    Role = "owner"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func claimsFromContext(ctx context.Context) (map[string]interface{}, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if token == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CompanyIDFromContext returns the company_id claim of the verified token.
func CompanyIDFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", ErrCompanyClaimMissing
	}
	return companyID, nil
}

// EmployeeIDFromContext returns the employee_id claim, if the token carries one.
func EmployeeIDFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", ErrEmployeeClaimMissing
	}
	return employeeID, nil
}

// RoleFromContext returns the role claim, empty when absent.
func RoleFromContext(ctx context.Context) Role {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return Role(role)
}

// IsAdmin reports whether role may change company configuration.
func (r Role) IsAdmin() bool {
	return r == RoleOwner || r == RoleManager
}
