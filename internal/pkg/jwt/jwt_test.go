package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithClaims(t *testing.T, svc Service, claims map[string]interface{}) context.Context {
	t.Helper()
	token, _, err := svc.JWTAuth().Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestCompanyIDFromContext(t *testing.T) {
	svc := NewJWTService("test-secret")

	ctx := contextWithClaims(t, svc, map[string]interface{}{"company_id": "c-1", "role": "owner"})
	companyID, err := CompanyIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c-1", companyID)
	assert.Equal(t, RoleOwner, RoleFromContext(ctx))
	assert.True(t, RoleFromContext(ctx).IsAdmin())

	_, err = EmployeeIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrEmployeeClaimMissing)
}

func TestCompanyIDFromContext_Missing(t *testing.T) {
	svc := NewJWTService("test-secret")

	ctx := contextWithClaims(t, svc, map[string]interface{}{"employee_id": "e-1"})
	_, err := CompanyIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrCompanyClaimMissing)

	_, err = CompanyIDFromContext(context.Background())
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, RoleFromContext(context.Background()).IsAdmin())
}

func TestDecodeRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("issuer-secret")
	verifier := NewJWTService("other-secret")

	_, tokenString, err := issuer.JWTAuth().Encode(map[string]interface{}{"company_id": "c-1"})
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), tokenString)
	assert.Error(t, err)

	_, err = jwtauth.VerifyToken(issuer.JWTAuth(), tokenString)
	assert.NoError(t, err)
}
