package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goship/internal/pkg/token"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := token.NewService("clave-secreta-de-prueba", 30*time.Minute)

	tokenString, err := svc.GenerateToken(7, "laura@logistica.com")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.EmployeeID)
	assert.Equal(t, "laura@logistica.com", claims.Email)
	assert.Equal(t, "Logistics-API", claims.Issuer)
	assert.Equal(t, "laura@logistica.com", claims.Subject)
}

func TestValidateToken_Fail_WrongSecret(t *testing.T) {
	issuer := token.NewService("clave-correcta", 30*time.Minute)
	validator := token.NewService("clave-equivocada", 30*time.Minute)

	tokenString, err := issuer.GenerateToken(7, "laura@logistica.com")
	assert.NoError(t, err)

	_, err = validator.ValidateToken(tokenString)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token inválido")
}

func TestValidateToken_Fail_Expired(t *testing.T) {
	svc := token.NewService("clave-secreta-de-prueba", -time.Minute)

	tokenString, err := svc.GenerateToken(7, "laura@logistica.com")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)

	assert.Error(t, err)
}

func TestValidateToken_Fail_Garbage(t *testing.T) {
	svc := token.NewService("clave-secreta-de-prueba", 30*time.Minute)

	_, err := svc.ValidateToken("esto.no.es-un-jwt")

	assert.Error(t, err)
}
