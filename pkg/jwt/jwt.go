package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// purposeIntake identifica tokens de email verificado para el envío público
// de sugerencias. Un token con otro purpose no autoriza el envío.
const purposeIntake = "intake"

// IntakeClaims incluye los claims estándar JWT más el email verificado al
// que queda atado el envío de la sugerencia.
type IntakeClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

// GenerateIntake genera un token firmado que ata un email verificado por
// código de un solo uso. El campo email de la sugerencia queda fijado a este
// valor en el envío.
func GenerateIntake(secret, email, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := IntakeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email:   email,
		Purpose: purposeIntake,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseIntake valida el token y devuelve el email verificado.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o
// no es un token de intake.
func ParseIntake(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &IntakeClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*IntakeClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purposeIntake || claims.Email == "" {
		return "", fmt.Errorf("token sin email verificado")
	}
	return claims.Email, nil
}
