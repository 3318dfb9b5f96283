package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleSuperuser rol del token para superusuarios; el resto lleva el cargo del empleado.
const RoleSuperuser = "superuser"

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Sections viaja en el token para que el middleware autorice sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	EmployeeID  string   `json:"employee_id,omitempty"`
	WarehouseID string   `json:"warehouse_id,omitempty"`
	Role        string   `json:"role"`
	Sections    []string `json:"sections,omitempty"`
}

// Subject datos del usuario que se firman en el token.
type Subject struct {
	UserID      string
	EmployeeID  string
	WarehouseID string
	Role        string
	Sections    []string
}

// IsSuperuser indica si el token es de superusuario.
func (c *Claims) IsSuperuser() bool {
	return c.Role == RoleSuperuser
}

// HasSection indica si el token habilita la sección (el superusuario las tiene todas).
func (c *Claims) HasSection(slug string) bool {
	if c.IsSuperuser() {
		return true
	}
	for _, s := range c.Sections {
		if s == slug {
			return true
		}
	}
	return false
}

// Generate genera un token JWT firmado con un jti único. Devuelve también el vencimiento.
func Generate(secret, issuer string, expMinutes int, sub Subject) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:      sub.UserID,
		EmployeeID:  sub.EmployeeID,
		WarehouseID: sub.WarehouseID,
		Role:        sub.Role,
		Sections:    sub.Sections,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
