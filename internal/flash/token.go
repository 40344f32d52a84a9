package flash

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleFromToken reads the role claim out of a bearer token without verifying
// its signature. Verification happens server-side on every privileged
// endpoint; here the claim only drives conditional rendering, so a token that
// cannot be decoded degrades to an empty role instead of failing.
func RoleFromToken(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}

	role, _ := claims["role"].(string)
	return role
}
