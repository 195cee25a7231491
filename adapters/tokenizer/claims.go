package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccessClaims combines the registered claims with the role granted at
// login.
type AccessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}
