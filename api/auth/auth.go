package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenDuration is the lifetime of an access token.
	AccessTokenDuration = 7 * 24 * time.Hour

	// AccessTokenCookieName is the cookie carrying the access token.
	AccessTokenCookieName = "bookwell.access-token"

	// Issuer is the issuer of the jwt token.
	Issuer = "bookwell"

	// KeyID is the version of the signing key.
	KeyID = "v1"

	// AccessTokenAudienceName is the audience name of the access token.
	AccessTokenAudienceName = "user.access-token"
)

// ClaimsMessage is the claims of the jwt token.
type ClaimsMessage struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates an access token for the given user.
func GenerateAccessToken(username string, userID int, expirationTime time.Time, secret []byte) (string, error) {
	expirationClaim := jwt.NewNumericDate(expirationTime)
	registeredClaims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{AccessTokenAudienceName},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Subject:   strconv.Itoa(userID),
		ExpiresAt: expirationClaim,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		Name:             username,
		RegisteredClaims: registeredClaims,
	})
	token.Header["kid"] = KeyID

	return token.SignedString(secret)
}
