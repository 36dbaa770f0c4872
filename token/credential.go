package token

import (
	"crypto/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-stock-server/internal/config"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// NewSecret returns length random bytes for an HMAC key.
func NewSecret(length int) ([]byte, error) {
	secret := make([]byte, length)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(err, "failed to generate random bytes")
	}
	return secret, nil
}

// MintCredential signs the process-wide bearer credential. It carries no
// expiry: it is valid until the process restarts with a new secret.
func MintCredential(signer Signer, subject string) (string, error) {
	return signer.Sign(jwt.MapClaims{
		"sub": subject,
		"iat": NowTimeFunc().Unix(),
		"jti": uuid.NewString(),
	})
}

// ParseCredential verifies a credential minted by MintCredential and returns its claims.
func ParseCredential(signer Signer, credential string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(credential, claims, signer.GetVerificationKey,
		jwt.WithValidMethods([]string{signer.GetSigningMethod().Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse credential")
	}
	return claims, nil
}

// CredentialFromConfig returns the configured static token, or mints a new
// one with a random secret when none is configured.
func CredentialFromConfig(cfg config.AuthConfig) (string, error) {
	if static := cfg.GetStaticToken(); static != "" {
		return static, nil
	}
	secret, err := NewSecret(cfg.GetTokenSecretLength())
	if err != nil {
		return "", err
	}
	return MintCredential(NewHMACSigner(secret), cfg.GetAdminUsername())
}
