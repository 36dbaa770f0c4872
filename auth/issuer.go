package auth

import (
	"crypto/subtle"
	"fmt"

	"github.com/jrsteele09/go-stock-server/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// Issuer checks the single fixed username/password pair and hands out the
// process-wide credential. It has no state beyond what it is built with.
type Issuer struct {
	username     string
	passwordHash []byte
	credential   string
}

// NewIssuer hashes password once so the plain text is not kept in memory.
func NewIssuer(username, password, credential string) (*Issuer, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("[NewIssuer] username and password are required")
	}
	if credential == "" {
		return nil, fmt.Errorf("[NewIssuer] credential is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, errors.Wrapf(err, "[NewIssuer] hash password")
	}
	return &Issuer{
		username:     username,
		passwordHash: []byte(hash),
		credential:   credential,
	}, nil
}

// Authenticate returns the credential for the configured pair. Both halves
// are always checked so the error does not reveal which one was wrong.
func (i *Issuer) Authenticate(username, password string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(i.username)) == 1
	passwordOK := CheckPasswordHash(password, string(i.passwordHash))
	if !usernameOK || !passwordOK {
		return "", errors.ErrInvalidCredentials
	}
	return i.credential, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
