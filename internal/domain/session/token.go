package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

const tokenBytes = 32

// NewToken generates a bearer token and its bcrypt hash. Only the hash is
// stored; the plain token is returned to the client once.
func NewToken(cost int) (token string, hash []byte, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(buf)

	hash, err = bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", nil, fmt.Errorf("hash token: %w", err)
	}
	return token, hash, nil
}

// VerifyToken checks a presented token against the session's hash.
func (s *Session) VerifyToken(token string) error {
	if token == "" {
		return shared.ErrInvalidToken
	}
	err := bcrypt.CompareHashAndPassword(s.TokenHash, []byte(token))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return shared.ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	return nil
}
