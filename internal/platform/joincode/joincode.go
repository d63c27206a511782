package joincode

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet leaves out characters that read alike: 0/O, 1/I/L.
	Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	Length   = 6
)

// Generator produces candidate join codes. Uniqueness is the store's job.
type Generator interface {
	NewCode() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewCode() (string, error) {
	code, err := gonanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("generate join code: %w", err)
	}
	return code, nil
}

// Valid reports whether code has the right length and only alphabet characters.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// Normalize upper-cases and trims user-entered codes.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewToken returns an opaque url-safe token, used for invitations.
func NewToken() (string, error) {
	token, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
