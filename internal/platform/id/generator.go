package id

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// wellFormed covers generated UUIDs and the slug ids used by seeded records.
var wellFormed = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Generator creates opaque IDs for new records.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// Valid reports whether v can name a stored record. It does not check existence.
func Valid(v string) bool {
	return wellFormed.MatchString(v)
}
