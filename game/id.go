package game

import (
	"github.com/google/uuid"
)

// IdentificationAuthority is the authority that gives out match IDs.
const IdentificationAuthority = "org.reverc"

// NewMatchID returns a fresh random match identifier.
func NewMatchID() string {
	return uuid.NewString()
}

// ValidMatchID reports whether id looks like something NewMatchID made.
func ValidMatchID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
