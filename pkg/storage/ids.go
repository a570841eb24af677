package storage

import (
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/noah-isme/html2url/internal/models"
)

// idLength is the number of lowercase hex characters in an artifact id,
// 48 bits of entropy.
const idLength = 12

// NewID produces one random artifact id candidate.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:idLength]
}

// UniqueID generates ids until one maps to no existing artifact of either
// kind. With 48 bits of entropy the loop terminates on the first iteration
// for all practical store sizes.
func (s *Store) UniqueID() string {
	for {
		id := NewID()
		if !s.Exists(id, models.KindHTML) && !s.Exists(id, models.KindPDF) {
			return id
		}
	}
}
