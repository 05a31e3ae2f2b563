package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Length of generated identifiers.
const Length = 9

// New returns a short random opaque identifier. There is no collision check.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:Length]
}

// WithPrefix returns New prefixed with p and an underscore, e.g. "wh_1a2b3c4d5".
func WithPrefix(p string) string {
	return p + "_" + New()
}
