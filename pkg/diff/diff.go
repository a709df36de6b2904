// Package diff compares configurations by content, independent of the
// order servers were inserted in.
package diff

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/mcpotools/mcpoctl/pkg/gateway"
)

// Fingerprint returns a digest of the canonicalized serialization of a
// config. Map keys are sorted during marshaling, so two semantically
// identical configs produce the same fingerprint regardless of
// insertion order. Fingerprints are compared, never persisted.
func Fingerprint(cfg *gateway.Config) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return "sha256-" + hex.EncodeToString(sum[:]), nil
}

// Equal reports whether two configs have the same fingerprint.
func Equal(a, b *gateway.Config) bool {
	fa, err := Fingerprint(a)
	if err != nil {
		return false
	}
	fb, err := Fingerprint(b)
	if err != nil {
		return false
	}
	return fa == fb
}

// HasDivergence reports whether a draft exists and actually differs
// from the canonical config. A staged file that is content-identical to
// canonical counts as "no draft changes": a no-op edit should not warn
// about unsaved changes.
func HasDivergence(draft, canonical *gateway.Config) bool {
	if draft == nil {
		return false
	}
	return !Equal(draft, canonical)
}
