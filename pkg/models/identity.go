package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// IdentityKind discriminates how an action identity was derived.
type IdentityKind string

const (
	// IdentityByID means an explicit provider-assigned id was present.
	IdentityByID IdentityKind = "id"
	// IdentityByFingerprint means no id field existed and a structural
	// fingerprint stands in as identity.
	IdentityByFingerprint IdentityKind = "fingerprint"
)

// IdentityKey is the uniform identity of one action for matching across
// versions. Keys derived from different kinds never collide because Kind is
// part of the key.
type IdentityKey struct {
	Kind  IdentityKind
	Value string
}

// String renders the key in a map-key-safe form.
func (k IdentityKey) String() string {
	return string(k.Kind) + ":" + k.Value
}

// Id fields tried in order when resolving an action identity.
var identityFields = []string{"id", "actionId", "stepId"}

// ResolveIdentity derives the identity key for a raw action: the first
// present id-like field wins, otherwise a structural fingerprint of the
// canonically serialized action. Numeric ids are normalized to their decimal
// form so float64-decoded and integer-typed ids match.
func ResolveIdentity(action map[string]any) IdentityKey {
	for _, field := range identityFields {
		switch id := action[field].(type) {
		case string:
			if id != "" {
				return IdentityKey{Kind: IdentityByID, Value: id}
			}
		case float64:
			return IdentityKey{Kind: IdentityByID, Value: formatNumericID(id)}
		case int:
			return IdentityKey{Kind: IdentityByID, Value: fmt.Sprintf("%d", id)}
		case int64:
			return IdentityKey{Kind: IdentityByID, Value: fmt.Sprintf("%d", id)}
		}
	}

	return IdentityKey{Kind: IdentityByFingerprint, Value: Fingerprint(action)}
}

// Fingerprint returns a stable hash of a value tree: keys are serialized in
// sorted order at every level so two structurally equal values always produce
// the same fingerprint regardless of map iteration order.
func Fingerprint(value any) string {
	sum := sha256.Sum256(CanonicalJSON(value))

	return hex.EncodeToString(sum[:16])
}

// CanonicalJSON serializes a value tree with lexicographically sorted object
// keys at every nesting level. Arrays keep their order. The output is the
// byte-identical form required for fingerprinting and opaque comparison.
func CanonicalJSON(value any) []byte {
	encoded, err := json.Marshal(canonicalize(value))
	if err != nil {
		// Value trees decoded from JSON always re-marshal; anything else
		// degrades to its Go string form rather than failing identity.
		return []byte(fmt.Sprintf("%q", fmt.Sprint(value)))
	}

	return encoded
}

// canonicalize rebuilds a value tree with ordered-key map representations.
// encoding/json already sorts map[string]any keys, but nested non-map types
// (json.Number, typed slices) are flattened here to their canonical forms.
func canonicalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		ordered := make(map[string]any, len(typed))
		for _, key := range keys {
			ordered[key] = canonicalize(typed[key])
		}

		return ordered
	case []any:
		items := make([]any, len(typed))
		for i, element := range typed {
			items[i] = canonicalize(element)
		}

		return items
	case json.Number:
		if f, err := typed.Float64(); err == nil {
			return f
		}

		return typed.String()
	default:
		return typed
	}
}

// formatNumericID renders a float64-decoded id without a trailing ".0" for
// integral values, matching the provider's integer ids.
func formatNumericID(id float64) string {
	if id == float64(int64(id)) {
		return fmt.Sprintf("%d", int64(id))
	}

	return fmt.Sprintf("%g", id)
}
