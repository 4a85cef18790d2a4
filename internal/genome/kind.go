package genome

import "fmt"

// Kind selects a Genome representation.
type Kind string

const (
	// KindArray selects ArrayGenome.
	KindArray Kind = "array"

	// KindLinked selects LinkedGenome.
	KindLinked Kind = "linked"
)

// Kinds lists every supported representation in a fixed order.
var Kinds = []Kind{KindArray, KindLinked}

// ParseKind converts a stored or user supplied name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindArray, KindLinked:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown genome kind %q: must be one of %v", s, Kinds)
	}
}
