// Package soilid is the single source of truth for the two ID spaces used by
// FieldSync: client-minted local IDs (L_S#####, L_P#####) assigned before any
// backend round-trip, and server-assigned backend IDs (S####, P####). The
// backend API addresses entities by the bare integer suffix of a backend ID,
// so ToNumber is the only place that parsing lives.
package soilid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// Local ID prefixes.
const (
	localSoilPrefix      = "L_S"
	localParameterPrefix = "L_P"
)

// localDigits is the zero-padded width of the sequence in a local ID.
const localDigits = 5

var backendIDPattern = regexp.MustCompile(`^[SP](\d+)$`)

// ToNumber strips the letter prefix from a backend ID and returns its
// integer suffix: "S0042" yields 42. The second return is false for
// malformed input (including local IDs); ToNumber never panics.
func ToNumber(id string) (int, bool) {
	m := backendIDPattern.FindStringSubmatch(strings.ToUpper(id))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsLocal reports whether id is a client-minted local ID.
func IsLocal(id string) bool {
	return strings.HasPrefix(id, localSoilPrefix) || strings.HasPrefix(id, localParameterPrefix)
}

// FormatLocal renders the nth local ID for the given entity type,
// zero-padded to five digits: FormatLocal(EntitySoil, 1) is "L_S00001".
func FormatLocal(entityType types.EntityType, n int) (string, error) {
	switch entityType {
	case types.EntitySoil:
		return fmt.Sprintf("%s%0*d", localSoilPrefix, localDigits, n), nil
	case types.EntityParameter:
		return fmt.Sprintf("%s%0*d", localParameterPrefix, localDigits, n), nil
	default:
		return "", types.ErrInvalidEntityType
	}
}

// EntityTypeOf infers the entity type from an ID in either space.
// The second return is false when the ID matches neither scheme.
func EntityTypeOf(id string) (types.EntityType, bool) {
	switch {
	case strings.HasPrefix(id, localSoilPrefix):
		return types.EntitySoil, true
	case strings.HasPrefix(id, localParameterPrefix):
		return types.EntityParameter, true
	}
	upper := strings.ToUpper(id)
	if !backendIDPattern.MatchString(upper) {
		return "", false
	}
	if upper[0] == 'S' {
		return types.EntitySoil, true
	}
	return types.EntityParameter, true
}
