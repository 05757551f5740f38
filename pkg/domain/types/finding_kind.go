package types

import "fmt"

// FindingKind represents the kind of a risk finding
type FindingKind string

const (
	FindingMissingUpdate   FindingKind = "MISSING_UPDATE"
	FindingRepeatedBlocker FindingKind = "REPEATED_BLOCKER"
	FindingStalledTask     FindingKind = "STALLED_TASK"
)

// AllFindingKinds returns all valid finding kinds in report order
func AllFindingKinds() []FindingKind {
	return []FindingKind{
		FindingMissingUpdate,
		FindingRepeatedBlocker,
		FindingStalledTask,
	}
}

// IsValid checks if the finding kind is valid
func (k FindingKind) IsValid() bool {
	switch k {
	case FindingMissingUpdate,
		FindingRepeatedBlocker,
		FindingStalledTask:
		return true
	default:
		return false
	}
}

// Rank returns the position of the kind in report ordering. Unknown kinds
// sort last.
func (k FindingKind) Rank() int {
	switch k {
	case FindingMissingUpdate:
		return 0
	case FindingRepeatedBlocker:
		return 1
	case FindingStalledTask:
		return 2
	default:
		return 3
	}
}

// Label returns a human-readable label for report rendering
func (k FindingKind) Label() string {
	switch k {
	case FindingMissingUpdate:
		return "Missing Update"
	case FindingRepeatedBlocker:
		return "Repeated Blocker"
	case FindingStalledTask:
		return "Stalled Task"
	default:
		return string(k)
	}
}

// String returns the string representation of the finding kind
func (k FindingKind) String() string {
	return string(k)
}

// ParseFindingKind parses a string into a FindingKind
func ParseFindingKind(s string) (FindingKind, error) {
	kind := FindingKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid finding kind: %s", s)
	}
	return kind, nil
}
