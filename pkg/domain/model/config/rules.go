package config

import "slices"

// Rules holds the risk detection configuration. The keyword lists and the
// lookback window are deliberately configuration, not code: keyword matching
// is approximate and teams tune it to their own vocabulary.
type Rules struct {
	// BlockerKeywords mark a clause as describing a blocker.
	BlockerKeywords []string
	// ProgressKeywords suppress stalled-task findings when present in the
	// newer update.
	ProgressKeywords []string
	// Lookback is how many prior periods are scanned for repeated blockers
	// and stalled tasks.
	Lookback int
}

// DefaultRules returns the built-in rule set
func DefaultRules() *Rules {
	return &Rules{
		BlockerKeywords: []string{
			"blocked",
			"blocker",
			"waiting on",
			"waiting for",
			"stuck",
		},
		ProgressKeywords: []string{
			"done",
			"finished",
			"completed",
			"shipped",
			"merged",
			"resolved",
			"unblocked",
		},
		Lookback: 3,
	}
}

// Clone returns an independent copy, keyword slices included
func (r *Rules) Clone() *Rules {
	return &Rules{
		BlockerKeywords:  slices.Clone(r.BlockerKeywords),
		ProgressKeywords: slices.Clone(r.ProgressKeywords),
		Lookback:         r.Lookback,
	}
}

// Normalize fills zero values with defaults
func (r *Rules) Normalize() {
	def := DefaultRules()
	if len(r.BlockerKeywords) == 0 {
		r.BlockerKeywords = def.BlockerKeywords
	}
	if len(r.ProgressKeywords) == 0 {
		r.ProgressKeywords = def.ProgressKeywords
	}
	if r.Lookback <= 0 {
		r.Lookback = def.Lookback
	}
}
