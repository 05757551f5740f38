package model

import (
	"time"

	"github.com/standup-lab/cadence/pkg/domain/types"
)

// EvidenceRef points at an update that triggered a finding. For
// MissingUpdate findings the UpdateID may be empty: the evidence is the
// absence of a submission for the period, optionally citing the author's
// most recent prior update.
type EvidenceRef struct {
	UpdateID string         `json:"update_id,omitempty"`
	Author   types.AuthorID `json:"author"`
	Period   types.Period   `json:"period"`
	Excerpt  string         `json:"excerpt,omitempty"`
}

// RiskFinding is a detected anomaly with cited evidence. Author is empty
// for team-wide findings.
type RiskFinding struct {
	Kind     types.FindingKind `json:"kind"`
	Author   types.AuthorID    `json:"author,omitempty"`
	Message  string            `json:"message"`
	Evidence []EvidenceRef     `json:"evidence"`
}

// Report is the generated summary and risk document for one period. It is
// ephemeral: recomputed on each request, optionally archived, never read
// back by the service.
type Report struct {
	Period      types.Period  `json:"period"`
	Summary     string        `json:"summary"`
	Degraded    bool          `json:"degraded"`
	Findings    []RiskFinding `json:"findings"`
	UpdateCount int           `json:"update_count"`
	GeneratedAt time.Time     `json:"generated_at"`
}
