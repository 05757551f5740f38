package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

func TestFindingKindRank(t *testing.T) {
	// Report ordering: missing updates first, then repeated blockers,
	// then stalled tasks.
	gt.Value(t, types.FindingMissingUpdate.Rank()).Equal(0)
	gt.Value(t, types.FindingRepeatedBlocker.Rank()).Equal(1)
	gt.Value(t, types.FindingStalledTask.Rank()).Equal(2)
	gt.Value(t, types.FindingKind("UNKNOWN").Rank()).Equal(3)
}

func TestFindingKindOrder(t *testing.T) {
	kinds := types.AllFindingKinds()
	gt.Array(t, kinds).Length(3)
	for i, kind := range kinds {
		gt.Value(t, kind.Rank()).Equal(i)
	}
}

func TestParseFindingKind(t *testing.T) {
	t.Run("valid kinds", func(t *testing.T) {
		for _, kind := range types.AllFindingKinds() {
			parsed, err := types.ParseFindingKind(kind.String())
			gt.NoError(t, err).Required()
			gt.Value(t, parsed).Equal(kind)
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := types.ParseFindingKind("BURNOUT")
		gt.Error(t, err)
	})
}

func TestFindingKindLabel(t *testing.T) {
	gt.Value(t, types.FindingMissingUpdate.Label()).Equal("Missing Update")
	gt.Value(t, types.FindingRepeatedBlocker.Label()).Equal("Repeated Blocker")
	gt.Value(t, types.FindingStalledTask.Label()).Equal("Stalled Task")
}
