package types_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

func TestParsePeriod(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		p, err := types.ParsePeriod("2026-08-28")
		gt.NoError(t, err).Required()
		gt.Value(t, p.String()).Equal("2026-08-28")
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "2026/08/28", "28-08-2026", "2026-13-01", "today"} {
			_, err := types.ParsePeriod(s)
			gt.Error(t, err)
		}
	})
}

func TestNewPeriod(t *testing.T) {
	t.Run("derived from UTC, not local time", func(t *testing.T) {
		// 23:30 in UTC-5 is already the next day in UTC
		loc := time.FixedZone("UTC-5", -5*60*60)
		at := time.Date(2026, 8, 27, 23, 30, 0, 0, loc)

		p := types.NewPeriod(at)
		gt.Value(t, p.String()).Equal("2026-08-28")
	})
}

func TestPeriodPrev(t *testing.T) {
	t.Run("previous day", func(t *testing.T) {
		p := types.Period("2026-08-28")
		gt.Value(t, p.Prev().String()).Equal("2026-08-27")
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		p := types.Period("2026-03-01")
		gt.Value(t, p.Prev().String()).Equal("2026-02-28")
	})

	t.Run("crosses leap day", func(t *testing.T) {
		p := types.Period("2028-03-01")
		gt.Value(t, p.Prev().String()).Equal("2028-02-29")
	})
}

func TestPeriodPrevN(t *testing.T) {
	p := types.Period("2026-08-28")
	prev := p.PrevN(3)

	gt.Array(t, prev).Length(3)
	gt.Value(t, prev[0].String()).Equal("2026-08-27")
	gt.Value(t, prev[1].String()).Equal("2026-08-26")
	gt.Value(t, prev[2].String()).Equal("2026-08-25")
}

func TestPeriodValidate(t *testing.T) {
	gt.NoError(t, types.Period("2026-08-28").Validate())
	gt.Error(t, types.Period("2026-8-28").Validate())
	gt.Error(t, types.Period("").Validate())
}
