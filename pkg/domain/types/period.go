package types

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Period is the civil date (YYYY-MM-DD, UTC) that groups updates into one
// report. It is derived from submission time, never stored on its own.
type Period string

const periodLayout = "2006-01-02"

// NewPeriod returns the period containing the given instant
func NewPeriod(t time.Time) Period {
	return Period(t.UTC().Format(periodLayout))
}

// Today returns the current period
func Today() Period {
	return NewPeriod(time.Now())
}

// ParsePeriod parses a YYYY-MM-DD string into a Period
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return "", goerr.Wrap(err, "invalid period, expected YYYY-MM-DD", goerr.V("period", s))
	}
	return NewPeriod(t), nil
}

// Validate checks if the Period is a well-formed date
func (p Period) Validate() error {
	if _, err := time.Parse(periodLayout, string(p)); err != nil {
		return goerr.Wrap(err, "invalid period", goerr.V("period", p))
	}
	return nil
}

// Time returns the start of the period in UTC
func (p Period) Time() time.Time {
	t, _ := time.Parse(periodLayout, string(p))
	return t.UTC()
}

// Prev returns the period one day before p
func (p Period) Prev() Period {
	return NewPeriod(p.Time().AddDate(0, 0, -1))
}

// PrevN returns the n periods before p, most recent first
func (p Period) PrevN(n int) []Period {
	periods := make([]Period, 0, n)
	cur := p
	for i := 0; i < n; i++ {
		cur = cur.Prev()
		periods = append(periods, cur)
	}
	return periods
}

// String returns the string representation of Period
func (p Period) String() string {
	return string(p)
}
