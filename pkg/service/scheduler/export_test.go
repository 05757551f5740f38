package scheduler

import "time"

// NextRunForTest reports when the registered job would next fire after the
// given instant, evaluated in the registry's clock location.
func (r *Registry) NextRunForTest(from time.Time) time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(from.In(r.cron.Location()))
}
