package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/utils/errutil"
	"github.com/standup-lab/cadence/pkg/utils/safe"
)

type submitUpdateRequest struct {
	Author  string `json:"author"`
	Date    string `json:"date,omitempty"`
	Content string `json:"content"`
}

func (s *Server) handleSubmitUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer safe.Close(ctx, r.Body)

	var req submitUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.WriteHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	period, err := parsePeriodOrToday(req.Date)
	if err != nil {
		errutil.WriteHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	update, err := s.uc.SubmitUpdate(ctx, types.AuthorID(req.Author), period, req.Content)
	if err != nil {
		errutil.WriteHTTP(ctx, w, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, update)
}

func (s *Server) handleListUpdates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period, err := parsePeriodOrToday(r.URL.Query().Get("date"))
	if err != nil {
		errutil.WriteHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	updates, err := s.uc.ListUpdates(ctx, period)
	if err != nil {
		errutil.WriteHTTP(ctx, w, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"period":  period,
		"updates": updates,
	})
}

// parsePeriodOrToday resolves an optional date parameter, defaulting to the
// current period.
func parsePeriodOrToday(date string) (types.Period, error) {
	if date == "" {
		return types.Today(), nil
	}
	return types.ParsePeriod(date)
}
