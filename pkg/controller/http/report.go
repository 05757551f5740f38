package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/interfaces"
	slacksvc "github.com/standup-lab/cadence/pkg/service/slack"
	"github.com/standup-lab/cadence/pkg/usecase"
	"github.com/standup-lab/cadence/pkg/utils/errutil"
	"github.com/standup-lab/cadence/pkg/utils/safe"
)

type reportResponse struct {
	Period      string `json:"period"`
	Summary     string `json:"summary"`
	Degraded    bool   `json:"degraded"`
	Findings    any    `json:"findings"`
	UpdateCount int    `json:"update_count"`
	Text        string `json:"text"`
}

// handleGetReport generates the report on demand without delivering it
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period, err := parsePeriodOrToday(r.URL.Query().Get("date"))
	if err != nil {
		errutil.WriteHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	report, text, err := s.uc.GenerateReport(ctx, period)
	if err != nil {
		errutil.WriteHTTP(ctx, w, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Period:      report.Period.String(),
		Summary:     report.Summary,
		Degraded:    report.Degraded,
		Findings:    report.Findings,
		UpdateCount: report.UpdateCount,
		Text:        text,
	})
}

type deliverReportRequest struct {
	Date string `json:"date,omitempty"`
}

// handleDeliverReport generates and dispatches the report. A delivery
// failure after retries maps to 502: the report was generated but not
// delivered.
func (s *Server) handleDeliverReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer safe.Close(ctx, r.Body)

	var req deliverReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		errutil.WriteHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	period, err := parsePeriodOrToday(req.Date)
	if err != nil {
		errutil.WriteHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	report, err := s.uc.DeliverReport(ctx, period)
	if err != nil {
		errutil.WriteHTTP(ctx, w, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"period":    report.Period,
		"delivered": true,
	})
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidUpdate),
		errors.Is(err, usecase.ErrUnknownAuthor):
		return http.StatusBadRequest
	case errors.Is(err, interfaces.ErrUpdateNotFound):
		return http.StatusNotFound
	case errors.Is(err, slacksvc.ErrDeliveryFailed):
		return http.StatusBadGateway
	case errors.Is(err, usecase.ErrNoDispatcher):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
