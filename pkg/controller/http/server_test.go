package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/repository/memory"
	"github.com/standup-lab/cadence/pkg/service/slack"
	"github.com/standup-lab/cadence/pkg/usecase"

	httpctrl "github.com/standup-lab/cadence/pkg/controller/http"
)

// stubDispatcher fakes the messaging channel for HTTP tests
type stubDispatcher struct {
	postReportFn func(ctx context.Context, report *model.Report, text string) error
	reports      int
}

func (d *stubDispatcher) PostReport(ctx context.Context, report *model.Report, text string) error {
	if d.postReportFn != nil {
		return d.postReportFn(ctx, report, text)
	}
	d.reports++
	return nil
}

func (d *stubDispatcher) PostUpdate(ctx context.Context, update *model.Update) error {
	return nil
}

func newTestServer(t *testing.T, opts ...usecase.Option) *httptest.Server {
	t.Helper()

	roster, err := model.NewRoster([]model.Member{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
	})
	gt.NoError(t, err).Required()

	uc := usecase.New(memory.New(), roster, opts...)
	srv := httptest.NewServer(httpctrl.New(uc))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestSubmitUpdateEndpoint(t *testing.T) {
	t.Run("accepts a valid submission", func(t *testing.T) {
		srv := newTestServer(t)

		resp := postJSON(t, srv.URL+"/api/updates", map[string]string{
			"author":  "alice",
			"date":    "2026-08-28",
			"content": "Shipped the importer.",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

		var stored model.Update
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&stored)).Required()
		gt.Value(t, stored.Author).Equal(types.AuthorID("alice"))
		gt.Value(t, stored.Revision).Equal(1)
		gt.Bool(t, stored.Latest).True()
	})

	t.Run("rejects empty content", func(t *testing.T) {
		srv := newTestServer(t)

		resp := postJSON(t, srv.URL+"/api/updates", map[string]string{
			"author":  "alice",
			"date":    "2026-08-28",
			"content": "   ",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("rejects unknown author", func(t *testing.T) {
		srv := newTestServer(t)

		resp := postJSON(t, srv.URL+"/api/updates", map[string]string{
			"author":  "mallory",
			"date":    "2026-08-28",
			"content": "let me in",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		srv := newTestServer(t)

		resp, err := http.Post(srv.URL+"/api/updates", "application/json", bytes.NewReader([]byte("{not json")))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		srv := newTestServer(t)

		resp := postJSON(t, srv.URL+"/api/updates", map[string]string{
			"author":  "alice",
			"date":    "yesterday",
			"content": "some progress",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})
}

func TestListUpdatesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	for _, content := range []string{"draft", "final"} {
		resp := postJSON(t, srv.URL+"/api/updates", map[string]string{
			"author":  "alice",
			"date":    "2026-08-28",
			"content": content,
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)
	}

	resp, err := http.Get(srv.URL + "/api/updates?date=2026-08-28")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var body struct {
		Period  types.Period    `json:"period"`
		Updates []*model.Update `json:"updates"`
	}
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()

	gt.Value(t, body.Period).Equal(types.Period("2026-08-28"))
	gt.Array(t, body.Updates).Length(1)
	gt.Value(t, body.Updates[0].Content).Equal("final")
}

func TestGetReportEndpoint(t *testing.T) {
	t.Run("generates a report for the period", func(t *testing.T) {
		srv := newTestServer(t)

		resp := postJSON(t, srv.URL+"/api/updates", map[string]string{
			"author":  "alice",
			"date":    "2026-08-28",
			"content": "Shipped the importer.",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

		getResp, err := http.Get(srv.URL + "/api/reports?date=2026-08-28")
		gt.NoError(t, err).Required()
		defer getResp.Body.Close()
		gt.Value(t, getResp.StatusCode).Equal(http.StatusOK)

		var body struct {
			Period      string              `json:"period"`
			Summary     string              `json:"summary"`
			Degraded    bool                `json:"degraded"`
			Findings    []model.RiskFinding `json:"findings"`
			UpdateCount int                 `json:"update_count"`
			Text        string              `json:"text"`
		}
		gt.NoError(t, json.NewDecoder(getResp.Body).Decode(&body)).Required()

		gt.Value(t, body.Period).Equal("2026-08-28")
		gt.Value(t, body.UpdateCount).Equal(1)
		// No summarizer configured, the raw-list fallback is used
		gt.Bool(t, body.Degraded).True()
		// bob never submitted
		gt.Array(t, body.Findings).Length(1).Required()
		gt.Value(t, body.Findings[0].Kind).Equal(types.FindingMissingUpdate)
		gt.Value(t, body.Findings[0].Author).Equal(types.AuthorID("bob"))
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		srv := newTestServer(t)

		resp, err := http.Get(srv.URL + "/api/reports?date=nope")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})
}

func TestDeliverReportEndpoint(t *testing.T) {
	t.Run("delivers through the dispatcher", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		srv := newTestServer(t, usecase.WithDispatcher(dispatcher))

		resp := postJSON(t, srv.URL+"/api/reports/deliver", map[string]string{
			"date": "2026-08-28",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, dispatcher.reports).Equal(1)
	})

	t.Run("empty body defaults to today", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		srv := newTestServer(t, usecase.WithDispatcher(dispatcher))

		resp, err := http.Post(srv.URL+"/api/reports/deliver", "application/json", nil)
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	})

	t.Run("no dispatcher yields 503", func(t *testing.T) {
		srv := newTestServer(t)

		resp := postJSON(t, srv.URL+"/api/reports/deliver", map[string]string{
			"date": "2026-08-28",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusServiceUnavailable)
	})

	t.Run("delivery failure yields 502", func(t *testing.T) {
		dispatcher := &stubDispatcher{
			postReportFn: func(ctx context.Context, report *model.Report, text string) error {
				return slack.ErrDeliveryFailed
			},
		}
		srv := newTestServer(t, usecase.WithDispatcher(dispatcher))

		resp := postJSON(t, srv.URL+"/api/reports/deliver", map[string]string{
			"date": "2026-08-28",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadGateway)
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
	gt.Value(t, body["status"]).Equal("ok")
}
