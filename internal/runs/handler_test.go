package runs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type runEnvelope struct {
	Run Run `json:"run"`
}

type listEnvelope struct {
	Runs []Run `json:"runs"`
}

func decodeRun(t *testing.T, resp *http.Response) Run {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var env runEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode run envelope: %v", err)
	}
	return env.Run
}

func TestHandlerRunLifecycle(t *testing.T) {
	w, store, _ := newTestWorker(t)
	srv := httptest.NewServer(NewHandler(w, store))
	defer srv.Close()
	client := srv.Client()

	resp, err := client.Post(srv.URL+"/api/v1/runs", "application/json",
		strings.NewReader(`{"seed":7,"count":5,"formats":["jsonl"],"requested_by":"api"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decodeRun(t, resp)
	if created.ID == "" || created.Status != StatusQueued || created.RequestedBy != "api" {
		t.Fatalf("created run = %+v", created)
	}

	waitForDone(t, w, created.ID)

	resp, err = client.Get(srv.URL + "/api/v1/runs/" + created.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get run status = %d", resp.StatusCode)
	}
	run := decodeRun(t, resp)
	if run.Status != StatusSucceeded || len(run.Artifacts) != 1 {
		t.Fatalf("run = %+v", run)
	}

	for _, path := range []string{"/api/v1/runs", "/api/v1/runs/"} {
		resp, err = client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("list %s: %v", path, err)
		}
		var env listEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		_ = resp.Body.Close()
		if len(env.Runs) != 1 || env.Runs[0].ID != created.ID {
			t.Fatalf("list via %s = %+v", path, env.Runs)
		}
	}

	resp, err = client.Get(srv.URL + "/api/v1/runs/" + created.ID + "/artifacts/jsonl")
	if err != nil {
		t.Fatalf("artifact: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("artifact status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/x-ndjson" {
		t.Fatalf("artifact content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "quotes.jsonl") {
		t.Fatalf("content disposition = %q", cd)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if got := bytes.Count(body, []byte("\n")); got != 5 {
		t.Fatalf("artifact has %d lines, want 5", got)
	}
}

func TestHandlerRejectsBadRequests(t *testing.T) {
	w, store, _ := newTestWorker(t)
	h := NewHandler(w, store)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed json", http.MethodPost, "/api/v1/runs", `{"seed":`, http.StatusBadRequest},
		{"unknown format", http.MethodPost, "/api/v1/runs", `{"seed":1,"count":1,"formats":["xml"]}`, http.StatusBadRequest},
		{"zero count", http.MethodPost, "/api/v1/runs", `{"seed":1,"count":0}`, http.StatusBadRequest},
		{"collection method", http.MethodDelete, "/api/v1/runs", "", http.StatusMethodNotAllowed},
		{"run method", http.MethodPost, "/api/v1/runs/some-id", "", http.StatusMethodNotAllowed},
		{"unknown run", http.MethodGet, "/api/v1/runs/nope", "", http.StatusNotFound},
		{"unknown path", http.MethodGet, "/api/v1/quotes", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.status)
		}
	}
}

type stubScheduler struct {
	runs map[string]Run
}

func (s stubScheduler) Enqueue(context.Context, Request) (Run, error) { return Run{}, nil }
func (s stubScheduler) Get(id string) (Run, bool) {
	r, ok := s.runs[id]
	return r, ok
}
func (s stubScheduler) List() []Run { return nil }

func TestHandlerArtifactFallbacks(t *testing.T) {
	now := time.Now().UTC()
	signed := Run{
		ID:     "r1",
		Status: StatusSucceeded,
		Artifacts: []Artifact{{
			Key:       "runs/r1/quotes.csv",
			Format:    "csv",
			URL:       "http://local.blob/runs/r1/quotes.csv",
			CreatedAt: now,
		}},
	}
	bare := Run{
		ID:     "r2",
		Status: StatusSucceeded,
		Artifacts: []Artifact{{
			Key:       "runs/r2/quotes.csv",
			Format:    "csv",
			CreatedAt: now,
		}},
	}
	h := NewHandler(stubScheduler{runs: map[string]Run{"r1": signed, "r2": bare}}, nil)

	// No store to stream from, so the presigned URL wins.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/runs/r1/artifacts/csv", nil))
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != signed.Artifacts[0].URL {
		t.Fatalf("location = %q", loc)
	}

	// No store and no URL leaves nothing to serve.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/runs/r2/artifacts/csv", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want not found", rec.Code)
	}

	// Requesting a format the run never rendered.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/runs/r1/artifacts/parquet", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want not found", rec.Code)
	}
}

func TestHandlerWithoutScheduler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
