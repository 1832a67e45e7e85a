package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, rec *PromRecorder) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", w.Code)
	}
	return w.Body.String()
}

func TestPromRecorderExposition(t *testing.T) {
	rec := NewPromRecorder()
	ctx := context.Background()

	rec.Observe(ctx, "stream", true, 10*time.Millisecond)
	rec.Observe(ctx, "stream", true, 15*time.Millisecond)
	rec.Observe(ctx, "stream", false, time.Millisecond)
	rec.RunStarted()
	rec.RunStarted()
	rec.RunFinished()

	body := scrape(t, rec)
	for _, want := range []string{
		`quotesynth_quotes_generated_total{operation="stream",status="success"} 2`,
		`quotesynth_quotes_generated_total{operation="stream",status="error"} 1`,
		`quotesynth_generation_duration_seconds_count{operation="stream"} 3`,
		`quotesynth_runs_active 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %q:\n%s", want, body)
		}
	}
}

func TestPromRecorderIgnoresEmptyOperation(t *testing.T) {
	rec := NewPromRecorder()
	rec.Observe(context.Background(), "", true, time.Millisecond)
	if body := scrape(t, rec); strings.Contains(body, `operation=""`) {
		t.Fatalf("empty operation exposed:\n%s", body)
	}
}

// Each recorder owns a private registry, so building several in one process
// must not trip duplicate registration.
func TestPromRecorderIndependentRegistries(t *testing.T) {
	a := NewPromRecorder()
	b := NewPromRecorder()
	a.Observe(context.Background(), "batch", true, time.Millisecond)
	if body := scrape(t, b); strings.Contains(body, `operation="batch"`) {
		t.Fatalf("observation leaked across registries:\n%s", body)
	}
}
