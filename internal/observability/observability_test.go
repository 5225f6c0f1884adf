package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsWritePrometheus(t *testing.T) {
	m := New()
	m.ObserveAPI("GET", "/api/tags/stats", 200, 30*time.Millisecond)
	m.ObserveAPI("GET", "/api/tags/stats", 500, time.Second)
	m.ObserveNormalization(3, 1)
	m.IncCustomTagWrite("add", true)
	m.IncCustomTagWrite("add", false)
	m.ObserveSuggestions(20)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`wn_api_requests_total{method="GET",route="/api/tags/stats",status="200"} 1`,
		`wn_api_requests_total{method="GET",route="/api/tags/stats",status="500"} 1`,
		`wn_api_request_duration_seconds_bucket{method="GET",route="/api/tags/stats",le="+Inf"} 2`,
		`wn_tag_normalizations_total{outcome="catalog"} 3`,
		`wn_tag_normalizations_total{outcome="passthrough"} 1`,
		`wn_custom_tag_writes_total{op="add",result="rejected"} 1`,
		`wn_tag_suggestions_returned_count 1`,
		"# TYPE wn_api_inflight_requests gauge",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", 200, time.Millisecond)
	m.APIInflightInc()
	m.ObserveNormalization(1, 1)
	m.IncCustomTagWrite("clear", true)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil write: %v", err)
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"a"}, []string{"x\"y\\z\n"})
	if got != `{a="x\"y\\z\n"}` {
		t.Fatalf("got=%s", got)
	}
	if got := withLe("", "0.5"); got != `{le="0.5"}` {
		t.Fatalf("withLe: %s", got)
	}
}

func TestParseHeadersAndRatio(t *testing.T) {
	h := parseHeaders("a=1, b = 2 ,bad,=x")
	if len(h) != 2 || h["a"] != "1" || h["b"] != "2" {
		t.Fatalf("headers: %v", h)
	}
	if parseHeaders("") != nil {
		t.Fatalf("empty headers should be nil")
	}
	if parseRatio("2", 0.1) != 1 || parseRatio("-1", 0.1) != 0 || parseRatio("x", 0.1) != 0.1 || parseRatio("0.25", 0.1) != 0.25 {
		t.Fatalf("ratio parsing")
	}
}
