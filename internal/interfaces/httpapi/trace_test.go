package httpapi

import (
	"context"
	"testing"
)

func TestSpanAndTraceFilters(t *testing.T) {
	spans := map[string]bool{
		"httpapi.Handler.ListPlayers":           true,
		"httpapi.Handler.GetOperatorScoreboard": true,
		"httpapi.RequestLogging":                false,
		"httpapi.writeError":                    false,
	}
	for name, want := range spans {
		if got := shouldCreateHTTPAPISpan(name); got != want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", name, got, want)
		}
	}

	paths := map[string]bool{
		"/healthz":             false,
		" /readyz ":            false,
		"/livez":               false,
		"/v1/players":          true,
		"/v1/scoreboard":       true,
		"/v1/admin/scoreboard": true,
	}
	for path, want := range paths {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", path, got, want)
		}
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.ListPlayers")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context to be returned unchanged without a parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected noop span without a parent")
	}
}
