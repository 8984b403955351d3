package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/trickstertwo/xjournal"
)

func newObservedRouter(t *testing.T, c *Collector) *xjournal.Router {
	t.Helper()
	scope := xjournal.NewScope()
	a, _, err := xjournal.NewMemoryAppender(scope)
	if err != nil {
		t.Fatalf("NewMemoryAppender: %v", err)
	}
	r, err := xjournal.NewBuilder().
		WithLevel(xjournal.LevelTrace).
		WithAction(xjournal.ActionContinue).
		WithScope(scope).
		AddAppender(a).
		AddObserver(c).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func TestCollectorCountsBySeverity(t *testing.T) {
	t.Parallel()

	c := New("test")
	r := newObservedRouter(t, c)

	if err := r.Error("e1"); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if err := r.Error("e2"); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if err := r.Warn("w1"); err != nil {
		t.Fatalf("Warn: %v", err)
	}
	if err := r.Info("i1"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := r.Trace("t1"); err != nil {
		t.Fatalf("Trace: %v", err)
	}

	if got := testutil.ToFloat64(c.errorCount); got != 2 {
		t.Fatalf("error_count = %v", got)
	}
	if got := testutil.ToFloat64(c.warnCount); got != 1 {
		t.Fatalf("warn_count = %v", got)
	}
	if got := testutil.ToFloat64(c.infoCount); got != 1 {
		t.Fatalf("info_count = %v", got)
	}
	if got := testutil.ToFloat64(c.traceCount); got != 1 {
		t.Fatalf("trace_count = %v", got)
	}
}

func TestSuppressedEventsAreNotCounted(t *testing.T) {
	t.Parallel()

	c := New("test")
	scope := xjournal.NewScope()
	a, _, err := xjournal.NewMemoryAppender(scope)
	if err != nil {
		t.Fatalf("NewMemoryAppender: %v", err)
	}
	r, err := xjournal.NewBuilder().
		WithLevel(xjournal.LevelError).
		WithAction(xjournal.ActionContinue).
		WithScope(scope).
		AddAppender(a).
		AddObserver(c).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := r.Info("dropped"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := r.Error("kept"); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if got := testutil.ToFloat64(c.infoCount); got != 0 {
		t.Fatalf("info_count = %v, suppressed events must not count", got)
	}
	if got := testutil.ToFloat64(c.errorCount); got != 1 {
		t.Fatalf("error_count = %v", got)
	}
}

func TestRegisterExposesCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c, err := Register(New("app"), reg)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := newObservedRouter(t, c)
	if err := r.Warn("w"); err != nil {
		t.Fatalf("Warn: %v", err)
	}

	names := []string{
		"app_journal_error_count",
		"app_journal_warn_count",
		"app_journal_info_count",
		"app_journal_trace_count",
	}
	got, err := testutil.GatherAndCount(reg, names...)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got != len(names) {
		t.Fatalf("gathered %d series, want %d", got, len(names))
	}

	// Double registration must surface through the registry.
	if _, err := Register(c, reg); err == nil {
		t.Fatal("second Register must fail")
	}
}
