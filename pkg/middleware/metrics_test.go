package middleware_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/hyper/pkg/hyper"
	"github.com/vango-dev/hyper/pkg/middleware"
	"github.com/vango-dev/hyper/pkg/vtest"
)

// counterValue sums a counter family, optionally filtered by one label.
func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := label == ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					match = true
				}
			}
			if match {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.Prometheus(middleware.WithRegistry(reg))

	r, err := hyper.NewRenderer(metrics(vtest.IdentityDriver()), []any{"div", "a", []any{"b", "c"}})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := r.Rerender(hyper.Rerender); err != nil {
			t.Fatal(err)
		}
	}

	if got := counterValue(t, reg, "hyper_frames_total", "status", "success"); got != 3 {
		t.Errorf("frames = %v, want 3", got)
	}
	if got := counterValue(t, reg, "hyper_visits_total", "kind", "element"); got != 6 {
		t.Errorf("element visits = %v, want 6", got)
	}
	if got := counterValue(t, reg, "hyper_visits_total", "kind", "text"); got != 6 {
		t.Errorf("text visits = %v, want 6", got)
	}

	families, _ := reg.Gather()
	found := false
	for _, mf := range families {
		if mf.GetName() == "hyper_frame_duration_seconds" {
			found = mf.GetMetric()[0].GetHistogram().GetSampleCount() == 3
		}
	}
	if !found {
		t.Error("frame duration histogram should hold 3 samples")
	}
}

func TestPrometheusErrorsAndSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	// Two decorators on one registry share collectors instead of panicking.
	a := middleware.Prometheus(middleware.WithRegistry(reg))
	b := middleware.Prometheus(middleware.WithRegistry(reg))

	if _, err := hyper.Render(a(vtest.IdentityDriver()), []any{"p"}); err != nil {
		t.Fatal(err)
	}
	if _, err := hyper.Render(b(vtest.IdentityDriver()), []any{"p#x#y"}); err == nil {
		t.Fatal("expected an error")
	}

	if got := counterValue(t, reg, "hyper_frames_total", "status", "success"); got != 1 {
		t.Errorf("success frames = %v, want 1", got)
	}
	if got := counterValue(t, reg, "hyper_frames_total", "status", "error"); got != 1 {
		t.Errorf("error frames = %v, want 1", got)
	}
}

func TestPrometheusCountsSignals(t *testing.T) {
	reg := prometheus.NewRegistry()
	var rerender hyper.RerenderFunc
	capture := func(rr hyper.RerenderFunc) hyper.Driver {
		rerender = rr
		return vtest.IdentityDriver()(rr)
	}

	r, err := hyper.NewRenderer(middleware.Prometheus(middleware.WithRegistry(reg))(capture), "x")
	if err != nil {
		t.Fatal(err)
	}
	_ = rerender(hyper.MissingHandler("msg"))
	_ = rerender(hyper.Rerender)

	if got := counterValue(t, reg, "hyper_signals_total", "", ""); got != 2 {
		t.Errorf("signals = %v, want 2", got)
	}
	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", r.Frames())
	}
}
