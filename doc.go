// Package abexp assigns an installation to the experimental or control group
// of A/B experiments, and counts genuine menu openings from noisy probes.
//
// Cohort assignment is deterministic per machine: a seed in [0, 999] is
// derived from a machine identifier, and each experiment gets a limit from
// its requested fraction. The installation is in the experimental group when
// seed < limit. Overrides stored by a settings editor always win.
//
// # Quick Start
//
//	cfg := abexp.DefaultConfig()
//	src := source.NewStatic([]abexp.Experiment{
//	    {Key: "dark-mode", Fraction: abexp.Float(0.3)},
//	    {Key: "new-search"},
//	    {Key: "compact-menu"},
//	})
//
//	engine, err := abexp.NewEngine(&cfg, src, memory.New(nil),
//	    abexp.WithLogger(abexp.NewSlogLogger(slog.Default())),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if engine.IsEnabled(ctx, "dark-mode") {
//	    // experimental group
//	}
//
// # Capacity
//
// Explicit fractions are capped at 0.5. Whatever the explicit experiments
// leave is split evenly among experiments without a fraction. With
// dark-mode at 0.3 and two unspecified experiments, the limits are 300, 350
// and 350. Limits are independent cutoffs, so one installation can be in
// several experimental groups at once.
//
// # Observers
//
// Every decision, including overrides, unknown keys and failures, is passed
// to the registered observers in registration order. A failing observer is
// logged and skipped. The telemetry package provides observers that publish
// usage events.
//
// # Menu opens
//
// See the menuopen package for the probe debouncer, and the executor and
// lifetime packages for the background context it runs on.
package abexp
