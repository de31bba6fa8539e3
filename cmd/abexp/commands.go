package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/yhekr/abexp"
	"github.com/yhekr/abexp/executor"
	"github.com/yhekr/abexp/identity"
	"github.com/yhekr/abexp/lifetime"
	"github.com/yhekr/abexp/menuopen"
	"github.com/yhekr/abexp/report"
	"github.com/yhekr/abexp/telemetry"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the on/off status of every experiment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, release, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			fmt.Fprint(cmd.OutOrStdout(), report.StatusText(engine.DescribeAll(cmd.Context())))

			return nil
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the seed, limits and decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, release, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			snap := engine.DescribeAll(cmd.Context())
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(snap)
			}

			fmt.Fprint(out, report.ThresholdTable(snap))
			fmt.Fprint(out, report.StatusText(snap))

			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List experiments with their forced or automatic group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, release, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			for _, line := range report.SettingsLines(engine.Statuses(cmd.Context())) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			return nil
		},
	}
}

func newOverrideCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Force or release an experiment group",
	}

	set := &cobra.Command{
		Use:   "set <key> <true|false>",
		Short: "Force the experimental (true) or control (false) group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid group %q: want true or false", args[1])
			}

			engine, release, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := engine.SetOverride(cmd.Context(), args[0], enabled); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.SettingsLine(abexp.ExperimentStatus{
				Key: args[0], Enabled: enabled, Forced: true,
			}))

			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <key>",
		Short: "Return an experiment to automatic assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, release, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := engine.ClearOverride(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: auto by machine id\n", args[0])

			return nil
		},
	}

	cmd.AddCommand(set, clearCmd)

	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the machine identifier and the derived seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src := abexp.NewMachineIDSource(a.cfg.Identity)
			out := cmd.OutOrStdout()

			id, err := src.MachineID()
			if err != nil {
				a.logger.Warn("machine identifier unavailable", "error", err)
				fmt.Fprintf(out, "machine id: <unavailable>\nseed: 0\n")

				return nil
			}
			fmt.Fprintf(out, "machine id: %s\nseed: %d\n", id, identity.SeedFor(id))

			return nil
		},
	}
}

func newCollectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Emit usage events for the current assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sink, closeSink, err := a.sink()
			if err != nil {
				return err
			}
			defer closeSink()

			engine, release, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			return telemetry.NewUsageCollector(engine, sink).Collect(cmd.Context())
		},
	}
}

func newMenuCmd(a *app) *cobra.Command {
	var probes int

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Feed probe signals through the menu-open counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sink, closeSink, err := a.sink()
			if err != nil {
				return err
			}
			defer closeSink()

			exec := executor.NewSerial(a.logger)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), a.cfg.OperationTimeout)
				defer cancel()
				_ = exec.Close(ctx)
			}()

			scope := lifetime.New(cmd.Context())
			defer scope.Terminate()

			counter := menuopen.NewCounter(scope, exec, menuopen.WithLogger(a.logger))
			counter.RegisterSubscriber(telemetry.NewMenuOpenedCollector(sink))

			out := cmd.OutOrStdout()
			counter.RegisterSubscriber(abexp.MenuSubscriberFunc(func(n int) error {
				_, err := fmt.Fprintf(out, "menu opened: %d\n", n)
				return err
			}))

			for range probes {
				counter.OnProbe()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.OperationTimeout)
			defer cancel()
			if err := exec.Sync(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "probes: %d\n", counter.RawCount())

			return nil
		},
	}
	cmd.Flags().IntVarP(&probes, "probes", "n", 4, "number of probe signals to send")

	return cmd
}

// sink returns the telemetry sink selected by the configuration.
func (a *app) sink() (telemetry.EventSink, func(), error) {
	if a.cfg.Telemetry.NATSURL == "" {
		return telemetry.NewLogSink(a.logger), func() {}, nil
	}

	nc, err := nats.Connect(a.cfg.Telemetry.NATSURL,
		nats.Name("abexp-telemetry"),
		nats.Timeout(a.cfg.OperationTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect telemetry %s: %w", a.cfg.Telemetry.NATSURL, err)
	}

	closeFn := func() {
		if err := nc.FlushTimeout(a.cfg.OperationTimeout); err != nil {
			a.logger.Warn("telemetry flush failed", "error", err)
		}
		nc.Close()
	}

	return telemetry.NewNATSSink(nc, a.cfg.Telemetry.SubjectPrefix), closeFn, nil
}
