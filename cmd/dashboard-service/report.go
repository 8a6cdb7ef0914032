package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang-market-briefing/internal/dashboard/service"
	"golang-market-briefing/internal/entity"

	"github.com/spf13/cobra"
)

type reportFlags struct {
	lookback   string
	interval   string
	changeMode string
	noBriefing bool
	noNews     bool
	deliver    bool
}

func newReportCmd() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Prints one snapshot and briefing to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.lookback, "range", "", "Lookback window, defaults to snapshot.lookback")
	cmd.Flags().StringVar(&flags.interval, "interval", "", "Sampling interval, defaults to snapshot.interval")
	cmd.Flags().StringVar(&flags.changeMode, "mode", "", "Change mode (daily or period)")
	cmd.Flags().BoolVar(&flags.noBriefing, "no-briefing", false, "Only print the snapshot")
	cmd.Flags().BoolVar(&flags.noNews, "no-news", false, "Do not add headlines to the prompt")
	cmd.Flags().BoolVar(&flags.deliver, "deliver", false, "Send the report to Telegram instead of printing it")
	return cmd
}

func runReport(cmd *cobra.Command, flags reportFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, appLogger := loadApp()
	defer func() { _ = appLogger.Sync() }()
	defer a.Close()

	if flags.deliver {
		return a.reports.DeliverReport(ctx)
	}

	opts := a.reports.DefaultOptions()
	if flags.lookback != "" {
		l, err := entity.ParseLookback(flags.lookback)
		if err != nil {
			return err
		}
		opts.Lookback = l
	}
	if flags.interval != "" {
		i, err := entity.ParseInterval(flags.interval)
		if err != nil {
			return err
		}
		opts.Interval = i
	}
	if flags.changeMode != "" {
		mode, err := entity.ParseChangeMode(flags.changeMode)
		if err != nil {
			return err
		}
		opts.ChangeMode = mode
	}
	if flags.noNews {
		opts.IncludeHeadlines = false
	}

	out := cmd.OutOrStdout()
	if flags.noBriefing || !a.cfg.Briefing.Enabled {
		records := a.snapshot.WithChangeMode(opts.ChangeMode).BuildSnapshot(ctx, a.spec, opts.Lookback, opts.Interval)
		fmt.Fprintln(out, service.FormatSnapshotTable(records))
		return nil
	}

	report, err := a.reports.GenerateReport(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, service.FormatSnapshotTable(report.Snapshot))
	fmt.Fprintln(out)
	for _, h := range report.Headlines {
		fmt.Fprintf(out, "- %s (%s)\n", h.Title, h.Publisher)
	}
	if len(report.Headlines) > 0 {
		fmt.Fprintln(out)
	}
	if !report.Briefing.Succeeded() {
		return fmt.Errorf("briefing failed (model %q): %s", report.Briefing.ModelUsed, report.Briefing.Text)
	}
	fmt.Fprintf(out, "%s\n\n-- %s\n", report.Briefing.Text, report.Briefing.ModelUsed)
	return nil
}
