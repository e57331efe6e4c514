package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"peakscan/internal/scheduler"
	"peakscan/pkg/config"
	"peakscan/pkg/logger"
)

// scheduleCmd runs the scan repeatedly on a cron schedule
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the scan on a cron schedule",
	Long: `Runs the screening pass on a cron schedule (six-field expressions,
seconds included) until interrupted. Each tick re-reads the universe
file, so edits between runs are picked up.

Example:
  go run ./cmd/screener schedule --universe sp500.csv --cron "0 30 16 * * 1-5"`,
	RunE: runSchedule,
}

var scheduleCron string

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scanUniverse, "universe", "", "universe CSV file (required)")
	scheduleCmd.Flags().StringVar(&scanThresholds, "thresholds", "", "thresholds YAML file")
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "0 0 17 * * 1-5", "cron schedule expression")

	_ = scheduleCmd.MarkFlagRequired("universe")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	th, err := resolveThresholds(cmd, log)
	if err != nil {
		return err
	}

	// Fail fast on an unreadable universe instead of at the first tick
	if _, err := os.Stat(scanUniverse); err != nil {
		return fmt.Errorf("universe file: %w", err)
	}

	orchestrator, publisher := buildPipeline(cfg, log)

	sched := scheduler.New(log)
	job := scheduler.NewScanJob(scanUniverse, scheduleCron, th, orchestrator, publisher, log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	PrintInfo(fmt.Sprintf("Scheduler running (cron %q), press Ctrl+C to stop", scheduleCron))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
