// Command habitstats prints analytics reports from a habitloop database as
// indented JSON, without starting the server.
//
//	habitstats --report dashboard
//	habitstats --report overview --today 2026-10-16 --tz UTC
//	habitstats --report stats --habit <id> --days 7
//	habitstats --report heatmap --habit <id> --weeks 12
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/config"
	"github.com/sakif/habitloop/internal/report"
	"github.com/sakif/habitloop/internal/repository/sqlite"
	"github.com/sakif/habitloop/internal/service"
)

const defaultStatsDays = 30

var errHabitRequired = errors.New("--habit is required for this report")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(ctx context.Context, args []string, out, errOut io.Writer, getenv func(string) string) int {
	flagSet := flag.NewFlagSet("habitstats", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	configPath := flagSet.String("config", "", "YAML config file")
	dbPath := flagSet.String("db", "", "database path (overrides config)")
	tz := flagSet.String("tz", "", "IANA timezone for today (overrides config)")
	today := flagSet.String("today", "", "pin today to YYYY-MM-DD")
	name := flagSet.StringP("report", "r", "dashboard",
		"one of "+strings.Join(append(service.ReportNames(), "stats", "heatmap"), ", "))
	habitID := flagSet.String("habit", "", "habit id for stats and heatmap")
	days := flagSet.Int("days", defaultStatsDays, "period length for stats")
	weeks := flagSet.Int("weeks", report.DefaultHeatmapWeeks, "grid height for heatmap")
	verbose := flagSet.BoolP("verbose", "v", false, "log debug output to stderr")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath, getenv)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *tz != "" {
		cfg.Timezone = *tz
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	level, _ := cfg.SlogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	loc, _ := cfg.Location()
	var clock calendar.Clock = calendar.SystemClock{Location: loc}
	if *today != "" {
		d, err := calendar.ParseKey(*today)
		if err != nil {
			fmt.Fprintln(errOut, "error: --today:", err)
			return 1
		}
		clock = calendar.FixedClock(d)
	}
	opts, _ := cfg.AnalyticsOptions()

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	defer db.Close()

	analytics := service.NewAnalyticsService(db, clock, opts, logger)

	var result any
	switch *name {
	case "stats":
		if *habitID == "" {
			fmt.Fprintln(errOut, "error:", errHabitRequired)
			return 1
		}
		result, err = analytics.HabitStats(ctx, *habitID, *days)
	case "heatmap":
		if *habitID == "" {
			fmt.Fprintln(errOut, "error:", errHabitRequired)
			return 1
		}
		result, err = analytics.Heatmap(ctx, *habitID, *weeks)
	default:
		result, err = analytics.Report(ctx, *name)
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}
