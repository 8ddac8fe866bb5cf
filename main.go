package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"hospital-triage/config"
	"hospital-triage/formatter"
	"hospital-triage/history"
	"hospital-triage/metrics"
	"hospital-triage/models"
	"hospital-triage/parser"
	"hospital-triage/roster"
	"hospital-triage/triage"
	"hospital-triage/waitlist"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-triage",
		Short: "Emergency waiting room triage coordinator",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(benchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a CSV operation script and print the run report",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			format, _ := cmd.Flags().GetString("format")
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
			pushURL, _ := cmd.Flags().GetString("push-url")
			wait, _ := cmd.Flags().GetBool("wait")
			return runScript(input, format, metricsAddr, pushURL, wait)
		},
	}
	cmd.Flags().String("input", "", "Input CSV operation script (required)")
	cmd.Flags().String("format", "text", "Output format: text|json|csv")
	cmd.Flags().String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	cmd.Flags().String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	cmd.Flags().Bool("wait", false, "Keep process running after completion to allow for metric scraping")
	return cmd
}

func runScript(input, format, metricsAddr, pushURL string, wait bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	// Flags win over environment configuration.
	if metricsAddr == "" {
		metricsAddr = cfg.MetricsAddr
	}
	if pushURL == "" {
		pushURL = cfg.PushURL
	}

	if input == "" {
		return fmt.Errorf("--input flag is required")
	}
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[format] {
		return fmt.Errorf("format must be one of: text, json, csv (got: %s)", format)
	}

	// Start metrics server if address provided
	if metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.Info().Str("addr", metricsAddr).Msg("metrics server listening")
			if err := http.ListenAndServe(metricsAddr, nil); err != nil {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	file, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	ops, err := parser.Parse(file)
	if err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	rotation, err := roster.New(cfg.Doctors)
	if err != nil {
		return err
	}
	ledger, err := history.New(cfg.HistoryCapacity)
	if err != nil {
		return err
	}

	metrics.ResetTriageGauges()
	coordinator := triage.New(rotation, ledger, logger)
	report := triage.Run(coordinator, ops)

	// Output based on format
	switch format {
	case "json":
		fmt.Print(formatter.FormatJSON(report))
	case "csv":
		fmt.Print(formatter.FormatCSV(report))
	default: // "text"
		fmt.Print(formatter.FormatText(report))
	}

	// Handle metrics pushing or waiting
	if pushURL != "" {
		if err := push.New(pushURL, "hospital_triage").Gatherer(metrics.Registry).Push(); err != nil {
			logger.Error().Err(err).Msg("error pushing to Pushgateway")
		} else {
			logger.Info().Msg("metrics pushed to Pushgateway")
		}
	}

	if wait && metricsAddr != "" {
		logger.Info().Msg("process kept alive for metric scraping, press Ctrl+C to exit")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if metricsAddr != "" && pushURL == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare first-come-first-served and severity-first service at several sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, _ := cmd.Flags().GetString("sizes")
			seed, _ := cmd.Flags().GetInt64("seed")
			return runBench(sizes, seed)
		},
	}
	cmd.Flags().String("sizes", "1000,5000,10000,20000", "Comma-separated patient counts to benchmark")
	cmd.Flags().Int64("seed", 42, "Random seed for patient generation")
	return cmd
}

func runBench(sizeList string, seed int64) error {
	var sizes []int
	for _, s := range strings.Split(sizeList, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 {
			return fmt.Errorf("invalid size %q", s)
		}
		sizes = append(sizes, n)
	}

	doctors := []string{"Dr. Adams", "Dr. Brown", "Dr. Chen"}
	fmt.Printf("%-8s %-16s %-14s %-14s\n", "size", "median_severity", "fifo", "priority")

	for _, size := range sizes {
		patients := generatePatients(size, seed)

		fifoTime, err := benchFIFO(patients, doctors)
		if err != nil {
			return err
		}
		priorityTime, err := benchPriority(patients, doctors)
		if err != nil {
			return err
		}

		fmt.Printf("%-8d %-16d %-14s %-14s\n",
			size, medianSeverity(patients), fifoTime, priorityTime)
	}
	return nil
}

// generatePatients builds a reproducible admission load with uniformly
// random severities.
func generatePatients(size int, seed int64) []models.PatientRecord {
	rng := rand.New(rand.NewSource(seed))
	patients := make([]models.PatientRecord, size)
	for i := range patients {
		patients[i] = models.PatientRecord{
			ID:       i + 1,
			Name:     fmt.Sprintf("Patient_%d", i+1),
			Severity: rng.Intn(models.MaxSeverity) + 1,
			Arrival:  i + 1,
		}
	}
	return patients
}

func medianSeverity(patients []models.PatientRecord) int {
	severities := make([]int, len(patients))
	for i, p := range patients {
		severities[i] = p.Severity
	}
	sort.Ints(severities)
	return severities[len(severities)/2]
}

// benchFIFO admits and serves everyone strictly in arrival order, with
// the same rotation and history recording the priority pipeline does.
func benchFIFO(patients []models.PatientRecord, doctors []string) (time.Duration, error) {
	rotation, err := roster.New(doctors)
	if err != nil {
		return 0, err
	}
	ledger, err := history.New(len(patients))
	if err != nil {
		return 0, err
	}

	start := time.Now()
	f := waitlist.New()
	for _, p := range patients {
		f.Arrive(p)
	}
	for {
		p, ok := f.ServeNext()
		if !ok {
			break
		}
		ledger.Push(models.ServiceRecord{
			EventID:  uuid.New(),
			Patient:  p,
			Resource: rotation.Next(),
			ServedAt: time.Now(),
			Recorded: true,
		})
	}
	return time.Since(start), nil
}

// benchPriority runs the same load through the full coordinator.
func benchPriority(patients []models.PatientRecord, doctors []string) (time.Duration, error) {
	rotation, err := roster.New(doctors)
	if err != nil {
		return 0, err
	}
	ledger, err := history.New(len(patients))
	if err != nil {
		return 0, err
	}

	start := time.Now()
	c := triage.New(rotation, ledger, zerolog.Nop())
	for _, p := range patients {
		c.Admit(p.ID, p.Name, p.Severity)
	}
	for {
		if _, ok := c.Serve(); !ok {
			break
		}
	}
	return time.Since(start), nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	// Logs go to stderr so the report on stdout stays machine readable.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	}
	return logger
}
