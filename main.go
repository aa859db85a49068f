// Command dispatchfabric runs one scenario file through the two-stage
// typed-routing dispatch pipeline for its configured duration, writing a
// per-second progress log, an end-of-run summary, and a result-store row
// to the given output directory. Usage mirrors the harness this system
// replaces: dispatchfabric <config.json> <results-dir>.
package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"dispatchfabric/config"
	"dispatchfabric/fingerprint"
	"dispatchfabric/latencystats"
	"dispatchfabric/pipeline"
	"dispatchfabric/report"
	"dispatchfabric/resultstore"
	"dispatchfabric/rlog"
)

const logTag = "RUN"

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 3 {
		rlog.Infof(logTag, "usage: %s <config.json> <results-dir>", filepath.Base(args[0]))
		return 1
	}

	configPath := args[1]
	resultsDir := args[2]

	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		rlog.Error(logTag, err)
		return 1
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		rlog.Error(logTag, err)
		return 1
	}

	scenario := strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath))
	fp := fingerprint.Of(cfg.RawBytes())

	rlog.Infof(logTag, "running scenario: %s", scenario)

	p, err := pipeline.Construct(cfg)
	if err != nil {
		rlog.Error(logTag, err)
		return 1
	}

	logPath := filepath.Join(resultsDir, scenario+"_log.txt")
	summaryPath := filepath.Join(resultsDir, scenario+"_summary.txt")

	p.Start()
	monitor(p, cfg.DurationSecs, logPath)
	p.Stop() // blocks until every worker has joined

	if err := writeSummary(p, cfg, scenario, summaryPath); err != nil {
		rlog.Error(logTag, err)
		return 1
	}

	// A failed result-store write is logged but not fatal: the text
	// reports already written are the run's record.
	if err := persistRun(p, cfg, scenario, fp, resultsDir); err != nil {
		rlog.Error(logTag, err)
	}

	rlog.Infof(logTag, "scenario %s complete, results written to %s", scenario, summaryPath)
	return 0
}

func monitor(p *pipeline.Pipeline, durationSecs int, logPath string) {
	var prevProduced, prevProcessed, prevDelivered int64
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for sec := 1; sec <= durationSecs; sec++ {
		<-ticker.C

		produced := p.State().Produced()
		processed := p.State().Processed()
		delivered := p.State().Delivered()

		lostNow := (produced - delivered) - (prevProduced - prevDelivered)

		snap := report.Snapshot{
			ElapsedSecs:  sec,
			ProducedM:    float64(produced-prevProduced) / 1e6,
			ProcessedM:   float64(processed-prevProcessed) / 1e6,
			DeliveredM:   float64(delivered-prevDelivered) / 1e6,
			LostM:        float64(lostNow) / 1e6,
			Stage1Queues: p.Stage1QueueLengths(),
			Stage2Queues: p.Stage2QueueLengths(),
		}

		line := report.Line(snap)
		rlog.Info(logTag, line)
		if err := report.WriteLog(logPath, line); err != nil {
			rlog.Error(logTag, err)
		}

		prevProduced, prevProcessed, prevDelivered = produced, processed, delivered
	}
}

func writeSummary(p *pipeline.Pipeline, cfg *config.Config, scenario, summaryPath string) error {
	rows := []report.PercentileRow{
		percentileRow("Stage1", p.Sink().Snapshot(latencystats.SeriesStage1)),
		percentileRow("Process", p.Sink().Snapshot(latencystats.SeriesProcessing)),
		percentileRow("Stage2", p.Sink().Snapshot(latencystats.SeriesStage2)),
		percentileRow("Total", p.Sink().Snapshot(latencystats.SeriesTotal)),
	}

	summary := report.Summary{
		Scenario:     scenario,
		DurationSecs: cfg.DurationSecs,
		Produced:     p.State().Produced(),
		Processed:    p.State().Processed(),
		Delivered:    p.State().Delivered(),
		Rows:         rows,
	}
	return report.WriteSummary(summaryPath, report.Text(summary))
}

func percentileRow(label string, series []float64) report.PercentileRow {
	return report.PercentileRow{
		Label: label,
		P50:   latencystats.Percentile(append([]float64(nil), series...), 0.50),
		P90:   latencystats.Percentile(append([]float64(nil), series...), 0.90),
		P99:   latencystats.Percentile(append([]float64(nil), series...), 0.99),
	}
}

func persistRun(p *pipeline.Pipeline, cfg *config.Config, scenario string, fp fingerprint.Hash, resultsDir string) error {
	store, err := resultstore.Open(filepath.Join(resultsDir, "results.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	stage1Total := p.Sink().Snapshot(latencystats.SeriesStage1)
	total := p.Sink().Snapshot(latencystats.SeriesTotal)

	run := resultstore.Run{
		Scenario:     scenario,
		Fingerprint:  fp,
		DurationSecs: cfg.DurationSecs,
		Produced:     p.State().Produced(),
		Processed:    p.State().Processed(),
		Delivered:    p.State().Delivered(),
		Stage1P50Us:  latencystats.Percentile(append([]float64(nil), stage1Total...), 0.50),
		Stage1P90Us:  latencystats.Percentile(append([]float64(nil), stage1Total...), 0.90),
		Stage1P99Us:  latencystats.Percentile(append([]float64(nil), stage1Total...), 0.99),
		TotalP50Us:   latencystats.Percentile(append([]float64(nil), total...), 0.50),
		TotalP90Us:   latencystats.Percentile(append([]float64(nil), total...), 0.90),
		TotalP99Us:   latencystats.Percentile(append([]float64(nil), total...), 0.99),
		RunAtUnix:    time.Now().Unix(),
	}
	return store.Insert(run)
}
