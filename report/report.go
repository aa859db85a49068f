// Package report renders the per-second progress line and end-of-run
// summary written to <scenario>_log.txt and <scenario>_summary.txt,
// matching the text layout of the system this module replaces so existing
// tooling that greps those files keeps working.
package report

import (
	"fmt"
	"os"
	"strings"
)

// Snapshot is one second's worth of flow counters, already converted to
// millions and delta'd against the previous snapshot by the caller.
type Snapshot struct {
	ElapsedSecs  int
	ProducedM    float64
	ProcessedM   float64
	DeliveredM   float64
	LostM        float64
	Stage1Queues []int
	Stage2Queues []int
}

func formatQueueList(lengths []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, l := range lengths {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", l)
	}
	b.WriteByte(']')
	return b.String()
}

// Line formats one progress line in the form:
//
//	[12.00s] Produced: 1.23M | Processed: 1.22M | Delivered: 1.2M | Lost: 0.01M | Stage1 Queues: [3, 0] | Stage2 Queues: [1]
//
// The second index is printed with two decimals; the per-second deltas use
// Go's default float formatting (%g), not a fixed precision.
func Line(s Snapshot) string {
	return fmt.Sprintf(
		"[%.2fs] Produced: %gM | Processed: %gM | Delivered: %gM | Lost: %gM | Stage1 Queues: %s | Stage2 Queues: %s",
		float64(s.ElapsedSecs), s.ProducedM, s.ProcessedM, s.DeliveredM, s.LostM,
		formatQueueList(s.Stage1Queues), formatQueueList(s.Stage2Queues),
	)
}

// PercentileRow is one labeled row of the summary's percentile table.
type PercentileRow struct {
	Label string
	P50   float64
	P90   float64
	P99   float64
}

// Summary is the full set of values written to a scenario's summary file.
type Summary struct {
	Scenario     string
	DurationSecs int
	Produced     int64
	Processed    int64
	Delivered    int64
	Rows         []PercentileRow
}

// Text renders a Summary in the same layout as the performance summary
// this module replaces.
func Text(s Summary) string {
	var b strings.Builder
	b.WriteString("=== PERFORMANCE SUMMARY ===\n")
	fmt.Fprintf(&b, "Scenario: %s\n", s.Scenario)
	fmt.Fprintf(&b, "Duration: %d seconds\n", s.DurationSecs)
	fmt.Fprintf(&b, "Produced:  %d\n", s.Produced)
	fmt.Fprintf(&b, "Processed: %d\n", s.Processed)
	fmt.Fprintf(&b, "Delivered: %d\n", s.Delivered)
	b.WriteString("\nLatency Percentiles (us):\n")
	b.WriteString("Stage      p50    p90    p99\n")
	for _, row := range s.Rows {
		fmt.Fprintf(&b, "%-8s %6.2f %6.2f %6.2f\n", row.Label, row.P50, row.P90, row.P99)
	}
	return b.String()
}

// WriteLog appends line (with a trailing newline) to the log file at path,
// creating it if necessary.
func WriteLog(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("report: opening log %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("report: writing log %s: %w", path, err)
	}
	return nil
}

// WriteSummary writes text as the full contents of the summary file at
// path, overwriting any previous contents.
func WriteSummary(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("report: writing summary %s: %w", path, err)
	}
	return nil
}
