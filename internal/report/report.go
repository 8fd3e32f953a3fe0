package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dirview/dirview/internal/logging"
)

type Summary struct {
	Total      int            `json:"total"`
	Failed     int            `json:"failed"`
	Entries    int            `json:"entries"`
	WithParent int            `json:"with_parent"`
	Start      time.Time      `json:"start"`
	End        time.Time      `json:"end"`
	Inferences []CountItem    `json:"inferences"`
	Criteria   []CountItem    `json:"criteria"`
	TopPaths   []CountItem    `json:"top_paths"`
	TopErrors  []CountItem    `json:"top_errors"`
	Latency    LatencySummary `json:"latency_us"`
}

type CountItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type LatencySummary struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type Reader struct {
	Since time.Time
}

func (r *Reader) Read(path string) ([]logging.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return r.Decode(file)
}

// Decode reads JSONL events, skipping blank lines and events before Since.
func (r *Reader) Decode(in io.Reader) ([]logging.Event, error) {
	var events []logging.Event
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var e logging.Event
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !r.Since.IsZero() && e.Timestamp.Before(r.Since) {
			continue
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func Summarize(events []logging.Event) Summary {
	var summary Summary
	if len(events) == 0 {
		return summary
	}

	summary.Start = events[0].Timestamp
	summary.End = events[0].Timestamp

	inferenceCounts := map[string]int{}
	criteriaCounts := map[string]int{}
	pathCounts := map[string]int{}
	errorCounts := map[string]int{}
	latencies := make([]int64, 0, len(events))

	for _, e := range events {
		summary.Total++
		if e.Timestamp.Before(summary.Start) {
			summary.Start = e.Timestamp
		}
		if e.Timestamp.After(summary.End) {
			summary.End = e.Timestamp
		}

		if e.Error != "" {
			summary.Failed++
			errorCounts[e.Error]++
			continue
		}

		summary.Entries += e.Entries
		if e.HasParent {
			summary.WithParent++
		}
		inferenceCounts[e.Inference]++
		criteriaCounts[criteriaKey(e.Criteria, e.Order)]++
		pathCounts[e.Path]++
		latencies = append(latencies, e.DurationUS)
	}

	summary.Inferences = topCounts(inferenceCounts, len(inferenceCounts))
	summary.Criteria = topCounts(criteriaCounts, len(criteriaCounts))
	summary.TopPaths = topCounts(pathCounts, 5)
	summary.TopErrors = topCounts(errorCounts, 5)
	summary.Latency = latencySummary(latencies)

	return summary
}

func criteriaKey(criteria, order string) string {
	if criteria == "" {
		criteria = "none"
	}
	return criteria + " " + order
}

func topCounts(counts map[string]int, n int) []CountItem {
	items := make([]CountItem, 0, len(counts))
	for key, count := range counts {
		items = append(items, CountItem{Key: key, Count: count})
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

func latencySummary(values []int64) LatencySummary {
	if len(values) == 0 {
		return LatencySummary{}
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return LatencySummary{
		P50: percentile(sorted, 0.50),
		P95: percentile(sorted, 0.95),
		P99: percentile(sorted, 0.99),
	}
}

func percentile(values []int64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(float64(len(values)-1) * p)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return float64(values[idx])
}

func RenderText(summary Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Listings: %d\n", summary.Total)
	fmt.Fprintf(&b, "Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "Entries: %d\n", summary.Entries)
	fmt.Fprintf(&b, "With parent marker: %d\n", summary.WithParent)
	fmt.Fprintf(&b, "Latency p50/p95/p99 (us): %.0f/%.0f/%.0f\n", summary.Latency.P50, summary.Latency.P95, summary.Latency.P99)

	writeCounts(&b, "Path inference", summary.Inferences)
	writeCounts(&b, "Sort criteria", summary.Criteria)
	writeCounts(&b, "Top paths", summary.TopPaths)
	writeCounts(&b, "Top errors", summary.TopErrors)

	return b.String()
}

func RenderMarkdown(summary Summary) string {
	var b strings.Builder
	b.WriteString("# dirview Report\n\n")
	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- Listings: %d\n", summary.Total)
	fmt.Fprintf(&b, "- Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "- Entries: %d\n", summary.Entries)
	fmt.Fprintf(&b, "- With parent marker: %d\n", summary.WithParent)
	fmt.Fprintf(&b, "- Latency p50/p95/p99 (us): %.0f/%.0f/%.0f\n\n", summary.Latency.P50, summary.Latency.P95, summary.Latency.P99)

	writeCountsMarkdown(&b, "Path inference", summary.Inferences)
	writeCountsMarkdown(&b, "Sort criteria", summary.Criteria)
	writeCountsMarkdown(&b, "Top paths", summary.TopPaths)
	writeCountsMarkdown(&b, "Top errors", summary.TopErrors)

	return b.String()
}

func RenderJSON(summary Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

func writeCounts(b *strings.Builder, title string, items []CountItem) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
}

func writeCountsMarkdown(b *strings.Builder, title string, items []CountItem) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString("- none\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
	b.WriteString("\n")
}

// WriteOutput writes content to path, or to w when path is empty.
func WriteOutput(w io.Writer, path string, content []byte) error {
	if path == "" {
		_, err := io.Copy(w, bytes.NewReader(content))
		return err
	}
	return os.WriteFile(path, content, 0o600)
}
