package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/filter"
)

// exportOutput is the JSON export document
type exportOutput struct {
	Metadata struct {
		ExportTimestamp time.Time         `json:"export_timestamp"`
		TotalEntries    int               `json:"total_entries"`
		FilterCriteria  map[string]string `json:"filter_criteria"`
	} `json:"metadata"`
	Entries []entry.Entry `json:"entries"`
}

// ExportJSON writes the entries matching f to stdout as a JSON document,
// oldest first
func ExportJSON(deps *cli.Deps, f *filter.Filter) {
	entries := exportEntries(deps, f)

	var output exportOutput
	output.Metadata.ExportTimestamp = deps.Services.Source.Now()
	output.Metadata.TotalEntries = len(entries)
	output.Metadata.FilterCriteria = filterCriteria(f)
	output.Entries = entries

	encoder := json.NewEncoder(deps.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to encode JSON output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
}

// ExportCSV writes the entries matching f to stdout as CSV with a header row,
// oldest first
func ExportCSV(deps *cli.Deps, f *filter.Filter) {
	entries := exportEntries(deps, f)

	w := csv.NewWriter(deps.Stdout)
	_ = w.Write([]string{"id", "date", "physical", "mental", "text", "updated_at"})
	for _, e := range entries {
		updated := ""
		if !e.UpdatedAt.IsZero() {
			updated = e.UpdatedAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			e.ID,
			e.Date,
			strconv.Itoa(e.Physical),
			strconv.Itoa(e.Mental),
			e.Text,
			updated,
		})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write CSV output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
}

func exportEntries(deps *cli.Deps, f *filter.Filter) []entry.Entry {
	listed := deps.Services.Journal.List(f).Entries
	entries := make([]entry.Entry, 0, len(listed))
	for i := len(listed) - 1; i >= 0; i-- {
		entries = append(entries, listed[i])
	}
	return entries
}

func filterCriteria(f *filter.Filter) map[string]string {
	criteria := make(map[string]string)
	if f == nil {
		return criteria
	}
	if f.Keyword != "" {
		criteria["keyword"] = f.Keyword
	}
	if f.MinPhysical > 0 {
		criteria["min_physical"] = strconv.Itoa(f.MinPhysical)
	}
	if f.MinMental > 0 {
		criteria["min_mental"] = strconv.Itoa(f.MinMental)
	}
	if f.From != "" {
		criteria["from"] = f.From
	}
	if f.To != "" {
		criteria["to"] = f.To
	}
	return criteria
}
