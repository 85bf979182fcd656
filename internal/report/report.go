// Package report renders script verdicts for the terminal or for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kumarlokesh/radix-dictionary/internal/script"
)

// Format selects how results are written
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format
var Formats = []Format{FormatTable, FormatMarkdown, FormatJSON}

// ParseFormat converts a format name into a Format
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported report format %q", name)
}

type summary struct {
	Results []script.Result `json:"results"`
	Passed  int             `json:"passed"`
	Total   int             `json:"total"`
}

// Write renders results to w in the given format
func Write(w io.Writer, format Format, results []script.Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatTable, FormatMarkdown:
		writeTable(w, format, results)
		return nil
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func writeJSON(w io.Writer, results []script.Result) error {
	if results == nil {
		results = []script.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary{Results: results, Passed: countPassed(results), Total: len(results)})
}

func writeTable(w io.Writer, format Format, results []script.Result) {
	outputTable := table.NewWriter()
	outputTable.SetOutputMirror(w)
	outputTable.AppendHeader(table.Row{"File", "Status", "Runtime"})

	for _, res := range results {
		outputTable.AppendRow(table.Row{res.Name, status(res), formatDuration(res.Duration)})
	}
	outputTable.AppendFooter(table.Row{"", "Passed", fmt.Sprintf("%d/%d", countPassed(results), len(results))})

	if format == FormatMarkdown {
		outputTable.RenderMarkdown()
		return
	}
	outputTable.SetStyle(table.StyleLight)
	outputTable.Render()
}

// WriteFailures writes the failure message of every failed result, one per line
func WriteFailures(w io.Writer, results []script.Result) {
	for _, res := range results {
		if !res.Passed {
			fmt.Fprintf(w, "%s: %s\n", res.Name, res.Message)
		}
	}
}

func status(res script.Result) string {
	if res.Passed {
		return "PASS"
	}
	return "FAIL"
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func countPassed(results []script.Result) int {
	n := 0
	for _, res := range results {
		if res.Passed {
			n++
		}
	}
	return n
}
