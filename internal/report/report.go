// Package report renders scored domains as JSON files, markdown and console output
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jasona7/typosquat/internal/scorer"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
)

const dateLayout = "2006-01-02"

// Report is the document written by WriteJSON
type Report struct {
	Date         string          `json:"date"`
	TotalResults int             `json:"total_results"`
	Domains      []scorer.Scored `json:"domains"`
}

// WriteJSON writes all scored domains to <dir>/<YYYY-MM-DD>.json (UTC) and returns the path
func WriteJSON(scored []scorer.Scored, dir string, now time.Time) (string, error) {
	if !fileutil.FolderExists(dir) {
		if err := fileutil.CreateFolder(dir); err != nil {
			return "", errorutil.NewWithErr(err).Msgf("failed to create output directory %v", dir)
		}
	}
	if scored == nil {
		scored = []scorer.Scored{}
	}
	today := now.UTC().Format(dateLayout)
	bin, err := json.MarshalIndent(Report{Date: today, TotalResults: len(scored), Domains: scored}, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, today+".json")
	if err := os.WriteFile(path, bin, 0644); err != nil {
		return "", errorutil.NewWithErr(err).Msgf("failed to write report %v", path)
	}
	return path, nil
}

// SummaryTable formats the top results as a markdown table
func SummaryTable(scored []scorer.Scored, top int) string {
	shown := topOf(scored, top)
	var sb strings.Builder
	sb.WriteString("## Domain Scan Results\n\n")
	fmt.Fprintf(&sb, "**%d** scored domains | Top %d shown\n\n", len(scored), len(shown))
	sb.WriteString("| Rank | Domain | Original | Type | Score | Trend | Value | Plausibility | Quality | Risk |\n")
	sb.WriteString("|------|--------|----------|------|-------|-------|-------|-------------|---------|------|")
	for i, d := range shown {
		b := d.Breakdown
		fmt.Fprintf(&sb, "\n| %d | `%s` | %s | %s | **%s** | %s | %s | %s | %s | %s |",
			i+1, d.Domain, d.Original, d.Family, f1(d.Score),
			f1(b.TrendVelocity), f1(b.CommercialValue), f1(b.TypoPlausibility), f1(b.DomainQuality), f1(b.RiskPenalty))
	}
	return sb.String()
}

// WriteGitHubSummary appends the summary table to $GITHUB_STEP_SUMMARY.
// It does nothing outside of GitHub Actions.
func WriteGitHubSummary(scored []scorer.Scored, top int) error {
	path := os.Getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("failed to open step summary %v", path)
	}
	defer f.Close()
	_, err = f.WriteString(SummaryTable(scored, top) + "\n")
	return err
}

// Print writes a human readable summary of the top results to w
func Print(w io.Writer, scored []scorer.Scored, top int) {
	if len(scored) == 0 {
		fmt.Fprintln(w, "No available domains found.")
		return
	}
	shown := topOf(scored, top)
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\n  TOP %d AVAILABLE TYPOSQUAT DOMAINS\n%s\n\n", rule, len(shown), rule)
	for i, d := range shown {
		b := d.Breakdown
		fmt.Fprintf(w, "  %2d. %-30s Score: %5s\n", i+1, d.Domain, f1(d.Score))
		fmt.Fprintf(w, "      Original: %-20s Type: %s\n", d.Original, d.Family)
		fmt.Fprintf(w, "      Trend: %4s | Value: %4s | Plausible: %4s | Quality: %4s | Risk: %5s\n\n",
			f1(b.TrendVelocity), f1(b.CommercialValue), f1(b.TypoPlausibility), f1(b.DomainQuality), f1(b.RiskPenalty))
	}
}

func topOf(scored []scorer.Scored, top int) []scorer.Scored {
	if top <= 0 || top > len(scored) {
		return scored
	}
	return scored[:top]
}

func f1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
