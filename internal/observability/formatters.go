// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/craft-cover/internal/recipes"
	"github.com/jonathan/craft-cover/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLoadStats outputs how many recipe documents were read and kept.
func (p *Printer) PrintLoadStats(stats *recipes.LoadStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Documents:  %s\n", humanize.Comma(int64(stats.Documents))))
	sb.WriteString(fmt.Sprintf("Crafting:   %s\n", humanize.Comma(int64(stats.Crafting))))
	sb.WriteString(fmt.Sprintf("Skipped:    %s", humanize.Comma(int64(stats.Skipped))))

	p.printBox("RECIPES LOADED", sb.String())
}

// PrintMakeup outputs, for every target item, how many recipe combinations use it.
func (p *Printer) PrintMakeup(set *types.CandidateSet) {
	if set == nil || set.Universe.Len() == 0 {
		return
	}

	var sb strings.Builder
	for i, item := range set.Universe {
		count := set.Makeup[item]
		sb.WriteString(fmt.Sprintf("%-24s %s %s", shortName(item), humanize.Comma(int64(count)), plural(count, "recipe")))
		if count == 0 {
			sb.WriteString("  (unreachable)")
		}
		if i < set.Universe.Len()-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECIPE MAKEUP", sb.String())
}

// PrintCandidates outputs the builder's funnel and the first few candidates.
func (p *Printer) PrintCandidates(set *types.CandidateSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	if s := set.Stats; s != nil {
		sb.WriteString(fmt.Sprintf("Recipes:        %s\n", humanize.Comma(int64(s.Recipes))))
		sb.WriteString(fmt.Sprintf("Only targets:   %s\n", humanize.Comma(int64(s.EligibleRecipes))))
		sb.WriteString(fmt.Sprintf("Combinations:   %s\n", humanize.Comma(int64(s.Combinations))))
		sb.WriteString(fmt.Sprintf("Unique:         %s\n", humanize.Comma(int64(s.Unique))))
		sb.WriteString(fmt.Sprintf("Non-dominated:  %s\n", humanize.Comma(int64(s.NonDominated))))
	} else {
		sb.WriteString(fmt.Sprintf("Candidates: %s\n", humanize.Comma(int64(len(set.Candidates)))))
	}

	count := min(len(set.Candidates), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", shortSet(set.Candidates[i].Items)))
	}
	if len(set.Candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(set.Candidates)-maxItemsToShow))
	}

	p.printBox("CANDIDATE SETS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSolution outputs the chosen sets in a box.
func (p *Printer) PrintSolution(report *types.CoverReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Strategy:   %s\n", report.Strategy))
	sb.WriteString(fmt.Sprintf("Candidates: %s\n", humanize.Comma(int64(report.CandidateCount))))
	sb.WriteString(fmt.Sprintf("Chosen:     %d of %s\n", report.Count, humanize.Comma(int64(report.CandidateCount))))
	for i, c := range report.Solution {
		sb.WriteString(fmt.Sprintf("\n#%d  %s", i+1, shortSet(c.Items)))
		if len(c.Sources) > 0 {
			sb.WriteString(fmt.Sprintf("\n    via %s", shortName(c.Sources[0])))
			if len(c.Sources) > 1 {
				sb.WriteString(fmt.Sprintf(" and %d more", len(c.Sources)-1))
			}
		}
	}

	p.printBox("COVER SOLUTION", sb.String())
}

// WriteReport writes the plain-text cover listing: every chosen set with
// the recipes that produce it, then the set count.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func WriteReport(out io.Writer, report *types.CoverReport) {
	if report == nil {
		return
	}
	for _, c := range report.Solution {
		fmt.Fprintln(out, c.Items.String())
		if len(c.Sources) > 0 {
			fmt.Fprintf(out, "    from: %s\n", strings.Join(c.Sources, ", "))
		}
	}
	fmt.Fprintf(out, "took %d sets!\n", report.Count)
}

// shortName drops the default namespace for display.
func shortName(id string) string {
	return strings.TrimPrefix(id, "minecraft:")
}

func shortSet(set types.ItemSet) string {
	names := make([]string, len(set))
	for i, item := range set {
		names[i] = shortName(item)
	}
	return "{" + strings.Join(names, ", ") + "}"
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
