package cliapp

import (
	"fmt"
	coreapp "interfacer/internal/core/app"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

// printArtifacts writes artifacts that were not saved to disk.
func printArtifacts(w io.Writer, res *coreapp.Result) {
	for _, art := range res.Artifacts {
		if art.Path != "" {
			continue
		}
		header := art.Format
		if art.Entry != "" {
			header = art.Entry + " (" + art.Format + ")"
		}
		fmt.Fprintln(w, titleStyle("# "+header))
		fmt.Fprint(w, art.Content)
		if !strings.HasSuffix(art.Content, "\n") {
			fmt.Fprintln(w)
		}
	}
}

func printSummary(w io.Writer, res *coreapp.Result, err error) {
	batch := res.Batch
	for _, f := range batch.Files {
		if f.Err != nil {
			fmt.Fprintf(w, "%s %s\n    %v\n", errorStyle.Render("FAIL"), f.Path, f.Err)
		}
	}
	for _, art := range res.Artifacts {
		if art.Path != "" {
			fmt.Fprintf(w, "%s %s\n", statusStyle.Render("wrote"), art.Path)
		}
	}
	if len(res.Cycles) > 0 {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("%d import cycle(s)", len(res.Cycles))))
		for _, c := range res.Cycles {
			fmt.Fprintf(w, "    %s\n", strings.Join(c, " -> "))
		}
	}

	status := successStyle.Render("ok")
	if err != nil || batch.Failed() > 0 {
		status = errorStyle.Render("failed")
	}
	fmt.Fprintf(w, "%s %s %s\n", status, batch.Summary(), statusStyle.Render(fmt.Sprintf("in %s (batch %s)", batch.Duration.Round(time.Microsecond), batch.ID)))
}
