package presentation

import (
	"fmt"
	"io"

	"camarc/internal/domain"
	appErrors "camarc/internal/errors"
)

const CompletionMessage = "Files copied and renamed successfully"

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintProgress(current, total int) {
	fmt.Fprintf(p.Writer, "copied %d of %d files\n", current, total)
}

func (p Printer) PrintDryRun(report domain.Report) {
	fmt.Fprintln(p.Writer, "Would copy:")
	fmt.Fprintln(p.Writer)

	lines := formatCopyLines(report.Items)
	if !p.Verbose {
		lines = truncate(lines)
	}
	for _, line := range lines {
		fmt.Fprintln(p.Writer, line)
	}

	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "Dry run: %d of %d files would be copied into %s.\n", report.Copied(), report.Total, report.TargetDir)
	p.printFailures(report)
	p.printWarnings(report)
}

func (p Printer) PrintCompletion(report domain.Report) {
	fmt.Fprintln(p.Writer)
	if report.Succeeded() {
		fmt.Fprintln(p.Writer, CompletionMessage)
	} else {
		fmt.Fprintf(p.Writer, "Copied %d of %d files, %d failed.\n", report.Copied(), report.Total, len(report.Failures))
	}
	p.printFailures(report)
	p.printWarnings(report)
}

func (p Printer) printFailures(report domain.Report) {
	if len(report.Failures) == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Failed:")
	for _, failure := range report.Failures {
		fmt.Fprintln(p.Writer, "- "+appErrors.UserMessage(failure.Err))
	}
}

func (p Printer) printWarnings(report domain.Report) {
	if !p.Verbose || len(report.Warnings) == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Warnings:")
	for _, warning := range report.Warnings {
		fmt.Fprintln(p.Writer, "- "+warning)
	}
}

func formatCopyLines(items []domain.CopyItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("Copy %s  ->  %s", item.Source.Name, item.TargetName))
	}
	return lines
}

func truncate(lines []string) []string {
	if len(lines) <= 4 {
		return lines
	}
	head := lines[:2:2]
	tail := lines[len(lines)-2:]
	return append(append(head, "..."), tail...)
}
