package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"camarc/internal/domain"
	appErrors "camarc/internal/errors"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseCopying
	PhaseDone
	PhaseError
)

// Messages sent by the archiver goroutine
type (
	ScanDoneMsg struct {
		Total int
	}
	CopyProgressMsg struct {
		Current int
		Total   int
		Item    domain.CopyItem
	}
	FinishedMsg struct {
		Report domain.Report
		Err    error
	}
	tickMsg time.Time
)

type Config struct {
	SourceDir string
	TargetDir string
	DryRun    bool
	Verbose   bool
	// Cancel stops the running archive when the user quits.
	Cancel func()
}

type Model struct {
	config      Config
	Phase       Phase
	Report      domain.Report
	Err         error
	Quitting    bool
	spinner     spinner.Model
	progress    progress.Model
	current     int
	total       int
	currentItem domain.CopyItem
	width       int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			if m.config.Cancel != nil {
				m.config.Cancel()
			}
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case ScanDoneMsg:
		m.total = msg.Total
		m.Phase = PhaseCopying
		return m, tickCmd()

	case CopyProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		m.currentItem = msg.Item
		return m, nil

	case FinishedMsg:
		m.Report = msg.Report
		m.Err = msg.Err
		if msg.Err != nil {
			m.Phase = PhaseError
		} else {
			m.Phase = PhaseDone
		}
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseScanning || m.Phase == PhaseCopying {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseCopying {
			var cmds []tea.Cmd
			if m.total > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.current)/float64(m.total)))
			}
			cmds = append(cmds, tickCmd())
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(fmt.Sprintf("%s Scanning source...", m.spinner.View()))
	case PhaseCopying:
		b.WriteString(m.renderCopying())
	case PhaseDone:
		b.WriteString(m.renderCompletion())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(iconClip+" camarc"),
		subtitleStyle.Render("Camera footage archiver"),
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.TargetDir))),
	)
}

func (m Model) renderCopying() string {
	var b strings.Builder

	verb := "Copying"
	if m.config.DryRun {
		verb = "Planning"
	}
	b.WriteString(sectionStyle.Render(verb + " Files"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}

	b.WriteString(fmt.Sprintf("  %s %s...\n\n", m.spinner.View(), verb))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d files", m.current, m.total)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.currentItem.TargetName != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s %s\n",
			fileNameStyle.Render(m.currentItem.Source.Name),
			iconArrow,
			targetNameStyle.Render(m.currentItem.TargetName),
		))
	}

	return b.String()
}

func (m Model) renderCompletion() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Copy Complete"))
	b.WriteString("\n\n")

	if m.Report.Succeeded() {
		b.WriteString(fmt.Sprintf("  %s %s\n\n", successStyle.Render(iconSuccess), successStyle.Render("Files copied and renamed successfully")))
	} else {
		b.WriteString(fmt.Sprintf("  %s %s\n\n", warningStyle.Render(iconWarning), warningStyle.Render(fmt.Sprintf("%d files failed", len(m.Report.Failures)))))
	}

	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Matched:"), statValueStyle.Render(fmt.Sprintf("%d files", m.Report.Total))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Copied:"), statValueStyle.Render(fmt.Sprintf("%d files", m.Report.Copied()))))

	for i, failure := range m.Report.Failures {
		if i >= 4 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", len(m.Report.Failures)-4))
			break
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", errorStyle.Render(iconError), appErrors.UserMessage(failure.Err)))
	}

	if m.config.Verbose {
		for _, w := range m.Report.Warnings {
			b.WriteString(fmt.Sprintf("  %s %s\n", warningStyle.Render(iconWarning), w))
		}
	}

	if m.config.DryRun {
		b.WriteString("\n")
		b.WriteString(highlightBoxStyle.Render("🔍 Dry Run - No files were copied"))
	}

	return b.String()
}

func (m Model) renderError() string {
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", appErrors.UserMessage(m.Err)))
	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", errorStyle.Render(iconError), msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning:
		help = "Press q to quit"
	case PhaseCopying:
		help = "Copying files... q stops after the current file"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
