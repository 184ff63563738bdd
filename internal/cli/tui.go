package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pawfetch/pkg/card"
)

const (
	cardWidth = 50

	// fadeInterval paces the image entry transition.
	fadeInterval = 70 * time.Millisecond

	headerTitle   = "🐶 PawFetch"
	headerTagline = "Animated Random Dog Generator"
	headerAbout   = "Fetch random dog images, names, and breeds from public APIs with smooth animations, dark/light mode, and download support."
)

// cycleRunner runs one fetch cycle. [card.Fetcher] satisfies it.
type cycleRunner interface {
	Fetch(ctx context.Context, seq uint64) card.Result
}

// saveFunc downloads url as filename and returns the written path.
type saveFunc func(ctx context.Context, url, filename string) (string, error)

// =============================================================================
// Messages
// =============================================================================

// mountMsg starts the first fetch cycle once the program is running.
type mountMsg struct{}

// cycleDoneMsg carries the result of a fetch cycle back into Update.
type cycleDoneMsg struct{ result card.Result }

// fadeMsg advances the entry transition of the image identified by key.
type fadeMsg struct{ key string }

// savedMsg reports the outcome of a download.
type savedMsg struct {
	path string
	err  error
}

// =============================================================================
// CardModel - terminal dog card
// =============================================================================

// CardModel is the bubbletea model for the terminal dog card.
//
// The model owns its [card.State]; Update is the only place it changes.
// Fetch cycles and downloads run as commands and report back as messages.
type CardModel struct {
	ctx     context.Context
	fetcher cycleRunner
	save    saveFunc

	state   card.State
	spinner spinner.Model

	// fadeKey is the image URL the running transition belongs to, so a
	// changed URL always restarts it.
	fadeKey  string
	fadeStep int

	status   string
	quitting bool
}

// NewCardModel creates a card model. save may be nil to disable downloads.
func NewCardModel(ctx context.Context, fetcher cycleRunner, save saveFunc, theme card.Theme) CardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return CardModel{
		ctx:     ctx,
		fetcher: fetcher,
		save:    save,
		state:   card.State{Theme: theme},
		spinner: s,
	}
}

// State returns a copy of the current card state.
func (m CardModel) State() card.State { return m.state }

func (m CardModel) Init() tea.Cmd {
	return func() tea.Msg { return mountMsg{} }
}

func (m CardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		return m, m.newDog()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "n", "r", "enter", " ":
			return m, m.newDog()
		case "t":
			m.state.ToggleTheme()
			return m, nil
		case "d":
			return m, m.download()
		}

	case cycleDoneMsg:
		before := m.state.Image
		if !m.state.Finish(msg.result) {
			return m, nil
		}
		if m.state.Image != "" && m.state.Image != before {
			m.fadeKey, m.fadeStep = m.state.Image, 0
			return m, fadeTick(m.fadeKey)
		}
		// Same or no image: nothing to transition, show it fully.
		m.fadeStep = len(lightPalette.fade) - 1
		return m, nil

	case fadeMsg:
		if msg.key != m.fadeKey || m.fadeStep >= len(lightPalette.fade)-1 {
			return m, nil
		}
		m.fadeStep++
		return m, fadeTick(m.fadeKey)

	case savedMsg:
		if msg.err != nil {
			m.status = "Download failed: " + msg.err.Error()
		} else {
			m.status = "Saved " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// newDog begins a fetch cycle and returns the commands that run it.
// A cycle already in flight is not cancelled; its result is discarded on
// arrival because it no longer carries the latest sequence number.
func (m *CardModel) newDog() tea.Cmd {
	seq := m.state.Begin()
	m.status = ""
	ctx, fetcher := m.ctx, m.fetcher
	run := func() tea.Msg {
		return cycleDoneMsg{result: fetcher.Fetch(ctx, seq)}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *CardModel) download() tea.Cmd {
	if m.save == nil || m.state.Image == "" {
		m.status = "Nothing to download yet"
		return nil
	}
	m.status = "Downloading " + m.state.DownloadFilename() + "..."
	ctx, save := m.ctx, m.save
	url, filename := m.state.Image, m.state.DownloadFilename()
	return func() tea.Msg {
		path, err := save(ctx, url, filename)
		return savedMsg{path: path, err: err}
	}
}

func fadeTick(key string) tea.Cmd {
	return tea.Tick(fadeInterval, func(time.Time) tea.Msg { return fadeMsg{key: key} })
}

// =============================================================================
// View
// =============================================================================

func (m CardModel) View() string {
	if m.quitting {
		return ""
	}
	p := paletteFor(m.state.Theme)
	inner := cardWidth - 4

	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(headerTitle)
	icon := lipgloss.NewStyle().Foreground(p.muted).Render(m.state.Theme.Icon())
	gap := inner - lipgloss.Width(title) - lipgloss.Width(icon)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(title + strings.Repeat(" ", gap) + icon + "\n")
	b.WriteString(center.Foreground(p.muted).Render(headerTagline) + "\n")
	b.WriteString(center.Foreground(p.faint).Render(headerAbout) + "\n\n")

	b.WriteString(center.Bold(true).Foreground(p.text).Render(m.state.NameLabel()) + "\n")
	b.WriteString(center.Foreground(p.muted).Render("Breed: "+m.state.BreedLabel()) + "\n\n")

	b.WriteString(m.imagePanel(p, inner) + "\n\n")
	b.WriteString(m.actions(p, inner))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1).
		Width(cardWidth - 2)

	out := box.Render(b.String()) + "\n"
	if m.status != "" {
		out += lipgloss.NewStyle().Foreground(p.faint).Render(" "+m.status) + "\n"
	}
	out += StyleDim.Render(" n new dog · t theme · d download · q quit")
	return out
}

func (m CardModel) imagePanel(p palette, width int) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.faint).
		Width(width - 2).
		Height(5).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case m.state.Loading:
		m.spinner.Style = lipgloss.NewStyle().Foreground(p.accent)
		return frame.Render(m.spinner.View() + " fetching")
	case m.state.Image == "":
		return frame.Foreground(p.faint).Render("no dog yet")
	}

	step := m.fadeStep
	if step >= len(p.fade) {
		step = len(p.fade) - 1
	}
	// Entry transition: the panel content brightens one palette step per tick.
	content := "🐕\n" + m.state.Image
	return frame.Foreground(p.fade[step]).Render(content)
}

func (m CardModel) actions(p palette, width int) string {
	newDog := lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render("[n] ↻ New Dog")

	dl := fmt.Sprintf("[d] ⬇ %s", m.state.DownloadFilename())
	dlStyle := lipgloss.NewStyle().Foreground(p.action)
	if m.state.Image == "" || m.save == nil {
		dlStyle = dlStyle.Foreground(p.faint)
	}
	download := dlStyle.Render(dl)

	gap := width - lipgloss.Width(newDog) - lipgloss.Width(download)
	if gap < 1 {
		gap = 1
	}
	return newDog + strings.Repeat(" ", gap) + download
}
