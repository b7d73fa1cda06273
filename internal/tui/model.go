// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/audseg/analysis"
	"github.com/ik5/audseg/editor"
)

const (
	tickInterval  = 100 * time.Millisecond
	timelineWidth = 50
)

// Editor is the part of *editor.Session the model drives.
type Editor interface {
	Status() editor.Status
	SetStart(t float64) editor.Window
	SetEnd(t float64) editor.Window
	ResetWindow() editor.Window
	TogglePlay()
	Stop()
	Export() (editor.Segment, error)
	Analyze(ctx context.Context, a editor.Analyzer) (*analysis.Verdict, error)
}

type handle int

const (
	startHandle handle = iota
	endHandle
)

func (h handle) String() string {
	if h == endHandle {
		return "end"
	}
	return "start"
}

type tickMsg time.Time

type exportedMsg struct {
	path  string
	bytes int
	err   error
}

type analyzedMsg struct {
	verdict *analysis.Verdict
	err     error
}

// Options for NewModel.
type Options struct {
	// Title is shown in the header, usually the input file name.
	Title string
	// ExportPath is where "e" writes the segment.
	ExportPath string
	// Analyzer is used by "a"; nil disables analysis.
	Analyzer editor.Analyzer
	// Nudge is how far the arrow keys move a handle, in seconds.
	Nudge float64
	// WriteFile defaults to os.WriteFile.
	WriteFile func(path string, data []byte) error
}

// Model is the bubbletea model of the editor.
type Model struct {
	ctx     context.Context
	session Editor
	opts    Options

	status  editor.Status
	handle  handle
	busy    bool
	message string
	verdict *analysis.Verdict

	width int
}

func NewModel(ctx context.Context, session Editor, opts Options) Model {
	if opts.Nudge <= 0 {
		opts.Nudge = 0.1
	}
	if opts.WriteFile == nil {
		opts.WriteFile = func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		}
	}
	return Model{
		ctx:     ctx,
		session: session,
		opts:    opts,
		status:  session.Status(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.status = m.session.Status()
		return m, tick()
	case exportedMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.message = "export failed: " + msg.err.Error()
		case msg.bytes == 0:
			m.message = "nothing to export: the window selects no audio"
		default:
			m.message = fmt.Sprintf("wrote %d bytes to %s", msg.bytes, msg.path)
		}
	case analyzedMsg:
		m.busy = false
		if msg.err != nil {
			m.message = "analysis failed: " + msg.err.Error()
			break
		}
		m.verdict = msg.verdict
		m.message = ""
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.session.Stop()
		return m, tea.Quit
	case " ":
		m.session.TogglePlay()
	case "s":
		m.session.Stop()
	case "[":
		m.handle = startHandle
	case "]":
		m.handle = endHandle
	case "left":
		m.nudge(-m.opts.Nudge)
	case "right":
		m.nudge(m.opts.Nudge)
	case "r":
		m.session.ResetWindow()
	case "e":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.message = "exporting..."
		m.status = m.session.Status()
		return m, m.export()
	case "a":
		if m.busy {
			return m, nil
		}
		if m.opts.Analyzer == nil {
			m.message = "analysis is not configured"
			return m, nil
		}
		m.busy = true
		m.message = "analyzing..."
		return m, m.analyze()
	}

	m.status = m.session.Status()
	return m, nil
}

func (m *Model) nudge(delta float64) {
	w := m.session.Status().Window
	if m.handle == startHandle {
		m.session.SetStart(w.Start + delta)
	} else {
		m.session.SetEnd(w.End + delta)
	}
}

func (m Model) export() tea.Cmd {
	session, path, write := m.session, m.opts.ExportPath, m.opts.WriteFile
	return func() tea.Msg {
		seg, err := session.Export()
		if err != nil {
			return exportedMsg{err: err}
		}
		if seg.Empty() {
			return exportedMsg{path: path}
		}
		if err := write(path, seg.Data); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path, bytes: len(seg.Data)}
	}
}

func (m Model) analyze() tea.Cmd {
	ctx, session, a := m.ctx, m.session, m.opts.Analyzer
	return func() tea.Msg {
		v, err := session.Analyze(ctx, a)
		return analyzedMsg{verdict: v, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	st := m.status
	fmt.Fprintf(&b, "audseg  %s\n", m.opts.Title)
	if !st.Loaded {
		b.WriteString("\nno clip loaded\n")
		b.WriteString(renderHelp())
		return b.String()
	}

	fmt.Fprintf(&b, "%s  %d Hz  %s\n\n", formatSeconds(st.Duration), st.SampleRate, channelName(st.Channels))
	b.WriteString(renderTimeline(st, timelineWidth))
	b.WriteString("\n")
	fmt.Fprintf(&b, "window %s - %s (%s)   editing %s\n",
		formatSeconds(st.Window.Start), formatSeconds(st.Window.End),
		formatSeconds(st.Window.Duration()), m.handle)
	fmt.Fprintf(&b, "%-8s %s / %s\n", st.Playback.State,
		formatSeconds(st.Playback.Position), formatSeconds(st.Window.Duration()))

	if m.verdict != nil {
		b.WriteString("\n")
		b.WriteString(renderVerdict(m.verdict))
	}
	if m.message != "" {
		fmt.Fprintf(&b, "\n%s\n", m.message)
	}

	b.WriteString(renderHelp())
	return b.String()
}

// renderTimeline draws the clip as a bar with the window in brackets and
// the play head as a pipe.
func renderTimeline(st editor.Status, width int) string {
	if st.Duration <= 0 {
		return strings.Repeat("-", width)
	}

	col := func(t float64) int {
		return min(width-1, max(0, int(t/st.Duration*float64(width))))
	}

	line := []rune(strings.Repeat("-", width))
	from, to := col(st.Window.Start), col(st.Window.End)
	for i := from; i <= to; i++ {
		line[i] = '='
	}
	if st.Playback.State != editor.Stopped {
		line[col(st.Window.Start+st.Playback.Position)] = '|'
	}
	line[from] = '['
	line[to] = ']'

	return string(line)
}

func renderVerdict(v *analysis.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "sentiment %s  score %+.2f  confidence %.0f%%\n", v.Sentiment, v.Score, v.Confidence*100)
	if d := v.Dominant(); d.Label != "" {
		fmt.Fprintf(&b, "emotion   %s (%.2f)\n", d.Label, d.Score)
	}
	if v.Summary != "" {
		fmt.Fprintf(&b, "summary   %s\n", v.Summary)
	}
	if v.Transcript != "" {
		fmt.Fprintf(&b, "heard     %q\n", v.Transcript)
	}
	return b.String()
}

func renderHelp() string {
	return "\nspace play/pause  s stop  [ ] pick handle  ←/→ nudge  r reset  e export  a analyze  q quit\n"
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.2fs", s)
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d ch", channels)
	}
}

// Run shows the editor until the user quits or ctx is done.
func Run(ctx context.Context, session Editor, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, session, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
