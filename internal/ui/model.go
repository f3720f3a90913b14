package ui

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdfquery/internal/config"
	"pdfquery/internal/desktop"
	"pdfquery/internal/export"
	"pdfquery/internal/lifecycle"
	"pdfquery/internal/session"
	"pdfquery/internal/transport"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Controller is the subset of *lifecycle.Controller the model drives.
type Controller interface {
	Snapshot() lifecycle.State
	Subscribe() (<-chan lifecycle.State, func())
	StagePath(path string) error
	Unstage(i int) error
	Submit(ctx context.Context) error
	Ask(ctx context.Context, question string) error
	Clear(ctx context.Context) error
	NewSession(ctx context.Context) error
	ExportReference() string
	Acknowledge()
}

type inputMode int

const (
	inputNone inputMode = iota
	inputAsk
	inputPath
	inputFind
)

type Model struct {
	ctrl     Controller
	exporter *export.Exporter
	openURI  func(context.Context, string) error
	copyText func(context.Context, string) error

	states      <-chan lifecycle.State
	unsubscribe func()

	list     list.Model
	viewport viewport.Model
	help     help.Model
	spinner  spinner.Model
	input    textinput.Model
	keys     keyMap

	width  int
	height int

	focusOnList bool
	mode        inputMode
	spinning    bool
	rendering   bool
	renderNonce int
	renderKey   string
	rendered    string

	findQuery  string
	matchLines []int
	matchCount int
	matchIndex int

	state   lifecycle.State
	pending string

	status string
	err    error
}

type stateMsg struct {
	state lifecycle.State
	ok    bool
}
type actionMsg struct {
	op  string
	arg string
	err error
}
type exportMsg struct {
	path string
	err  error
}
type openMsg struct {
	uri string
	err error
}
type copyMsg struct {
	uri string
	err error
}
type renderMsg struct {
	key      string
	rendered string
	nonce    int
}

type stagedItem struct {
	f     session.StagedFile
	width int
}

func (i stagedItem) Title() string {
	return ansi.Truncate(i.f.Name, i.width, "…")
}

func (i stagedItem) Description() string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(i.f.Name)), ".")
	return humanSize(i.f.Size) + " | " + ext
}

func (i stagedItem) FilterValue() string {
	return strings.ToLower(i.f.Name)
}

func NewModel(ctrl Controller, exp *export.Exporter) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Staged files"
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	vp := viewport.New(60, 20)
	vp.SetContent("Loading...")

	h := help.New()
	h.ShowAll = false

	sp := spinner.New()
	sp.Spinner = spinner.Points

	ti := textinput.New()
	ti.CharLimit = 2000

	states, unsubscribe := ctrl.Subscribe()
	m := Model{
		ctrl:        ctrl,
		exporter:    exp,
		openURI:     desktop.Open,
		copyText:    desktop.Copy,
		states:      states,
		unsubscribe: unsubscribe,
		list:        l,
		viewport:    vp,
		help:        h,
		spinner:     sp,
		input:       ti,
		keys:        defaultKeys(),
		focusOnList: true,
		state:       ctrl.Snapshot(),
	}
	m.syncKeys()
	return m
}

// Close stops the state subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd {
	return waitState(m.states)
}

func waitState(ch <-chan lifecycle.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		return stateMsg{state: st, ok: ok}
	}
}

func (m Model) stageCmd(path string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return actionMsg{op: "stage", arg: path, err: ctrl.StagePath(path)}
	}
}

func (m Model) unstageCmd(i int) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return actionMsg{op: "unstage", err: ctrl.Unstage(i)}
	}
}

func (m Model) submitCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return actionMsg{op: "process", err: ctrl.Submit(context.Background())}
	}
}

func (m Model) askCmd(q string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return actionMsg{op: "ask", arg: q, err: ctrl.Ask(context.Background(), q)}
	}
}

func (m Model) clearCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return actionMsg{op: "clear", err: ctrl.Clear(context.Background())}
	}
}

func (m Model) newSessionCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return actionMsg{op: "new session", err: ctrl.NewSession(context.Background())}
	}
}

func (m Model) exportCmd() tea.Cmd {
	if m.exporter == nil || len(m.state.History) == 0 {
		return nil
	}
	exp := m.exporter
	tok, pairs := m.state.Token, m.state.History
	return func() tea.Msg {
		path, err := exp.Export(tok, pairs)
		return exportMsg{path: path, err: err}
	}
}

func (m Model) openCmd() tea.Cmd {
	uri := m.ctrl.ExportReference()
	open := m.openURI
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return openMsg{uri: uri, err: open(ctx, uri)}
	}
}

func (m Model) copyCmd() tea.Cmd {
	uri := m.ctrl.ExportReference()
	copyText := m.copyText
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return copyMsg{uri: uri, err: copyText(ctx, uri)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.applyStaged(m.state.Staged)
		cmds = append(cmds, m.renderConversation(true))

	case stateMsg:
		if !msg.ok {
			m.states = nil
			break
		}
		cmds = append(cmds, m.applyState(msg.state), waitState(m.states))

	case actionMsg:
		cmds = append(cmds, m.handleAction(msg))

	case exportMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.err = nil
			m.status = "Exported: " + msg.path
		}

	case openMsg:
		if msg.err != nil {
			m.err = msg.err
			if errors.Is(msg.err, desktop.ErrToolNotFound) {
				m.status = "No browser opener found; PDF is at " + msg.uri
			} else {
				m.status = "Could not open PDF: " + msg.err.Error()
			}
		} else {
			m.err = nil
			m.status = "Opened PDF export"
		}

	case copyMsg:
		if msg.err != nil {
			m.err = msg.err
			if errors.Is(msg.err, desktop.ErrToolNotFound) {
				m.status = "Could not copy: clipboard tool not found"
			} else {
				m.status = "Could not copy: " + msg.err.Error()
			}
		} else {
			m.err = nil
			m.status = "Copied PDF link to clipboard"
		}

	case renderMsg:
		if msg.nonce != m.renderNonce {
			break
		}
		m.rendering = false
		m.rendered = msg.rendered
		m.refreshViewport(true)

	case spinner.TickMsg:
		if m.spinning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.focusOnList = !m.focusOnList
		return m, nil
	case key.Matches(msg, m.keys.FocusLeft):
		m.focusOnList = true
		return m, nil
	case key.Matches(msg, m.keys.FocusRight):
		m.focusOnList = false
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.AddFile):
		return m, m.beginInput(inputPath)
	case key.Matches(msg, m.keys.RemoveFile):
		if !m.focusOnList || len(m.state.Staged) == 0 {
			return m, nil
		}
		return m, m.unstageCmd(m.list.Index())
	case key.Matches(msg, m.keys.Process):
		m.status = fmt.Sprintf("Uploading %d file(s)...", len(m.state.Staged))
		return m, m.submitCmd()
	case key.Matches(msg, m.keys.Ask):
		return m, m.beginInput(inputAsk)
	case key.Matches(msg, m.keys.Clear):
		return m, m.clearCmd()
	case key.Matches(msg, m.keys.ExportPDF):
		return m, m.openCmd()
	case key.Matches(msg, m.keys.ExportMarkdown):
		return m, m.exportCmd()
	case key.Matches(msg, m.keys.CopyURL):
		return m, m.copyCmd()
	case key.Matches(msg, m.keys.NewSession):
		return m, m.newSessionCmd()
	case key.Matches(msg, m.keys.Find):
		return m, m.beginInput(inputFind)
	case key.Matches(msg, m.keys.NextMatch):
		m.jumpToMatch(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevMatch):
		m.jumpToMatch(-1)
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.Acknowledge()
		m.status = ""
		m.err = nil
		if m.findQuery != "" {
			m.findQuery = ""
			m.refreshViewport(false)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusOnList {
		m.list, cmd = m.list.Update(msg)
	} else {
		switch msg.String() {
		case "up", "k":
			m.viewport.LineUp(1)
		case "down", "j":
			m.viewport.LineDown(1)
		}
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.endInput()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.endInput()
		switch mode {
		case inputAsk:
			if value == "" {
				m.status = "Question is empty"
				return m, nil
			}
			m.pending = value
			return m, tea.Batch(m.askCmd(value), m.renderConversation(false))
		case inputPath:
			if value == "" {
				return m, nil
			}
			return m, m.stageCmd(expandHome(value))
		case inputFind:
			m.findQuery = value
			m.refreshViewport(false)
			if value != "" && m.matchCount == 0 {
				m.status = "No matches for " + value
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) beginInput(mode inputMode) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	switch mode {
	case inputAsk:
		m.input.Prompt = "? "
		m.input.Placeholder = "Ask a question about your documents..."
	case inputPath:
		m.input.Prompt = "+ "
		m.input.Placeholder = "Path to a .pdf, .pptx or .docx file"
	case inputFind:
		m.input.Prompt = "/ "
		m.input.Placeholder = "Find in conversation..."
	}
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) applyState(st lifecycle.State) tea.Cmd {
	m.state = st
	m.syncKeys()
	m.applyStaged(st.Staged)

	var cmds []tea.Cmd
	busy := st.Phase.Transient() || st.Asking || st.Clearing || st.Resetting || st.Rehydrating
	if busy && !m.spinning {
		cmds = append(cmds, m.spinner.Tick)
	}
	m.spinning = busy
	if m.mode == inputAsk && st.Phase != session.Active {
		m.endInput()
	}
	cmds = append(cmds, m.renderConversation(false))
	return tea.Batch(cmds...)
}

func (m *Model) handleAction(msg actionMsg) tea.Cmd {
	if msg.op == "ask" {
		m.pending = ""
	}
	switch {
	case msg.err == nil:
		m.err = nil
		m.status = actionDone(msg)
	case errors.Is(msg.err, lifecycle.ErrStale):
		m.err = nil
		m.status = "Answer discarded: the conversation changed while it was pending"
	case errors.Is(msg.err, lifecycle.ErrBusy):
		m.status = strings.ToUpper(msg.op[:1]) + msg.op[1:] + " unavailable: another operation is running"
	default:
		m.err = msg.err
		m.status = describeFailure(msg.op, msg.err)
		if msg.op == "ask" && m.mode == inputNone {
			m.input.SetValue(msg.arg)
		}
	}
	return m.renderConversation(false)
}

func actionDone(msg actionMsg) string {
	switch msg.op {
	case "stage":
		return "Staged " + filepath.Base(msg.arg)
	case "unstage":
		return "Removed file from staging"
	case "process":
		return "Documents processed; ask away"
	case "clear":
		return "Conversation cleared"
	case "new session":
		return "Started over; stage new documents"
	default:
		return ""
	}
}

func describeFailure(op string, err error) string {
	var terr *transport.Error
	if errors.As(err, &terr) {
		switch terr.Kind {
		case transport.NetworkUnavailable:
			return op + " failed: server unreachable"
		case transport.ServerRejected:
			if terr.Message != "" {
				return fmt.Sprintf("%s rejected (%d): %s", op, terr.Status, terr.Message)
			}
			return fmt.Sprintf("%s rejected (%d)", op, terr.Status)
		case transport.MalformedResponse:
			return op + " failed: unexpected server response"
		case transport.LocalValidation:
			return terr.Message
		}
	}
	if errors.Is(err, lifecycle.ErrNotActive) {
		return op + " needs an active session"
	}
	return op + " failed: " + err.Error()
}

func (m *Model) applyStaged(files []session.StagedFile) {
	left, _ := m.paneWidths()
	width := left - 6
	if width < 10 {
		width = 10
	}
	items := make([]list.Item, 0, len(files))
	for _, f := range files {
		items = append(items, stagedItem{f: f, width: width})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

func (m *Model) syncKeys() {
	st := m.state
	m.keys.AddFile.SetEnabled(st.CanStage())
	m.keys.RemoveFile.SetEnabled(st.CanStage() && len(st.Staged) > 0)
	m.keys.Process.SetEnabled(st.CanSubmit())
	m.keys.Ask.SetEnabled(st.CanAsk())
	m.keys.Clear.SetEnabled(st.CanClear())
	m.keys.ExportPDF.SetEnabled(st.CanExport())
	m.keys.ExportMarkdown.SetEnabled(st.CanExport() && m.exporter != nil)
	m.keys.CopyURL.SetEnabled(st.CanExport())
	m.keys.NewSession.SetEnabled(st.Phase == session.Active && !st.Resetting)
}

// renderConversation re-renders the transcript when its Markdown or the
// viewport width changed. Results from superseded renders are dropped.
func (m *Model) renderConversation(force bool) tea.Cmd {
	md := conversationMarkdown(m.state, m.pending)
	h := fnv.New64a()
	_, _ = h.Write([]byte(md))
	renderKey := fmt.Sprintf("%x|w=%d", h.Sum64(), m.viewport.Width)
	if !force && renderKey == m.renderKey {
		return nil
	}
	m.renderKey = renderKey
	m.rendering = true
	m.renderNonce++
	wrap := m.viewport.Width - 2
	if wrap < 20 {
		wrap = 20
	}
	return renderCmd(renderKey, md, wrap, m.renderNonce)
}

func renderCmd(renderKey, md string, wrap, nonce int) tea.Cmd {
	return func() tea.Msg {
		rendered := md
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(config.DefaultGlamourStyle),
			glamour.WithWordWrap(wrap),
		)
		if err == nil {
			if out, renderErr := r.Render(md); renderErr == nil {
				rendered = out
			}
		}
		return renderMsg{key: renderKey, rendered: rendered, nonce: nonce}
	}
}

func (m *Model) refreshViewport(gotoEnd bool) {
	res := findInRendered(m.rendered, m.findQuery, func(s string) string {
		return findMatchStyle.Render(s)
	})
	m.matchLines = res.Lines
	m.matchCount = res.Count
	m.matchIndex = -1
	m.viewport.SetContent(res.Text)
	switch {
	case len(m.matchLines) > 0:
		m.jumpToMatch(1)
	case gotoEnd:
		m.viewport.GotoBottom()
	}
}

func (m *Model) jumpToMatch(delta int) {
	if len(m.matchLines) == 0 {
		return
	}
	n := len(m.matchLines)
	m.matchIndex = ((m.matchIndex+delta)%n + n) % n
	m.viewport.SetYOffset(m.matchLines[m.matchIndex])
}

func conversationMarkdown(st lifecycle.State, pending string) string {
	var b strings.Builder
	switch {
	case st.Phase == session.NoSession:
		b.WriteString("# No active session\n\n")
		b.WriteString("Stage PDF, PPTX or DOCX files with `a`, then press `p` to process them.\n")
		return b.String()
	case st.Phase == session.Uploading:
		b.WriteString("_Uploading documents..._\n\n")
	case st.Phase == session.Processing:
		b.WriteString("_Processing documents..._\n\n")
	case st.Rehydrating:
		b.WriteString("_Loading previous conversation..._\n\n")
	}

	if len(st.History) > 0 {
		b.WriteString(export.BuildTranscriptMarkdown(st.History))
	} else if st.Phase == session.Active && !st.Rehydrating && pending == "" {
		b.WriteString("_Documents are ready. Press `i` to ask a question._\n")
	}
	if st.Asking && pending != "" {
		fmt.Fprintf(&b, "\n## Q%d: %s\n\n_Waiting for answer..._\n", len(st.History)+1, pending)
	}
	return b.String()
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	left, right := m.paneWidths()

	bodyHeight := m.height - 2
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	m.list.SetSize(left-2, bodyHeight-2)
	m.viewport.Width = right - 2
	m.viewport.Height = bodyHeight - 2
	m.help.Width = m.width
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Starting..."
	}

	status := m.statusLine()
	left, right := m.paneWidths()
	leftPane := panelStyle(m.focusOnList).Width(left).Height(m.height - 2).Render(m.list.View())
	rightPane := panelStyle(!m.focusOnList).Width(right).Height(m.height - 2).Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	helpView := m.help.View(m.keys)
	if m.mode != inputNone {
		helpView = m.input.View() + "  " + inputHelpStyle.Render("enter send | esc cancel")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		body,
		helpView,
	)
}

func (m Model) statusLine() string {
	st := m.state
	status := "phase=" + st.Phase.String()
	if m.spinning {
		status = m.spinner.View() + " " + status
	}
	if st.Token.Present() {
		status += "  session=" + shorten(string(st.Token), 18)
	}
	var total int64
	for _, f := range st.Staged {
		total += f.Size
	}
	status += fmt.Sprintf("  qa=%d  staged=%d (%s)", len(st.History), len(st.Staged), humanSize(total))
	if st.Asking {
		status += "  [asking]"
	}
	if st.Clearing {
		status += "  [clearing]"
	}
	if st.Rehydrating {
		status += "  [loading history]"
	}
	if m.rendering {
		status += "  [rendering]"
	}
	if m.findQuery != "" {
		status += fmt.Sprintf("  [find %q %d/%d]", m.findQuery, m.matchIndex+1, len(m.matchLines))
	}
	if st.Warning != "" {
		status += "  warning: " + shorten(st.Warning, 60)
	}
	if strings.TrimSpace(m.status) != "" {
		status += "  " + shorten(strings.TrimSpace(m.status), 80)
	}
	if m.err != nil {
		return errorStatusStyle.Render(status)
	}
	return statusStyle.Render(status)
}

func (m *Model) paneWidths() (int, int) {
	left := m.width / 3
	if left < 32 {
		left = 32
	}
	if left > m.width-32 {
		left = m.width - 32
	}
	if left < 20 {
		left = 20
	}
	right := m.width - left - 1
	if right < 20 {
		right = 20
	}
	return left, right
}

func shorten(s string, n int) string {
	return ansi.Truncate(strings.TrimSpace(s), n, "...")
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)
	errorStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("231")).
				Background(lipgloss.Color("124")).
				Padding(0, 1)
	inputHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	findMatchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("220"))
)

func panelStyle(active bool) lipgloss.Style {
	border := lipgloss.NormalBorder()
	if active {
		return lipgloss.NewStyle().
			Border(border, true).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
	}
	return lipgloss.NewStyle().
		Border(border, true).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}

type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	FocusLeft      key.Binding
	FocusRight     key.Binding
	Tab            key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	AddFile        key.Binding
	RemoveFile     key.Binding
	Process        key.Binding
	Ask            key.Binding
	Clear          key.Binding
	ExportPDF      key.Binding
	ExportMarkdown key.Binding
	CopyURL        key.Binding
	NewSession     key.Binding
	Find           key.Binding
	NextMatch      key.Binding
	PrevMatch      key.Binding
	Dismiss        key.Binding
	Quit           key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		FocusLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "focus files"),
		),
		FocusRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "focus conversation"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle focus"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		AddFile: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add file"),
		),
		RemoveFile: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove file"),
		),
		Process: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "process"),
		),
		Ask: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i", "ask"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear history"),
		),
		ExportPDF: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open PDF"),
		),
		ExportMarkdown: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export markdown"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy PDF link"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new session"),
		),
		Find: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev match"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddFile, k.RemoveFile, k.Process, k.Ask, k.Clear, k.ExportPDF, k.ExportMarkdown, k.NewSession, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.FocusLeft, k.FocusRight, k.Tab, k.PageUp, k.PageDown, k.Find, k.NextMatch, k.PrevMatch},
		{k.AddFile, k.RemoveFile, k.Process, k.Ask, k.Clear},
		{k.ExportPDF, k.ExportMarkdown, k.CopyURL, k.NewSession, k.Dismiss, k.Quit},
	}
}
