// Package editor is the terminal host for the completion engine: a
// full-screen text editor with live highlighting, a completion popup and a
// debounced preview pane.
package editor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/zenedit/internal/buffer"
	"github.com/zjrosen/zenedit/internal/catalog"
	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/keys"
	"github.com/zjrosen/zenedit/internal/log"
	"github.com/zjrosen/zenedit/internal/preview"
	"github.com/zjrosen/zenedit/internal/pubsub"
)

// autoPairs maps an opener to the closer inserted after it.
var autoPairs = map[string]string{
	"{":  "}",
	"[":  "]",
	"(":  ")",
	"\"": "\"",
}

// Config holds editor options.
type Config struct {
	Path        string
	AutoClose   bool
	PopupHeight int
	ShowPreview bool
}

// SaveFunc persists the document.
type SaveFunc func(path, text string) error

// Model is the editor Bubble Tea model.
type Model struct {
	ctx       context.Context
	engine    *completion.Engine
	scheduler *preview.Scheduler
	save      SaveFunc
	cfg       Config

	buf      buffer.Buffer
	update   completion.Update
	top      int
	dirty    bool

	keys        keys.EditorKeyMap
	help        help.Model
	preview     viewport.Model
	zones       string
	reloads     *pubsub.Listener[catalog.Reload]
	showHelp    bool
	showPreview bool

	width     int
	height    int
	status    string
	statusErr bool
}

// Option configures a Model.
type Option func(*Model)

// WithScheduler renders previews through s.
func WithScheduler(s *preview.Scheduler) Option {
	return func(m *Model) {
		m.scheduler = s
	}
}

// WithCatalogEvents reports catalog reloads from sub in the status bar.
func WithCatalogEvents(sub pubsub.Subscriber[catalog.Reload]) Option {
	return func(m *Model) {
		if sub != nil {
			m.reloads = pubsub.NewListener(m.ctx, sub)
		}
	}
}

// WithSaveFunc replaces the default file writer.
func WithSaveFunc(fn SaveFunc) Option {
	return func(m *Model) {
		if fn != nil {
			m.save = fn
		}
	}
}

// New creates an editor over text with the cursor at the start.
func New(ctx context.Context, engine *completion.Engine, text string, cfg Config, opts ...Option) Model {
	if cfg.PopupHeight < 1 {
		cfg.PopupHeight = 8
	}
	m := Model{
		ctx:         ctx,
		engine:      engine,
		save:        writeFile,
		cfg:         cfg,
		buf:         buffer.New(text),
		keys:        keys.Editor,
		help:        help.New(),
		preview:     viewport.New(0, 0),
		zones:       zone.NewPrefix(),
		showPreview: cfg.ShowPreview,
		width:       80,
		height:      24,
	}
	for _, opt := range opts {
		opt(&m)
	}

	// Prime the engine so highlighting and Commit see the loaded text. The
	// cursor starts at 0, so no session can open.
	m.update, _ = engine.OnTextChanged(ctx, text, 0)
	m.requestPreview()
	return m
}

// Init starts listening for preview results and catalog reloads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitPreview(), m.reloads.Listen())
}

// Text returns the document text.
func (m Model) Text() string { return m.buf.Text }

// Cursor returns the cursor offset.
func (m Model) Cursor() int { return m.buf.Cursor }

// Dirty reports whether there are unsaved changes.
func (m Model) Dirty() bool { return m.dirty }

// Session returns the open completion session, or nil.
func (m Model) Session() *completion.Session { return m.update.Session }

// Status returns the status bar message.
func (m Model) Status() string { return m.status }

type savedMsg struct {
	path string
	err  error
}

type previewMsg preview.Result

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizePreview()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case savedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("save failed: %v", msg.err), true)
			return m, nil
		}
		m.dirty = false
		m.setStatus("saved "+msg.path, false)
		return m, nil

	case previewMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("preview failed: %v", msg.Err), true)
		} else {
			m.preview.SetContent(msg.Output)
		}
		return m, m.waitPreview()

	case pubsub.Event[catalog.Reload]:
		if msg.Payload.Err != nil {
			m.setStatus(fmt.Sprintf("catalog reload failed: %v", msg.Payload.Err), true)
		} else {
			m.setStatus(fmt.Sprintf("catalog reloaded (%d candidates)", msg.Payload.Candidates), false)
		}
		return m, m.reloads.Listen()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	open := m.update.Session.IsOpen()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.TogglePreview):
		m.showPreview = !m.showPreview
		m.resizePreview()
		return m, nil

	case open && key.Matches(msg, m.keys.Up):
		m.update = m.engine.Navigate(m.ctx, completion.Up)
		return m, nil

	case open && key.Matches(msg, m.keys.Down):
		m.update = m.engine.Navigate(m.ctx, completion.Down)
		return m, nil

	case open && key.Matches(msg, m.keys.Commit):
		m.commit()
		return m, nil

	case open && key.Matches(msg, m.keys.Cancel):
		m.update = m.engine.Cancel(m.ctx)
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.showHelp = false
		m.help.ShowAll = false
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		m.textChanged()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.move(m.buf.Up())
	case key.Matches(msg, m.keys.Down):
		m.move(m.buf.Down())
	case key.Matches(msg, m.keys.Left):
		m.move(m.buf.Left())
	case key.Matches(msg, m.keys.Right):
		m.move(m.buf.Right())
	case key.Matches(msg, m.keys.Home):
		m.move(m.buf.Home())
	case key.Matches(msg, m.keys.End):
		m.move(m.buf.End())

	case key.Matches(msg, m.keys.Newline):
		m.edit(m.buf.Insert("\n"))
	case key.Matches(msg, m.keys.Tab):
		m.edit(m.buf.Insert("  "))
	case key.Matches(msg, m.keys.Backspace):
		m.edit(m.buf.Backspace())
	case key.Matches(msg, m.keys.Delete):
		m.edit(m.buf.Delete())

	case msg.Type == tea.KeySpace:
		m.edit(m.buf.Insert(" "))
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.insertRunes(msg.Runes, msg.Paste)
	}

	return m, nil
}

func (m *Model) insertRunes(runes []rune, paste bool) {
	s := string(runes)
	if closer, ok := autoPairs[s]; ok && m.cfg.AutoClose && !paste {
		m.edit(m.buf.InsertPair(s, closer))
		return
	}
	m.edit(m.buf.Insert(s))
}

// edit applies a text change and runs a classification turn.
func (m *Model) edit(next buffer.Buffer) {
	if next.Text == m.buf.Text {
		m.move(next)
		return
	}
	m.buf = next
	m.dirty = true
	m.textChanged()
	m.requestPreview()
}

// textChanged hands the buffer to the engine, opening, refreshing or
// closing the popup.
func (m *Model) textChanged() {
	u, err := m.engine.OnTextChanged(m.ctx, m.buf.Text, m.buf.Cursor)
	if err != nil {
		// Rejected turns keep the previous session
		log.Debug(log.CatUI, "text change rejected", "error", err)
	}
	m.update = u
	m.scrollToCursor()
}

// move repositions the cursor. Moving away from the token closes the popup.
func (m *Model) move(next buffer.Buffer) {
	m.buf = next
	if m.update.Session.IsOpen() {
		m.update = m.engine.Cancel(m.ctx)
	}
	m.scrollToCursor()
}

func (m *Model) commit() {
	u, ok := m.engine.Commit(m.ctx)
	m.update = u
	if !ok {
		return
	}
	m.buf = buffer.At(u.Text, u.Cursor)
	m.dirty = true
	m.scrollToCursor()
	m.requestPreview()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	if s := m.update.Session; s.IsOpen() {
		for i := range s.Candidates {
			if z := zone.Get(m.candidateZone(i)); z != nil && z.InBounds(msg) {
				m.engine.Select(i)
				m.commit()
				return m, nil
			}
		}
		m.update = m.engine.Cancel(m.ctx)
	}

	if z := zone.Get(m.zones + "text"); z != nil && z.InBounds(msg) {
		x, y := z.Pos(msg)
		m.move(buffer.At(m.buf.Text, buffer.OffsetAt(m.buf.Text, m.top+y, x-gutterWidth)))
	}
	return m, nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) saveCmd() tea.Cmd {
	path, text, save := m.cfg.Path, m.buf.Text, m.save
	return func() tea.Msg {
		if path == "" {
			return savedMsg{err: fmt.Errorf("no file name")}
		}
		if err := save(path, text); err != nil {
			log.ErrorErr(log.CatUI, "Save failed", err, "path", path)
			return savedMsg{path: path, err: err}
		}
		log.Info(log.CatUI, "Saved document", "path", path, "bytes", len(text))
		return savedMsg{path: path}
	}
}

func (m *Model) requestPreview() {
	if m.scheduler == nil {
		return
	}
	if _, err := m.scheduler.Request(m.buf.Text); err != nil {
		log.Debug(log.CatPreview, "preview request dropped", "error", err)
	}
}

func (m Model) waitPreview() tea.Cmd {
	if m.scheduler == nil {
		return nil
	}
	ctx, results := m.ctx, m.scheduler.Results()
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case r := <-results:
			return previewMsg(r)
		}
	}
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // G306: documents are user files
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
