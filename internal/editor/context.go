package editor

import (
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/shrub4thedub/shrimp/internal/filetree"
)

// Editing mode names.
const (
	ModeNormal     = "normal"
	ModeInsert     = "insert"
	ModeCommand    = "command"
	ModeFileBrowse = "filebrowse"
	ModeSearch     = "search"
)

// Bounded history sizes.
const (
	activityLimit = 5
	snapshotLimit = 32
)

// DefaultPrefixTimeout is how long a numeric prefix survives after the
// last digit before it is discarded.
const DefaultPrefixTimeout = 500 * time.Millisecond

// helpDuration is how long the sidebar help overlay stays visible.
const helpDuration = 3 * time.Second

// SearchState holds the result list for search mode.
type SearchState struct {
	Query    string
	Results  []int
	Selected int
}

// Context aggregates all editor state shared by the modal dispatcher,
// the command processor and plugin actions. It is passed explicitly to
// every handler; there is no module-level singleton.
type Context struct {
	buffers []*Buffer
	current int

	mode string

	// Clipboards. clipboard holds line-range text, wordClipboard the
	// last copied word.
	clipboard     string
	wordClipboard string

	// Numeric-prefix input state (normal mode).
	numericPrefix string
	lastDigit     time.Time
	prefixTimeout time.Duration

	// One-shot compound-change flags paired with the transition back
	// to normal mode on their terminating key.
	PendingLineChange bool
	PendingWordChange bool

	// WordArm is the single-shot two-key ("word mode") arm.
	WordArm bool

	// CommandLine accumulates command-mode input.
	CommandLine string

	statusMessage string
	activity      []string

	snapshots [][]string

	Search SearchState

	Tree       *filetree.Tree
	ShowHidden bool

	SidebarVisible bool
	HelpVisible    bool
	helpExpiry     time.Time
	Zen            bool
	sidebarPreZen  bool

	ThemeName string

	// ViewHeight is the text-area height in rows, refreshed by the
	// renderer each frame. Page motions scroll by this much.
	ViewHeight int

	mirrorClipboard bool

	quit bool
}

// ContextOption configures a new Context.
type ContextOption func(*Context)

// WithPrefixTimeout overrides the numeric-prefix timeout.
func WithPrefixTimeout(d time.Duration) ContextOption {
	return func(c *Context) {
		if d > 0 {
			c.prefixTimeout = d
		}
	}
}

// WithSystemClipboard mirrors line and word copies to the system
// clipboard. Mirror failures are ignored; a headless host is not an
// error.
func WithSystemClipboard(enabled bool) ContextOption {
	return func(c *Context) {
		c.mirrorClipboard = enabled
	}
}

// WithTree attaches the file tree used by filebrowse mode.
func WithTree(t *filetree.Tree) ContextOption {
	return func(c *Context) {
		c.Tree = t
	}
}

// NewContext creates a context holding one empty buffer, in normal
// mode with the sidebar visible.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		buffers:        []*Buffer{NewBuffer()},
		mode:           ModeNormal,
		prefixTimeout:  DefaultPrefixTimeout,
		SidebarVisible: true,
		ShowHidden:     true,
		ThemeName:      "boring",
		ViewHeight:     24,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Buffer collection

// Buffers returns the open buffers in insertion order.
func (c *Context) Buffers() []*Buffer { return c.buffers }

// CurrentIndex returns the index of the active buffer.
func (c *Context) CurrentIndex() int { return c.current }

// CurrentBuffer returns the active buffer. Never nil.
func (c *Context) CurrentBuffer() *Buffer { return c.buffers[c.current] }

// AddBuffer appends a buffer and makes it current.
func (c *Context) AddBuffer(b *Buffer) {
	c.buffers = append(c.buffers, b)
	c.current = len(c.buffers) - 1
}

// SwitchBuffer makes the buffer at index current. Out-of-range indices
// are ignored.
func (c *Context) SwitchBuffer(index int) {
	if index < 0 || index >= len(c.buffers) {
		return
	}
	c.current = index
}

// AdvanceBuffer moves n buffers forward (negative n moves backward),
// wrapping around. No-op with a single buffer.
func (c *Context) AdvanceBuffer(n int) {
	if len(c.buffers) < 2 {
		return
	}
	c.current = ((c.current+n)%len(c.buffers) + len(c.buffers)) % len(c.buffers)
}

// Mode

// Mode returns the active mode name.
func (c *Context) Mode() string { return c.mode }

// SetMode switches the active mode name. Transition hooks run in the
// mode manager, which observes the change after handler return.
func (c *Context) SetMode(mode string) { c.mode = mode }

// Clipboards

// Clipboard returns the line clipboard.
func (c *Context) Clipboard() string { return c.clipboard }

// SetClipboard stores copied line text, mirroring to the system
// clipboard when enabled.
func (c *Context) SetClipboard(text string) {
	c.clipboard = text
	if c.mirrorClipboard && text != "" {
		_ = clipboard.WriteAll(text)
	}
}

// WordClipboard returns the word clipboard.
func (c *Context) WordClipboard() string { return c.wordClipboard }

// SetWordClipboard stores copied word text, mirroring to the system
// clipboard when enabled.
func (c *Context) SetWordClipboard(text string) {
	c.wordClipboard = text
	if c.mirrorClipboard && text != "" {
		_ = clipboard.WriteAll(text)
	}
}

// Numeric prefix

// NumericPrefix returns the accumulated digit string.
func (c *Context) NumericPrefix() string { return c.numericPrefix }

// PushDigit appends a digit keystroke and restarts the timeout clock.
func (c *Context) PushDigit(r rune) {
	c.numericPrefix += string(r)
	c.lastDigit = time.Now()
}

// TakePrefix consumes and clears the numeric prefix.
func (c *Context) TakePrefix() string {
	p := c.numericPrefix
	c.numericPrefix = ""
	return p
}

// ClearTransientInput drops the numeric prefix, the word arm and any
// accumulated command text. Used by the global cancel key.
func (c *Context) ClearTransientInput() {
	c.numericPrefix = ""
	c.WordArm = false
	c.CommandLine = ""
}

// ExpireTransients discards the numeric prefix when its timeout has
// elapsed and turns the help overlay off past its expiry. Called once
// at the top of every loop iteration; the only time-based state in the
// editor is timestamp comparison here.
func (c *Context) ExpireTransients(now time.Time) {
	if c.numericPrefix != "" && now.Sub(c.lastDigit) > c.prefixTimeout {
		c.numericPrefix = ""
	}
	if c.HelpVisible && !c.helpExpiry.IsZero() && now.After(c.helpExpiry) {
		c.HelpVisible = false
		c.helpExpiry = time.Time{}
	}
}

// ShowHelp turns the sidebar help overlay on for a few seconds.
func (c *Context) ShowHelp() {
	c.HelpVisible = true
	c.helpExpiry = time.Now().Add(helpDuration)
}

// Status and activity log

// Status returns the transient status message.
func (c *Context) Status() string { return c.statusMessage }

// SetStatus sets the transient status message shown in the status bar.
func (c *Context) SetStatus(msg string) { c.statusMessage = msg }

// ClearStatus drops the status message.
func (c *Context) ClearStatus() { c.statusMessage = "" }

// Activity returns the bounded recent-activity log, oldest first.
func (c *Context) Activity() []string { return c.activity }

// LogActivity appends to the recent-activity log shown in the sidebar,
// mirroring the entry to the debug log.
func (c *Context) LogActivity(msg string) {
	c.activity = append(c.activity, msg)
	if len(c.activity) > activityLimit {
		c.activity = c.activity[len(c.activity)-activityLimit:]
	}
	slog.Debug("activity", "msg", msg)
}

// Snapshots

// TakeSnapshot captures a copy of the current buffer's lines into the
// bounded history. Skipped when the content is unchanged since the
// last snapshot. Reports whether a snapshot was taken.
func (c *Context) TakeSnapshot() bool {
	lines := c.CurrentBuffer().Lines()
	if n := len(c.snapshots); n > 0 && equalLines(c.snapshots[n-1], lines) {
		return false
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	c.snapshots = append(c.snapshots, cp)
	if len(c.snapshots) > snapshotLimit {
		c.snapshots = c.snapshots[len(c.snapshots)-snapshotLimit:]
	}
	return true
}

// Snapshots returns the captured line histories, oldest first.
func (c *Context) Snapshots() [][]string { return c.snapshots }

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Search

// StartSearch collects the case-insensitive substring matches of query
// in the current buffer and enters search mode when any exist.
func (c *Context) StartSearch(query string) {
	c.Search = SearchState{Query: query}
	q := strings.ToLower(query)
	for i, line := range c.CurrentBuffer().Lines() {
		if strings.Contains(strings.ToLower(line), q) {
			c.Search.Results = append(c.Search.Results, i)
		}
	}
	if len(c.Search.Results) == 0 {
		c.SetStatus("no matches for '" + query + "'")
		return
	}
	c.mode = ModeSearch
}

// Zen

// ToggleZen flips zen mode, hiding the sidebar while active and
// restoring its previous visibility on exit.
func (c *Context) ToggleZen() {
	if !c.Zen {
		c.sidebarPreZen = c.SidebarVisible
		c.SidebarVisible = false
		c.HelpVisible = false
		c.Zen = true
		if c.mode == ModeFileBrowse {
			c.mode = ModeNormal
		}
		return
	}
	c.Zen = false
	c.SidebarVisible = c.sidebarPreZen
}

// Quit

// RequestQuit asks the main loop to exit after the current iteration.
func (c *Context) RequestQuit() { c.quit = true }

// QuitRequested reports whether shutdown was requested.
func (c *Context) QuitRequested() bool { return c.quit }
