package canopy

import (
	"log/slog"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// LayoutOrder selects how siblings are ordered during the layout pass.
type LayoutOrder uint8

const (
	// LayoutRegistrationOrder places siblings in the order they were added.
	// A rule that references a later sibling reads that sibling's frame from
	// the previous frame.
	LayoutRegistrationOrder LayoutOrder = iota
	// LayoutDependencyOrder places referenced siblings before the siblings
	// whose rules read them. Cycles fall back to registration order.
	LayoutDependencyOrder
)

// KeyCode identifies a control key.
type KeyCode uint8

const (
	KeyNone KeyCode = iota // a printable character; see KeyEvent.Char
	KeyBackspace
	KeyEnter
	KeyEscape
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// KeyEvent is a keyboard character or control key press.
type KeyEvent struct {
	Char rune
	Code KeyCode
}

// UI is the explicit context that owns one view tree together with its touch
// stack, animations and deferred work. All methods except OnMain must be
// called from the goroutine running the frame loop.
type UI struct {
	arena    arena
	root     *Node
	touches  *TouchStack
	logger   *slog.Logger
	renderer Renderer
	store    EntityStore
	debug    bool
	order    LayoutOrder

	frame      uint64
	animations []*Animation
	drawList   []DrawCommand
	runner     *ScriptRunner

	mainMu     sync.Mutex
	mainQueue  []func()
	afterFrame []func()
	delayed    []delayedCall

	// Keyboard fires for every KeyPress.
	Keyboard Event[KeyEvent]
	// Unhandled fires for touches that no node received.
	Unhandled Event[Touch]
}

type delayedCall struct {
	remaining int
	fn        func()
}

// Option configures a UI.
type Option func(*UI)

// WithLogger sets the logger used for dispatch anomalies, recovered
// callback panics and debug stats.
func WithLogger(l *slog.Logger) Option {
	return func(ui *UI) { ui.logger = l }
}

// WithRenderer sets the collaborator that receives the draw list each frame.
func WithRenderer(r Renderer) Option {
	return func(ui *UI) { ui.renderer = r }
}

// WithDebug enables debug mode; see SetDebugMode.
func WithDebug(enabled bool) Option {
	return func(ui *UI) { ui.debug = enabled }
}

// WithLayoutOrder selects the sibling ordering used by the layout pass.
func WithLayoutOrder(o LayoutOrder) Option {
	return func(ui *UI) { ui.order = o }
}

// NewUI creates a UI whose root node covers size.
func NewUI(size Size, opts ...Option) *UI {
	ui := &UI{}
	for _, opt := range opts {
		opt(ui)
	}
	if ui.logger == nil {
		ui.logger = defaultLogger(ui.debug)
	}
	ui.logger = ui.logger.With("component", "canopy")
	ui.Keyboard.SetLogger(ui.logger)
	ui.Unhandled.SetLogger(ui.logger)
	ui.touches = newTouchStack(ui, "Root view")
	ui.root = ui.NewNode("Root view", nil)
	ui.root.Frame = Rect{Width: size.Width, Height: size.Height}
	ui.root.absoluteFrame = ui.root.Frame
	ui.root.setupDone = true
	return ui
}

// defaultLogger writes text to a terminal stderr and JSON lines otherwise,
// at Warn level (Debug in debug mode).
func defaultLogger(debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if debug {
		opts.Level = slog.LevelDebug
	}
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// Root returns the root node.
func (ui *UI) Root() *Node {
	return ui.root
}

// Touches returns the touch dispatch stack.
func (ui *UI) Touches() *TouchStack {
	return ui.touches
}

// Logger returns the UI's logger.
func (ui *UI) Logger() *slog.Logger {
	return ui.logger
}

// Frame returns the number of completed frames.
func (ui *UI) Frame() uint64 {
	return ui.frame
}

// NodeCount returns the number of live nodes, root included.
func (ui *UI) NodeCount() int {
	return ui.arena.live
}

// Resize sets the root frame to size.
func (ui *UI) Resize(size Size) {
	ui.root.Frame = Rect{Width: size.Width, Height: size.Height}
}

// SetRenderer replaces the render collaborator.
func (ui *UI) SetRenderer(r Renderer) {
	ui.renderer = r
}

// SetEntityStore sets the optional ECS bridge.
func (ui *UI) SetEntityStore(store EntityStore) {
	ui.store = store
}

// SetLayoutOrder selects the sibling ordering used by the layout pass.
func (ui *UI) SetLayoutOrder(o LayoutOrder) {
	ui.order = o
}

// SetDebugMode enables or disables debug mode. When enabled, structural
// errors (destroyed nodes in tree operations or placer rules, cycles,
// popping the root layer) panic instead of being logged and ignored, and
// per-frame timing stats are logged at debug level.
func (ui *UI) SetDebugMode(enabled bool) {
	ui.debug = enabled
}

// DebugMode reports whether debug mode is on.
func (ui *UI) DebugMode() bool {
	return ui.debug
}

// --- Input ---

// Inject routes a touch through the touch stack immediately. Touches that no
// node receives are published on Unhandled.
func (ui *UI) Inject(t Touch) *Node {
	n := ui.touches.Dispatch(t)
	if n == nil {
		ui.Unhandled.Trigger(t)
	}
	return n
}

// KeyPress publishes a keyboard event on Keyboard.
func (ui *UI) KeyPress(e KeyEvent) {
	ui.Keyboard.Trigger(e)
}

// --- Scheduling ---

// OnMain queues fn to run on the frame loop at the start of the next Tick.
// It is the only UI method that is safe to call from other goroutines.
func (ui *UI) OnMain(fn func()) {
	ui.mainMu.Lock()
	ui.mainQueue = append(ui.mainQueue, fn)
	ui.mainMu.Unlock()
}

// AfterFrame runs fn once the current frame has been handed to the
// renderer. Callbacks queued by an AfterFrame callback run after the next
// frame.
func (ui *UI) AfterFrame(fn func()) {
	ui.afterFrame = append(ui.afterFrame, fn)
}

// After runs fn at the start of the frames-th Tick from now.
func (ui *UI) After(frames int, fn func()) {
	if frames < 1 {
		frames = 1
	}
	ui.delayed = append(ui.delayed, delayedCall{remaining: frames, fn: fn})
}

func (ui *UI) drainMain() {
	ui.mainMu.Lock()
	queue := ui.mainQueue
	ui.mainQueue = nil
	ui.mainMu.Unlock()
	for _, fn := range queue {
		ui.guard(nil, "main queue", fn)
	}

	if len(ui.delayed) == 0 {
		return
	}
	var due []func()
	kept := ui.delayed[:0]
	for _, d := range ui.delayed {
		d.remaining--
		if d.remaining <= 0 {
			due = append(due, d.fn)
		} else {
			kept = append(kept, d)
		}
	}
	clear(ui.delayed[len(kept):])
	ui.delayed = kept
	for _, fn := range due {
		ui.guard(nil, "delayed", fn)
	}
}

func (ui *UI) drainAfterFrame() {
	queue := ui.afterFrame
	ui.afterFrame = nil
	for _, fn := range queue {
		ui.guard(nil, "after frame", fn)
	}
}
