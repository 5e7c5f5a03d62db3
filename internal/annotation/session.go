package annotation

import (
	"github.com/google/uuid"
)

// sessionState is the pointer-capture state machine. Modeling press/move/
// release as explicit states keeps illegal transitions (stray moves,
// double releases) provable no-ops instead of corrupting a stroke.
type sessionState int

const (
	stateIdle sessionState = iota
	stateDrawing
)

// Session owns one annotation surface: the drawing buffer, its history,
// the current pen style, and the in-flight stroke. A session lives as
// long as its surface is open; reopening the surface for an image starts
// a fresh session.
//
// All methods must be called from the UI event loop. The session takes
// screen coordinates and maps them internally, so the widget layer never
// deals in buffer space.
type Session struct {
	id      string
	state   sessionState
	buf     *Buffer
	history *History
	style   Style
	last    Point

	// geometry reports the surface's current on-screen box; passed in
	// explicitly so the engine stays testable without a UI framework.
	geometry func() Box
}

// NewSession creates an idle session with a cleared buffer of the given
// size and the default pen (black, width 3, the pen the board opens with).
func NewSession(width, height int, geometry func() Box) *Session {
	if geometry == nil {
		geometry = func() Box { return Box{} }
	}
	return &Session{
		id:       uuid.NewString(),
		buf:      NewBuffer(width, height),
		history:  NewHistory(),
		style:    Style{Color: ParseColor("black"), Width: 3},
		geometry: geometry,
	}
}

// ID returns the session's unique identifier, used to tag analysis
// requests sent while this surface is open.
func (s *Session) ID() string { return s.id }

// Buffer exposes the drawing raster for display and compositing. The
// session retains ownership.
func (s *Session) Buffer() *Buffer { return s.buf }

// Style returns the pen configuration for the next segment.
func (s *Session) Style() Style { return s.style }

// SetStyle updates the pen used for subsequent segments. Already-rendered
// strokes keep their ink. The token is a palette name or #rrggbb.
func (s *Session) SetStyle(token string, width float32) {
	s.style = Style{Color: ParseColor(token), Width: width}
}

// Begin opens a stroke at the given screen position. Nothing is rendered
// yet; a single sample has no segment to connect to.
func (s *Session) Begin(screen Point) {
	if s.state != stateIdle {
		return
	}
	s.state = stateDrawing
	s.last = s.mapPoint(screen)
}

// Sample extends the in-flight stroke to the given screen position,
// rendering the connecting segment. Outside a stroke it is a no-op,
// which absorbs move events that arrive without a preceding press.
func (s *Session) Sample(screen Point) {
	if s.state != stateDrawing {
		return
	}
	p := s.mapPoint(screen)
	DrawSegment(s.buf, s.last, p, s.style)
	s.last = p
}

// End closes the in-flight stroke and commits a snapshot to history.
// Pointer-release and pointer-leave both land here and are treated
// identically; a duplicate End is a no-op.
func (s *Session) End() {
	if s.state != stateDrawing {
		return
	}
	s.state = stateIdle
	s.last = Point{}
	s.history.Push(s.buf.Snapshot())
}

// Drawing reports whether a stroke is currently in flight.
func (s *Session) Drawing() bool { return s.state == stateDrawing }

// Undo reverts the most recent committed stroke. Reports whether anything
// changed.
func (s *Session) Undo() bool { return s.history.Undo(s.buf) }

// Redo re-applies the most recently undone stroke. Reports whether
// anything changed.
func (s *Session) Redo() bool { return s.history.Redo(s.buf) }

// Clear blanks the buffer and empties the history. Not undoable.
func (s *Session) Clear() {
	s.state = stateIdle
	s.history.Clear(s.buf)
}

// Reset empties the history without touching the buffer, for when a new
// image is loaded and the caller resizes/clears the buffer separately.
func (s *Session) Reset() {
	s.state = stateIdle
	s.history.Reset()
}

// CanUndo reports whether the undo button should be enabled.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether the redo button should be enabled.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// SyncBufferSize matches the buffer to the surface's current rendered
// size. A resize discards the raster content and the history with it:
// old snapshots have the wrong dimensions, so keeping them undoable
// would restore garbage. Reports whether a resize happened.
func (s *Session) SyncBufferSize() bool {
	box := s.geometry()
	if box.Empty() {
		return false
	}
	if !s.buf.Resize(int(box.Width), int(box.Height)) {
		return false
	}
	s.state = stateIdle
	s.history.Reset()
	return true
}

func (s *Session) mapPoint(screen Point) Point {
	return MapToBuffer(screen, s.geometry(), s.buf.width, s.buf.height)
}
