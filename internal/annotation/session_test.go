package annotation

import "testing"

// testSession returns a session whose surface is displayed at intrinsic
// size, so screen and buffer coordinates coincide.
func testSession(w, h int) *Session {
	box := Box{Width: float32(w), Height: float32(h)}
	return NewSession(w, h, func() Box { return box })
}

func TestSessionOneSnapshotPerStroke(t *testing.T) {
	s := testSession(400, 300)

	strokes := [][]Point{
		{{X: 10, Y: 10}, {X: 50, Y: 50}},
		{{X: 100, Y: 100}, {X: 110, Y: 100}, {X: 120, Y: 110}, {X: 130, Y: 130}},
		{{X: 200, Y: 200}},
	}
	for _, pts := range strokes {
		s.Begin(pts[0])
		for _, p := range pts[1:] {
			s.Sample(p)
		}
		s.End()
	}

	if got := s.history.Depth(); got != len(strokes) {
		t.Errorf("undo depth = %d after %d strokes", got, len(strokes))
	}

	s.Undo()
	s.Undo()
	if got := s.history.Depth(); got != 1 {
		t.Errorf("undo depth = %d after 2 undos, want 1", got)
	}
}

func TestSessionStrayEventsAreNoOps(t *testing.T) {
	s := testSession(100, 100)

	// Move events with no preceding press.
	s.Sample(Point{X: 10, Y: 10})
	s.Sample(Point{X: 90, Y: 90})
	if !s.Buffer().Blank() {
		t.Error("Sample while idle painted pixels")
	}

	// Duplicate end events (release after leave).
	s.End()
	s.End()
	if s.CanUndo() {
		t.Error("End while idle committed a snapshot")
	}

	// A second Begin mid-stroke must not restart the stroke.
	s.Begin(Point{X: 10, Y: 10})
	s.Begin(Point{X: 90, Y: 90})
	s.Sample(Point{X: 10, Y: 20})
	s.End()
	if _, _, _, a := s.Buffer().pixelAt(90, 89); a != 0 {
		t.Error("nested Begin moved the stroke origin")
	}
	if s.history.Depth() != 1 {
		t.Errorf("undo depth = %d, want 1", s.history.Depth())
	}
}

func TestSessionBeginRendersNothing(t *testing.T) {
	s := testSession(100, 100)
	s.Begin(Point{X: 50, Y: 50})
	if !s.Buffer().Blank() {
		t.Error("Begin rendered before any segment existed")
	}
	if !s.Drawing() {
		t.Error("Begin did not enter the drawing state")
	}
	s.End()
	if s.Drawing() {
		t.Error("End did not return to idle")
	}
}

func TestSessionUndoRedoRoundTrip(t *testing.T) {
	s := testSession(120, 120)

	s.Begin(Point{X: 10, Y: 10})
	s.Sample(Point{X: 60, Y: 60})
	s.End()
	s.Begin(Point{X: 80, Y: 20})
	s.Sample(Point{X: 20, Y: 80})
	s.End()

	before := s.Buffer().Snapshot()
	if !s.Undo() {
		t.Fatal("Undo reported no effect")
	}
	if !s.Redo() {
		t.Fatal("Redo reported no effect")
	}
	if !s.Buffer().Equal(before) {
		t.Fatal("undo/redo round trip lost pixels")
	}
}

// The two-stroke undo/commit interleaving: drawing after an undo discards
// the pending redo of the undone stroke.
func TestSessionUndoThenDrawDiscardsRedo(t *testing.T) {
	s := testSession(400, 300)

	// Stroke A.
	s.Begin(Point{X: 10, Y: 10})
	s.Sample(Point{X: 50, Y: 50})
	s.End()
	if !s.CanUndo() || s.CanRedo() {
		t.Fatalf("after stroke A: canUndo=%v canRedo=%v", s.CanUndo(), s.CanRedo())
	}

	if !s.Undo() {
		t.Fatal("Undo reported no effect")
	}
	if !s.Buffer().Blank() {
		t.Error("undoing the only stroke must blank the buffer")
	}
	if s.CanUndo() || !s.CanRedo() {
		t.Fatalf("after undo: canUndo=%v canRedo=%v", s.CanUndo(), s.CanRedo())
	}

	// Stroke B commits and discards A's pending redo.
	s.Begin(Point{X: 200, Y: 100})
	s.Sample(Point{X: 250, Y: 150})
	s.End()
	if s.history.Depth() != 1 {
		t.Errorf("undo depth = %d, want 1", s.history.Depth())
	}
	if s.CanRedo() {
		t.Error("stroke B must discard the pending redo")
	}
}

func TestSessionClear(t *testing.T) {
	s := testSession(100, 100)
	s.Begin(Point{X: 10, Y: 10})
	s.Sample(Point{X: 80, Y: 80})
	s.End()
	s.Undo()
	s.Redo()

	s.Clear()
	if s.CanUndo() || s.CanRedo() {
		t.Error("Clear must disable undo and redo")
	}
	if !s.Buffer().Blank() {
		t.Error("Clear must blank the buffer")
	}
}

func TestSessionReset(t *testing.T) {
	s := testSession(100, 100)
	s.Begin(Point{X: 10, Y: 10})
	s.Sample(Point{X: 80, Y: 80})
	s.End()
	s.Undo()

	s.Reset()
	if s.CanUndo() || s.CanRedo() {
		t.Error("Reset must drop both stacks")
	}
	if s.Drawing() {
		t.Error("Reset must leave the session idle")
	}
	// Reset does not touch buffer content; the caller resizes or clears
	// separately when loading a new image.
	s.Redo()
	if !s.Buffer().Blank() {
		t.Error("Redo after Reset restored a discarded snapshot")
	}
}

func TestSessionSetStyle(t *testing.T) {
	s := testSession(100, 100)

	s.SetStyle("red", 5)
	s.Begin(Point{X: 20, Y: 50})
	s.Sample(Point{X: 80, Y: 50})
	s.End()

	if r, _, _, a := s.Buffer().pixelAt(50, 50); r != 255 || a != 255 {
		t.Error("segment not drawn with the configured red pen")
	}

	// A style change must not repaint committed strokes.
	s.SetStyle("blue", 2)
	if r, _, _, _ := s.Buffer().pixelAt(50, 50); r != 255 {
		t.Error("SetStyle retroactively affected committed ink")
	}
}

func TestSessionSyncBufferSize(t *testing.T) {
	box := Box{Width: 400, Height: 300}
	s := NewSession(400, 300, func() Box { return box })

	s.Begin(Point{X: 10, Y: 10})
	s.Sample(Point{X: 50, Y: 50})
	s.End()

	// Same rendered size: nothing happens.
	if s.SyncBufferSize() {
		t.Error("SyncBufferSize resized with unchanged geometry")
	}
	if !s.CanUndo() {
		t.Error("no-op sync must keep history")
	}

	// The window grew: buffer resizes, content and history go with it.
	box = Box{Width: 800, Height: 600}
	if !s.SyncBufferSize() {
		t.Error("SyncBufferSize ignored a geometry change")
	}
	if s.Buffer().Width() != 800 || s.Buffer().Height() != 600 {
		t.Errorf("buffer is %dx%d after sync", s.Buffer().Width(), s.Buffer().Height())
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("resize must reset history; old snapshots have the wrong size")
	}

	// Surface unmounted: keep the buffer as-is.
	box = Box{}
	if s.SyncBufferSize() {
		t.Error("SyncBufferSize resized against an unmounted surface")
	}
}

func TestSessionMapsScreenToBuffer(t *testing.T) {
	// Display box is half the buffer size and offset in the window.
	box := Box{Left: 100, Top: 50, Width: 200, Height: 150}
	s := NewSession(400, 300, func() Box { return box })
	s.SetStyle("black", 8)

	// Screen center of the box must land ink at the buffer center.
	s.Begin(Point{X: 200, Y: 125})
	s.Sample(Point{X: 200, Y: 125})
	s.End()

	if _, _, _, a := s.Buffer().pixelAt(200, 150); a != 255 {
		t.Error("center of the display box did not map to the buffer center")
	}
	if _, _, _, a := s.Buffer().pixelAt(100, 75); a != 0 {
		t.Error("ink appeared at unscaled coordinates")
	}
}

func TestSessionIDStable(t *testing.T) {
	s := testSession(10, 10)
	if s.ID() == "" {
		t.Fatal("session has no ID")
	}
	if s.ID() != s.ID() {
		t.Fatal("session ID changed between reads")
	}
	if testSession(10, 10).ID() == s.ID() {
		t.Fatal("two sessions share an ID")
	}
}
