package annotation

// History keeps full-buffer snapshots at stroke boundaries and replays
// them for undo/redo. Snapshotting whole bitmaps instead of replaying a
// stroke log costs memory proportional to the buffer per entry, but makes
// restore a plain copy.
//
// undo holds committed states oldest-first; redo holds states popped by
// Undo, most recently undone last. Committing a new stroke discards the
// redo timeline: after drawing past an undo there is nothing to redo.
type History struct {
	undo []Snapshot
	redo []Snapshot
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Push commits a new snapshot and discards any pending redo states.
func (h *History) Push(s Snapshot) {
	h.undo = append(h.undo, s)
	h.redo = nil
}

// Undo moves the latest committed state onto the redo stack and restores
// the buffer to the state before it (blank if none remain). Reports
// whether anything happened; an empty undo stack is a silent no-op.
func (h *History) Undo(buf *Buffer) bool {
	if len(h.undo) == 0 {
		return false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, last)

	if len(h.undo) == 0 {
		buf.Clear()
	} else {
		buf.Restore(h.undo[len(h.undo)-1])
	}
	return true
}

// Redo re-applies the most recently undone state. Reports whether
// anything happened.
func (h *History) Redo(buf *Buffer) bool {
	if len(h.redo) == 0 {
		return false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, last)
	buf.Restore(last)
	return true
}

// Clear wipes both stacks and blanks the buffer. Clearing is itself not
// undoable.
func (h *History) Clear(buf *Buffer) {
	h.undo = nil
	h.redo = nil
	buf.Clear()
}

// Reset drops both stacks without touching the buffer. Used when a new
// image is loaded or the buffer is resized, where the old snapshots are
// no longer dimensionally valid.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// CanUndo reports whether at least one committed stroke can be undone.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether at least one undone stroke can be re-applied.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the number of committed strokes currently undoable.
func (h *History) Depth() int { return len(h.undo) }
