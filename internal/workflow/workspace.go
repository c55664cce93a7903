package workflow

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// A Workspace carries the newsroom session context of the workflow:
// the desk the journalist works on and the item currently opened in view.
// It is passed explicitly to the collaborators that need it.
type Workspace struct {
	mu       sync.Mutex
	deskID   string
	selected string

	onChange  func()
	debounced func(func())
}

// NewWorkspace returns a new Workspace bound to the given desk.
func NewWorkspace(deskID string) *Workspace {
	return &Workspace{
		deskID:    deskID,
		debounced: debounce.New(500 * time.Millisecond),
	}
}

// DeskID returns the identifier of the active desk (work queue).
func (w *Workspace) DeskID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.deskID
}

// Select marks the given item as currently opened in view.
func (w *Workspace) Select(id string) {
	w.mu.Lock()
	w.selected = id
	w.mu.Unlock()

	w.notify()
}

// Selected returns the identifier of the item currently opened in view.
func (w *Workspace) Selected() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected
}

// Deselect clears the selection when it matches the given item id.
// A selection on another item is left untouched.
func (w *Workspace) Deselect(id string) {
	w.mu.Lock()
	if w.selected != id {
		w.mu.Unlock()
		return
	}
	w.selected = ""
	w.mu.Unlock()

	w.notify()
}

// OnChange registers the callback invoked after selection changes.
// Bursts of changes are coalesced into a single invocation.
func (w *Workspace) OnChange(f func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = f
}

func (w *Workspace) notify() {
	w.mu.Lock()
	f := w.onChange
	w.mu.Unlock()

	if f != nil {
		w.debounced(f)
	}
}
