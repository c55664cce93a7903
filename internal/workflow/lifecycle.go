package workflow

import (
	"sync"
	"time"

	"github.com/newsdeskhq/newsdesk/pkg/libnd"
	"github.com/pkg/errors"
)

// Action names tracked on items while the matching request is in flight.
const (
	ActionSpike   = "spike"
	ActionUnspike = "unspike"
	ActionFetch   = "archiveContent"
)

// ErrActionPending is returned when the same action is already in flight
// for the item. The item is left untouched.
var ErrActionPending = errors.New("action already in flight for this item")

// A Lifecycle drives content items between normal and spiked states and
// fetches ingest items to the archive. Failures are recorded on the item
// itself for display, never escalated.
type Lifecycle struct {
	mu        sync.Mutex
	api       libnd.Client
	workspace *Workspace
}

// NewLifecycle returns a new Lifecycle.
func NewLifecycle(api libnd.Client, workspace *Workspace) *Lifecycle {
	return &Lifecycle{
		api:       api,
		workspace: workspace,
	}
}

// Spike withdraws the item from circulation. On success, an item opened
// in view is deselected from the workspace.
func (l *Lifecycle) Spike(item *libnd.Item) error {
	if err := l.begin(item, ActionSpike); err != nil {
		return err
	}
	defer l.end(item, ActionSpike)

	err := l.api.Update("archive_spike", item, libnd.M{"state": libnd.StateSpiked})
	if err != nil {
		item.Err = err
		return err
	}

	item.State = libnd.StateSpiked
	item.Err = nil
	l.workspace.Deselect(item.ID)
	return nil
}

// Unspike restores normal visibility of the item. The request carries an
// empty payload. Repeating a successful unspike is harmless.
func (l *Lifecycle) Unspike(item *libnd.Item) error {
	if err := l.begin(item, ActionUnspike); err != nil {
		return err
	}
	defer l.end(item, ActionUnspike)

	if err := l.api.Update("archive_unspike", item, nil); err != nil {
		item.Err = err
		return err
	}

	item.State = libnd.StateNormal
	item.Err = nil
	return nil
}

// Fetch copies the ingest item onto the given desk. On success the
// allocated task id and the archive creation time are copied onto the item.
func (l *Lifecycle) Fetch(item *libnd.Item, deskID string) error {
	if err := l.begin(item, ActionFetch); err != nil {
		return err
	}
	defer l.end(item, ActionFetch)

	created, err := l.api.Create("ingest", libnd.M{
		"guid":     item.GUID,
		"desk":     deskID,
		"headline": item.Headline,
		"slugline": item.Slugline,
	})
	if err != nil {
		item.Err = err
		return err
	}

	item.TaskID, _ = created["task_id"].(string)
	if s, ok := created["created"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			item.Created = &t
		}
	}
	item.State = libnd.StateNormal
	item.DeskID = deskID
	item.Err = nil
	return nil
}

// begin flags the action in flight, rejecting overlapping invocations of
// the same action on the same item.
func (l *Lifecycle) begin(item *libnd.Item, action string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if item.Actioning[action] {
		return ErrActionPending
	}
	if item.Actioning == nil {
		item.Actioning = map[string]bool{}
	}
	item.Actioning[action] = true
	return nil
}

// end clears the in-flight flag, exactly once per begin.
func (l *Lifecycle) end(item *libnd.Item, action string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	item.Actioning[action] = false
}
