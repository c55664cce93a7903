package libnd

import "time"

// Content item states.
const (
	StateIngested = "ingested"
	StateNormal   = "normal"
	StateSpiked   = "spiked"
)

// An Item is the client-side representation of an archive content item.
// Actioning and Err are transient UI-state fields, they are never sent
// to the server.
type Item struct {
	ID       string `json:"uuid"`
	GUID     string `json:"guid"`
	Headline string `json:"headline,omitempty"`
	Slugline string `json:"slugline,omitempty"`
	State    string `json:"state"`
	DeskID   string `json:"desk,omitempty"`
	TaskID   string `json:"task_id,omitempty"`

	Created *time.Time `json:"created,omitempty"`

	// Actioning tracks in-flight operations by action name.
	Actioning map[string]bool `json:"-"`
	// Err is the last failure payload, cleared on the next success.
	Err error `json:"-"`
}

// Action returns true when the given action is in flight for the item.
func (i *Item) Action(name string) bool {
	return i.Actioning[name]
}
