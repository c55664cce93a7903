package model

import "time"

const (
	// StateIngested is the state of an item waiting on an ingest queue.
	StateIngested = "ingested"
	// StateNormal is the state of a regular archive item.
	StateNormal = "normal"
	// StateSpiked is the state of an item withdrawn from circulation
	// without being deleted.
	StateSpiked = "spiked"
)

// An Item represents an archive content item and the rendered API response.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	GUID     string `json:"guid"               msgpack:"guid"     storm:"unique"`
	Headline string `json:"headline,omitempty" msgpack:"headline"`
	Slugline string `json:"slugline,omitempty" msgpack:"slugline"`
	State    string `json:"state"              msgpack:"state"    storm:"index"`
	DeskID   string `json:"desk,omitempty"     msgpack:"desk_id"  storm:"index"`
	TaskID   string `json:"task_id,omitempty"  msgpack:"task_id"`

	// Creation time claimed by the wire feed, not when we stored the item.
	FirstCreated *time.Time `json:"firstcreated,omitempty" msgpack:"firstcreated"`
}
