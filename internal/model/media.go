package model

// A Media represents an uploaded binary stored by the storage engine.
// Metadata values are raw JSON documents provided by the uploader.
type Media struct {
	Base `msgpack:",inline" storm:"inline"`

	Name        string `json:"name"         msgpack:"name" storm:"unique"`
	ContentType string `json:"content_type" msgpack:"content_type"`
	Size        int64  `json:"size"         msgpack:"size"`
	UserID      string `json:"user_uuid"    msgpack:"user_id" storm:"index"`

	Metadata map[string]string `json:"metadata,omitempty" msgpack:"metadata"`
}
