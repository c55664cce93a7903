package model

// A User represents a newsroom account stored in database.
// The username is the resource key exposed by the API and is immutable.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Username  string `json:"username"             msgpack:"username" storm:"unique"`
	Password  string `json:"-"                    msgpack:"password,omitempty"`
	FirstName string `json:"first_name,omitempty" msgpack:"first_name,omitempty"`

	// Used to revoke tokens issued before the last password change.
	PasswordUpdatedAt int64 `json:"-" msgpack:"password_updated_at"`
}

// NewUser returns a new empty user.
func NewUser() *User {
	return &User{}
}
