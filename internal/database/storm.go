package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.Init(&model.User{}); err != nil {
		return errors.Wrap(err, "could not init user index")
	}

	if err := db.Init(&model.Item{}); err != nil {
		return errors.Wrap(err, "could not init item index")
	}

	err = db.Init(&model.Media{})
	return errors.Wrap(err, "could not init media index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.ReIndex(&model.User{}); err != nil {
		return errors.Wrap(err, "could not reindex users")
	}

	if err := db.ReIndex(&model.Item{}); err != nil {
		return errors.Wrap(err, "could not reindex items")
	}

	err = db.ReIndex(&model.Media{})
	return errors.Wrap(err, "could not reindex media")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given record.
func (c *strm) Save(m model.Record) error {
	t := time.Now().UTC()
	m.Touch(t)

	if m.Key() == "" {
		m.Stamp(uuid.Must(uuid.NewV4()).String(), t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the record")
}

// Delete deletes the entry in database with the given record.
func (c *strm) Delete(m model.Record) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the record")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is a unique constraint error.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByUsername returns the user for the given username.
func (c *strm) FindUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Username", username, &user); err != nil {
		return nil, errors.Wrap(err, "find user by username")
	}
	return &user, nil
}

// AllUsers returns all the registered users ordered by creation date.
func (c *strm) AllUsers() ([]*model.User, error) {
	users := make([]*model.User, 0)
	err := c.db.Select().OrderBy("CreatedAt").Find(&users)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find users")
	}
	return users, nil
}

// FindItem returns the item for the given id (UUID).
func (c *strm) FindItem(id string) (*model.Item, error) {
	var item model.Item
	if err := c.db.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItemByGUID returns the item for the given ingest GUID.
func (c *strm) FindItemByGUID(guid string) (*model.Item, error) {
	var item model.Item
	if err := c.db.One("GUID", guid, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item by guid")
	}
	return &item, nil
}

// FindItemsByState returns all the items matching the given state,
// ordered by last update. An empty state means all items.
func (c *strm) FindItemsByState(state string) ([]*model.Item, error) {
	query := []q.Matcher{}
	if state != "" {
		query = append(query, q.Eq("State", state))
	}

	items := make([]*model.Item, 0)
	err := c.db.Select(query...).OrderBy("UpdatedAt").Reverse().Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}
	return items, nil
}

// FindMedia returns the media for the given id (UUID).
func (c *strm) FindMedia(id string) (*model.Media, error) {
	var media model.Media
	if err := c.db.One("ID", id, &media); err != nil {
		return nil, errors.Wrap(err, "could not find media")
	}
	return &media, nil
}

// FindMediaByName returns the media for the given name.
func (c *strm) FindMediaByName(name string) (*model.Media, error) {
	var media model.Media
	if err := c.db.One("Name", name, &media); err != nil {
		return nil, errors.Wrap(err, "could not find media by name")
	}
	return &media, nil
}

// FindMediaByUserID returns all media uploaded by the given user.
func (c *strm) FindMediaByUserID(userID string) ([]*model.Media, error) {
	media := make([]*model.Media, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Find(&media)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find media by user id")
	}
	return media, nil
}
