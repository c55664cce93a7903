package database

import (
	"github.com/newsdeskhq/newsdesk/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given record.
		Save(m model.Record) error
		// Delete deletes the entry in database with the given record.
		Delete(m model.Record) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is a unique constraint error.
		IsAlreadyExists(err error) bool

		UserInteraction
		ItemInteraction
		MediaInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByUsername returns the user for the given username.
		FindUserByUsername(username string) (*model.User, error)
		// AllUsers returns all the registered users ordered by creation date.
		AllUsers() ([]*model.User, error)
	}

	// An ItemInteraction defines all the methods used to interact with item record(s).
	ItemInteraction interface {
		// FindItem returns the item for the given id (UUID).
		FindItem(id string) (*model.Item, error)
		// FindItemByGUID returns the item for the given ingest GUID.
		FindItemByGUID(guid string) (*model.Item, error)
		// FindItemsByState returns all the items matching the given state,
		// ordered by last update. An empty state means all items.
		FindItemsByState(state string) ([]*model.Item, error)
	}

	// A MediaInteraction defines all the methods used to interact with media record(s).
	MediaInteraction interface {
		// FindMedia returns the media for the given id (UUID).
		FindMedia(id string) (*model.Media, error)
		// FindMediaByName returns the media for the given name.
		FindMediaByName(name string) (*model.Media, error)
		// FindMediaByUserID returns all media uploaded by the given user.
		FindMediaByUserID(userID string) ([]*model.Media, error)
	}
)
