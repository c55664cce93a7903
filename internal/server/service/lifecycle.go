package service

import (
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/internal/nderror"
	"github.com/newsdeskhq/newsdesk/internal/server/serializer"
	"github.com/pkg/errors"
)

// A LifecycleService transitions archive items between normal and spiked states.
type LifecycleService struct {
	db database.Client
}

// NewLifecycle returns a new LifecycleService.
func NewLifecycle(db database.Client) *LifecycleService {
	return &LifecycleService{db: db}
}

// Spike withdraws the item from circulation without deleting it.
func (s *LifecycleService) Spike(item *model.Item) (Render, error) {
	if item.State == model.StateSpiked {
		return nil, nderror.Conflict("already-spiked", "Item is already spiked.")
	}

	item.State = model.StateSpiked
	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not persist item")
	}

	return serializer.Item(item), nil
}

// Unspike restores normal visibility of the item.
// Unspiking an item that is not spiked is a no-op.
func (s *LifecycleService) Unspike(item *model.Item) (Render, error) {
	if item.State != model.StateSpiked {
		return serializer.Item(item), nil
	}

	item.State = model.StateNormal
	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not persist item")
	}

	return serializer.Item(item), nil
}
