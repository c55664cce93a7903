package service

import (
	"github.com/araddon/dateparse"
	"github.com/gofrs/uuid"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/internal/nderror"
	"github.com/newsdeskhq/newsdesk/internal/server/serializer"
	"github.com/pkg/errors"
)

type (
	// IngestParams are used to fetch an ingest item into the archive.
	IngestParams struct {
		GUID     string `json:"guid"`
		Desk     string `json:"desk"`
		Headline string `json:"headline"`
		Slugline string `json:"slugline"`
		// Loosely formatted timestamp claimed by the wire feed.
		FirstCreated string `json:"firstcreated"`
	}

	// An IngestService copies ingest items into the archive.
	IngestService struct {
		db database.Client
	}
)

// NewIngest returns a new IngestService.
func NewIngest(db database.Client) *IngestService {
	return &IngestService{db: db}
}

// Execute fetches the ingest item identified by params.GUID onto the given
// desk, allocating a task for the newsroom workflow. The returned render
// carries the task id and the creation timestamp of the archive item.
func (s *IngestService) Execute(params IngestParams) (Render, error) {
	existing, err := s.db.FindItemByGUID(params.GUID)
	if err != nil && !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}
	if existing != nil {
		return nil, nderror.Conflict("already-fetched", "This item has already been fetched to the archive.")
	}

	item := &model.Item{
		GUID:     params.GUID,
		Headline: params.Headline,
		Slugline: params.Slugline,
		State:    model.StateNormal,
		DeskID:   params.Desk,
		TaskID:   uuid.Must(uuid.NewV4()).String(),
	}

	if params.FirstCreated != "" {
		t, err := dateparse.ParseAny(params.FirstCreated)
		if err != nil {
			return nil, nderror.NewWithTagCode(400, "invalid-date", "Could not parse firstcreated timestamp.")
		}
		t = t.UTC()
		item.FirstCreated = &t
	}

	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not persist item")
	}

	return serializer.Item(item), nil
}
