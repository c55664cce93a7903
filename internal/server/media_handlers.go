package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/internal/nderror"
	"github.com/newsdeskhq/newsdesk/internal/server/serializer"
	"github.com/newsdeskhq/newsdesk/internal/storage"
	"github.com/pkg/errors"
)

// media contains all media handlers.
type media struct {
	db      database.Client
	storage storage.Storage
}

///// Upload
////
//

// Upload handler stores the multipart `media` file part.
// User metadata is carried by X-Media-Meta-* headers holding JSON values.
func (h *media) Upload(c echo.Context) error {
	file, err := c.FormFile("media")
	if err != nil {
		return c.JSON(http.StatusBadRequest, nderror.New("No media file provided."))
	}

	existing, err := h.db.FindMediaByName(file.Filename)
	if err != nil && !h.db.IsNotFound(err) {
		return errors.Wrap(err, "could not get access to database")
	}
	if existing != nil {
		return nderror.Conflict("unique-media", "This media name is already stored.")
	}

	record := &model.Media{
		Name:        file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		UserID:      currentUser(c).ID,
		Metadata:    storage.MetadataFromHeaders(c.Request().Header),
	}
	// The record's UUID is the storage name.
	if err := h.db.Save(record); err != nil {
		return errors.Wrap(err, "could not persist media record")
	}

	content, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "could not open uploaded file")
	}
	defer content.Close()

	record.Size, err = h.storage.Put(record.ID, content)
	if err != nil {
		// Roll the record back, the payload never made it to the storage.
		_ = h.db.Delete(record)
		return errors.Wrap(err, "could not store media payload")
	}

	if err := h.db.Save(record); err != nil {
		return errors.Wrap(err, "could not persist media record")
	}

	return c.JSON(http.StatusCreated, serializer.Media(record))
}

///// Download
////
//

// Download handler streams back the stored payload with its metadata headers.
func (h *media) Download(c echo.Context) error {
	record, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	content, err := h.storage.Get(record.ID)
	if err != nil {
		return errors.Wrap(err, "could not open media payload")
	}
	defer content.Close()

	storage.MetadataToHeaders(record.Metadata, c.Response().Header())
	return c.Stream(http.StatusOK, record.ContentType, content)
}

///// Delete
////
//

// Delete handler removes the record and its stored payload.
func (h *media) Delete(c echo.Context) error {
	record, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.storage.Delete(record.ID); err != nil {
		return err
	}
	if err := h.db.Delete(record); err != nil && !h.db.IsNotFound(err) {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *media) find(id string) (*model.Media, error) {
	record, err := h.db.FindMedia(id)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, nderror.NotFound("No such media.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}
	return record, nil
}
