package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/nderror"
	"github.com/newsdeskhq/newsdesk/internal/server/service"
)

// ingest contains all ingest handlers.
type ingest struct {
	db database.Client
}

///// Fetch
////
//

// Fetch handler copies an ingest item into the archive on the given desk.
func (h *ingest) Fetch(c echo.Context) error {
	var params service.IngestParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, nderror.New("Could not get ingest params."))
	}

	if params.GUID == "" {
		return c.JSON(http.StatusBadRequest, nderror.New("No guid provided."))
	}
	if params.Desk == "" {
		return c.JSON(http.StatusBadRequest, nderror.New("No desk provided."))
	}

	fetch, err := service.NewIngest(h.db).Execute(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, fetch)
}
