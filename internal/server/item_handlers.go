package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/internal/nderror"
	"github.com/newsdeskhq/newsdesk/internal/server/serializer"
	"github.com/newsdeskhq/newsdesk/internal/server/service"
	"github.com/pkg/errors"
)

// item contains all archive item handlers.
type item struct {
	db database.Client
}

// spikeParams is the target-state payload of a spike request.
type spikeParams struct {
	State string `json:"state"`
}

///// List
////
//

// List handler renders archive items, optionally filtered by state.
func (h *item) List(c echo.Context) error {
	state := c.QueryParam("state")
	switch state {
	case "", model.StateIngested, model.StateNormal, model.StateSpiked:
	default:
		return c.JSON(http.StatusBadRequest, nderror.New("Unknown state filter."))
	}

	items, err := h.db.FindItemsByState(state)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Items(items))
}

///// Fetch
////
//

// Fetch handler renders the archive item for the given id.
func (h *item) Fetch(c echo.Context) error {
	item, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Item(item))
}

///// Spike
////
//

// Spike handler withdraws the item from circulation.
// The request carries the target-state payload `{"state": "spiked"}`.
func (h *item) Spike(c echo.Context) error {
	item, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	var params spikeParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, nderror.New("Could not get spike params."))
	}
	if params.State != model.StateSpiked {
		return c.JSON(http.StatusBadRequest, nderror.New("Spike requires the spiked target state."))
	}

	spike, err := service.NewLifecycle(h.db).Spike(item)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, spike)
}

///// Unspike
////
//

// Unspike handler restores normal visibility of the item.
// The request payload is empty.
func (h *item) Unspike(c echo.Context) error {
	item, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	unspike, err := service.NewLifecycle(h.db).Unspike(item)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, unspike)
}

func (h *item) find(id string) (*model.Item, error) {
	item, err := h.db.FindItem(id)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, nderror.NotFound("No such item.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}
	return item, nil
}
