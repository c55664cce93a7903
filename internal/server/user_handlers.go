package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/internal/nderror"
	"github.com/newsdeskhq/newsdesk/internal/server/serializer"
	"github.com/newsdeskhq/newsdesk/internal/server/service"
	"github.com/pkg/errors"
)

// user contains all users resource handlers.
type user struct {
	db         database.Client
	signingKey []byte
	tokenTTL   time.Duration
}

///// Create
////
//

// Create handler registers a new user.
// The username becomes the resource key of the record.
func (h *user) Create(c echo.Context) error {
	var params service.CreateUserParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, nderror.New("Could not get user's params."))
	}

	if params.Username == "" {
		return c.JSON(http.StatusBadRequest, nderror.New("No username provided."))
	}
	if params.Password == "" {
		return c.JSON(http.StatusBadRequest, nderror.New("No password provided."))
	}

	service := service.NewUser(h.db, h.signingKey, h.tokenTTL)
	create, err := service.Create(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, create)
}

///// List
////
//

// List handler renders all the registered users.
func (h *user) List(c echo.Context) error {
	users, err := h.db.AllUsers()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Users(users))
}

///// Fetch
////
//

// Fetch handler renders the user for the given username.
func (h *user) Fetch(c echo.Context) error {
	user, err := h.find(c.Param("username"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.User(user))
}

///// Update
////
//

// Update handler applies a partial update on the user for the given username.
func (h *user) Update(c echo.Context) error {
	user, err := h.find(c.Param("username"))
	if err != nil {
		return err
	}

	var params service.UpdateUserParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, nderror.New("Could not get user's params."))
	}

	service := service.NewUser(h.db, h.signingKey, h.tokenTTL)
	update, err := service.Update(user, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, update)
}

///// Delete
////
//

// Delete handler removes the user for the given username.
func (h *user) Delete(c echo.Context) error {
	user, err := h.find(c.Param("username"))
	if err != nil {
		return err
	}

	if err := h.db.Delete(user); err != nil && !h.db.IsNotFound(err) {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

///// Login
////
//

// Login handler authenticates a user and returns a JWT.
func (h *user) Login(c echo.Context) error {
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, nderror.New("Could not get credentials."))
	}

	if params.Username == "" || params.Password == "" {
		return c.JSON(http.StatusBadRequest, nderror.New("No username or password provided."))
	}

	service := service.NewUser(h.db, h.signingKey, h.tokenTTL)
	login, err := service.Login(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, login)
}

func (h *user) find(username string) (*model.User, error) {
	user, err := h.db.FindUserByUsername(username)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, nderror.NotFound("No such user.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}
	return user, nil
}
