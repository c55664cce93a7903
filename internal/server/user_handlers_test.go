package server_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
)

func TestRequestUserCreate(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.POST("/users").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Request body can't be empty"}}`, r.Body.String())
	})

	r.POST("/users").SetJSON(gofight.D{"username": "foo"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"No password provided."}}`, r.Body.String())
	})

	params := gofight.D{"username": "foo", "password": "bar"}

	r.POST("/users").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		var v map[string]any
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Equal(t, "foo", v["username"])
		assert.Equal(t, "/users/foo",
			v["_links"].(map[string]any)["self"].(map[string]any)["href"])

		// The password is write-only.
		assert.NotContains(t, r.Body.String(), "password")
		assert.NotContains(t, r.Body.String(), "bar")
	})

	r.POST("/users").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusConflict, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"unique-username", "message":"This username is already registered."}}`, r.Body.String())
	})
}

func TestRequestUserList(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	r.GET("/users").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"_items":[]}`, r.Body.String())
	})

	createUser(ioc, "foo")
	createUser(ioc, "bar")

	r.GET("/users").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v struct {
			Items []map[string]any `json:"_items"`
		}
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Len(t, v.Items, 2)
		assert.NotContains(t, r.Body.String(), "password")
	})
}

func TestRequestUserFetch(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	r.GET("/users/foo").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-found", "message":"No such user."}}`, r.Body.String())
	})

	createUser(ioc, "foo")

	r.GET("/users/foo").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v map[string]any
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Equal(t, "foo", v["username"])
		assert.NotContains(t, r.Body.String(), "password")
	})
}

func TestRequestUserUpdate(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	createUser(ioc, "foo")

	r.PATCH("/users/foo").SetJSON(gofight.D{"first_name": "Foo"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})

	r.GET("/users/foo").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v map[string]any
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Equal(t, "foo", v["username"])
		assert.Equal(t, "Foo", v["first_name"])
	})

	// Username is the immutable resource key, a partial update leaves it alone.
	r.PATCH("/users/foo").SetJSON(gofight.D{"username": "renamed"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})

	r.GET("/users/foo").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})
}

func TestRequestUserDelete(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	r.DELETE("/users/foo").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	createUser(ioc, "foo")

	r.DELETE("/users/foo").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	r.GET("/users/foo").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}

func TestRequestUserLogin(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	createUser(ioc, "foo")

	r.POST("/auth/sign_in").SetJSON(gofight.D{"username": "foo", "password": "nope"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth", "message":"Invalid username or password."}}`, r.Body.String())
	})

	r.POST("/auth/sign_in").SetJSON(gofight.D{"username": "foo", "password": "password42"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v struct {
			Token string         `json:"token"`
			User  map[string]any `json:"user"`
		}
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.NotEmpty(t, v.Token)
		assert.Equal(t, "foo", v.User["username"])
	})
}
