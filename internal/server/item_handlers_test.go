package server_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRequestItemSpike(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	r.PATCH("/archive/42/spike").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth", "message":"Invalid login credentials."}}`, r.Body.String())
	})

	user := createUser(ioc, "foo")
	header := authHeader(ioc, user)

	r.PATCH("/archive/42/spike").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-found", "message":"No such item."}}`, r.Body.String())
	})

	item := createItem(ioc, "urn:newsml:508", model.StateNormal)

	r.PATCH("/archive/"+item.ID+"/spike").SetHeader(header).SetJSON(gofight.D{"state": "normal"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Spike requires the spiked target state."}}`, r.Body.String())
	})

	r.PATCH("/archive/"+item.ID+"/spike").SetHeader(header).SetJSON(gofight.D{"state": "spiked"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v map[string]any
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Equal(t, "spiked", v["state"])
	})

	// Spiking a spiked item is a conflict.
	r.PATCH("/archive/"+item.ID+"/spike").SetHeader(header).SetJSON(gofight.D{"state": "spiked"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusConflict, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"already-spiked", "message":"Item is already spiked."}}`, r.Body.String())
	})
}

func TestRequestItemUnspike(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	user := createUser(ioc, "foo")
	header := authHeader(ioc, user)
	item := createItem(ioc, "urn:newsml:509", model.StateSpiked)

	// Unspike carries an empty payload.
	r.PATCH("/archive/"+item.ID+"/unspike").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v map[string]any
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Equal(t, "normal", v["state"])
	})

	// Unspiking an unspiked item is a no-op.
	r.PATCH("/archive/"+item.ID+"/unspike").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v map[string]any
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Equal(t, "normal", v["state"])
	})
}

func TestRequestItemList(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	user := createUser(ioc, "foo")
	header := authHeader(ioc, user)

	createItem(ioc, "urn:newsml:510", model.StateNormal)
	createItem(ioc, "urn:newsml:511", model.StateSpiked)

	r.GET("/archive").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v struct {
			Items []map[string]any `json:"_items"`
		}
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Len(t, v.Items, 2)
	})

	r.GET("/archive").SetHeader(header).SetQuery(gofight.H{"state": "spiked"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v struct {
			Items []map[string]any `json:"_items"`
		}
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Len(t, v.Items, 1)
		assert.Equal(t, "urn:newsml:511", v.Items[0]["guid"])
	})

	r.GET("/archive").SetHeader(header).SetQuery(gofight.H{"state": "published"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
	})
}

func TestRequestItemFetch(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	user := createUser(ioc, "foo")
	header := authHeader(ioc, user)
	item := createItem(ioc, "urn:newsml:512", model.StateNormal)

	r.GET("/archive/"+item.ID).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v map[string]any
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Equal(t, "urn:newsml:512", v["guid"])
		assert.Equal(t, "/archive/"+item.ID,
			v["_links"].(map[string]any)["self"].(map[string]any)["href"])
	})
}
