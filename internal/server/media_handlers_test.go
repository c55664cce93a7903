package server_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/newsdeskhq/newsdesk/internal/server"
	"github.com/stretchr/testify/assert"
)

func TestRequestMediaUpload(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	r.POST("/media").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})

	user := createUser(ioc, "foo")
	token := "Bearer " + server.TokenFromUser(ioc, user)

	rec := uploadMedia(engine, token, "press.jpg", "fake-jpeg-bytes")
	assert.Equal(t, http.StatusCreated, rec.Code)

	var v map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "press.jpg", v["name"])
	assert.Equal(t, float64(len("fake-jpeg-bytes")), v["size"])
	assert.Equal(t, `"At the press conference"`, v["metadata"].(map[string]any)["caption"])

	// Names are unique.
	rec = uploadMedia(engine, token, "press.jpg", "other-bytes")
	assert.Equal(t, http.StatusConflict, rec.Code)

	//
	// Download round-trip.
	//

	id := v["uuid"].(string)
	header := gofight.H{"Authorization": token}

	r.GET("/media/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, "fake-jpeg-bytes", r.Body.String())
		assert.Equal(t, `"At the press conference"`, r.HeaderMap.Get("X-Media-Meta-Caption"))
	})

	//
	// Delete.
	//

	r.DELETE("/media/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	r.GET("/media/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}

// uploadMedia performs a multipart upload, gofight does not expose header
// control on file parts.
func uploadMedia(engine *echo.Echo, token, filename, content string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("media", filename)
	if err != nil {
		panic(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		panic(err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, token)
	req.Header.Set("X-Media-Meta-Caption", `"At the press conference"`)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}
