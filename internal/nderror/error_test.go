package nderror_test

import (
	"net/http"
	"testing"

	"github.com/newsdeskhq/newsdesk/internal/nderror"
	"github.com/stretchr/testify/assert"
)

func TestNDError(t *testing.T) {
	err := nderror.New("some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, http.StatusInternalServerError, nderror.StatusCode(err))
}

func TestNDErrorStatusCode(t *testing.T) {
	err := nderror.NewWithTagCode(http.StatusConflict, "already-spiked", "Item is already spiked.")

	assert.Equal(t, http.StatusConflict, nderror.StatusCode(err))
	assert.Equal(t, http.StatusInternalServerError, nderror.StatusCode(assert.AnError))
}
