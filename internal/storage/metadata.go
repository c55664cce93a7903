package storage

import (
	"net/http"
	"strings"

	"github.com/valyala/fastjson"
)

// MetadataHeaderPrefix marks request/response headers carrying user metadata.
// Header values are JSON documents.
const MetadataHeaderPrefix = "X-Media-Meta-"

// MetadataFromHeaders extracts user metadata from the given headers.
// Values that are not valid JSON are skipped.
func MetadataFromHeaders(headers http.Header) map[string]string {
	metadata := map[string]string{}

	for key, values := range headers {
		if !strings.HasPrefix(key, MetadataHeaderPrefix) || len(values) == 0 {
			continue
		}
		if values[0] == "" {
			continue
		}

		if err := fastjson.Validate(values[0]); err != nil {
			continue
		}

		name := strings.ToLower(strings.TrimPrefix(key, MetadataHeaderPrefix))
		metadata[name] = values[0]
	}

	return metadata
}

// MetadataToHeaders formats user metadata to response headers.
func MetadataToHeaders(metadata map[string]string, headers http.Header) {
	for key, value := range metadata {
		headers.Set(MetadataHeaderPrefix+key, value)
	}
}
