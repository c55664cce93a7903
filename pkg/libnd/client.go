package libnd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

// M is an arbitrary JSON payload.
type M map[string]any

type (
	// A Client defines all interactions that can be performed on a newsdesk server.
	Client interface {
		// Login connects the Client to the newsdesk server.
		Login(username, password string) error
		// BearerToken returns the authentication used for requests sent to the server.
		BearerToken() string
		// SetBearerToken sets the authentication used for requests sent to the server.
		SetBearerToken(token string)
		// Update issues a partial update of the item against the named resource.
		// A nil patch means an empty payload.
		Update(resource string, item *Item, patch M) error
		// Create issues a creation request against the named resource and
		// returns the created representation.
		Create(resource string, payload M) (M, error)
		// Upload stores a media binary with its metadata and returns the
		// created representation.
		Upload(name, contentType string, content io.Reader, metadata map[string]string) (M, error)
	}

	client struct {
		http     *http.Client
		endpoint string
		bearer   string
	}
)

// Resources exposed by the newsdesk server. Update resources are path
// templates keyed by the item's identifier.
var (
	updateResources = map[string]string{
		"archive_spike":   "/archive/%s/spike",
		"archive_unspike": "/archive/%s/unspike",
	}
	createResources = map[string]string{
		"ingest": "/ingest",
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) Login(username, password string) error {
	body, err := json.Marshal(M{"username": username, "password": password})
	if err != nil {
		return errors.Wrap(err, "could not serialize credentials")
	}

	res, err := c.do(http.MethodPost, "/auth/sign_in", bytes.NewReader(body), nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	var login struct {
		Token string `json:"token"`
	}
	dec := json.NewDecoder(res.Body)
	err = dec.Decode(&login)

	c.bearer = login.Token
	return errors.Wrap(err, "could not parse response")
}

func (c *client) BearerToken() string {
	return c.bearer
}

func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

func (c *client) Update(resource string, item *Item, patch M) error {
	template, ok := updateResources[resource]
	if !ok {
		return errors.Errorf("unknown update resource: %s", resource)
	}

	var body io.Reader
	if patch != nil {
		payload, err := json.Marshal(patch)
		if err != nil {
			return errors.Wrap(err, "could not serialize patch")
		}
		body = bytes.NewReader(payload)
	}

	res, err := c.do(http.MethodPatch, fmt.Sprintf(template, item.ID), body, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	_, err = io.Copy(io.Discard, res.Body)
	return errors.Wrap(err, "could not drain response")
}

func (c *client) Create(resource string, payload M) (M, error) {
	endpoint, ok := createResources[resource]
	if !ok {
		return nil, errors.Errorf("unknown create resource: %s", resource)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize payload")
	}

	res, err := c.do(http.MethodPost, endpoint, bytes.NewReader(body), nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}

	var created M
	dec := json.NewDecoder(res.Body)
	return created, errors.Wrap(dec.Decode(&created), "could not parse response")
}

func (c *client) Upload(name, contentType string, content io.Reader, metadata map[string]string) (M, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fh := textproto.MIMEHeader{}
	fh.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename="%s"`, name))
	fh.Set("Content-Type", contentType)
	part, err := w.CreatePart(fh)
	if err != nil {
		return nil, errors.Wrap(err, "could not create multipart")
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, errors.Wrap(err, "could not buffer media content")
	}
	w.Close()

	headers := http.Header{}
	headers.Set("Content-Type", w.FormDataContentType())
	for key, value := range metadata {
		headers.Set("X-Media-Meta-"+key, value)
	}

	res, err := c.do(http.MethodPost, "/media", body, headers)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}

	var created M
	dec := json.NewDecoder(res.Body)
	return created, errors.Wrap(dec.Decode(&created), "could not parse response")
}

// do builds and performs a request against the server.
// Extra headers override the JSON defaults.
func (c *client) do(method, endpoint string, body io.Reader, headers http.Header) (*http.Response, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	for key := range headers {
		req.Header.Set(key, headers.Get(key))
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	res, err := c.http.Do(req)
	return res, errors.Wrap(err, "could not perform request")
}
