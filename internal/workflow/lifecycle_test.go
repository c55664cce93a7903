package workflow_test

import (
	"io"
	"testing"
	"time"

	"github.com/newsdeskhq/newsdesk/internal/workflow"
	"github.com/newsdeskhq/newsdesk/pkg/libnd"
	"github.com/stretchr/testify/assert"
)

// fakeAPI implements libnd.Client for lifecycle tests.
type fakeAPI struct {
	err     error
	created libnd.M
	// during is invoked while the request is in flight.
	during func()
	// release blocks the request until closed, when set.
	release chan struct{}
}

func (f *fakeAPI) Login(username, password string) error { return nil }
func (f *fakeAPI) BearerToken() string                   { return "" }
func (f *fakeAPI) SetBearerToken(token string)           {}

func (f *fakeAPI) Update(resource string, item *libnd.Item, patch libnd.M) error {
	if f.during != nil {
		f.during()
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func (f *fakeAPI) Create(resource string, payload libnd.M) (libnd.M, error) {
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeAPI) Upload(name, contentType string, content io.Reader, metadata map[string]string) (libnd.M, error) {
	return nil, f.err
}

func TestLifecycleSpike(t *testing.T) {
	item := &libnd.Item{ID: "42", State: libnd.StateNormal}

	api := &fakeAPI{}
	api.during = func() {
		// The in-flight flag is raised before the request resolves.
		assert.True(t, item.Action(workflow.ActionSpike))
	}

	workspace := workflow.NewWorkspace("politic")
	workspace.Select("42")

	lifecycle := workflow.NewLifecycle(api, workspace)
	assert.NoError(t, lifecycle.Spike(item))

	assert.False(t, item.Action(workflow.ActionSpike))
	assert.Equal(t, libnd.StateSpiked, item.State)
	assert.NoError(t, item.Err)

	// The spiked item is deselected from the view.
	assert.Empty(t, workspace.Selected())
}

func TestLifecycleSpikeKeepsOtherSelection(t *testing.T) {
	item := &libnd.Item{ID: "42", State: libnd.StateNormal}

	workspace := workflow.NewWorkspace("politic")
	workspace.Select("51")

	lifecycle := workflow.NewLifecycle(&fakeAPI{}, workspace)
	assert.NoError(t, lifecycle.Spike(item))

	assert.Equal(t, "51", workspace.Selected())
}

func TestLifecycleSpikeFailure(t *testing.T) {
	item := &libnd.Item{ID: "42", State: libnd.StateNormal}

	rejection := &libnd.APIError{StatusCode: 409}
	rejection.Err.Tag = "already-spiked"
	rejection.Err.Message = "Item is already spiked."

	workspace := workflow.NewWorkspace("politic")
	workspace.Select("42")

	lifecycle := workflow.NewLifecycle(&fakeAPI{err: rejection}, workspace)
	err := lifecycle.Spike(item)

	assert.Equal(t, rejection, err)
	assert.Equal(t, rejection, item.Err)
	assert.False(t, item.Action(workflow.ActionSpike))
	// The item stays as it was, still selected.
	assert.Equal(t, libnd.StateNormal, item.State)
	assert.Equal(t, "42", workspace.Selected())
}

func TestLifecycleUnspike(t *testing.T) {
	item := &libnd.Item{ID: "42", State: libnd.StateSpiked}

	lifecycle := workflow.NewLifecycle(&fakeAPI{}, workflow.NewWorkspace("politic"))
	assert.NoError(t, lifecycle.Unspike(item))

	assert.Equal(t, libnd.StateNormal, item.State)
	assert.False(t, item.Action(workflow.ActionUnspike))

	// Repeating a successful unspike only toggles the in-flight flag.
	assert.NoError(t, lifecycle.Unspike(item))
	assert.Equal(t, libnd.StateNormal, item.State)
	assert.False(t, item.Action(workflow.ActionUnspike))
	assert.NoError(t, item.Err)
}

func TestLifecycleUnspikeFailure(t *testing.T) {
	item := &libnd.Item{ID: "42", State: libnd.StateSpiked}

	rejection := &libnd.APIError{StatusCode: 500}
	rejection.Err.Message = "Unexpected error"

	lifecycle := workflow.NewLifecycle(&fakeAPI{err: rejection}, workflow.NewWorkspace("politic"))
	err := lifecycle.Unspike(item)

	assert.Equal(t, rejection, err)
	assert.Equal(t, rejection, item.Err)
	assert.False(t, item.Action(workflow.ActionUnspike))
	assert.Equal(t, libnd.StateSpiked, item.State)
}

func TestLifecycleFetch(t *testing.T) {
	item := &libnd.Item{GUID: "urn:newsml:600", State: libnd.StateIngested}

	api := &fakeAPI{
		created: libnd.M{
			"uuid":    "d989ccc9-15c6-475e-839b-1690bd07d073",
			"task_id": "b329a187-ddf8-4e9b-960d-49c272a58794",
			"created": "2024-05-04T10:20:30Z",
		},
	}
	api.during = func() {
		assert.True(t, item.Action(workflow.ActionFetch))
	}

	lifecycle := workflow.NewLifecycle(api, workflow.NewWorkspace("politic"))
	assert.NoError(t, lifecycle.Fetch(item, "politic"))

	assert.False(t, item.Action(workflow.ActionFetch))
	assert.Equal(t, "b329a187-ddf8-4e9b-960d-49c272a58794", item.TaskID)
	if assert.NotNil(t, item.Created) {
		assert.Equal(t, time.Date(2024, 5, 4, 10, 20, 30, 0, time.UTC), item.Created.UTC())
	}
	assert.Equal(t, "politic", item.DeskID)
}

func TestLifecycleRejectsOverlappingAction(t *testing.T) {
	item := &libnd.Item{ID: "42", State: libnd.StateNormal}

	api := &fakeAPI{release: make(chan struct{})}
	lifecycle := workflow.NewLifecycle(api, workflow.NewWorkspace("politic"))

	inflight := make(chan struct{})
	done := make(chan error, 1)
	api.during = func() { close(inflight) }

	go func() {
		done <- lifecycle.Spike(item)
	}()

	<-inflight
	assert.Equal(t, workflow.ErrActionPending, lifecycle.Spike(item))

	close(api.release)
	assert.NoError(t, <-done)
	assert.False(t, item.Action(workflow.ActionSpike))
}
