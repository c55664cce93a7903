package workflow

import (
	"io"

	"github.com/newsdeskhq/newsdesk/pkg/libnd"
	"github.com/pkg/errors"
)

type (
	// An Activity is a named user-triggerable action of the workflow.
	Activity struct {
		Name  string
		Label string
		Icon  string
		// Filter reports whether the activity applies to the given item.
		Filter func(item *libnd.Item) bool
		// Handler performs the action with the injected collaborators.
		Handler func(ctx *Context, item *libnd.Item) error
	}

	// A Context carries the collaborators injected into activity handlers
	// by the composition root.
	Context struct {
		API       libnd.Client
		Lifecycle *Lifecycle
		Workspace *Workspace

		// Upload describes the media payload of the upload activity.
		Upload *UploadPayload
	}

	// An UploadPayload is the media payload handed to the upload activity.
	UploadPayload struct {
		Name        string
		ContentType string
		Content     io.Reader
		Metadata    map[string]string
	}

	// A Registry holds the static activity table, built once at startup.
	Registry struct {
		ctx        *Context
		activities []Activity
	}
)

// NewRegistry builds the activity table with the given collaborators.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{
		ctx: ctx,
		activities: []Activity{
			{
				Name:  "spike",
				Label: "Spike Item",
				Icon:  "trash",
				Filter: func(item *libnd.Item) bool {
					return item != nil && item.State == libnd.StateNormal
				},
				Handler: func(ctx *Context, item *libnd.Item) error {
					return ctx.Lifecycle.Spike(item)
				},
			},
			{
				Name:  "unspike",
				Label: "Unspike Item",
				Icon:  "unspike",
				Filter: func(item *libnd.Item) bool {
					return item != nil && item.State == libnd.StateSpiked
				},
				Handler: func(ctx *Context, item *libnd.Item) error {
					return ctx.Lifecycle.Unspike(item)
				},
			},
			{
				Name:  "fetch-as",
				Label: "Fetch",
				Icon:  "archive",
				Filter: func(item *libnd.Item) bool {
					return item != nil && item.State == libnd.StateIngested
				},
				Handler: func(ctx *Context, item *libnd.Item) error {
					return ctx.Lifecycle.Fetch(item, ctx.Workspace.DeskID())
				},
			},
			{
				Name:   "upload",
				Label:  "Upload Media",
				Icon:   "upload",
				Filter: func(item *libnd.Item) bool { return true },
				Handler: func(ctx *Context, item *libnd.Item) error {
					if ctx.Upload == nil {
						return errors.New("no media payload provided")
					}
					_, err := ctx.API.Upload(ctx.Upload.Name, ctx.Upload.ContentType, ctx.Upload.Content, ctx.Upload.Metadata)
					return err
				},
			},
		},
	}
}

// Get returns the activity registered under the given name.
func (r *Registry) Get(name string) (Activity, bool) {
	for _, a := range r.activities {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}

// For returns the activities applicable to the given item,
// in registration order.
func (r *Registry) For(item *libnd.Item) []Activity {
	matches := make([]Activity, 0, len(r.activities))
	for _, a := range r.activities {
		if a.Filter(item) {
			matches = append(matches, a)
		}
	}
	return matches
}

// Trigger runs the activity registered under the given name against the item.
func (r *Registry) Trigger(name string, item *libnd.Item) error {
	a, ok := r.Get(name)
	if !ok {
		return errors.Errorf("unknown activity: %s", name)
	}
	if !a.Filter(item) {
		return errors.Errorf("activity %s does not apply to this item", name)
	}
	return a.Handler(r.ctx, item)
}
