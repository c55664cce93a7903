package workflow

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/newsdeskhq/newsdesk/internal/logger"
	"github.com/newsdeskhq/newsdesk/pkg/libnd"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A session is the composition root of the workflow CLI: it loads the
// stored credentials and builds the activity registry with its
// collaborators.
type session struct {
	cfg      Config
	ctx      *Context
	registry *Registry
	log      logrus.StdLogger
}

func open() (*session, error) {
	cfg, err := Load()
	if err != nil {
		return nil, errors.Wrap(err, "could not load config")
	}

	api, err := libnd.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach newsdesk endpoint")
	}
	api.SetBearerToken(cfg.BearerToken)

	workspace := NewWorkspace(cfg.Desk)
	ctx := &Context{
		API:       api,
		Lifecycle: NewLifecycle(api, workspace),
		Workspace: workspace,
	}

	return &session{
		cfg:      cfg,
		ctx:      ctx,
		registry: NewRegistry(ctx),
		log:      logger.New("ndc.log"),
	}, nil
}

// Spike withdraws the archive item for the given id.
func Spike(id string) error {
	s, err := open()
	if err != nil {
		return err
	}

	item := &libnd.Item{ID: id, State: libnd.StateNormal}
	if err := s.registry.Trigger("spike", item); err != nil {
		s.log.Printf("spike %s failed: %s", id, err)
		return err
	}

	s.log.Printf("spiked item %s", id)
	fmt.Println("Item spiked:", id)
	return nil
}

// Unspike restores the archive item for the given id.
func Unspike(id string) error {
	s, err := open()
	if err != nil {
		return err
	}

	item := &libnd.Item{ID: id, State: libnd.StateSpiked}
	if err := s.registry.Trigger("unspike", item); err != nil {
		s.log.Printf("unspike %s failed: %s", id, err)
		return err
	}

	s.log.Printf("unspiked item %s", id)
	fmt.Println("Item unspiked:", id)
	return nil
}

// Fetch copies the ingest item for the given GUID onto the configured desk.
func Fetch(guid string) error {
	s, err := open()
	if err != nil {
		return err
	}

	item := &libnd.Item{GUID: guid, State: libnd.StateIngested}
	if err := s.registry.Trigger("fetch-as", item); err != nil {
		s.log.Printf("fetch %s failed: %s", guid, err)
		return err
	}

	s.log.Printf("fetched item %s as task %s", guid, item.TaskID)
	fmt.Println("Fetched to archive, task:", item.TaskID)
	return nil
}

// Upload stores the given file as a media on the server.
func Upload(filename string) error {
	s, err := open()
	if err != nil {
		return err
	}

	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "could not open media file")
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	s.ctx.Upload = &UploadPayload{
		Name:        filepath.Base(filename),
		ContentType: contentType,
		Content:     f,
	}
	if err := s.registry.Trigger("upload", nil); err != nil {
		s.log.Printf("upload %s failed: %s", filename, err)
		return err
	}

	s.log.Printf("uploaded media %s", filename)
	fmt.Println("Media uploaded:", filepath.Base(filename))
	return nil
}
