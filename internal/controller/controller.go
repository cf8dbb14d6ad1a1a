package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"filelib-cli/internal/model"
	"filelib-cli/internal/store"

	"github.com/sirupsen/logrus"
)

// Client is the subset of the library API the controller drives.
type Client interface {
	ListFiles(ctx context.Context, libraryID, dir string) ([]model.FileEntry, error)
	Touch(ctx context.Context, libraryID, dir string, body model.TouchRequest) error
	Delete(ctx context.Context, libraryID, entryPath string) error
	Move(ctx context.Context, libraryID string, body model.MoveRequest) error
	Download(ctx context.Context, libraryID, entryPath string, w io.Writer) (int64, error)
}

// journalTimeout bounds a journal write; it runs after the request context may be gone.
const journalTimeout = 5 * time.Second

// Journal records create attempts. It is optional.
type Journal interface {
	RecordTouch(ctx context.Context, rec store.TouchRecord) error
}

type Options struct {
	LibraryID   string
	LibraryPath string
	Client      Client
	Journal     Journal
}

// Controller binds the state transitions to one library and directory.
type Controller struct {
	libraryID   string
	libraryPath string
	client      Client
	journal     Journal
	now         func() time.Time
}

func New(opts Options) (*Controller, error) {
	id := strings.TrimSpace(opts.LibraryID)
	if id == "" {
		return nil, ErrMissingLibrary
	}
	if opts.Client == nil {
		return nil, ErrNoClient
	}
	p := opts.LibraryPath
	if strings.TrimSpace(p) == "" {
		p = "/"
	}
	return &Controller{
		libraryID:   id,
		libraryPath: p,
		client:      opts.Client,
		journal:     opts.Journal,
		now:         time.Now,
	}, nil
}

func (c *Controller) LibraryID() string   { return c.libraryID }
func (c *Controller) LibraryPath() string { return c.libraryPath }

// Resolve turns a listed entry path (relative to the bound directory) into a library path.
func (c *Controller) Resolve(name string) string {
	return model.Join(c.libraryPath, name)
}

// Load fetches the listing for the bound directory.
func (c *Controller) Load(ctx context.Context) ([]model.FileEntry, error) {
	return c.client.ListFiles(ctx, c.libraryID, c.libraryPath)
}

type SubmitResult struct {
	Request model.TouchRequest
	Err     error
}

// BeginSubmit reads the prompt and marks a request as in flight.
func BeginSubmit(s State) (State, model.TouchRequest, error) {
	if s.Submitting {
		return s, model.TouchRequest{}, ErrSubmitInFlight
	}
	out := s.clone()
	out.Submitting = true
	return out, model.TouchRequest{Type: s.Prompt.Type, Filename: s.Prompt.Value}, nil
}

// Submit performs the create request. It blocks on the network and is meant to run off the
// UI loop; the result goes back through FinishSubmit.
func (c *Controller) Submit(ctx context.Context, req model.TouchRequest) SubmitResult {
	err := c.client.Touch(ctx, c.libraryID, c.libraryPath, req)
	c.record(ctx, req, err)
	return SubmitResult{Request: req, Err: err}
}

// FinishSubmit applies a create result: success asks for a reload, failure raises the alert
// and leaves the prompt open with its value.
func FinishSubmit(s State, res SubmitResult) (State, []Effect) {
	out := s.clone()
	out.Submitting = false
	if res.Err == nil {
		return out, []Effect{{Kind: EffectReload}}
	}
	msg := fmt.Sprintf("Could not create %s %q: %v", kindLabel(res.Request.Type), res.Request.Filename, res.Err)
	return ShowAlert(out, msg)
}

// TouchSubmit runs BeginSubmit, Submit and FinishSubmit in sequence.
func (c *Controller) TouchSubmit(ctx context.Context, s State) (State, []Effect, error) {
	next, req, err := BeginSubmit(s)
	if err != nil {
		return s, nil, err
	}
	res := c.Submit(ctx, req)
	next, effects := FinishSubmit(next, res)
	return next, effects, nil
}

type RenameResult struct {
	Request model.MoveRequest
	Err     error
}

// BeginRename reads the rename prompt and marks a request as in flight. The request still
// holds names relative to the bound directory; Move resolves them.
func BeginRename(s State) (State, model.MoveRequest, error) {
	if s.Submitting {
		return s, model.MoveRequest{}, ErrSubmitInFlight
	}
	to := strings.TrimSpace(s.Prompt.Value)
	if to == "" {
		return s, model.MoveRequest{}, ErrEmptyName
	}
	out := s.clone()
	out.Submitting = true
	return out, model.MoveRequest{From: s.Prompt.RenameFrom, To: to}, nil
}

// Move performs a rename. Like Submit it blocks on the network.
func (c *Controller) Move(ctx context.Context, req model.MoveRequest) RenameResult {
	resolved := model.MoveRequest{From: c.Resolve(req.From), To: c.Resolve(req.To)}
	err := c.client.Move(ctx, c.libraryID, resolved)
	return RenameResult{Request: resolved, Err: err}
}

// FinishRename applies a rename result the same way FinishSubmit does.
func FinishRename(s State, res RenameResult) (State, []Effect) {
	out := s.clone()
	out.Submitting = false
	if res.Err == nil {
		return out, []Effect{{Kind: EffectReload}}
	}
	return ShowAlert(out, fmt.Sprintf("Could not rename %s to %s: %v", res.Request.From, res.Request.To, res.Err))
}

// Download writes the contents of the named entry to w.
func (c *Controller) Download(ctx context.Context, name string, w io.Writer) (int64, error) {
	return c.client.Download(ctx, c.libraryID, c.Resolve(name), w)
}

// Upload exists so callers can bind it, but uploading is not supported yet.
func (c *Controller) Upload(typ string) error {
	logrus.WithFields(logrus.Fields{"library": c.libraryID, "type": typ}).Warn("upload invoked")
	return fmt.Errorf("upload %s: %w", typ, ErrNotImplemented)
}

func (c *Controller) record(ctx context.Context, req model.TouchRequest, err error) {
	log := logrus.WithFields(logrus.Fields{
		"library":  c.libraryID,
		"path":     c.libraryPath,
		"type":     req.Type,
		"filename": req.Filename,
	})
	if err != nil {
		log.WithError(err).Warn("touch failed")
	} else {
		log.Info("touch ok")
	}
	if c.journal == nil {
		return
	}
	rec := store.TouchRecord{
		At:        c.now().UTC(),
		LibraryID: c.libraryID,
		Path:      c.libraryPath,
		Type:      req.Type,
		Filename:  req.Filename,
		OK:        err == nil,
	}
	if err != nil {
		rec.Error = err.Error()
		var sc interface{ HTTPStatus() int }
		if errors.As(err, &sc) {
			rec.StatusCode = sc.HTTPStatus()
		}
	}
	// The attempt is recorded even when the request failed because ctx expired.
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if jerr := c.journal.RecordTouch(jctx, rec); jerr != nil {
		log.WithError(jerr).Warn("journal write failed")
	}
}

// ShowAlert opens the alert modal over whatever is already open.
func ShowAlert(s State, msg string) (State, []Effect) {
	out := OpenModal(s, ModalAlert)
	out.Alert = msg
	return out, []Effect{{Kind: EffectAlert, Message: msg}}
}
