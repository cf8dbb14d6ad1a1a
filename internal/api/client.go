package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"filelib-cli/internal/model"

	"github.com/sirupsen/logrus"
)

// maxErrorBody caps how much of a failed response body is kept for error messages.
const maxErrorBody = 4 << 10

type Client struct {
	base string
	http *http.Client
}

// New returns a client for the library service rooted at base (e.g. "http://host:8000").
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(base), "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) libraryURL(libraryID string, suffix string, query url.Values) string {
	u := c.base + "/api/library/" + url.PathEscape(libraryID) + suffix
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// ListFiles fetches the entries directly under dir.
func (c *Client) ListFiles(ctx context.Context, libraryID, dir string) ([]model.FileEntry, error) {
	if strings.TrimSpace(libraryID) == "" {
		return nil, errors.New("files.list: library id is empty")
	}
	u := c.libraryURL(libraryID, "/files", url.Values{"path": {dir}})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	log := logrus.WithFields(logrus.Fields{"op": "files.list", "library": libraryID, "path": dir})
	res, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return nil, err
	}
	defer res.Body.Close()
	if !ok(res.StatusCode) {
		serr := newStatusError("files.list", res)
		log.WithField("status", res.StatusCode).Warn("unexpected status")
		return nil, serr
	}

	var entries []model.FileEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("files.list: decode: %w", err)
	}
	model.SortEntries(entries)
	log.WithField("count", len(entries)).Debug("listing loaded")
	return entries, nil
}

// Touch creates an empty file or folder named body.Filename inside dir.
func (c *Client) Touch(ctx context.Context, libraryID, dir string, body model.TouchRequest) error {
	if strings.TrimSpace(libraryID) == "" {
		return errors.New("touch: library id is empty")
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	u := c.libraryURL(libraryID, "/touch", url.Values{"path": {dir}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	log := logrus.WithFields(logrus.Fields{
		"op":       "touch",
		"library":  libraryID,
		"path":     dir,
		"type":     body.Type,
		"filename": body.Filename,
	})
	log.Debug("touch")
	res, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return err
	}
	defer res.Body.Close()
	if !ok(res.StatusCode) {
		log.WithField("status", res.StatusCode).Warn("unexpected status")
		return newStatusError("touch", res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

// Delete removes one entry. The service exposes deletion on the files/move route.
func (c *Client) Delete(ctx context.Context, libraryID, entryPath string) error {
	if strings.TrimSpace(libraryID) == "" {
		return errors.New("files.delete: library id is empty")
	}
	u := c.libraryURL(libraryID, "/files/move", url.Values{"path": {entryPath}})
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{"op": "files.delete", "library": libraryID, "path": entryPath})
	res, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return err
	}
	defer res.Body.Close()
	if !ok(res.StatusCode) {
		log.WithField("status", res.StatusCode).Warn("unexpected status")
		return newStatusError("files.delete", res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	log.Info("deleted")
	return nil
}

// Move renames or moves one entry. Both paths are from the library root.
func (c *Client) Move(ctx context.Context, libraryID string, body model.MoveRequest) error {
	if strings.TrimSpace(libraryID) == "" {
		return errors.New("files.move: library id is empty")
	}
	u := c.libraryURL(libraryID, "/files/move", url.Values{"from": {body.From}, "to": {body.To}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{"op": "files.move", "library": libraryID, "from": body.From, "to": body.To})
	res, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return err
	}
	defer res.Body.Close()
	if !ok(res.StatusCode) {
		log.WithField("status", res.StatusCode).Warn("unexpected status")
		return newStatusError("files.move", res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	log.Info("moved")
	return nil
}

// Download streams the contents of one file into w and returns the number of bytes written.
func (c *Client) Download(ctx context.Context, libraryID, entryPath string, w io.Writer) (int64, error) {
	if strings.TrimSpace(libraryID) == "" {
		return 0, errors.New("files.download: library id is empty")
	}
	u := c.libraryURL(libraryID, "/files/download", url.Values{"path": {entryPath}})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	log := logrus.WithFields(logrus.Fields{"op": "files.download", "library": libraryID, "path": entryPath})
	res, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return 0, err
	}
	defer res.Body.Close()
	if !ok(res.StatusCode) {
		log.WithField("status", res.StatusCode).Warn("unexpected status")
		return 0, newStatusError("files.download", res)
	}
	n, err := io.Copy(w, res.Body)
	if err != nil {
		return n, fmt.Errorf("files.download: %w", err)
	}
	log.WithField("bytes", n).Debug("downloaded")
	return n, nil
}

func ok(code int) bool {
	return code >= 200 && code < 300
}
