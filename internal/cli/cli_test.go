package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"filelib-cli/internal/controller"

	"github.com/sirupsen/logrus"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd, app := newRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := execute(cmd, app)
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points config and journal at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FILELIB_CONFIG_DIR", dir)
	for _, k := range []string{"FILELIB_SERVER", "FILELIB_LIBRARY", "FILELIB_PATH", "FILELIB_FORMAT"} {
		t.Setenv(k, "")
	}
	return dir
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	From   string
	To     string
	Body   string
	CType  string
}

type fakeServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	status   int
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{status: http.StatusOK}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.requests = append(fs.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query().Get("path"),
			From:   r.URL.Query().Get("from"),
			To:     r.URL.Query().Get("to"),
			Body:   string(b),
			CType:  r.Header.Get("Content-Type"),
		})
		status := fs.status
		fs.mu.Unlock()

		if status >= 300 {
			http.Error(w, "name already taken", status)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/files") {
			_, _ = w.Write([]byte(`[{"path":"z.txt","size":3,"type":"file"},{"path":"big.bin","size":900,"type":"file"},{"path":"Archive","size":0,"type":"folder"}]`))
			return
		}
		if strings.HasSuffix(r.URL.Path, "/files/download") {
			_, _ = w.Write([]byte("hello from " + r.URL.Query().Get("path")))
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) Requests() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recordedRequest(nil), fs.requests...)
}

func TestTouch_PostsAndRecordsJournal(t *testing.T) {
	isolate(t)
	srv := newFakeServer(t)

	stdout, stderr, err := runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "--path", "/docs", "touch", "a.txt"})
	if err != nil {
		t.Fatalf("touch failed: %v\nstderr:\n%s", err, stderr)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected exactly one request, got %d: %+v", len(reqs), reqs)
	}
	got := reqs[0]
	if got.Method != http.MethodPost || got.Path != "/api/library/LIB/touch" || got.Query != "/docs" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.CType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", got.CType)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(got.Body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["type"] != "file" || body["filename"] != "a.txt" || len(body) != 2 {
		t.Fatalf("unexpected body: %v", body)
	}

	var out touchResult
	if err := json.Unmarshal(stdout, &out); err != nil {
		t.Fatalf("decode stdout: %v\n%s", err, stdout)
	}
	if !out.OK || out.Filename != "a.txt" || out.Path != "/docs" {
		t.Fatalf("unexpected output: %+v", out)
	}

	stdout, stderr, err = runCLI(t, []string{"--library", "LIB", "history"})
	if err != nil {
		t.Fatalf("history failed: %v\nstderr:\n%s", err, stderr)
	}
	var recs []map[string]any
	if err := json.Unmarshal(stdout, &recs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, stdout)
	}
	if len(recs) != 1 || recs[0]["filename"] != "a.txt" || recs[0]["ok"] != true {
		t.Fatalf("unexpected history: %v", recs)
	}
}

func TestTouch_FolderFailureSurfacesStatus(t *testing.T) {
	isolate(t)
	srv := newFakeServer(t)
	srv.status = http.StatusConflict

	_, stderr, err := runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "touch", "Reports", "--type", "folder"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "409") || !strings.Contains(string(stderr), "name already taken") {
		t.Fatalf("expected status and body in stderr, got:\n%s", stderr)
	}

	stdout, _, err := runCLI(t, []string{"--library", "LIB", "history"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var recs []map[string]any
	if err := json.Unmarshal(stdout, &recs); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(recs) != 1 || recs[0]["ok"] != false || recs[0]["statusCode"] != float64(409) {
		t.Fatalf("unexpected history: %v", recs)
	}
}

func TestLs_TextFormat(t *testing.T) {
	isolate(t)
	srv := newFakeServer(t)

	stdout, stderr, err := runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "--path", "/docs", "--format", "text", "ls"})
	if err != nil {
		t.Fatalf("ls failed: %v\nstderr:\n%s", err, stderr)
	}
	out := string(stdout)
	if !strings.Contains(out, "Archive/") || !strings.Contains(out, "z.txt") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
	if strings.Index(out, "Archive/") > strings.Index(out, "z.txt") {
		t.Fatalf("expected folders first:\n%s", out)
	}
}

func TestUpload_NotImplemented(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, []string{"--library", "LIB", "upload"})
	if !errors.Is(err, controller.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
	if !strings.Contains(string(stderr), "not implemented") {
		t.Fatalf("expected message on stderr, got:\n%s", stderr)
	}
}

func TestMissingLibrary(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, []string{"ls"})
	var mle missingLibraryError
	if !errors.As(err, &mle) {
		t.Fatalf("expected missing library error, got %v", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, []string{"--library", "LIB", "--format", "yaml", "ls"})
	var ive invalidValueError
	if !errors.As(err, &ive) {
		t.Fatalf("expected invalid value error, got %v", err)
	}
}

func TestConfig_SetThenFlagsFallBackToIt(t *testing.T) {
	dir := isolate(t)
	srv := newFakeServer(t)

	for _, kv := range [][2]string{{"server", srv.URL + "/"}, {"library.id", "FROMCFG"}, {"library.path", "/cfg"}} {
		if _, stderr, err := runCLI(t, []string{"config", "set", kv[0], kv[1]}); err != nil {
			t.Fatalf("config set %s: %v\n%s", kv[0], err, stderr)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	if _, stderr, err := runCLI(t, []string{"touch", "b.txt"}); err != nil {
		t.Fatalf("touch: %v\n%s", err, stderr)
	}
	reqs := srv.Requests()
	if len(reqs) != 1 || reqs[0].Path != "/api/library/FROMCFG/touch" || reqs[0].Query != "/cfg" {
		t.Fatalf("expected config values to be used, got %+v", reqs)
	}

	// Flags win over the config file.
	if _, stderr, err := runCLI(t, []string{"--library", "FLAG", "touch", "c.txt"}); err != nil {
		t.Fatalf("touch: %v\n%s", err, stderr)
	}
	reqs = srv.Requests()
	if got := reqs[len(reqs)-1].Path; got != "/api/library/FLAG/touch" {
		t.Fatalf("expected flag to win, got %s", got)
	}

	// Env wins over the config file too.
	t.Setenv("FILELIB_LIBRARY", "ENV")
	if _, stderr, err := runCLI(t, []string{"touch", "d.txt"}); err != nil {
		t.Fatalf("touch: %v\n%s", err, stderr)
	}
	reqs = srv.Requests()
	if got := reqs[len(reqs)-1].Path; got != "/api/library/ENV/touch" {
		t.Fatalf("expected env to win, got %s", got)
	}
}

func TestConfig_SetUnknownKey(t *testing.T) {
	isolate(t)
	if _, _, err := runCLI(t, []string{"config", "set", "nope", "x"}); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestConfig_Path(t *testing.T) {
	dir := isolate(t)
	stdout, _, err := runCLI(t, []string{"config", "path"})
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if got := strings.TrimSpace(string(stdout)); got != filepath.Join(dir, "config.toml") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestLs_SortBySizeDescending(t *testing.T) {
	isolate(t)
	srv := newFakeServer(t)

	stdout, stderr, err := runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "ls", "--sort", "size", "--desc"})
	if err != nil {
		t.Fatalf("ls failed: %v\nstderr:\n%s", err, stderr)
	}
	var out listing
	if err := json.Unmarshal(stdout, &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	var names []string
	for _, e := range out.Entries {
		names = append(names, e.Path)
	}
	if strings.Join(names, ",") != "big.bin,z.txt,Archive" || out.Sort != "size desc" {
		t.Fatalf("unexpected order %v (sort %q)", names, out.Sort)
	}

	_, _, err = runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "ls", "--sort", "last_modified"})
	var ive invalidValueError
	if !errors.As(err, &ive) {
		t.Fatalf("expected invalid value error, got %v", err)
	}
}

func TestMv_ResolvesAgainstPath(t *testing.T) {
	isolate(t)
	srv := newFakeServer(t)

	stdout, stderr, err := runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "--path", "/docs", "mv", "z.txt", "y.txt"})
	if err != nil {
		t.Fatalf("mv failed: %v\nstderr:\n%s", err, stderr)
	}
	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %+v", reqs)
	}
	got := reqs[0]
	if got.Method != http.MethodPost || got.Path != "/api/library/LIB/files/move" || got.From != "/docs/z.txt" || got.To != "/docs/y.txt" {
		t.Fatalf("unexpected request: %+v", got)
	}
	var out moveResult
	if err := json.Unmarshal(stdout, &out); err != nil || !out.OK || out.To != "/docs/y.txt" {
		t.Fatalf("unexpected output %s (err %v)", stdout, err)
	}

	if _, _, err := runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "mv", "z.txt", " "}); !errors.Is(err, controller.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestDownload_WritesFile(t *testing.T) {
	isolate(t)
	srv := newFakeServer(t)
	dest := filepath.Join(t.TempDir(), "z.txt")

	stdout, stderr, err := runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "--path", "/docs", "download", "z.txt", "-o", dest})
	if err != nil {
		t.Fatalf("download failed: %v\nstderr:\n%s", err, stderr)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(b) != "hello from /docs/z.txt" {
		t.Fatalf("unexpected contents %q", b)
	}
	var out downloadResult
	if err := json.Unmarshal(stdout, &out); err != nil || out.Bytes != int64(len(b)) || out.Path != "/docs/z.txt" {
		t.Fatalf("unexpected output %s (err %v)", stdout, err)
	}

	stdout, _, err = runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "download", "/docs/z.txt", "-o", "-"})
	if err != nil {
		t.Fatalf("download to stdout: %v", err)
	}
	if string(stdout) != "hello from /docs/z.txt" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestDownload_FailureLeavesNoFile(t *testing.T) {
	isolate(t)
	srv := newFakeServer(t)
	srv.status = http.StatusNotFound
	dir := t.TempDir()
	dest := filepath.Join(dir, "gone.txt")

	if _, _, err := runCLI(t, []string{"--server", srv.URL, "--library", "LIB", "download", "gone.txt", "-o", dest}); err == nil {
		t.Fatalf("expected error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files left behind, got %v", entries)
	}
}

func TestExecute_ClosesLogFileWhenCommandFails(t *testing.T) {
	isolate(t)
	logPath := filepath.Join(t.TempDir(), "filelib.log")
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	cmd, app := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--log-file", logPath, "--library", "LIB", "upload"})
	err := execute(cmd, app)
	if !errors.Is(err, controller.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
	if app.logCloser != nil {
		t.Fatalf("expected log file to be closed")
	}
	if logrus.StandardLogger().Out != io.Discard {
		t.Fatalf("expected logrus to be detached from the closed file")
	}
	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "upload invoked") {
		t.Fatalf("expected upload warning in log, got:\n%s", b)
	}
}
