package ocrspace

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const testKey = "test-key"

// recordingDoer parses every request it receives and answers with a canned
// JSON body, or fails with err.
type recordingDoer struct {
	err   error
	block chan struct{}
	panic any

	mu    sync.Mutex
	reqs  []*http.Request
	forms []*multipart.Form
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	if d.block != nil {
		<-d.block
	}
	if d.panic != nil {
		panic(d.panic)
	}
	if d.err != nil {
		return nil, d.err
	}
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.reqs = append(d.reqs, req)
	d.forms = append(d.forms, req.MultipartForm)
	d.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"OCRExitCode":1}`)),
		Request:    req,
	}, nil
}

func (d *recordingDoer) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.reqs)
}

func (d *recordingDoer) lastForm(t *testing.T) *multipart.Form {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.forms) == 0 {
		t.Fatalf("no request reached the transport")
	}
	return d.forms[len(d.forms)-1]
}

func newTestBuilder(d Doer) *Builder {
	return NewClient(testKey, WithHTTPClient(d)).NewRequestBuilder()
}

// send executes r synchronously and returns the form seen by d.
func send(t *testing.T, r *TargetedRequest, d *recordingDoer) *multipart.Form {
	t.Helper()
	resp, err := r.Request(t.Context())
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	resp.Body.Close()
	return d.lastForm(t)
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func formKeys(form *multipart.Form) []string {
	var keys []string
	for k := range form.Value {
		keys = append(keys, k)
	}
	for k := range form.File {
		keys = append(keys, k)
	}
	return keys
}

func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, _ := strconv.ParseUint(string(buf), 10, 64)
	return id
}
