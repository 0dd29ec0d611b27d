package webhook

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shotwatch/shotwatch/internal/capture"
	"github.com/shotwatch/shotwatch/internal/config"
)

func writeTempPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("not really a png"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 15, 14, 30, 25, 0, time.UTC)
}

func TestClient_Send(t *testing.T) {
	path := writeTempPNG(t)

	var gotFile, gotFilename, gotContentType, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("file part: %v", err)
			return
		}
		defer f.Close()
		buf := make([]byte, 64)
		n, _ := f.Read(buf)
		gotFile = string(buf[:n])
		gotFilename = hdr.Filename
		gotContentType = hdr.Header.Get("Content-Type")
		gotContent = r.FormValue("content")
	}))
	defer srv.Close()

	if err := NewClient().Send(srv.URL, path, "hello"); err != nil {
		t.Fatal(err)
	}
	if gotFile != "not really a png" {
		t.Errorf("file body: got %q", gotFile)
	}
	// The server-side parser reduces the filename to its base name.
	if gotFilename != filepath.Base(path) {
		t.Errorf("filename: got %q, want %q", gotFilename, filepath.Base(path))
	}
	if gotContentType != "image/png" {
		t.Errorf("content type: got %q, want image/png", gotContentType)
	}
	if gotContent != "hello" {
		t.Errorf("content field: got %q, want %q", gotContent, "hello")
	}
}

func TestClient_Send_NoContentField(t *testing.T) {
	path := writeTempPNG(t)

	var hadContent bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		_, hadContent = r.MultipartForm.Value["content"]
	}))
	defer srv.Close()

	if err := NewClient().Send(srv.URL, path, ""); err != nil {
		t.Fatal(err)
	}
	if hadContent {
		t.Error("empty content should not produce a content part")
	}
}

func TestClient_Send_NonOKStatus(t *testing.T) {
	path := writeTempPNG(t)
	for _, code := range []int{204, 400, 404, 500} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		err := NewClient().Send(srv.URL, path, "")
		srv.Close()
		if err == nil {
			t.Errorf("status %d should fail", code)
			continue
		}
		if !strings.Contains(err.Error(), "status code") {
			t.Errorf("status %d: error should name the status code, got %v", code, err)
		}
	}
}

func TestClient_Send_MissingFile(t *testing.T) {
	err := NewClient().Send("http://127.0.0.1:1", filepath.Join(t.TempDir(), "missing.png"), "")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDeliver_Success_DeletesFile(t *testing.T) {
	path := writeTempPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	p := &Pipeline{Client: NewClient(), Now: fixedNow}
	cfg := config.Config{
		WebhookURL:      srv.URL,
		AppName:         "notepad",
		DeleteAfterSend: true,
		CustomMessage:   "Screenshot of {app_name}",
	}
	ok, steps := p.Deliver(capture.Result{Path: path, Message: "used direct window capture"}, cfg)
	if !ok {
		t.Fatalf("delivery failed: %v", steps)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be deleted after successful send")
	}
	last := steps[len(steps)-1]
	if !strings.Contains(last, "deleted screenshot") {
		t.Errorf("last step should report deletion, got %q", last)
	}
}

func TestDeliver_Success_KeepsFile(t *testing.T) {
	path := writeTempPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	p := &Pipeline{Client: NewClient(), Now: fixedNow}
	cfg := config.Config{WebhookURL: srv.URL, AppName: "notepad"}
	ok, steps := p.Deliver(capture.Result{Path: path, Message: "used full screen capture"}, cfg)
	if !ok {
		t.Fatalf("delivery failed: %v", steps)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("file should be kept when delete_after_send is false")
	}
}

func TestDeliver_SendFailure_KeepsFile(t *testing.T) {
	for _, code := range []int{201, 204, 301, 400, 403, 404, 429, 500, 502} {
		path := writeTempPNG(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		p := &Pipeline{Client: NewClient(), Now: fixedNow}
		cfg := config.Config{WebhookURL: srv.URL, AppName: "notepad", DeleteAfterSend: true}
		ok, steps := p.Deliver(capture.Result{Path: path, Message: "used direct window capture"}, cfg)
		srv.Close()

		if ok {
			t.Errorf("status %d: delivery should fail", code)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("status %d: file should be kept after a failed send", code)
		}
		last := steps[len(steps)-1]
		if !strings.Contains(last, "kept") {
			t.Errorf("status %d: last step should report the file was kept, got %q", code, last)
		}
	}
}

func TestDeliver_NoFile(t *testing.T) {
	p := &Pipeline{Client: NewClient(), Now: fixedNow}
	ok, steps := p.Deliver(capture.Result{Message: "error capturing screen: boom"}, config.Config{})
	if ok {
		t.Fatal("delivery without a file should fail")
	}
	if len(steps) != 1 || steps[0] != "error capturing screen: boom" {
		t.Errorf("steps: got %v", steps)
	}
}

func TestDeliver_BlankTemplateSendsNoContent(t *testing.T) {
	path := writeTempPNG(t)

	var hadContent bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		_, hadContent = r.MultipartForm.Value["content"]
	}))
	defer srv.Close()

	p := &Pipeline{Client: NewClient(), Now: fixedNow}
	cfg := config.Config{WebhookURL: srv.URL, AppName: "notepad", CustomMessage: "   "}
	ok, _ := p.Deliver(capture.Result{Path: path, Message: "ok"}, cfg)
	if !ok {
		t.Fatal("delivery failed")
	}
	if hadContent {
		t.Error("blank template should produce an image-only post")
	}
}
