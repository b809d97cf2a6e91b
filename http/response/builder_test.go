package response // import "github.com/bookwell/bookwell/http/response"

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/log"
)

func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func TestResponseHasCommonHeaders(t *testing.T) {
	r, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		New(w, r).Write()
	})

	handler.ServeHTTP(w, r)
	resp := w.Result()

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}

	for header, expected := range headers {
		actual := resp.Header.Get(header)
		if actual != expected {
			t.Fatalf(`Unexpected header value, got %q instead of %q`, actual, expected)
		}
	}
}

func TestBuildResponseWithBrotliCompression(t *testing.T) {
	body := strings.Repeat("a", compressionThreshold+1)
	r, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Accept-Encoding", "gzip, deflate, br")

	w := httptest.NewRecorder()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		New(w, r).WithBody(body).Write()
	})

	handler.ServeHTTP(w, r)
	resp := w.Result()

	if actual := resp.Header.Get("Content-Encoding"); actual != "br" {
		t.Fatalf(`Unexpected encoding, got %q instead of %q`, actual, "br")
	}
}

func TestBuildResponseWithoutCompression(t *testing.T) {
	body := strings.Repeat("a", compressionThreshold+1)
	r, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Accept-Encoding", "gzip, deflate, br")

	w := httptest.NewRecorder()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		New(w, r).WithBody(body).WithoutCompression().Write()
	})

	handler.ServeHTTP(w, r)
	resp := w.Result()

	if actual := resp.Header.Get("Content-Encoding"); actual != "" {
		t.Fatalf(`Unexpected encoding, got %q instead of none`, actual)
	}
}

func TestSmallBodyIsNotCompressed(t *testing.T) {
	r, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Accept-Encoding", "br")

	w := httptest.NewRecorder()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		New(w, r).WithBody("ok").Write()
	})

	handler.ServeHTTP(w, r)
	resp := w.Result()

	if actual := resp.Header.Get("Content-Encoding"); actual != "" {
		t.Fatalf(`Unexpected encoding, got %q instead of none`, actual)
	}
}
