package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const markup = "<html><body><h2>Valuation Measures</h2></body></html>"

func encode(t *testing.T, encoding string) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		w := gzip.NewWriter(&buf)
		w.Write([]byte(markup))
		w.Close()
	case "br":
		w := brotli.NewWriter(&buf)
		w.Write([]byte(markup))
		w.Close()
	case "zstd":
		w, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(markup))
		w.Close()
	default:
		buf.WriteString(markup)
	}
	return buf.Bytes()
}

func TestFetchDecodesBody(t *testing.T) {
	for _, encoding := range []string{"", "gzip", "br", "zstd"} {
		t.Run("encoding="+encoding, func(t *testing.T) {
			body := encode(t, encoding)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != "test-agent" {
					t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
				}
				if encoding != "" {
					w.Header().Set("Content-Encoding", encoding)
				}
				w.Write(body)
			}))
			defer srv.Close()

			got, err := New(5*time.Second, "test-agent").Fetch(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != markup {
				t.Errorf("expected %q, got %q", markup, got)
			}
		})
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(5*time.Second, "test-agent").Fetch(context.Background(), srv.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", statusErr.StatusCode)
	}
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(markup))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(5*time.Second, "test-agent").Fetch(ctx, srv.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}
