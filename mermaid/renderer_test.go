package mermaid

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRenderCachesBySource(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(pngBytes(t, 10, 10))
	}))
	defer srv.Close()

	r := NewRenderer(srv.URL, time.Second, "default")
	src := "graph TD; A-->B"
	r.RenderAll(context.Background(), []string{src, src, src})

	if requests != 1 {
		t.Errorf("service saw %d requests, want 1 for identical sources", requests)
	}
	res, ok := r.Lookup(src)
	if !ok || res.Failed() {
		t.Fatalf("Lookup() = %+v, %v", res, ok)
	}
	if len(res.PNG) == 0 {
		t.Error("cached result has no image bytes")
	}
}

func TestRenderDistinctSources(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(pngBytes(t, 4, 4))
	}))
	defer srv.Close()

	r := NewRenderer(srv.URL, time.Second, "")
	r.RenderAll(context.Background(), []string{"graph TD; A", "graph TD; B"})
	if requests != 2 {
		t.Errorf("service saw %d requests, want 2", requests)
	}
}

func TestRenderFailureMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad diagram", http.StatusBadRequest)
	}))
	defer srv.Close()

	r := NewRenderer(srv.URL, time.Second, "default")
	res := r.Render(context.Background(), "graph TD; broken")
	if !res.Failed() {
		t.Fatal("expected a failure marker")
	}

	// The failure is cached: a second render issues no new request.
	srv.Close()
	res2 := r.Render(context.Background(), "graph TD; broken")
	if res2 != res {
		t.Error("failure was not cached")
	}
}

func TestRenderConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	r := NewRenderer(url, time.Second, "default")
	if res := r.Render(context.Background(), "graph TD; X"); !res.Failed() {
		t.Error("expected a failure marker on connection error")
	}
}

func TestRenderTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	r := NewRenderer(srv.URL, 50*time.Millisecond, "default")
	if res := r.Render(context.Background(), "graph TD; slow"); !res.Failed() {
		t.Error("expected a failure marker on timeout")
	}
}

func TestThemeInjection(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Write(pngBytes(t, 2, 2))
	}))
	defer srv.Close()

	r := NewRenderer(srv.URL, time.Second, "dark")
	src := "graph TD; A-->B"
	r.Render(context.Background(), src)

	if !strings.HasPrefix(body, `%%{init: {"theme": "dark"}}%%`) {
		t.Errorf("request body = %q, want injected init directive", body)
	}
	if !strings.HasSuffix(body, src) {
		t.Errorf("request body = %q, want original source preserved", body)
	}

	// The cache key is the original source, not the themed body.
	if _, ok := r.Lookup(src); !ok {
		t.Error("cache key must be the pre-injection source")
	}
}

func TestThemeInjectionSkipsExistingInit(t *testing.T) {
	src := `%%{init: {"theme": "forest"}}%%` + "\ngraph TD; A"
	if got := InjectTheme(src, "dark"); got != src {
		t.Errorf("InjectTheme() = %q, want source unchanged", got)
	}
}

func TestDimensions(t *testing.T) {
	w, h, err := Dimensions(pngBytes(t, 123, 45))
	if err != nil {
		t.Fatal(err)
	}
	if w != 123 || h != 45 {
		t.Errorf("Dimensions() = %dx%d, want 123x45", w, h)
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name             string
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{"fits untouched", 100, 50, 600, 760, 100, 50},
		{"width bound", 1200, 300, 600, 760, 600, 150},
		{"height bound", 200, 1520, 600, 760, 100, 760},
		{"both bound picks smaller scale", 1200, 1520, 600, 760, 600, 760},
		{"never upscales", 10, 10, 600, 760, 10, 10},
		{"zero dims pass through", 0, 0, 600, 760, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.w, tt.h, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitSize(%d,%d,%d,%d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
