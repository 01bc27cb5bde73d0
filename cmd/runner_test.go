package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/shared"
	mock "github.com/desertthunder/damx/internal/testing"
)

func TestNewRunner(t *testing.T) {
	t.Run("defaults are filled in", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})

		if r.config == nil {
			t.Error("expected a default config")
		}
		if r.logger == nil {
			t.Error("expected a default logger")
		}
		if r.output == nil {
			t.Error("expected a default output writer")
		}
		if r.httpClient == nil {
			t.Error("expected a default HTTP client")
		}
		if r.engine == nil {
			t.Error("expected an engine even without a service")
		}
	})

	t.Run("provided dependencies are kept", func(t *testing.T) {
		var buf bytes.Buffer
		svc := &mock.MockService{}
		r := NewRunner(RunnerOpts{Service: svc, Output: &buf})

		if r.service != svc {
			t.Error("expected provided service")
		}
		if r.output != &buf {
			t.Error("expected provided output writer")
		}
	})

	t.Run("registers every command group", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})
		commands := r.register()

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "auth", "media", "favorites", "downloads", "download", "upload", "preview", "api", "tui"} {
			if !names[want] {
				t.Errorf("missing command %q", want)
			}
		}
	})
}

func TestFetchCatalog(t *testing.T) {
	t.Run("returns the backend items", func(t *testing.T) {
		svc := &mock.MockService{Items: []models.MediaItem{{ID: "1", Title: "Sunset"}}}
		r := NewRunner(RunnerOpts{Service: svc})

		items, err := r.fetchCatalog(context.Background())
		if err != nil {
			t.Fatalf("fetchCatalog failed: %v", err)
		}
		if len(items) != 1 || items[0].Title != "Sunset" {
			t.Errorf("unexpected items: %+v", items)
		}
	})

	t.Run("no service is ErrServiceUnavailable", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})
		if _, err := r.fetchCatalog(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestFindItem(t *testing.T) {
	svc := &mock.MockService{Items: []models.MediaItem{
		{ID: "1", Title: "Sunset"},
		{ID: "42", Title: "Beach"},
	}}
	r := NewRunner(RunnerOpts{Service: svc})

	t.Run("finds by id", func(t *testing.T) {
		item, err := r.findItem(context.Background(), "42")
		if err != nil {
			t.Fatalf("findItem failed: %v", err)
		}
		if item.Title != "Beach" {
			t.Errorf("unexpected item: %+v", item)
		}
	})

	t.Run("missing id is ErrMediaNotFound", func(t *testing.T) {
		if _, err := r.findItem(context.Background(), "999"); !errors.Is(err, shared.ErrMediaNotFound) {
			t.Errorf("expected ErrMediaNotFound, got %v", err)
		}
	})
}

func TestRequireStore(t *testing.T) {
	r := NewRunner(RunnerOpts{})
	if _, err := r.requireStore(); !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable without a store, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	payload := map[string]string{"key": "value"}

	t.Run("compact", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writeJSON(payload, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if buf.String() != "{\"key\":\"value\"}\n" {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writeJSON(payload, true); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"key\": \"value\"\n") {
			t.Errorf("expected indented output, got %q", buf.String())
		}
	})

	t.Run("write failures are surfaced", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Output: &mock.FWriter{}})
		if err := r.writeJSON(payload, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("unmarshalable data errors", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})
		if err := r.writeJSON(make(chan int), false); err == nil {
			t.Error("expected marshal error")
		}
	})
}

func TestWritePlain(t *testing.T) {
	t.Run("formats into the output writer", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writePlain("%d items\n", 3); err != nil {
			t.Fatalf("writePlain failed: %v", err)
		}
		if buf.String() != "3 items\n" {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("writePlainln pads with newlines", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writePlainln("done"); err != nil {
			t.Fatalf("writePlainln failed: %v", err)
		}
		if buf.String() != "\ndone\n" {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("header frames the title", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		r.writePlainHeader("Profile")
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 3 || lines[1] != "Profile" {
			t.Errorf("unexpected header output: %q", buf.String())
		}
	})

	t.Run("write failures are surfaced", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Output: &mock.FWriter{}})
		if err := r.writePlain("x"); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}
