package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/preview"
	"github.com/desertthunder/damx/internal/shared"
	mock "github.com/desertthunder/damx/internal/testing"
)

// recorder captures downloads marked against the preference store.
type recorder struct {
	ids []models.ItemID
	err error
}

func (r *recorder) RecordDownload(id models.ItemID) error {
	if r.err != nil {
		return r.err
	}
	r.ids = append(r.ids, id)
	return nil
}

func testItem(id, title, ext string) models.MediaItem {
	return models.MediaItem{
		ID:        models.ItemID(id),
		Title:     title,
		Type:      "photos",
		Extension: ext,
		URL:       "media/" + id + "." + ext,
	}
}

func TestRefresh(t *testing.T) {
	resolver := preview.Resolver{ContentRoot: "https://cdn.example.com"}

	t.Run("returns the backend items", func(t *testing.T) {
		svc := &mock.MockService{Items: []models.MediaItem{testItem("1", "Sunset", "jpg")}}
		engine := NewLibraryEngine(svc, nil, resolver)

		catalog, err := engine.Refresh(context.Background())
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if len(catalog.Items) != 1 || catalog.Items[0].Title != "Sunset" {
			t.Errorf("unexpected items: %+v", catalog.Items)
		}
	})

	t.Run("generations increase per fetch", func(t *testing.T) {
		engine := NewLibraryEngine(&mock.MockService{}, nil, resolver)

		first, err := engine.Refresh(context.Background())
		if err != nil {
			t.Fatalf("first Refresh failed: %v", err)
		}
		second, err := engine.Refresh(context.Background())
		if err != nil {
			t.Fatalf("second Refresh failed: %v", err)
		}
		if second.Generation <= first.Generation {
			t.Errorf("expected generation %d > %d", second.Generation, first.Generation)
		}
	})

	t.Run("backend error is surfaced", func(t *testing.T) {
		svc := &mock.MockService{Err: errors.New("backend down")}
		engine := NewLibraryEngine(svc, nil, resolver)

		if _, err := engine.Refresh(context.Background()); err == nil {
			t.Error("expected error from failing backend")
		}
	})

	t.Run("nil service is ErrServiceUnavailable", func(t *testing.T) {
		engine := NewLibraryEngine(nil, nil, resolver)
		if _, err := engine.Refresh(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestApply(t *testing.T) {
	engine := NewLibraryEngine(&mock.MockService{}, nil, preview.Resolver{})

	t.Run("newer snapshot wins", func(t *testing.T) {
		if !engine.Apply(&Catalog{Generation: 1}) {
			t.Error("expected first snapshot to apply")
		}
		if !engine.Apply(&Catalog{Generation: 3}) {
			t.Error("expected newer snapshot to apply")
		}
	})

	t.Run("stale snapshot loses", func(t *testing.T) {
		if engine.Apply(&Catalog{Generation: 2}) {
			t.Error("expected older snapshot to be discarded")
		}
		if engine.Apply(&Catalog{Generation: 3}) {
			t.Error("expected equal generation to be discarded")
		}
	})

	t.Run("out of order refreshes", func(t *testing.T) {
		engine := NewLibraryEngine(&mock.MockService{}, nil, preview.Resolver{})

		slow, err := engine.Refresh(context.Background())
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		fast, err := engine.Refresh(context.Background())
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}

		if !engine.Apply(fast) {
			t.Error("expected later fetch to apply")
		}
		if engine.Apply(slow) {
			t.Error("expected earlier fetch resolving late to be discarded")
		}
	})
}

func TestDownload(t *testing.T) {
	resolver := preview.Resolver{ContentRoot: "https://cdn.example.com"}

	t.Run("writes the bytes and records the download", func(t *testing.T) {
		dir := t.TempDir()
		store := &recorder{}
		svc := &mock.MockService{Bytes: []byte("imagedata")}
		engine := NewLibraryEngine(svc, store, resolver)

		item := testItem("1", "Sunset", "jpg")
		res, err := engine.Download(context.Background(), item, dir)
		if err != nil {
			t.Fatalf("Download failed: %v", err)
		}

		if res.Bytes != int64(len("imagedata")) {
			t.Errorf("expected %d bytes, got %d", len("imagedata"), res.Bytes)
		}
		if got := mock.MustReadFile(t, res.Path); got != "imagedata" {
			t.Errorf("unexpected file contents: %q", got)
		}
		if len(store.ids) != 1 || store.ids[0] != item.ID {
			t.Errorf("expected download recorded for %q, got %v", item.ID, store.ids)
		}
	})

	t.Run("fetches through the resolver", func(t *testing.T) {
		svc := &mock.MockService{Bytes: []byte("x")}
		engine := NewLibraryEngine(svc, nil, resolver)

		item := testItem("2", "Beach", "png")
		if _, err := engine.Download(context.Background(), item, t.TempDir()); err != nil {
			t.Fatalf("Download failed: %v", err)
		}
		if len(svc.FetchURLs) != 1 || svc.FetchURLs[0] != "https://cdn.example.com/media/2.png" {
			t.Errorf("unexpected fetch URLs: %v", svc.FetchURLs)
		}
	})

	t.Run("fetch failure is ErrDownloadFailed", func(t *testing.T) {
		dir := t.TempDir()
		store := &recorder{}
		svc := &mock.MockService{Err: errors.New("404")}
		engine := NewLibraryEngine(svc, store, resolver)

		_, err := engine.Download(context.Background(), testItem("1", "Sunset", "jpg"), dir)
		if !errors.Is(err, shared.ErrDownloadFailed) {
			t.Errorf("expected ErrDownloadFailed, got %v", err)
		}
		if len(store.ids) != 0 {
			t.Error("expected no download recorded on failure")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no files on failure, found %d", len(entries))
		}
	})

	t.Run("sanitizes backend-provided names", func(t *testing.T) {
		dir := t.TempDir()
		svc := &mock.MockService{Bytes: []byte("x")}
		engine := NewLibraryEngine(svc, nil, resolver)

		item := testItem("1", "../escape", "jpg")
		res, err := engine.Download(context.Background(), item, dir)
		if err != nil {
			t.Fatalf("Download failed: %v", err)
		}
		if filepath.Dir(res.Path) != dir {
			t.Errorf("expected file inside %s, got %s", dir, res.Path)
		}
	})

	t.Run("tolerates a nil store", func(t *testing.T) {
		svc := &mock.MockService{Bytes: []byte("x")}
		engine := NewLibraryEngine(svc, nil, resolver)

		if _, err := engine.Download(context.Background(), testItem("1", "Sunset", "jpg"), t.TempDir()); err != nil {
			t.Errorf("expected nil store to be tolerated, got %v", err)
		}
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sunset.jpg", "sunset.jpg"},
		{"a/b\\c:d.png", "a_b_c_d.png"},
		{"..", "download"},
		{"", "download"},
		{" trimmed .jpg", "trimmed .jpg"},
	}

	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// partialService fails fetches whose URL contains the marker substring.
type partialService struct {
	mock.MockService
	failOn string
}

func (p *partialService) Fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.Contains(url, p.failOn) {
		return nil, fmt.Errorf("fetch %s: gone", url)
	}
	return p.MockService.Fetch(ctx, url)
}

func TestBulkDownload(t *testing.T) {
	resolver := preview.Resolver{ContentRoot: "https://cdn.example.com"}

	items := []models.MediaItem{
		testItem("1", "Sunset", "jpg"),
		testItem("2", "Beach", "png"),
		testItem("3", "Forest", "jpg"),
	}

	t.Run("downloads all items and writes a manifest", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "bulk")
		store := &recorder{}
		svc := &mock.MockService{Bytes: []byte("x")}
		engine := NewLibraryEngine(svc, store, resolver)

		opts := BulkDownloadOpts{OutputDir: dir, NumWorkers: 2, RateLimit: 100}
		result, err := engine.BulkDownload(context.Background(), items, opts, nil)
		if err != nil {
			t.Fatalf("BulkDownload failed: %v", err)
		}

		if result.TotalItems != 3 || result.SuccessCount != 3 || result.FailedCount != 0 {
			t.Errorf("unexpected counts: %+v", result)
		}
		if result.RunID == "" {
			t.Error("expected a run id")
		}
		if len(store.ids) != 3 {
			t.Errorf("expected 3 recorded downloads, got %d", len(store.ids))
		}

		mock.AssertFileExists(t, filepath.Join(dir, "manifest.json"))

		var manifest BulkDownloadResult
		if err := json.Unmarshal([]byte(mock.MustReadFile(t, filepath.Join(dir, "manifest.json"))), &manifest); err != nil {
			t.Fatalf("failed to parse manifest: %v", err)
		}
		if manifest.SuccessCount != 3 || len(manifest.Results) != 3 {
			t.Errorf("unexpected manifest: %+v", manifest)
		}
	})

	t.Run("partial failures are collected per item", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "bulk")
		svc := &partialService{MockService: mock.MockService{Bytes: []byte("x")}, failOn: "/2."}
		engine := NewLibraryEngine(svc, &recorder{}, resolver)

		opts := BulkDownloadOpts{OutputDir: dir, NumWorkers: 2, RateLimit: 100}
		result, err := engine.BulkDownload(context.Background(), items, opts, nil)
		if err != nil {
			t.Fatalf("BulkDownload failed: %v", err)
		}

		if result.SuccessCount != 2 || result.FailedCount != 1 {
			t.Errorf("expected 2 successes and 1 failure, got %+v", result)
		}

		var failed *ItemDownloadResult
		for i := range result.Results {
			if !result.Results[i].Success {
				failed = &result.Results[i]
			}
		}
		if failed == nil {
			t.Fatal("expected a failed result")
		}
		if failed.ItemID != "2" || failed.Error == "" {
			t.Errorf("unexpected failed result: %+v", failed)
		}
	})

	t.Run("reports progress per item", func(t *testing.T) {
		svc := &mock.MockService{Bytes: []byte("x")}
		engine := NewLibraryEngine(svc, nil, resolver)

		progress := make(chan ProgressUpdate, 16)
		opts := BulkDownloadOpts{OutputDir: filepath.Join(t.TempDir(), "bulk"), NumWorkers: 1, RateLimit: 100}
		if _, err := engine.BulkDownload(context.Background(), items, opts, progress); err != nil {
			t.Fatalf("BulkDownload failed: %v", err)
		}
		close(progress)

		var downloading, saved int
		for update := range progress {
			switch update.Phase {
			case DownloadItem:
				downloading++
			case WriteFile:
				saved++
			}
		}
		if downloading != 3 {
			t.Errorf("expected 3 downloading updates, got %d", downloading)
		}
		if saved != 3 {
			t.Errorf("expected 3 saved updates, got %d", saved)
		}
	})

	t.Run("nil service is ErrServiceUnavailable", func(t *testing.T) {
		engine := NewLibraryEngine(nil, nil, resolver)
		if _, err := engine.BulkDownload(context.Background(), items, BulkDownloadOpts{}, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestUpload(t *testing.T) {
	resolver := preview.Resolver{ContentRoot: "https://cdn.example.com"}

	t.Run("submits the file and refreshes the catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pic.jpg")
		if err := os.WriteFile(path, []byte("imagedata"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		svc := &mock.MockService{Items: []models.MediaItem{testItem("9", "Pic", "jpg")}}
		engine := NewLibraryEngine(svc, nil, resolver)

		progress := make(chan ProgressUpdate, 4)
		catalog, err := engine.UploadWithProgress(context.Background(), path, "photos", progress)
		if err != nil {
			t.Fatalf("Upload failed: %v", err)
		}

		if len(svc.Uploads) != 1 || svc.Uploads[0] != "pic.jpg" {
			t.Errorf("unexpected uploads: %v", svc.Uploads)
		}
		if len(catalog.Items) != 1 {
			t.Errorf("expected refreshed catalog, got %+v", catalog)
		}
		if catalog.Generation == 0 {
			t.Error("expected refreshed catalog to carry a generation")
		}

		close(progress)
		update, ok := <-progress
		if !ok || update.Phase != UploadAsset {
			t.Errorf("expected an upload progress update, got %+v", update)
		}
	})

	t.Run("empty path is ErrInvalidInput", func(t *testing.T) {
		engine := NewLibraryEngine(&mock.MockService{}, nil, resolver)
		if _, err := engine.Upload(context.Background(), "", "photos"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty type is ErrInvalidInput", func(t *testing.T) {
		engine := NewLibraryEngine(&mock.MockService{}, nil, resolver)
		if _, err := engine.Upload(context.Background(), "pic.jpg", ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing file is ErrInvalidInput", func(t *testing.T) {
		engine := NewLibraryEngine(&mock.MockService{}, nil, resolver)
		missing := filepath.Join(t.TempDir(), "missing.jpg")
		if _, err := engine.Upload(context.Background(), missing, "photos"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("cancellation during settle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pic.jpg")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		engine := NewLibraryEngine(&mock.MockService{}, nil, resolver)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if _, err := engine.Upload(ctx, path, "photos"); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context deadline error, got %v", err)
		}
	})
}
