package preview

import (
	"testing"

	"github.com/desertthunder/damx/internal/models"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		item     models.MediaItem
		strategy Strategy
		label    string
	}{
		{"video by type", models.MediaItem{Type: "videos", Extension: ".bin"}, StrategyVideo, ""},
		{"video by extension", models.MediaItem{Type: "photos", Extension: ".mp4"}, StrategyVideo, ""},
		{"webm is video", models.MediaItem{Extension: ".webm"}, StrategyVideo, ""},
		{"3d by type", models.MediaItem{Type: "3d"}, StrategyModel, ""},
		{"glb is 3d", models.MediaItem{Type: "ar_vr_assets", Extension: ".glb"}, StrategyModel, ""},
		{"pdf by type", models.MediaItem{Type: "pdf"}, StrategyDocument, ""},
		{"pdf by extension", models.MediaItem{Type: "infographics", Extension: ".pdf"}, StrategyDocument, ""},
		{"ppt template icon", models.MediaItem{Type: "ppt_template", Extension: ".pptx"}, StrategyIcon, "ppt"},
		{"audio by type", models.MediaItem{Type: "music"}, StrategyAudio, ""},
		{"mp3 is audio", models.MediaItem{Extension: ".mp3"}, StrategyAudio, ""},
		{"jpg is image", models.MediaItem{Type: "photos", Extension: ".jpg"}, StrategyImage, ""},
		{"svg is image", models.MediaItem{Type: "vectors", Extension: ".svg"}, StrategyImage, ""},
		{"ai is image", models.MediaItem{Type: "illustrations", Extension: ".ai"}, StrategyImage, ""},
		{"blend icon", models.MediaItem{Type: "3d_assets", Extension: ".blend"}, StrategyIcon, "blend"},
		{"unknown falls back to none", models.MediaItem{Type: "archives", Extension: ".zip"}, StrategyNone, ""},
		{"empty item is none", models.MediaItem{}, StrategyNone, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			strategy, label := Resolve(c.item)
			if strategy != c.strategy {
				t.Errorf("strategy = %v, want %v", strategy, c.strategy)
			}
			if label != c.label {
				t.Errorf("label = %q, want %q", label, c.label)
			}
		})
	}

	t.Run("extension beats later type rows", func(t *testing.T) {
		// an mp4 tagged photos previews as video, not image
		strategy, _ := Resolve(models.MediaItem{Type: "photos", Extension: ".mp4"})
		if strategy != StrategyVideo {
			t.Errorf("expected video, got %v", strategy)
		}
	})

	t.Run("type comparison is case-insensitive", func(t *testing.T) {
		strategy, _ := Resolve(models.MediaItem{Type: "Videos"})
		if strategy != StrategyVideo {
			t.Errorf("expected video, got %v", strategy)
		}
	})
}

func TestStrategyString(t *testing.T) {
	for s, want := range map[Strategy]string{
		StrategyNone:     "none",
		StrategyVideo:    "video",
		StrategyModel:    "3d",
		StrategyDocument: "document",
		StrategyAudio:    "audio",
		StrategyImage:    "image",
		StrategyIcon:     "icon",
	} {
		if got := s.String(); got != want {
			t.Errorf("Strategy(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestResolverSource(t *testing.T) {
	r := Resolver{ContentRoot: "https://cdn.example.com"}

	t.Run("absolute URLs pass through", func(t *testing.T) {
		url := "https://elsewhere.example.com/a.jpg"
		if got := r.Source(models.MediaItem{URL: url}); got != url {
			t.Errorf("got %q, want %q", got, url)
		}
	})

	t.Run("http URLs pass through", func(t *testing.T) {
		url := "http://elsewhere.example.com/a.jpg"
		if got := r.Source(models.MediaItem{URL: url}); got != url {
			t.Errorf("got %q, want %q", got, url)
		}
	})

	t.Run("relative paths join under the content root", func(t *testing.T) {
		got := r.Source(models.MediaItem{URL: "uploads/a.jpg"})
		want := "https://cdn.example.com/uploads/a.jpg"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("leading slash does not double up", func(t *testing.T) {
		got := r.Source(models.MediaItem{URL: "/uploads/a.jpg"})
		want := "https://cdn.example.com/uploads/a.jpg"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("trailing slash on root does not double up", func(t *testing.T) {
		slashed := Resolver{ContentRoot: "https://cdn.example.com/"}
		got := slashed.Source(models.MediaItem{URL: "uploads/a.jpg"})
		want := "https://cdn.example.com/uploads/a.jpg"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestAcceptPatterns(t *testing.T) {
	t.Run("known categories", func(t *testing.T) {
		for category, want := range map[string]string{
			"music":  "audio/*",
			"videos": "video/*",
			"pdf":    ".pdf",
			"photos": "image/*",
		} {
			if got := AcceptPatterns(category); got != want {
				t.Errorf("AcceptPatterns(%q) = %q, want %q", category, got, want)
			}
		}
	})

	t.Run("unknown category falls back to wildcard", func(t *testing.T) {
		if got := AcceptPatterns("archives"); got != "*/*" {
			t.Errorf("got %q, want */*", got)
		}
	})
}
