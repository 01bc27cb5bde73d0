// package preview maps media items to rendering strategies and resolves
// their byte-source URLs.
package preview

import (
	"strings"

	"github.com/desertthunder/damx/internal/models"
)

// Strategy identifies how an item is rendered.
type Strategy int

const (
	// StrategyNone is the "no preview available" placeholder.
	StrategyNone Strategy = iota
	// StrategyVideo renders a video element with metadata preload.
	StrategyVideo
	// StrategyModel renders an interactive 3D viewer against the resolved URL.
	StrategyModel
	// StrategyDocument renders an embedded document viewer.
	StrategyDocument
	// StrategyAudio renders an audio element with metadata preload.
	StrategyAudio
	// StrategyImage renders an image element.
	StrategyImage
	// StrategyIcon renders a static icon placeholder with no in-browser render.
	StrategyIcon
)

func (s Strategy) String() string {
	switch s {
	case StrategyVideo:
		return "video"
	case StrategyModel:
		return "3d"
	case StrategyDocument:
		return "document"
	case StrategyAudio:
		return "audio"
	case StrategyImage:
		return "image"
	case StrategyIcon:
		return "icon"
	default:
		return "none"
	}
}

// Rule pairs a predicate over (type, extension) with a strategy. Rules are
// evaluated top to bottom; the first match wins.
type Rule struct {
	Strategy   Strategy
	Types      []string
	Extensions []string
	// Label names the icon placeholder family (ppt, blend). Empty for
	// strategies that render the bytes directly.
	Label string
}

// matches reports whether the rule applies to the normalized type tag and
// extension.
func (r Rule) matches(typeTag, ext string) bool {
	for _, t := range r.Types {
		if typeTag == t {
			return true
		}
	}
	for _, e := range r.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// rules is the priority-ordered dispatch table. Order matters: an mp4 with
// type "photos" still previews as video because the extension row outranks
// the image row.
var rules = []Rule{
	{Strategy: StrategyVideo, Types: []string{"videos"}, Extensions: []string{"mp4", "webm", "avi", "mov"}},
	{Strategy: StrategyModel, Types: []string{"3d"}, Extensions: []string{"glb", "gltf", "obj", "fbx", "stl"}},
	{Strategy: StrategyDocument, Types: []string{"pdf"}, Extensions: []string{"pdf"}},
	{Strategy: StrategyIcon, Types: []string{"ppt_template"}, Extensions: []string{"ppt", "pptx"}, Label: "ppt"},
	{Strategy: StrategyAudio, Types: []string{"music"}, Extensions: []string{"mp3", "wav", "m4a"}},
	{Strategy: StrategyImage, Extensions: []string{"jpg", "jpeg", "png", "svg", "gif", "ai"}},
	{Strategy: StrategyIcon, Extensions: []string{"blend"}, Label: "blend"},
}

// Resolve returns the rendering strategy for an item, with the matched
// rule's icon label when the strategy is [StrategyIcon]. No rule matching
// falls back to [StrategyNone].
func Resolve(item models.MediaItem) (Strategy, string) {
	typeTag := strings.ToLower(strings.TrimSpace(item.Type))
	ext := item.Ext()

	for _, rule := range rules {
		if rule.matches(typeTag, ext) {
			return rule.Strategy, rule.Label
		}
	}
	return StrategyNone, ""
}

// Resolver resolves item URLs against a configured content root.
type Resolver struct {
	// ContentRoot is the external base URL under which relative media
	// paths resolve to actual bytes.
	ContentRoot string
}

// Source returns the byte-source URL for an item: absolute URLs pass
// through unchanged, relative paths join under the content root.
func (r Resolver) Source(item models.MediaItem) string {
	return r.resolve(item.URL)
}

func (r Resolver) resolve(url string) string {
	if strings.HasPrefix(url, "http") {
		return url
	}
	root := strings.TrimSuffix(r.ContentRoot, "/")
	return root + "/" + strings.TrimPrefix(url, "/")
}

// acceptMap constrains the upload file picker per category. Not a security
// boundary; the backend validates uploads independently.
var acceptMap = map[string]string{
	"music":         "audio/*",
	"videos":        "video/*",
	"3d":            ".glb,.gltf,.obj,.fbx,model/*",
	"pdf":           ".pdf",
	"ppt_template":  ".ppt,.pptx",
	"infographics":  "image/*",
	"photos":        "image/*",
	"vectors":       "image/*",
	"illustrations": "image/*",
}

// AcceptPatterns returns the accepted file patterns for an upload category,
// falling back to "*/*" for unknown categories.
func AcceptPatterns(uploadType string) string {
	if accept, ok := acceptMap[uploadType]; ok {
		return accept
	}
	return "*/*"
}
