// Package classify decides which windows are likely showing video.
//
// The decision is a coarse heuristic over window class names and title
// keywords. It deliberately over-matches common browsers and players:
// inverting video is far more jarring than leaving a non-video window
// uninverted, so a low false-negative rate wins over precision.
package classify

import (
	"strings"

	"github.com/genricoloni/umbra/internal/domain"
)

// Window classes of common video players and the browsers that host
// streaming sites.
var defaultVideoClasses = []string{
	"MediaPlayerClassicW",        // Media Player Classic
	"VLC DirectX video output",   // VLC
	"Chrome_WidgetWin_1",         // Chrome / Electron
	"MozillaWindowClass",         // Firefox
	"ApplicationFrameWindow",     // Modern apps
	"Windows.UI.Core.CoreWindow", // UWP apps
}

// Title substrings (matched case-insensitively) that suggest playback.
var defaultTitleKeywords = []string{
	"youtube", "netflix", "hulu", "video", "player", "vlc", "media",
}

// Heuristic is the default domain.Classifier implementation.
type Heuristic struct {
	classes  []string
	keywords []string
}

// NewHeuristic builds a classifier with the default class and keyword
// tables.
func NewHeuristic() *Heuristic {
	return &Heuristic{
		classes:  defaultVideoClasses,
		keywords: defaultTitleKeywords,
	}
}

// NewHeuristicWithTables builds a classifier with caller-supplied tables,
// for callers that want to extend or replace the defaults.
func NewHeuristicWithTables(classes, keywords []string) *Heuristic {
	return &Heuristic{classes: classes, keywords: keywords}
}

// IsVideo reports whether the window looks like video content. Pure and
// side-effect-free; the handle is accepted for strategy implementations
// that want to inspect the window further, this one ignores it.
func (c *Heuristic) IsVideo(_ domain.WindowHandle, class, title string) bool {
	for _, vc := range c.classes {
		if strings.Contains(class, vc) {
			return true
		}
	}
	lower := strings.ToLower(title)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
