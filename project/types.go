package project

import "strings"

// ClipType tags the closed set of clip variants. The tag decides which
// attributes of a Clip are meaningful; extras are ignored, not rejected.
type ClipType string

const (
	ClipFootagesAroundTitle ClipType = "footagesAroundTitle"
	ClipFootagesFullScreen  ClipType = "footagesFullScreen"
	ClipTypography          ClipType = "typography"
	ClipDocSpot             ClipType = "docSpot"
	ClipTweet               ClipType = "tweet"
)

// MediaItem is one piece of footage keyed to a trigger word in the
// clip's narration.
type MediaItem struct {
	Src  string `json:"src" yaml:"src"`
	Word string `json:"word" yaml:"word"`
	Kind string `json:"type,omitempty" yaml:"type,omitempty"`
}

// IsHTML reports whether the media source is an embedded HTML snippet
// rather than an image or video.
func (m MediaItem) IsHTML() bool {
	return strings.HasSuffix(strings.ToLower(m.Src), ".html")
}

// DocSegment pairs a narration chunk with the phrase that scroll-targets
// it inside the backing document.
type DocSegment struct {
	Speech    string `json:"speech" yaml:"speech"`
	StartWith string `json:"startWith" yaml:"startWith"`
}

// TweetItem is the payload for a tweet mockup clip.
type TweetItem struct {
	Avatar  string `json:"avatar" yaml:"avatar"`
	Name    string `json:"name" yaml:"name"`
	Handle  string `json:"handle" yaml:"handle"`
	Content string `json:"content" yaml:"content"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
}

// Clip is one timed segment of the scripted video.
type Clip struct {
	Type        ClipType     `json:"type" yaml:"type"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Speech      string       `json:"speech,omitempty" yaml:"speech,omitempty"`
	Duration    float64      `json:"duration,omitempty" yaml:"duration,omitempty"`
	Voice       string       `json:"voice,omitempty" yaml:"voice,omitempty"`
	Media       []MediaItem  `json:"media,omitempty" yaml:"media,omitempty"`
	DocSrc      string       `json:"docSrc,omitempty" yaml:"docSrc,omitempty"`
	DocSegments []DocSegment `json:"docSegments,omitempty" yaml:"docSegments,omitempty"`
	Tweet       *TweetItem   `json:"tweet,omitempty" yaml:"tweet,omitempty"`
}

// TitleChars counts the typed-character budget: every rune except
// explicit line breaks.
func (c Clip) TitleChars() int {
	n := 0
	for _, r := range c.Title {
		if r != '\n' {
			n++
		}
	}
	return n
}

// SpeechText returns the narration spoken for the clip: doc segments
// joined in order when present, otherwise the plain speech field.
func (c Clip) SpeechText() string {
	if len(c.DocSegments) > 0 {
		parts := make([]string, 0, len(c.DocSegments))
		for _, seg := range c.DocSegments {
			if s := strings.TrimSpace(seg.Speech); s != "" {
				parts = append(parts, seg.Speech)
			}
		}
		return strings.Join(parts, " ")
	}
	return c.Speech
}

// Project is a named, ordered sequence of clips. Clip order is the
// playback and render order and is never reordered at runtime.
type Project struct {
	Name       string `json:"name" yaml:"name"`
	Clips      []Clip `json:"clips" yaml:"clips"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
}
