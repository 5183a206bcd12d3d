// Package assets resolves a clicked vocalization to its audio clip and
// spider-plot image, and serves both asset directories.
package assets

import (
	"path"
	"strings"
)

// Route prefixes of the two static endpoints.
const (
	AudioRoute = "/segments/"
	ImageRoute = "/images/"
)

// ImageExt replaces the audio extension when deriving the image filename.
const ImageExt = ".png"

// Placeholder texts shown before any point has been clicked.
const (
	PromptAudio = "Click on a data point to play audio"
	PromptImage = "Click on a data point to view image"
)

// Selection is what the media panel shows for one click. An empty URL means
// the asset is absent and Text explains why.
type Selection struct {
	File      string `json:"file,omitempty"`
	AudioURL  string `json:"audio_url,omitempty"`
	AudioText string `json:"audio_text"`
	ImageURL  string `json:"image_url,omitempty"`
	ImageText string `json:"image_text"`
}

// HasAudio reports whether the selection carries an audio reference.
func (s Selection) HasAudio() bool { return s.AudioURL != "" }

// HasImage reports whether the selection carries an image reference.
func (s Selection) HasImage() bool { return s.ImageURL != "" }

// Initial is the selection before any click.
func Initial() Selection {
	return Selection{AudioText: PromptAudio, ImageText: PromptImage}
}

// ImageName derives the spider-plot filename from an audio filename by
// swapping the final extension for ImageExt.
func ImageName(file string) string {
	ext := path.Ext(file)
	return strings.TrimSuffix(file, ext) + ImageExt
}

// Resolve maps a row's click tuple to asset references. The flags were
// computed when the dataset was built and are trusted here; nothing is
// checked on disk.
func Resolve(file string, hasAudio, hasImage bool) Selection {
	s := Selection{File: file}

	if hasAudio {
		s.AudioURL = AudioRoute + file
		s.AudioText = "Playing: " + file
	} else {
		s.AudioText = "Audio not found: " + file
	}

	if hasImage {
		image := ImageName(file)
		s.ImageURL = ImageRoute + image
		s.ImageText = "Displaying: " + image
	} else {
		s.ImageText = "Image not found: " + file
	}
	return s
}
