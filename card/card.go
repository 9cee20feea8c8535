// Package card turns a raw presence snapshot into the fixed-shape view
// model a status card is rendered from.
package card

// Card heights in pixels. A card only grows to the tall layout when the
// selected activity carries details or state.
const (
	HeightShort = 97
	HeightTall  = 187
)

// Image is the outcome of resolving a remote image. Absence is a valid,
// expected outcome; callers must never treat it as an error.
type Image struct {
	dataURI string
	present bool
}

// SomeImage wraps an inline data URI.
func SomeImage(dataURI string) Image {
	return Image{dataURI: dataURI, present: true}
}

// NoImage is the absent image.
func NoImage() Image {
	return Image{}
}

func (i Image) Present() bool {
	return i.present
}

// DataURI returns the inline data URI, or "" when absent.
func (i Image) DataURI() string {
	return i.dataURI
}

// CardState is the finished view model handed to the renderer. All text
// fields are pre-sanitized; the renderer injects them verbatim.
type CardState struct {
	Username     string
	PfpImage     Image
	Status       string
	GameType     string
	Game         string
	Details      string
	DetailsImage Image
	State        string
	Height       int
}
