// Package ocr wraps the external text-detection service behind a small
// interface. The engine itself is an opaque collaborator; the pipeline only
// relies on the annotation ordering contract below.
package ocr

import "context"

// Annotation is one detected text fragment. By convention the first element
// of a detection result holds the entire detected text block; subsequent
// elements are individual tokens in approximate spatial order.
type Annotation struct {
	Text   string `json:"text"`
	Locale string `json:"locale,omitempty"`
}

// Texts projects annotations to their raw text, preserving order.
func Texts(anns []Annotation) []string {
	out := make([]string, len(anns))
	for i, a := range anns {
		out[i] = a.Text
	}
	return out
}

// TextDetector detects text in an image. An empty result means the image
// carries no recognizable text, which is a reportable outcome and not an
// error; errors are reserved for engine faults.
type TextDetector interface {
	DetectText(ctx context.Context, image []byte) ([]Annotation, error)
}
