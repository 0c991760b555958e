package ocr

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// visionDetector implements TextDetector using the Google Cloud Vision API.
// It is safe for concurrent use.
type visionDetector struct {
	svc *vision.Service
}

// NewVisionDetector creates a Vision-backed text detector. Credentials are
// resolved once at construction: an explicit service-account JSON blob or
// file wins, otherwise application default credentials apply.
func NewVisionDetector(ctx context.Context, credentialsFile string, credentialsJSON []byte) (TextDetector, error) {
	var opts []option.ClientOption
	switch {
	case len(credentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(credentialsJSON))
	case credentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}
	return &visionDetector{svc: svc}, nil
}

// DetectText runs TEXT_DETECTION and returns the ordered annotations. The
// Vision API puts the full text block first, matching the ordering contract
// the matching pipeline depends on.
func (d *visionDetector) DetectText(ctx context.Context, image []byte) ([]Annotation, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
		}},
	}

	resp, err := d.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("vision annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, nil
	}
	res := resp.Responses[0]
	if res.Error != nil {
		return nil, fmt.Errorf("vision annotate: %s (code %d)", res.Error.Message, res.Error.Code)
	}

	anns := make([]Annotation, 0, len(res.TextAnnotations))
	for _, ta := range res.TextAnnotations {
		anns = append(anns, Annotation{Text: ta.Description, Locale: ta.Locale})
	}
	return anns, nil
}
