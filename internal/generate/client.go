// Package generate issues the single network call behind each generate
// action and turns raw upstream failures into user-facing messages.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"
)

// ErrNoImage is returned when the API call succeeds but produces no image
// payload. Callers surface it as a soft failure, not an exception.
var ErrNoImage = errors.New("no image produced")

// Valid aspect ratios, matching the three fixed UI options.
const (
	AspectSquare    = "1:1"
	AspectLandscape = "16:9"
	AspectPortrait  = "9:16"
)

// Image is a single generated image payload.
type Image struct {
	Data []byte
	MIME string
}

// Client wraps the Gemini image API for exactly-one-image requests.
type Client struct {
	api   *genai.Client
	model string
}

// NewClient builds a client for the given credential and model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating API client: %w", err)
	}
	return &Client{api: api, model: model}, nil
}

// Generate requests a single JPEG image for prompt at the given aspect
// ratio. It makes exactly one attempt; errors come back raw for Classify.
func (c *Client) Generate(ctx context.Context, prompt, aspectRatio string) (*Image, error) {
	log.Debug("Generating image", "model", c.model, "aspect", aspectRatio)

	resp, err := c.api.Models.GenerateImages(ctx, c.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
		OutputMIMEType: "image/jpeg",
	})
	if err != nil {
		return nil, err
	}
	return pickImage(resp)
}

// pickImage extracts the first image payload from a response, or ErrNoImage
// when the call succeeded without producing one.
func pickImage(resp *genai.GenerateImagesResponse) (*Image, error) {
	if resp == nil {
		return nil, ErrNoImage
	}
	for _, gen := range resp.GeneratedImages {
		if gen == nil || gen.Image == nil || len(gen.Image.ImageBytes) == 0 {
			continue
		}
		mime := gen.Image.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		return &Image{Data: gen.Image.ImageBytes, MIME: mime}, nil
	}
	return nil, ErrNoImage
}
