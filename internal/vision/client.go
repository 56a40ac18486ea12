package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client is the OCR contract the intake pipeline depends on.
type Client interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// ExtractionError means the OCR backend itself reported a failure.
// An image with no readable text is NOT an extraction error.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return "vision api error: " + e.Message
}

// GoogleVisionClient calls the Cloud Vision images:annotate endpoint
// with a TEXT_DETECTION feature.
type GoogleVisionClient struct {
	apiKey string
	client *http.Client
}

func NewGoogleVisionClient() *GoogleVisionClient {
	return &GoogleVisionClient{
		apiKey: os.Getenv("VISION_API_KEY"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GoogleVisionClient) ExtractText(ctx context.Context, image []byte) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("missing VISION_API_KEY")
	}
	if len(image) == 0 {
		return "", errors.New("empty image")
	}

	url := fmt.Sprintf(
		"https://vision.googleapis.com/v1/images:annotate?key=%s",
		g.apiKey,
	)

	payload := map[string]any{
		"requests": []map[string]any{
			{
				"image": map[string]string{
					"content": base64.StdEncoding.EncodeToString(image),
				},
				"features": []map[string]any{
					{"type": "TEXT_DETECTION"},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ExtractionError{Message: string(raw)}
	}

	var result struct {
		Responses []struct {
			Error *struct {
				Message string `json:"message"`
			} `json:"error"`
			TextAnnotations []struct {
				Description string `json:"description"`
			} `json:"textAnnotations"`
		} `json:"responses"`
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Responses) == 0 {
		return "", &ExtractionError{Message: "empty vision response"}
	}

	r := result.Responses[0]
	if r.Error != nil && r.Error.Message != "" {
		return "", &ExtractionError{Message: r.Error.Message}
	}

	// No text regions detected: valid outcome, not a failure.
	if len(r.TextAnnotations) == 0 {
		return "", nil
	}

	// The first annotation is the full-image text block.
	return r.TextAnnotations[0].Description, nil
}
