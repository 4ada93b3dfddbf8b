// Package client wraps the external AI collaborators behind small
// interfaces: face-detection preprocessing and asynchronous
// text-to-speech synthesis. Both services run out of process and own
// their own state; this package only speaks their HTTP surfaces.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Detection is one detected face: a bounding box, five landmark
// points (eyes, nose tip, mouth corners), and a confidence score.
type Detection struct {
	Box        [4]float64    `json:"box"` // x1, y1, x2, y2
	Landmarks  [5][2]float64 `json:"landmarks"`
	Confidence float64       `json:"confidence"`
}

// Area returns the bounding-box area in square pixels.
func (d Detection) Area() float64 {
	w := d.Box[2] - d.Box[0]
	h := d.Box[3] - d.Box[1]
	if w < 0 || h < 0 {
		return 0
	}
	return w * h
}

// FaceDetector is the face-detection service contract.
type FaceDetector interface {
	Detect(ctx context.Context, image io.Reader, fileName string) ([]Detection, error)
}

// Largest reduces a detection list to the single largest-area
// detection. Returns false when the list is empty.
func Largest(detections []Detection) (Detection, bool) {
	if len(detections) == 0 {
		return Detection{}, false
	}
	best := detections[0]
	for _, d := range detections[1:] {
		if d.Area() > best.Area() {
			best = d
		}
	}
	return best, true
}

// FaceClient is the HTTP implementation of FaceDetector.
type FaceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFaceClient creates a client for the face-detection service.
func NewFaceClient(baseURL string, timeout time.Duration) *FaceClient {
	return &FaceClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type detectResponse struct {
	Detections []Detection `json:"detections"`
}

// Detect uploads an image and returns all detected faces.
func (c *FaceClient) Detect(ctx context.Context, image io.Reader, fileName string) ([]Detection, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("image", fileName)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", &body)
	if err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face service returned status %d", resp.StatusCode)
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode face service response: %w", err)
	}

	return out.Detections, nil
}
