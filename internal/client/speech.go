package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SynthesisRequest asks the speech service to clone a voice from
// reference audio and speak the target text with it.
type SynthesisRequest struct {
	ReferenceAudioURL string `json:"reference_audio_url"`
	ReferenceText     string `json:"reference_text"`
	TargetText        string `json:"target_text"`
}

// SynthesisResult is the polled state of a synthesis job.
type SynthesisResult struct {
	Status   string `json:"status"` // pending, processing, completed, failed
	AudioURL string `json:"audio_url,omitempty"`
}

// SpeechSynthesizer is the asynchronous text-to-speech contract.
// Submit returns immediately with a job id; callers poll Result.
type SpeechSynthesizer interface {
	Submit(ctx context.Context, req SynthesisRequest) (string, error)
	Result(ctx context.Context, jobID string) (*SynthesisResult, error)
}

// SpeechClient is the HTTP implementation of SpeechSynthesizer.
type SpeechClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSpeechClient creates a client for the text-to-speech service.
func NewSpeechClient(baseURL string, timeout time.Duration) *SpeechClient {
	return &SpeechClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type submitResponse struct {
	JobID string `json:"job_id"`
}

// Submit enqueues a synthesis job and returns its id.
func (c *SpeechClient) Submit(ctx context.Context, sreq SynthesisRequest) (string, error) {
	payload, err := json.Marshal(sreq)
	if err != nil {
		return "", fmt.Errorf("encode synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/synthesize", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech service returned status %d", resp.StatusCode)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode speech service response: %w", err)
	}
	if out.JobID == "" {
		return "", fmt.Errorf("speech service returned empty job id")
	}

	return out.JobID, nil
}

// Result polls the state of a synthesis job.
func (c *SpeechClient) Result(ctx context.Context, jobID string) (*SynthesisResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("build job request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech service returned status %d", resp.StatusCode)
	}

	var out SynthesisResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode job response: %w", err)
	}

	return &out, nil
}
