package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLargest(t *testing.T) {
	t.Parallel()

	small := Detection{Box: [4]float64{0, 0, 10, 10}, Confidence: 0.99}
	big := Detection{Box: [4]float64{0, 0, 100, 50}, Confidence: 0.42}

	got, ok := Largest([]Detection{small, big})
	if !ok {
		t.Fatal("expected a detection")
	}
	if got != big {
		t.Errorf("Largest picked %+v, want the larger box %+v", got, big)
	}

	if _, ok := Largest(nil); ok {
		t.Error("empty list should report no detection")
	}
}

func TestDetection_Area(t *testing.T) {
	t.Parallel()

	d := Detection{Box: [4]float64{10, 20, 30, 50}}
	if d.Area() != 600 {
		t.Errorf("Area = %f, want 600", d.Area())
	}

	// Degenerate boxes never go negative.
	d = Detection{Box: [4]float64{30, 50, 10, 20}}
	if d.Area() != 0 {
		t.Errorf("inverted box Area = %f, want 0", d.Area())
	}
}

func TestFaceClient_Detect(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Fatalf("expected image part: %v", err)
		}

		json.NewEncoder(w).Encode(detectResponse{Detections: []Detection{
			{Box: [4]float64{1, 2, 3, 4}, Confidence: 0.9},
		}})
	}))
	defer srv.Close()

	c := NewFaceClient(srv.URL, 5*time.Second)
	dets, err := c.Detect(context.Background(), strings.NewReader("fake-image-bytes"), "face.jpg")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(dets) != 1 || dets[0].Confidence != 0.9 {
		t.Errorf("unexpected detections: %+v", dets)
	}
}

func TestFaceClient_Detect_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewFaceClient(srv.URL, 5*time.Second)
	if _, err := c.Detect(context.Background(), strings.NewReader("x"), "face.jpg"); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestSpeechClient_SubmitAndResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/synthesize":
			var req SynthesisRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			if req.TargetText == "" {
				t.Error("expected target text")
			}
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(submitResponse{JobID: "job-123"})
		case r.Method == http.MethodGet && r.URL.Path == "/jobs/job-123":
			json.NewEncoder(w).Encode(SynthesisResult{Status: "completed", AudioURL: "https://cdn/audio.wav"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewSpeechClient(srv.URL, 5*time.Second)

	jobID, err := c.Submit(context.Background(), SynthesisRequest{
		ReferenceAudioURL: "https://cdn/ref.wav",
		ReferenceText:     "hello",
		TargetText:        "hello again",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if jobID != "job-123" {
		t.Errorf("jobID = %q, want job-123", jobID)
	}

	res, err := c.Result(context.Background(), jobID)
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if res.Status != "completed" || res.AudioURL == "" {
		t.Errorf("unexpected result: %+v", res)
	}
}
