package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with a per-request timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// PostClip submits one clip as a multipart form to the analyze endpoint.
func (c *HTTPClient) PostClip(ctx context.Context, url string, clip Clip) (*http.Response, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	attrsJSON, err := json.Marshal(clip.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}
	if err := mw.WriteField("attributes", string(attrsJSON)); err != nil {
		return nil, fmt.Errorf("failed to write attributes part: %w", err)
	}
	fw, err := mw.CreateFormFile("video", "clip.mp4")
	if err != nil {
		return nil, fmt.Errorf("failed to create video part: %w", err)
	}
	if _, err := fw.Write(clip.Video); err != nil {
		return nil, fmt.Errorf("failed to write video part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// submitClips submits clips concurrently using a worker pool and collects
// the responses that passed contract verification.
func submitClips(ctx context.Context, config *Config, clips []Clip, stats *Stats) ([]AnalyzeResponse, error) {
	log.Printf("submitting %d clips with %d workers...", len(clips), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/analyze"

	var (
		successful int64
		failed     int64
		invalid    int64
		submitted  int64
	)

	clipChan := make(chan Clip, config.Workers*2)
	responses := make([]AnalyzeResponse, 0, len(clips))
	var respMu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for clip := range clipChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resp, err := submitSingleClip(ctx, client, url, clip)
				atomic.AddInt64(&submitted, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("submit failed: %v", err)
					}
					continue
				}
				if verr := verifyAnalyzeResponse(resp); verr != nil {
					atomic.AddInt64(&invalid, 1)
					log.Printf("contract violation: %v", verr)
					continue
				}
				atomic.AddInt64(&successful, 1)
				respMu.Lock()
				responses = append(responses, resp)
				respMu.Unlock()
			}
		}()
	}

	go func() {
		defer close(clipChan)
		for _, clip := range clips {
			select {
			case <-ctx.Done():
				return
			case clipChan <- clip:
			}
		}
	}()

	wg.Wait()

	stats.ClipsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ClipsSuccessful = int(atomic.LoadInt64(&successful))
	stats.ClipsFailed = int(atomic.LoadInt64(&failed))
	stats.ResponsesInvalid = int(atomic.LoadInt64(&invalid))

	log.Printf(`clip submission completed:
   Successful: %d
   Failed: %d
   Invalid responses: %d
`, stats.ClipsSuccessful, stats.ClipsFailed, stats.ResponsesInvalid)

	return responses, nil
}

// submitSingleClip submits one clip and decodes the analyze response.
func submitSingleClip(ctx context.Context, client *HTTPClient, url string, clip Clip) (AnalyzeResponse, error) {
	resp, err := client.PostClip(ctx, url, clip)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return AnalyzeResponse{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	var out AnalyzeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return AnalyzeResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

// fetchSession retrieves a stored session record by id.
func fetchSession(ctx context.Context, client *HTTPClient, baseURL, id string) (SessionResponse, error) {
	resp, err := client.Get(ctx, baseURL+"/sessions/"+id)
	if err != nil {
		return SessionResponse{}, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return SessionResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return SessionResponse{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	var out SessionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return SessionResponse{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return out, nil
}
