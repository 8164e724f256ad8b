// Package classifier calls a hosted pose-estimation workflow with camera
// frames and turns its verdicts into game actions.
package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/plus3/gazetris/control"
)

// ErrNoOutputs is returned when the workflow answered without a verdict.
var ErrNoOutputs = errors.New("classifier: response has no outputs")

// StatusError is a non-2xx answer from the workflow endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("classifier: unexpected status %d: %s", e.Code, e.Body)
}

// Result is one classified frame.
type Result struct {
	Direction control.Direction
	Intensity int
	Yaw       *float64
	Pitch     *float64
}

// Client posts frames to a workflow endpoint.
type Client struct {
	URL        string
	APIKey     string
	Thresholds control.Thresholds
	HTTP       *http.Client
}

// NewClient creates a client with a bounded request timeout.
func NewClient(url, apiKey string, thresholds control.Thresholds) *Client {
	return &Client{
		URL:        url,
		APIKey:     apiKey,
		Thresholds: thresholds,
		HTTP:       &http.Client{Timeout: 5 * time.Second},
	}
}

type request struct {
	APIKey string        `json:"api_key"`
	Inputs requestInputs `json:"inputs"`
}

type requestInputs struct {
	Image requestImage `json:"image"`
}

type requestImage struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type response struct {
	Outputs []output `json:"outputs"`
}

type output struct {
	Action string   `json:"action"`
	Yaw    *float64 `json:"yaw"`
	Pitch  *float64 `json:"pitch"`
}

// Classify sends one frame. When the workflow reports only angles, the
// direction is derived from them with the client's thresholds.
func (c *Client) Classify(ctx context.Context, image []byte) (Result, error) {
	body, err := json.Marshal(request{
		APIKey: c.APIKey,
		Inputs: requestInputs{Image: requestImage{
			Type:  "base64",
			Value: base64.StdEncoding.EncodeToString(image),
		}},
	})
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("post frame: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Outputs) == 0 {
		return Result{}, ErrNoOutputs
	}

	return c.interpret(decoded.Outputs[0]), nil
}

func (c *Client) interpret(out output) Result {
	res := Result{Yaw: out.Yaw, Pitch: out.Pitch}

	var gaze control.Gaze
	hasAngles := out.Yaw != nil || out.Pitch != nil
	if hasAngles {
		var yaw, pitch float64
		if out.Yaw != nil {
			yaw = *out.Yaw
		}
		if out.Pitch != nil {
			pitch = *out.Pitch
		}
		gaze = control.GazeDirection(yaw, pitch, c.Thresholds)
	}

	if out.Action != "" {
		res.Direction = control.ParseDirection(out.Action)
	} else {
		res.Direction = gaze.Direction
		if res.Direction == "" {
			res.Direction = control.Center
		}
	}

	switch {
	case res.Direction == control.Center:
		res.Intensity = 0
	case hasAngles && gaze.Direction == res.Direction:
		res.Intensity = gaze.Intensity()
	default:
		res.Intensity = 1
	}
	return res
}
