package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"gopkg.in/yaml.v3"
)

// NotFoundError is returned when a pipeline has no stored configuration.
type NotFoundError struct {
	PipelineID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no configuration found for pipeline %q", e.PipelineID)
}

// MissingParameterError is returned when a required key is neither in the
// stored configuration nor in the caller's input.
type MissingParameterError struct {
	PipelineID string
	Parameter  string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("pipeline %q: missing required parameter %q", e.PipelineID, e.Parameter)
}

// Record is a merged pipeline configuration.
type Record map[string]any

// String returns the value of key as a string.
func (r Record) String(key string) (string, bool) {
	switch v := r[key].(type) {
	case string:
		return v, true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

// Bool returns the value of key as a bool. The strings "true" and "false"
// are accepted.
func (r Record) Bool(key string) (bool, bool) {
	switch v := r[key].(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(v) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// Float returns the value of key as a float64.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// PipelineLoader fetches per-pipeline YAML configuration over HTTP from
// <BaseURL>/<pipelineID>.yaml.
type PipelineLoader struct {
	BaseURL string
	Client  *http.Client
}

// NewPipelineLoader creates a loader. A nil client uses a pooled client with
// no shared global state.
func NewPipelineLoader(baseURL string, client *http.Client) *PipelineLoader {
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &PipelineLoader{BaseURL: strings.TrimSuffix(baseURL, "/"), Client: client}
}

// Load fetches the stored configuration of pipelineID, overlays input on top
// of it and checks that every required key is present.
func (l *PipelineLoader) Load(ctx context.Context, pipelineID string, input map[string]any, required []string) (Record, error) {
	stored, err := l.fetch(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	rec := make(Record, len(stored)+len(input))
	for k, v := range stored {
		rec[k] = v
	}
	for k, v := range input {
		rec[k] = v
	}

	for _, key := range required {
		if _, ok := rec[key]; !ok {
			return nil, &MissingParameterError{PipelineID: pipelineID, Parameter: key}
		}
	}
	return rec, nil
}

func (l *PipelineLoader) fetch(ctx context.Context, pipelineID string) (map[string]any, error) {
	endpoint := l.BaseURL + "/" + url.PathEscape(pipelineID) + ".yaml"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching pipeline %q: %w", pipelineID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{PipelineID: pipelineID}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching pipeline %q: unexpected status %s", pipelineID, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline %q: %w", pipelineID, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &NotFoundError{PipelineID: pipelineID}
	}

	if err := ValidateYAMLSyntaxFromBytes(body, endpoint); err != nil {
		return nil, err
	}
	var stored map[string]any
	if err := yaml.Unmarshal(body, &stored); err != nil {
		return nil, fmt.Errorf("decoding pipeline %q: %w", pipelineID, err)
	}
	if len(stored) == 0 {
		return nil, &NotFoundError{PipelineID: pipelineID}
	}
	return stored, nil
}
