// Package exec provides a client for the remote code-execution service.
// The service accepts base64-encoded source and stdin, runs the program
// in its own sandbox, and returns base64-encoded output streams.
package exec

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Client talks to a Judge0-compatible execution API
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

// Config holds configuration for the execution client
type Config struct {
	BaseURL string
	APIKey  string
	APIHost string // RapidAPI host header, e.g. judge0-ce.p.rapidapi.com
}

// NewClient creates an execution-service client with timeouts sized for
// synchronous-wait submissions.
func NewClient(cfg Config) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   5,
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		httpClient: &http.Client{
			// Synchronous-wait submissions block until the sandbox finishes
			Timeout:   60 * time.Second,
			Transport: transport,
		},
	}
}

// Status is the execution service's outcome descriptor
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result holds a decoded execution outcome
type Result struct {
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	CompileOutput string  `json:"compile_output"`
	Status        Status  `json:"status"`
	Time          string  `json:"time"`   // seconds, as reported by the service
	Memory        float64 `json:"memory"` // kilobytes
}

// HasDiagnostics reports whether the run produced stderr or compiler output
func (r *Result) HasDiagnostics() bool {
	return r.Stderr != "" || r.CompileOutput != ""
}

// Diagnostics returns the stderr stream, falling back to compiler output
func (r *Result) Diagnostics() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.CompileOutput
}

type submissionRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin"`
	Wait       bool   `json:"wait"`
	Fields     string `json:"fields"`
}

type submissionResponse struct {
	Token string `json:"token"`
}

type resultResponse struct {
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	CompileOutput string  `json:"compile_output"`
	Status        Status  `json:"status"`
	Time          string  `json:"time"`
	Memory        float64 `json:"memory"`
}

// Execute submits source code and blocks until the remote run completes.
// The service call is never retried; any transport or API failure is
// returned to the caller.
func (c *Client) Execute(ctx context.Context, source string, languageID int, stdin string) (*Result, error) {
	token, err := c.submit(ctx, source, languageID, stdin)
	if err != nil {
		return nil, err
	}
	return c.fetchResult(ctx, token)
}

func (c *Client) submit(ctx context.Context, source string, languageID int, stdin string) (string, error) {
	body, err := json.Marshal(submissionRequest{
		SourceCode: base64.StdEncoding.EncodeToString([]byte(source)),
		LanguageID: languageID,
		Stdin:      base64.StdEncoding.EncodeToString([]byte(stdin)),
		Wait:       true,
		Fields:     "*",
	})
	if err != nil {
		return "", fmt.Errorf("marshal submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/submissions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("execution API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var sub submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return "", fmt.Errorf("decode submission response: %w", err)
	}
	if sub.Token == "" {
		return "", fmt.Errorf("execution API returned no submission token")
	}
	return sub.Token, nil
}

func (c *Client) fetchResult(ctx context.Context, token string) (*Result, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/submissions/"+token, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("execution API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var raw resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode result response: %w", err)
	}

	return &Result{
		Stdout:        decodeField(raw.Stdout),
		Stderr:        decodeField(raw.Stderr),
		CompileOutput: decodeField(raw.CompileOutput),
		Status:        raw.Status,
		Time:          raw.Time,
		Memory:        raw.Memory,
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}
}

// decodeField base64-decodes an output stream, passing malformed or
// empty payloads through unchanged.
func decodeField(s string) string {
	if s == "" {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(decoded)
}
