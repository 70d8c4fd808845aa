package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// payload is the loosely-typed shape of an authentication response. The
// backend's contract is not fixed, so every known spelling of each field is
// decoded and the normalizer picks whichever is present.
type payload struct {
	Success      *bool        `json:"success"`
	Token        string       `json:"token"`
	AccessToken  string       `json:"accessToken"`
	JWT          string       `json:"jwt"`
	User         *userPayload `json:"user"`
	Data         *userPayload `json:"data"`
	Message      string       `json:"message"`
	ErrorMsg     string       `json:"error"`
	ErrorMessage string       `json:"errorMessage"`
	Detail       string       `json:"detail"`
	Code         string       `json:"code"`
	ErrorCode    string       `json:"errorCode"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// result is a decoded backend response, success or not.
type result struct {
	status  int
	payload payload
}

// Client talks to the remote authentication API. Requests are JSON and carry
// the stored bearer token when a session exists.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *SessionStore
}

func NewClient(baseURL string, sessions *SessionStore) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
	}
}

// post sends a JSON body and decodes whatever comes back. The returned error
// is a transport failure only; error statuses are reported through result.
func (c *Client) post(ctx context.Context, path string, body any) (*result, error) {
	blob, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessions != nil {
		if token := c.sessions.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return &result{status: resp.StatusCode, payload: decodeBody(resp)}, nil
}

// decodeBody parses the response as JSON when possible and wraps raw text
// bodies as a message, so classification always has something to look at.
func decodeBody(resp *http.Response) payload {
	var p payload
	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		p.Message = statusFallback(resp)
		return p
	}
	if json.Unmarshal(raw, &p) == nil {
		return p
	}
	p = payload{Message: strings.TrimSpace(string(raw))}
	if p.Message == "" {
		p.Message = statusFallback(resp)
	}
	return p
}

func statusFallback(resp *http.Response) string {
	if txt := http.StatusText(resp.StatusCode); txt != "" {
		return txt
	}
	return msgRequestFailed
}
