package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pdfquery/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderSessionID = "X-Session-ID"
	HeaderRequestID = "X-Request-ID"

	maxErrorBody = 64 * 1024
)

// TokenSource supplies the session token attached to each request.
type TokenSource interface {
	Read(ctx context.Context) (session.Token, error)
}

type Client struct {
	base   *url.URL
	tokens TokenSource
	http   *http.Client
	log    *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q must be http or https", baseURL)
	}
	c := &Client{
		base:   u,
		tokens: tokens,
		http:   &http.Client{Timeout: 120 * time.Second},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type uploadResponse struct {
	SessionID string `json:"session_id"`
}

// Upload sends every file as one multipart batch under the "files" field. It
// does not persist the returned token.
func (c *Client) Upload(ctx context.Context, files []session.StagedFile) (session.Token, error) {
	const op = "upload"
	if len(files) == 0 {
		return "", Validation(op, "no files staged")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return "", &Error{Op: op, Kind: LocalValidation, Message: "encode " + f.Name, Err: err}
		}
		if _, err := part.Write(f.Content); err != nil {
			return "", &Error{Op: op, Kind: LocalValidation, Message: "encode " + f.Name, Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return "", &Error{Op: op, Kind: LocalValidation, Message: "encode batch", Err: err}
	}

	var resp uploadResponse
	if err := c.do(ctx, op, http.MethodPost, "/upload", mw.FormDataContentType(), &body, &resp); err != nil {
		return "", err
	}
	tok := session.Token(strings.TrimSpace(resp.SessionID))
	if !tok.Present() {
		return "", &Error{Op: op, Kind: MalformedResponse, Message: "response has no session_id"}
	}
	return tok, nil
}

type askRequest struct {
	Question string `json:"question"`
}

func (c *Client) Ask(ctx context.Context, question string) (session.QAPair, error) {
	const op = "ask"
	question = strings.TrimSpace(question)
	if question == "" {
		return session.QAPair{}, Validation(op, "question is empty")
	}

	payload, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return session.QAPair{}, &Error{Op: op, Kind: LocalValidation, Err: err}
	}
	var pair session.QAPair
	if err := c.do(ctx, op, http.MethodPost, "/ask", "application/json", bytes.NewReader(payload), &pair); err != nil {
		return session.QAPair{}, err
	}
	if pair.Question == "" && pair.Answer == "" {
		return session.QAPair{}, &Error{Op: op, Kind: MalformedResponse, Message: "response has neither question nor answer"}
	}
	return pair, nil
}

type historyResponse struct {
	QAPairs []json.RawMessage `json:"qa_pairs"`
}

// ListHistory decodes qa_pairs, which the server sends as [question, answer]
// arrays rather than objects.
func (c *Client) ListHistory(ctx context.Context) ([]session.QAPair, error) {
	const op = "list history"
	var resp historyResponse
	if err := c.do(ctx, op, http.MethodGet, "/get_qa_pairs", "", nil, &resp); err != nil {
		return nil, err
	}
	pairs := make([]session.QAPair, 0, len(resp.QAPairs))
	for i, raw := range resp.QAPairs {
		var tuple []string
		if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) != 2 {
			return nil, &Error{
				Op:      op,
				Kind:    MalformedResponse,
				Message: fmt.Sprintf("qa_pairs[%d] is not a [question, answer] pair", i),
				Err:     err,
			}
		}
		pairs = append(pairs, session.QAPair{Question: tuple[0], Answer: tuple[1]})
	}
	return pairs, nil
}

func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, "clear history", http.MethodPost, "/clear_qa_pairs", "", nil, nil)
}

// Health probes GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, "/health", "", nil, nil)
}

// ExportReference builds the locator of the server-rendered transcript. It
// never performs the request.
func (c *Client) ExportReference(token session.Token) string {
	u := c.endpoint("/generate_pdf")
	if token.Present() {
		q := u.Query()
		q.Set("session_id", string(token))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) endpoint(path string) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = ""
	return &u
}

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path).String(), body)
	if err != nil {
		return &Error{Op: op, Kind: LocalValidation, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	if c.tokens != nil {
		tok, err := c.tokens.Read(ctx)
		if err != nil {
			c.log.Warn("session token unavailable", zap.String("op", op), zap.Error(err))
		} else if tok.Present() {
			req.Header.Set(HeaderSessionID, string(tok))
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &Error{Op: op, Kind: NetworkUnavailable, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Kind: ServerRejected, Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &Error{Op: op, Kind: NetworkUnavailable, Err: err}
		}
		return &Error{Op: op, Kind: MalformedResponse, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func serverMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && strings.TrimSpace(body.Error) != "" {
		return strings.TrimSpace(body.Error)
	}
	return strings.TrimSpace(string(raw))
}
