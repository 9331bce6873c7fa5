// Package client is the field client for the hatchery API: a typed HTTP
// client plus the upload orchestration sellers run from the command line.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10

	uploadFileField      = "images"
	uploadLatitudeField  = "latitude"
	uploadLongitudeField = "longitude"
)

// Client is the hatchery API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	// streamClient has no overall timeout so event streams stay open
	streamClient *http.Client
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the request client, used by tests with httptest servers
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.streamClient = hc
	}
}

// NewClient creates an API client with Bearer token auth
func NewClient(baseURL, token string, opts ...Option) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		httpClient:   &http.Client{Timeout: defaultTimeout, Transport: transport},
		streamClient: &http.Client{Transport: transport},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// send executes req and maps failures onto NetworkFailure and APIError.
// The caller owns the returned body.
func (c *Client) send(hc *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := hc.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NetworkFailure{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}
	var env envelope
	if json.Unmarshal(data, &env) == nil {
		apiErr.Message = env.Message
	}
	return apiErr
}

// do sends a JSON request and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.decode(c.httpClient, req, out)
}

func (c *Client) decode(hc *http.Client, req *http.Request, out any) error {
	resp, err := c.send(hc, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Profile returns the caller's profile
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var env profileEnvelope
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &env); err != nil {
		return nil, err
	}
	if env.Profile == nil {
		return nil, fmt.Errorf("decoding response: %w", errMissingField("profile"))
	}
	return env.Profile, nil
}

// CurrentHatchery returns the seller's active hatchery. The server creates
// one on first visit when the caller asks for their own.
func (c *Client) CurrentHatchery(ctx context.Context, userID domain.UserID) (*Hatchery, error) {
	return c.hatchery(ctx, http.MethodGet, "/hatcheries/user/"+url.PathEscape(userID.String()))
}

// CreateHatchery starts a cycle, returning the active one if it already exists
func (c *Client) CreateHatchery(ctx context.Context) (*Hatchery, error) {
	return c.hatchery(ctx, http.MethodPost, "/hatcheries/create")
}

// DeleteImage removes the image at index
func (c *Client) DeleteImage(ctx context.Context, hatcheryID string, index int) (*Hatchery, error) {
	path := fmt.Sprintf("/hatcheries/delete-image/%s/%d", url.PathEscape(hatcheryID), index)
	return c.hatchery(ctx, http.MethodDelete, path)
}

func (c *Client) hatchery(ctx context.Context, method, path string) (*Hatchery, error) {
	var env hatcheryEnvelope
	if err := c.do(ctx, method, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Hatchery == nil {
		return nil, fmt.Errorf("decoding response: %w", errMissingField("hatchery"))
	}
	return env.Hatchery, nil
}

// UploadImage posts one image as multipart form data with optional capture coordinates
func (c *Client) UploadImage(ctx context.Context, hatcheryID, filename string, image io.Reader, loc *domain.GeoPoint) (*Hatchery, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(uploadFileField, filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if loc != nil {
		_ = mw.WriteField(uploadLatitudeField, strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
		_ = mw.WriteField(uploadLongitudeField, strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/hatcheries/upload-image/"+url.PathEscape(hatcheryID), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var env hatcheryEnvelope
	if err := c.decode(c.httpClient, req, &env); err != nil {
		return nil, err
	}
	if env.Hatchery == nil {
		return nil, fmt.Errorf("decoding response: %w", errMissingField("hatchery"))
	}
	return env.Hatchery, nil
}

// Purchases returns the caller's purchase history
func (c *Client) Purchases(ctx context.Context) ([]domain.Transaction, error) {
	var env transactionsEnvelope
	if err := c.do(ctx, http.MethodGet, "/purchases", nil, &env); err != nil {
		return nil, err
	}
	return env.Transactions, nil
}

// Invoice returns the printable HTML invoice for an approved purchase
func (c *Client) Invoice(ctx context.Context, txID string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/purchases/"+url.PathEscape(txID)+"/invoice", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.send(c.httpClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Notifications returns the newest notifications addressed to the caller
func (c *Client) Notifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	path := "/notifications"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var env notificationsEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Notifications, nil
}

// MarkRead acknowledges a notification
func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// Stories returns the unexpired stories visible to the caller
func (c *Client) Stories(ctx context.Context) ([]domain.Notification, error) {
	var env notificationsEnvelope
	if err := c.do(ctx, http.MethodGet, "/stories", nil, &env); err != nil {
		return nil, err
	}
	return env.Notifications, nil
}

// StreamEvents opens the event stream and calls fn for every event until ctx
// is cancelled, the server closes the stream, or fn returns an error.
// types filters the stream server-side when non-empty.
func (c *Client) StreamEvents(ctx context.Context, types []string, fn func(Event) error) error {
	path := "/events"
	if len(types) > 0 {
		path += "?types=" + url.QueryEscape(strings.Join(types, ","))
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.send(c.streamClient, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	err = readEvents(resp.Body, fn)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// readEvents parses the text/event-stream framing. Only the data field is
// needed since the server repeats id and type inside the JSON payload.
func readEvents(r io.Reader, fn func(Event) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)

	var data strings.Builder
	var eventType string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data.Len() > 0 {
				var evt Event
				if err := json.Unmarshal([]byte(data.String()), &evt); err != nil {
					return fmt.Errorf("decoding event: %w", err)
				}
				if evt.Type == "" {
					evt.Type = eventType
				}
				if err := fn(evt); err != nil {
					return err
				}
			}
			data.Reset()
			eventType = ""
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return &NetworkFailure{Err: err}
	}
	return nil
}

type errMissingField string

func (e errMissingField) Error() string {
	return "response has no " + string(e) + " field"
}
