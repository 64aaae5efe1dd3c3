package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quote-generator-api/config"
	"quote-generator-api/services/forwarder"
	"quote-generator-api/services/webhook"
	"quote-generator-api/utils"
)

const (
	testWebhookURL  = "https://hook.eu1.make.com/abc123"
	testFeedbackURL = "https://hook.eu2.make.com/feedback"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// capture records the outbound webhook calls made through its client.
type capture struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	err      error
}

type capturedRequest struct {
	URL         string
	ContentType string
	Values      url.Values
}

func (c *capture) client() *http.Client {
	return &http.Client{
		Timeout: time.Second,
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(r.Body)
			values, _ := url.ParseQuery(string(body))

			c.mu.Lock()
			c.requests = append(c.requests, capturedRequest{
				URL:         r.URL.String(),
				ContentType: r.Header.Get("Content-Type"),
				Values:      values,
			})
			status, err := c.status, c.err
			c.mu.Unlock()

			if err != nil {
				return nil, err
			}
			if status == 0 {
				status = http.StatusOK
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader("Accepted")),
				Header:     http.Header{},
				Request:    r,
			}, nil
		}),
	}
}

func (c *capture) all() []capturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capturedRequest(nil), c.requests...)
}

var errUnreachable = errors.New("dial tcp: connection refused")

func newTestStore() *webhook.Store {
	cookies := webhook.NewCookieStore(config.SessionConfig{
		Secret:   "handler-test-secret-handler-test",
		Name:     "quote-session",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: "lax",
	})
	return webhook.NewStore(cookies, "quote-session", webhook.NewMemoryBackend(time.Hour), utils.NewNoopLogger())
}

func newTestForwarder(c *capture) *forwarder.Forwarder {
	return forwarder.New(c.client(), utils.NewNoopLogger())
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func addCookies(r *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
