package forwarder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Forwarder struct {
	client *http.Client
	logger *slog.Logger
}

func New(client *http.Client, logger *slog.Logger) *Forwarder {
	return &Forwarder{client: client, logger: logger}
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Forward POSTs values form-encoded to target. Network failures and non-2xx
// replies are returned as errors; callers decide whether to surface them.
func (f *Forwarder) Forward(ctx context.Context, target string, values url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to contact webhook")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	f.logger.Debug("webhook responded",
		"status", resp.StatusCode,
		"fields", len(values),
		"elapsed", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// FormValues flattens a decoded JSON object into form values. nil and empty
// values are dropped, numbers and booleans become their literal text, nested
// arrays and objects are sent as JSON text.
func FormValues(payload map[string]interface{}) url.Values {
	values := url.Values{}
	for key, raw := range payload {
		if v, ok := stringify(raw); ok {
			values.Set(key, v)
		}
	}
	return values
}

// CompactValues drops keys whose values are all empty.
func CompactValues(in url.Values) url.Values {
	out := url.Values{}
	for key, vs := range in {
		for _, v := range vs {
			if v != "" {
				out.Add(key, v)
			}
		}
	}
	return out
}

func stringify(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
