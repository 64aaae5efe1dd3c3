package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"quote-generator-api/services/forwarder"
)

const maxBodyBytes = 1 << 20

func isFormRequest(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/x-www-form-urlencoded"
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil && err != io.EOF {
		return errors.Wrap(err, "invalid request body")
	}
	return nil
}

// submissionValues turns a JSON object or a urlencoded body into the form
// values forwarded to a webhook. Empty values are dropped either way.
func submissionValues(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	if isFormRequest(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, errors.Wrap(err, "invalid request body")
		}
		return forwarder.CompactValues(r.PostForm), nil
	}

	payload := map[string]interface{}{}
	if err := decodeJSON(w, r, &payload); err != nil {
		return nil, err
	}
	return forwarder.FormValues(payload), nil
}
