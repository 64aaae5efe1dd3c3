package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-generator-api/handlers"
	"quote-generator-api/services/webhook"
	"quote-generator-api/utils"
)

// sessionWithWebhook stores testWebhookURL and returns the recorder holding
// the session cookie.
func sessionWithWebhook(t *testing.T, store *webhook.Store) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, httptest.NewRequest(http.MethodPost, "/api/webhook", nil), testWebhookURL))
	return rec
}

func TestSubmitHandler_SubmitQuoteWithoutWebhook(t *testing.T) {
	c := &capture{}
	h := handlers.NewSubmitHandler(newTestStore(), newTestForwarder(c), testFeedbackURL, utils.NewNoopLogger())
	rec := httptest.NewRecorder()

	h.SubmitQuote(rec, jsonRequest(http.MethodPost, "/api/submit-quote", `{"clientName":"Acme"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No webhook URL configured", body["message"])
	assert.Empty(t, c.all())
}

func TestSubmitHandler_SubmitQuoteForwardsJSON(t *testing.T) {
	c := &capture{}
	store := newTestStore()
	h := handlers.NewSubmitHandler(store, newTestForwarder(c), testFeedbackURL, utils.NewNoopLogger())
	session := sessionWithWebhook(t, store)

	body := `{"clientName":"Acme","quoteId":"Q-7","fixedTotal":18000,"empty":"","none":null,"urgent":true,"items":[{"name":"A"}]}`
	rec := httptest.NewRecorder()
	h.SubmitQuote(rec, addCookies(jsonRequest(http.MethodPost, "/api/submit-quote", body), session))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Quote submitted successfully", resp["message"])

	calls := c.all()
	require.Len(t, calls, 1)
	assert.Equal(t, testWebhookURL, calls[0].URL)
	assert.Equal(t, "application/x-www-form-urlencoded", calls[0].ContentType)
	assert.Equal(t, "Acme", calls[0].Values.Get("clientName"))
	assert.Equal(t, "Q-7", calls[0].Values.Get("quoteId"))
	assert.Equal(t, "18000", calls[0].Values.Get("fixedTotal"))
	assert.Equal(t, "true", calls[0].Values.Get("urgent"))
	assert.Equal(t, `[{"name":"A"}]`, calls[0].Values.Get("items"))
	assert.NotContains(t, calls[0].Values, "empty")
	assert.NotContains(t, calls[0].Values, "none")
}

func TestSubmitHandler_SubmitQuoteForwardsFormBody(t *testing.T) {
	c := &capture{}
	store := newTestStore()
	h := handlers.NewSubmitHandler(store, newTestForwarder(c), testFeedbackURL, utils.NewNoopLogger())
	session := sessionWithWebhook(t, store)

	form := url.Values{"clientName": {"Acme"}, "goal": {""}, "itemsCount": {"2"}}
	req := httptest.NewRequest(http.MethodPost, "/api/submit-quote", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.SubmitQuote(rec, addCookies(req, session))

	require.Equal(t, http.StatusOK, rec.Code)
	calls := c.all()
	require.Len(t, calls, 1)
	assert.Equal(t, "Acme", calls[0].Values.Get("clientName"))
	assert.Equal(t, "2", calls[0].Values.Get("itemsCount"))
	assert.NotContains(t, calls[0].Values, "goal")
}

func TestSubmitHandler_SubmitQuoteMasksUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		capture *capture
	}{
		{name: "unreachable webhook", capture: &capture{err: errUnreachable}},
		{name: "server error", capture: &capture{status: http.StatusInternalServerError}},
		{name: "gone", capture: &capture{status: http.StatusGone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			h := handlers.NewSubmitHandler(store, newTestForwarder(tt.capture), testFeedbackURL, utils.NewNoopLogger())
			session := sessionWithWebhook(t, store)

			rec := httptest.NewRecorder()
			h.SubmitQuote(rec, addCookies(jsonRequest(http.MethodPost, "/api/submit-quote", `{"clientName":"Acme"}`), session))

			assert.Equal(t, http.StatusOK, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, "Quote submitted successfully", body["message"])
			assert.Len(t, tt.capture.all(), 1)
		})
	}
}

func TestSubmitHandler_SubmitQuoteMalformedBody(t *testing.T) {
	c := &capture{}
	store := newTestStore()
	h := handlers.NewSubmitHandler(store, newTestForwarder(c), testFeedbackURL, utils.NewNoopLogger())
	session := sessionWithWebhook(t, store)

	rec := httptest.NewRecorder()
	h.SubmitQuote(rec, addCookies(jsonRequest(http.MethodPost, "/api/submit-quote", `{"clientName":`), session))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, c.all())
}

func TestSubmitHandler_SubmitFeedback(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        url.Values
	}{
		{
			name:        "json",
			contentType: "application/json",
			body:        `{"name":"Dana","email":"dana@example.com","phone":"050","feedback":"great"}`,
			want: url.Values{
				"name": {"Dana"}, "email": {"dana@example.com"}, "phone": {"050"}, "feedback": {"great"},
			},
		},
		{
			name:        "message alias and empty fields",
			contentType: "application/json",
			body:        `{"name":"Dana","message":"hello"}`,
			want: url.Values{
				"name": {"Dana"}, "email": {""}, "phone": {""}, "feedback": {"hello"},
			},
		},
		{
			name:        "numeric phone",
			contentType: "application/json",
			body:        `{"name":"Dana","phone":5551234,"feedback":"hi"}`,
			want: url.Values{
				"name": {"Dana"}, "email": {""}, "phone": {"5551234"}, "feedback": {"hi"},
			},
		},
		{
			name:        "non-string values",
			contentType: "application/json",
			body:        `{"name":"Dana","email":null,"phone":true,"feedback":42.5}`,
			want: url.Values{
				"name": {"Dana"}, "email": {""}, "phone": {"true"}, "feedback": {"42.5"},
			},
		},
		{
			name:        "urlencoded",
			contentType: "application/x-www-form-urlencoded",
			body:        "name=Dana&feedback=ok",
			want: url.Values{
				"name": {"Dana"}, "email": {""}, "phone": {""}, "feedback": {"ok"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &capture{}
			h := handlers.NewSubmitHandler(newTestStore(), newTestForwarder(c), testFeedbackURL, utils.NewNoopLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/submit-feedback", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			h.SubmitFeedback(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Feedback submitted successfully", decodeBody(t, rec)["message"])
			calls := c.all()
			require.Len(t, calls, 1)
			assert.Equal(t, testFeedbackURL, calls[0].URL)
			assert.Equal(t, tt.want, calls[0].Values)
		})
	}
}

func TestSubmitHandler_SubmitFeedbackUnreachable(t *testing.T) {
	c := &capture{err: errUnreachable}
	h := handlers.NewSubmitHandler(newTestStore(), newTestForwarder(c), testFeedbackURL, utils.NewNoopLogger())
	rec := httptest.NewRecorder()

	h.SubmitFeedback(rec, jsonRequest(http.MethodPost, "/api/submit-feedback", `{"name":"Dana"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}
