package models

type WebhookRequest struct {
	WebhookURL string `json:"webhook_url"`
}
