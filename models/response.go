package models

type APIResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	WebhookURL string `json:"webhook_url,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Uptime  string `json:"uptime"`
	Redis   string `json:"redis,omitempty"`
}

type PreviewResponse struct {
	Success bool              `json:"success"`
	HTML    string            `json:"html"`
	Payload map[string]string `json:"payload"`
}
