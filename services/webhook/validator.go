package webhook

import (
	"regexp"

	"github.com/pkg/errors"
)

var (
	ErrInvalidWebhookURL = errors.New("invalid webhook URL format")
	ErrWebhookNotFound   = errors.New("no webhook URL found in session")
)

// Make.com scenario trigger URLs, e.g. https://hook.eu2.make.com/abc123.
var webhookPattern = regexp.MustCompile(`^https://hook\..*\.make\.com/.+`)

func IsValid(url string) bool {
	return url != "" && webhookPattern.MatchString(url)
}

func Validate(url string) error {
	if !IsValid(url) {
		return ErrInvalidWebhookURL
	}
	return nil
}
