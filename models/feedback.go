package models

import "net/url"

type Feedback struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Feedback string `json:"feedback"`
	Message  string `json:"message,omitempty"`
}

// FeedbackFromValues reads the feedback fields from decoded form values, so
// numbers and booleans sent as JSON arrive as their literal text.
func FeedbackFromValues(v url.Values) Feedback {
	return Feedback{
		Name:     v.Get("name"),
		Email:    v.Get("email"),
		Phone:    v.Get("phone"),
		Feedback: v.Get("feedback"),
		Message:  v.Get("message"),
	}
}

// Values always carries all four keys, empty or not; the feedback scenario
// on the receiving side expects a fixed shape.
func (f Feedback) Values() url.Values {
	text := f.Feedback
	if text == "" {
		text = f.Message
	}
	v := url.Values{}
	v.Set("name", f.Name)
	v.Set("email", f.Email)
	v.Set("phone", f.Phone)
	v.Set("feedback", text)
	return v
}
