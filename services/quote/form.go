package quote

import (
	"bytes"
	"encoding/json"
)

// Field is a raw form value. Browsers send numeric inputs either as strings
// or as JSON numbers; both decode to their literal text.
type Field string

func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(b)
	return nil
}

func (f Field) String() string { return string(f) }

// Form mirrors the quote form as the browser submits it.
type Form struct {
	ClientName Field `json:"clientName"`
	QuoteID    Field `json:"quoteId"`
	QuoteDate  Field `json:"quoteDate"`
	Vendor     Field `json:"vendor"`
	Goal       Field `json:"goal"`
	Model      Field `json:"model"`

	FixedTotal    Field      `json:"fixedTotal"`
	FixedValidity Field      `json:"fixedValidity"`
	FixedTerms    Field      `json:"fixedTerms"`
	Items         []FormItem `json:"items"`

	DiscPrice    Field `json:"discPrice"`
	DiscMeetings Field `json:"discMeetings"`
	DiscFlow     Field `json:"discFlow"`
	DiscValidity Field `json:"discValidity"`
	DiscDelivery Field `json:"discDelivery"`

	HourRate      Field      `json:"hourRate"`
	HoursValidity Field      `json:"hoursValidity"`
	Reporting     Field      `json:"reporting"`
	Packs         []FormPack `json:"packs"`
}

type FormItem struct {
	Name  Field `json:"name"`
	Desc  Field `json:"desc"`
	Price Field `json:"price"`
}

type FormPack struct {
	Hours Field `json:"hours"`
	Note  Field `json:"note"`
}
