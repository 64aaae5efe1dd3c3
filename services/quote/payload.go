package quote

import (
	"bytes"
	"encoding/json"
	"strconv"

	"quote-generator-api/utils"
)

type itemJSON struct {
	Name  string  `json:"name"`
	Desc  string  `json:"desc"`
	Price float64 `json:"price"`
}

type packJSON struct {
	Hours int     `json:"hours"`
	Note  string  `json:"note"`
	Sum   float64 `json:"sum"`
}

// Flatten produces the flat key/value submission for the webhook: scalar
// fields as text, item and pack lists as JSON text with a count.
func Flatten(q Quote) map[string]string {
	out := map[string]string{
		"clientName": q.ClientName,
		"quoteId":    q.QuoteID,
		"quoteDate":  q.Date,
		"vendor":     q.Vendor,
		"goal":       q.Goal,
		"model":      string(q.Model()),
	}

	switch p := q.Pricing.(type) {
	case *Fixed:
		out["fixedTotal"] = utils.FormatNumber(p.Total)
		out["fixedValidity"] = strconv.Itoa(p.ValidityDays)
		out["fixedTerms"] = p.Terms
		if len(p.Items) > 0 {
			items := make([]itemJSON, 0, len(p.Items))
			for _, it := range p.Items {
				items = append(items, itemJSON{Name: it.Name, Desc: it.Description, Price: it.Price})
			}
			out["itemsJSON"] = marshalText(items)
			out["itemsCount"] = strconv.Itoa(len(items))
		}
	case *Discovery:
		out["discPrice"] = utils.FormatNumber(p.Price)
		out["discMeetings"] = strconv.Itoa(p.Meetings)
		out["discFlow"] = flagText(p.FlowDiagram)
		out["discValidity"] = strconv.Itoa(p.ValidityDays)
		out["discDelivery"] = p.Delivery
	case *Hours:
		out["hourRate"] = utils.FormatNumber(p.Rate())
		out["hoursValidity"] = strconv.Itoa(p.ValidityDays)
		out["reporting"] = p.Reporting
		if packs := p.Packs(); len(packs) > 0 {
			rows := make([]packJSON, 0, len(packs))
			for _, pk := range packs {
				rows = append(rows, packJSON{Hours: pk.Hours, Note: pk.Note, Sum: pk.Sum})
			}
			out["packsJSON"] = marshalText(rows)
			out["packsCount"] = strconv.Itoa(len(rows))
		}
	}
	return out
}

// marshalText encodes v without HTML escaping so the receiving scenario sees
// the text as typed.
func marshalText(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
