package quote

import (
	"strings"

	"quote-generator-api/utils"
)

const (
	flowYes = "כן"
	flowNo  = "לא"
)

// Build turns raw form input into a Quote. It never fails: unparseable
// numbers fall back to 0 or the model default, and an unknown model tag
// yields a quote without pricing.
func Build(f Form) Quote {
	q := Quote{
		Header: Header{
			ClientName: f.ClientName.String(),
			QuoteID:    f.QuoteID.String(),
			Date:       f.QuoteDate.String(),
			Vendor:     f.Vendor.String(),
			Goal:       f.Goal.String(),
		},
	}
	if !utils.ValidateDate(q.Date) {
		q.Date = utils.Today()
	}

	switch Model(strings.TrimSpace(f.Model.String())) {
	case ModelFixed:
		q.Pricing = buildFixed(f)
	case ModelDiscovery:
		q.Pricing = buildDiscovery(f)
	case ModelHours:
		q.Pricing = buildHours(f)
	}
	return q
}

func buildFixed(f Form) *Fixed {
	fixed := &Fixed{
		Total:        amount(f.FixedTotal),
		ValidityDays: validity(f.FixedValidity, DefaultFixedValidity),
		Terms:        f.FixedTerms.String(),
	}
	for _, it := range f.Items {
		fixed.Items = append(fixed.Items, Item{
			Name:        it.Name.String(),
			Description: it.Desc.String(),
			Price:       amount(it.Price),
		})
	}
	return fixed
}

func buildDiscovery(f Form) *Discovery {
	meetings, _ := utils.ParseCount(f.DiscMeetings.String())
	return &Discovery{
		Price:        amount(f.DiscPrice),
		Meetings:     meetings,
		FlowDiagram:  parseFlag(f.DiscFlow.String()),
		ValidityDays: validity(f.DiscValidity, DefaultDiscoveryValidity),
		Delivery:     f.DiscDelivery.String(),
	}
}

func buildHours(f Form) *Hours {
	rate, ok := utils.ParseAmount(f.HourRate.String())
	if !ok {
		rate = DefaultHourlyRate
	}

	h := NewHours(0)
	h.ValidityDays = validity(f.HoursValidity, DefaultHoursValidity)
	h.Reporting = f.Reporting.String()
	for _, p := range f.Packs {
		hours, _ := utils.ParseCount(p.Hours.String())
		h.AddPack(hours, p.Note.String())
	}
	h.SetRate(rate)
	return h
}

func amount(f Field) float64 {
	v, _ := utils.ParseAmount(f.String())
	return v
}

// validity treats 0 like a missing value, as the form does.
func validity(f Field, def int) int {
	v, ok := utils.ParseCount(f.String())
	if !ok || v == 0 {
		return def
	}
	return v
}

func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", flowYes, "yes", "y", "true", "1", "on":
		return true
	default:
		return false
	}
}

func flagText(b bool) string {
	if b {
		return flowYes
	}
	return flowNo
}
