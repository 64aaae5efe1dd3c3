package quote_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-generator-api/services/quote"
	"quote-generator-api/utils"
)

func decodeForm(t *testing.T, raw string) quote.Form {
	t.Helper()
	var f quote.Form
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	return f
}

func TestBuild_Fixed(t *testing.T) {
	q := quote.Build(decodeForm(t, `{
		"clientName": "Alpha Ltd",
		"quoteId": "Q-2025-001",
		"quoteDate": "2025-03-01",
		"vendor": "Acme",
		"goal": "Automate invoices",
		"model": "fixed",
		"fixedTotal": "18000",
		"fixedValidity": "",
		"fixedTerms": "40/40/20",
		"items": [
			{"name": "Discovery", "desc": "Workshops", "price": 3000},
			{"name": "Build", "desc": "", "price": "abc"}
		]
	}`))

	assert.Equal(t, "Alpha Ltd", q.ClientName)
	assert.Equal(t, "2025-03-01", q.Date)
	fixed, ok := q.Pricing.(*quote.Fixed)
	require.True(t, ok)
	assert.Equal(t, 18000.0, fixed.Total)
	assert.Equal(t, quote.DefaultFixedValidity, fixed.ValidityDays)
	assert.Equal(t, "40/40/20", fixed.Terms)
	require.Len(t, fixed.Items, 2)
	assert.Equal(t, 3000.0, fixed.Items[0].Price)
	assert.Equal(t, 0.0, fixed.Items[1].Price)
}

func TestBuild_Discovery(t *testing.T) {
	testCases := []struct {
		Name     string
		Raw      string
		Expected quote.Discovery
	}{
		{
			Name: "all_fields",
			Raw:  `{"model":"discovery","discPrice":3500,"discMeetings":"3","discFlow":"לא","discValidity":"30","discDelivery":"4-6 weeks"}`,
			Expected: quote.Discovery{
				Price: 3500, Meetings: 3, FlowDiagram: false, ValidityDays: 30, Delivery: "4-6 weeks",
			},
		},
		{
			Name: "defaults",
			Raw:  `{"model":"discovery","discPrice":"","discMeetings":"x","discValidity":"0"}`,
			Expected: quote.Discovery{
				Price: 0, Meetings: 0, FlowDiagram: true, ValidityDays: quote.DefaultDiscoveryValidity,
			},
		},
		{
			Name: "english_flag",
			Raw:  `{"model":"discovery","discFlow":"yes"}`,
			Expected: quote.Discovery{
				FlowDiagram: true, ValidityDays: quote.DefaultDiscoveryValidity,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			q := quote.Build(decodeForm(t, tc.Raw))
			d, ok := q.Pricing.(*quote.Discovery)
			require.True(t, ok)
			assert.Equal(t, tc.Expected, *d)
		})
	}
}

func TestBuild_Hours(t *testing.T) {
	q := quote.Build(decodeForm(t, `{
		"model": "hours",
		"hourRate": "400",
		"hoursValidity": "",
		"reporting": "weekly",
		"packs": [{"hours": 10, "note": "starter"}, {"hours": "20"}]
	}`))

	h, ok := q.Pricing.(*quote.Hours)
	require.True(t, ok)
	assert.Equal(t, 400.0, h.Rate())
	assert.Equal(t, quote.DefaultHoursValidity, h.ValidityDays)
	assert.Equal(t, "weekly", h.Reporting)
	packs := h.Packs()
	require.Len(t, packs, 2)
	assert.Equal(t, 4000.0, packs[0].Sum)
	assert.Equal(t, 8000.0, packs[1].Sum)
	assert.Equal(t, 12000.0, h.Total())
}

func TestBuild_HoursDefaultRate(t *testing.T) {
	for _, rate := range []string{`""`, `"abc"`, `null`} {
		q := quote.Build(decodeForm(t, `{"model":"hours","hourRate":`+rate+`,"packs":[{"hours":10}]}`))
		h, ok := q.Pricing.(*quote.Hours)
		require.True(t, ok)
		assert.Equal(t, quote.DefaultHourlyRate, h.Rate(), rate)
		assert.Equal(t, 3500.0, h.Packs()[0].Sum, rate)
	}
}

func TestBuild_NoModel(t *testing.T) {
	for _, model := range []string{"", "unknown"} {
		q := quote.Build(decodeForm(t, `{"model":"`+model+`","clientName":"x"}`))
		assert.Nil(t, q.Pricing)
		assert.Equal(t, quote.Model(""), q.Model())
	}
}

func TestBuild_DefaultsDateToToday(t *testing.T) {
	for _, date := range []string{"", "tomorrow", "2025-13-40"} {
		q := quote.Build(quote.Form{Model: "fixed", QuoteDate: quote.Field(date)})
		assert.Equal(t, utils.Today(), q.Date, date)
	}
}

func TestField_UnmarshalJSON(t *testing.T) {
	var v struct {
		A quote.Field `json:"a"`
		B quote.Field `json:"b"`
		C quote.Field `json:"c"`
		D quote.Field `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"text","b":12.5,"c":null,"d":true}`), &v))

	assert.Equal(t, quote.Field("text"), v.A)
	assert.Equal(t, quote.Field("12.5"), v.B)
	assert.Equal(t, quote.Field(""), v.C)
	assert.Equal(t, quote.Field("true"), v.D)
}
