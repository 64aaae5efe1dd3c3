// Package quote assembles pricing-model quotes from raw form input and
// renders them for preview, print and webhook submission.
package quote

import (
	"github.com/pkg/errors"
)

type Model string

const (
	ModelFixed     Model = "fixed"
	ModelDiscovery Model = "discovery"
	ModelHours     Model = "hours"
)

const (
	DefaultFixedValidity     = 14
	DefaultDiscoveryValidity = 14
	DefaultHoursValidity     = 90
	DefaultHourlyRate        = 350.0
	DefaultPackHours         = 10
)

var ErrPackIndex = errors.New("pack index out of range")

type Header struct {
	ClientName string
	QuoteID    string
	Date       string
	Vendor     string
	Goal       string
}

// Quote is a header plus at most one pricing variant. A nil Pricing means no
// (or an unknown) model was selected.
type Quote struct {
	Header
	Pricing Pricing
}

func (q Quote) Model() Model {
	if q.Pricing == nil {
		return ""
	}
	return q.Pricing.Model()
}

// Pricing is implemented by *Fixed, *Discovery and *Hours only.
type Pricing interface {
	Model() Model
	pricing()
}

type Item struct {
	Name        string
	Description string
	Price       float64
}

type Fixed struct {
	Total        float64
	ValidityDays int
	Terms        string
	Items        []Item
}

func (*Fixed) Model() Model { return ModelFixed }
func (*Fixed) pricing()     {}

func (f *Fixed) ItemsTotal() float64 {
	var sum float64
	for _, it := range f.Items {
		sum += it.Price
	}
	return sum
}

type Discovery struct {
	Price        float64
	Meetings     int
	FlowDiagram  bool
	ValidityDays int
	Delivery     string
}

func (*Discovery) Model() Model { return ModelDiscovery }
func (*Discovery) pricing()     {}

type Pack struct {
	Hours int
	Note  string
	Sum   float64
}

// Hours is the retainer model. Pack sums are derived from the hourly rate and
// are only changed through methods, so a sum never reflects an old rate.
type Hours struct {
	ValidityDays int
	Reporting    string

	rate  float64
	packs []Pack
}

func (*Hours) Model() Model { return ModelHours }
func (*Hours) pricing()     {}

func NewHours(rate float64) *Hours {
	return &Hours{
		ValidityDays: DefaultHoursValidity,
		rate:         rate,
	}
}

func (h *Hours) Rate() float64 { return h.rate }

// SetRate changes the hourly rate and recomputes every pack sum in the same call.
func (h *Hours) SetRate(rate float64) {
	h.rate = rate
	for i := range h.packs {
		h.packs[i].Sum = float64(h.packs[i].Hours) * rate
	}
}

func (h *Hours) AddPack(hours int, note string) {
	h.packs = append(h.packs, Pack{
		Hours: hours,
		Note:  note,
		Sum:   float64(hours) * h.rate,
	})
}

func (h *Hours) SetPackHours(i, hours int) error {
	if i < 0 || i >= len(h.packs) {
		return errors.Wrapf(ErrPackIndex, "index %d", i)
	}
	h.packs[i].Hours = hours
	h.packs[i].Sum = float64(hours) * h.rate
	return nil
}

func (h *Hours) SetPackNote(i int, note string) error {
	if i < 0 || i >= len(h.packs) {
		return errors.Wrapf(ErrPackIndex, "index %d", i)
	}
	h.packs[i].Note = note
	return nil
}

func (h *Hours) RemovePack(i int) error {
	if i < 0 || i >= len(h.packs) {
		return errors.Wrapf(ErrPackIndex, "index %d", i)
	}
	h.packs = append(h.packs[:i], h.packs[i+1:]...)
	return nil
}

// Packs returns a copy; mutate through the Hours methods.
func (h *Hours) Packs() []Pack {
	out := make([]Pack, len(h.packs))
	copy(out, h.packs)
	return out
}

func (h *Hours) Total() float64 {
	var sum float64
	for _, p := range h.packs {
		sum += p.Sum
	}
	return sum
}
