package quote

import (
	"fmt"
	"strings"

	"quote-generator-api/utils"
)

const placeholderHTML = `<div class="muted">בחר מודל ליצירת תצוגה.</div>`

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape covers the characters that can open markup in the preview.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

func currency(v float64) string {
	return utils.FormatCurrency(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Render returns the preview HTML fragment for q. The output depends only on
// q, so the same quote always renders identically.
func Render(q Quote) string {
	switch p := q.Pricing.(type) {
	case *Fixed:
		return renderHeader(q.Header) + renderFixed(p)
	case *Discovery:
		return renderHeader(q.Header) + renderDiscovery(p)
	case *Hours:
		return renderHeader(q.Header) + renderHours(p)
	default:
		return placeholderHTML
	}
}

func renderHeader(h Header) string {
	var b strings.Builder
	b.WriteString(`<div class="grid cols-2">`)
	b.WriteString(`<div>`)
	fmt.Fprintf(&b, `<h3>ללקוח: %s</h3>`, Escape(h.ClientName))
	fmt.Fprintf(&b, `<div class="muted">מטרה: %s</div>`, Escape(h.Goal))
	b.WriteString(`</div>`)
	b.WriteString(`<div>`)
	fmt.Fprintf(&b, `<div class="muted">מס׳ הצעה: %s</div>`, Escape(h.QuoteID))
	fmt.Fprintf(&b, `<div class="muted">תאריך: %s</div>`, Escape(h.Date))
	fmt.Fprintf(&b, `<div class="muted">ספק: %s</div>`, Escape(h.Vendor))
	b.WriteString(`</div>`)
	b.WriteString(`</div>`)
	b.WriteString(`<div class="hr"></div>`)
	return b.String()
}

func renderFixed(f *Fixed) string {
	var b strings.Builder
	b.WriteString(`<h3>מודל: פרויקט קבוע</h3>`)
	fmt.Fprintf(&b, `<p><strong>מחיר כולל:</strong> %s • <strong>תוקף:</strong> %d ימים</p>`,
		currency(f.Total), f.ValidityDays)
	fmt.Fprintf(&b, `<p><strong>תנאי תשלום:</strong> %s</p>`,
		Escape(orDefault(f.Terms, "לפי אבני דרך")))

	if len(f.Items) > 0 {
		b.WriteString(`<h3>רכיבי הפרויקט</h3>`)
		b.WriteString(`<table class="table"><thead><tr><th>רכיב</th><th>תיאור</th><th style="text-align:left">מחיר</th></tr></thead><tbody>`)
		for _, it := range f.Items {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td style="text-align:left">%s</td></tr>`,
				Escape(it.Name), Escape(it.Description), currency(it.Price))
		}
		b.WriteString(`</tbody>`)
		fmt.Fprintf(&b, `<tfoot><tr><td colspan="2" class="sum">סה"כ רכיבים</td><td style="text-align:left" class="sum">%s</td></tr></tfoot>`,
			currency(f.ItemsTotal()))
		b.WriteString(`</table>`)
	}
	return b.String()
}

func renderDiscovery(d *Discovery) string {
	var b strings.Builder
	b.WriteString(`<h3>מודל: אפיון בתשלום → פרויקט</h3>`)
	fmt.Fprintf(&b, `<p><strong>מחיר אפיון:</strong> %s • <strong>פגישות:</strong> %d • <strong>תרשים זרימה:</strong> %s</p>`,
		currency(d.Price), d.Meetings, flagText(d.FlowDiagram))
	fmt.Fprintf(&b, `<p><strong>טווח לביצוע לאחר אפיון:</strong> %s</p>`,
		Escape(orDefault(d.Delivery, "יוגדר בהצעת הביצוע")))
	fmt.Fprintf(&b, `<p class="muted">לאחר אישור האפיון החתום, תוגש הצעת ביצוע מדויקת. תוקף ההצעה: %d ימים.</p>`,
		d.ValidityDays)
	return b.String()
}

func renderHours(h *Hours) string {
	var b strings.Builder
	b.WriteString(`<h3>מודל: בנק שעות</h3>`)
	fmt.Fprintf(&b, `<p><strong>מחיר לשעה:</strong> %s • <strong>תוקף ניצול:</strong> %d ימים</p>`,
		currency(h.Rate()), h.ValidityDays)
	b.WriteString(`<h3>חבילות נבחרות</h3>`)
	b.WriteString(`<table class="table"><thead><tr><th>חבילה</th><th>הערות</th><th style="text-align:left">סה"כ</th></tr></thead><tbody>`)

	packs := h.Packs()
	if len(packs) == 0 {
		b.WriteString(`<tr><td colspan="3" class="muted">לא נבחרו חבילות</td></tr>`)
	}
	for _, p := range packs {
		fmt.Fprintf(&b, `<tr><td>%d שעות</td><td>%s</td><td style="text-align:left">%s</td></tr>`,
			p.Hours, Escape(p.Note), currency(p.Sum))
	}
	b.WriteString(`</tbody>`)
	fmt.Fprintf(&b, `<tfoot><tr><td colspan="2" class="sum">סה"כ</td><td style="text-align:left" class="sum">%s</td></tr></tfoot>`,
		currency(h.Total()))
	b.WriteString(`</table>`)
	fmt.Fprintf(&b, `<p><strong>דיווח:</strong> %s</p>`,
		Escape(orDefault(h.Reporting, "דוח שעות שבועי/חודשי ישלח ללקוח")))
	return b.String()
}
