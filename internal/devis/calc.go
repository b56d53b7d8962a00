// Package devis computes quote totals: per-line sell prices from cost and
// margin, document margins, and the TVA ventilation grouped by rate.
package devis

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Line struct {
	Designation string          `json:"designation"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	MarginRate  decimal.Decimal `json:"margin_rate"` // percent, e.g. 20 for 20%
	TVARate     decimal.Decimal `json:"tva_rate"`    // percent, e.g. 5.5, 10, 20
}

type LineTotals struct {
	Line      Line            `json:"line"`
	UnitSell  decimal.Decimal `json:"unit_sell"`
	TotalCost decimal.Decimal `json:"total_cost"`
	TotalHT   decimal.Decimal `json:"total_ht"`
}

// VentilationEntry is the TVA collected for one distinct rate.
type VentilationEntry struct {
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

type Totals struct {
	Lines        []LineTotals       `json:"lines"`
	TotalCost    decimal.Decimal    `json:"total_cost"`
	TotalHT      decimal.Decimal    `json:"total_ht"`
	MarginAmount decimal.Decimal    `json:"margin_amount"`
	MarginRate   decimal.Decimal    `json:"margin_rate"` // percent over cost
	Ventilation  []VentilationEntry `json:"ventilation"`
	TotalTVA     decimal.Decimal    `json:"total_tva"`
	TotalTTC     decimal.Decimal    `json:"total_ttc"`
}

var hundred = decimal.NewFromInt(100)

// Compute derives all document totals from the quote lines. Line totals and
// each ventilation bucket are rounded to 2 decimals half-up; an empty
// document yields zero totals.
func Compute(lines []Line) Totals {
	t := Totals{
		Lines:       make([]LineTotals, 0, len(lines)),
		Ventilation: []VentilationEntry{},
	}

	baseByRate := make(map[string]decimal.Decimal)
	var rates []decimal.Decimal

	for _, l := range lines {
		unitSell := l.UnitCost.Mul(decimal.NewFromInt(1).Add(l.MarginRate.Div(hundred)))
		totalCost := l.Quantity.Mul(l.UnitCost).Round(2)
		totalHT := l.Quantity.Mul(unitSell).Round(2)

		t.Lines = append(t.Lines, LineTotals{
			Line:      l,
			UnitSell:  unitSell.Round(2),
			TotalCost: totalCost,
			TotalHT:   totalHT,
		})
		t.TotalCost = t.TotalCost.Add(totalCost)
		t.TotalHT = t.TotalHT.Add(totalHT)

		key := l.TVARate.String()
		if _, seen := baseByRate[key]; !seen {
			rates = append(rates, l.TVARate)
		}
		baseByRate[key] = baseByRate[key].Add(totalHT)
	}

	t.MarginAmount = t.TotalHT.Sub(t.TotalCost)
	if t.TotalCost.IsPositive() {
		t.MarginRate = t.MarginAmount.Div(t.TotalCost).Mul(hundred).Round(2)
	}

	sort.Slice(rates, func(i, j int) bool { return rates[i].LessThan(rates[j]) })
	for _, rate := range rates {
		base := baseByRate[rate.String()]
		amount := base.Mul(rate).Div(hundred).Round(2)
		t.Ventilation = append(t.Ventilation, VentilationEntry{Rate: rate, Base: base, Amount: amount})
		t.TotalTVA = t.TotalTVA.Add(amount)
	}
	t.TotalTTC = t.TotalHT.Add(t.TotalTVA)
	return t
}
