package cgt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LateGenXer/cgtcalc/date"
)

type _PrintHelper struct {
	PrintAllDecimals bool
}

func (h _PrintHelper) CurrStr(val decimal.Decimal) string {
	if h.PrintAllDecimals {
		return val.String()
	}
	return val.StringFixed(2)
}

func (h _PrintHelper) PoundStr(val decimal.Decimal) string {
	return "£" + h.CurrStr(val)
}

func (h _PrintHelper) PlusMinusPound(val decimal.Decimal, showPlus bool) string {
	if val.IsNegative() {
		return fmt.Sprintf("-£%s", h.CurrStr(val.Neg()))
	}
	plus := ""
	if showPlus {
		plus = "+"
	}
	return fmt.Sprintf("%s£%s", plus, h.CurrStr(val))
}

type RenderTable struct {
	Header []string
	Rows   [][]string
	Footer []string
	Notes  []string
	Errors []error
}

// RenderTaxYearDisposals builds the disposal table for one tax year: one
// row per disposal, with the itemised cost lines stacked in the breakdown
// column and the year totals in the footer.
func RenderTaxYearDisposals(tyr *TaxYearResult, renderFullValues bool) *RenderTable {
	table := &RenderTable{}
	table.Header = []string{"Disposal", "Security", "Shares", "Proceeds",
		"Gain / (Loss)", "Cost Breakdown"}

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	for _, d := range tyr.Disposals {
		breakdown := make([]string, 0, len(d.CostLines))
		for _, line := range d.CostLines {
			breakdown = append(breakdown,
				fmt.Sprintf("%s: %s", line.Description, ph.PoundStr(line.Amount)))
		}
		row := []string{
			d.Date.String(),
			d.Security,
			d.Shares.String(),
			ph.PoundStr(d.Proceeds),
			ph.PlusMinusPound(d.Gain, false),
			strings.Join(breakdown, "\n"),
		}
		table.Rows = append(table.Rows, row)
	}

	table.Footer = []string{"Total", "", "",
		ph.PoundStr(tyr.Proceeds),
		ph.PlusMinusPound(tyr.Gains.Sub(tyr.Losses), false),
		"",
	}

	today := date.Today()
	for _, d := range tyr.Disposals {
		if today.DaysSince(d.Date) <= bedAndBreakfastDays {
			table.Notes = append(table.Notes,
				"* Figures are provisional: recent disposals may still be re-matched against later acquisitions.")
			break
		}
	}
	return table
}

/*
RenderTaxYearSummary generates a RenderTable that will render out to this:

	|                | 2024/2025 |
	+----------------+-----------+
	| Disposals      | 2         |
	| Proceeds       | £xxxx.xx  |
	| ...            | ...       |
	| Carried losses | £xxxx.xx  |
*/
func RenderTaxYearSummary(tyr *TaxYearResult, renderFullValues bool) *RenderTable {
	table := &RenderTable{}
	table.Header = []string{"", tyr.TaxYear.String()}

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	table.Rows = append(table.Rows,
		[]string{"Disposals", fmt.Sprintf("%d", len(tyr.Disposals))},
		[]string{"Proceeds", ph.PoundStr(tyr.Proceeds)},
		[]string{"Costs", ph.PoundStr(tyr.Costs)},
		[]string{"Gains", ph.PoundStr(tyr.Gains)},
		[]string{"Losses", ph.PoundStr(tyr.Losses)},
		[]string{"Allowance", ph.PoundStr(tyr.Allowance)},
		[]string{"Taxable gain", ph.PoundStr(tyr.TaxableGain)},
		[]string{"Carried losses", ph.PoundStr(tyr.CarriedLosses)},
	)
	return table
}

// RenderSection104 builds one security's pool ledger table.
func RenderSection104(updates []PoolUpdate, renderFullValues bool) *RenderTable {
	table := &RenderTable{}
	table.Header = []string{"Date", "Description", "Identified", "Cost +/-",
		"Pool Shares", "Pool Cost"}

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	for _, u := range updates {
		identified := "-"
		if !u.Identified.IsNull {
			identified = u.Identified.Decimal.String()
		}
		row := []string{
			u.Date.String(),
			u.Description,
			identified,
			ph.PlusMinusPound(u.DeltaCost, true),
			u.PoolShares.String(),
			ph.PoundStr(u.PoolCost),
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
