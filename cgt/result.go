package cgt

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/LateGenXer/cgtcalc/date"
	"github.com/LateGenXer/cgtcalc/util"
)

// TaxYearResult aggregates the disposals falling in one tax year.
// Allowance, TaxableGain and CarriedLosses are derived by Finalize.
type TaxYearResult struct {
	TaxYear       TaxYear
	Disposals     []*DisposalResult
	Proceeds      decimal.Decimal
	Costs         decimal.Decimal
	Gains         decimal.Decimal
	Losses        decimal.Decimal
	Allowance     decimal.Decimal
	TaxableGain   decimal.Decimal
	CarriedLosses decimal.Decimal
}

// Result is the complete calculation output: ordered warnings, the
// Section 104 ledger per security, and the per-tax-year aggregates.
// Build it with AddWarning/AddDisposal, then call Finalize.
type Result struct {
	Warnings   []string
	Section104 map[string][]PoolUpdate
	TaxYears   map[TaxYear]*TaxYearResult

	// Warnings recorded during computation; Finalize rebuilds Warnings
	// from these plus the derived allowance warnings, so repeated
	// finalization changes nothing.
	baseWarnings []string
}

func NewResult() *Result {
	return &Result{
		Section104: make(map[string][]PoolUpdate),
		TaxYears:   make(map[TaxYear]*TaxYearResult),
	}
}

func (r *Result) AddWarning(warning string) {
	r.baseWarnings = append(r.baseWarnings, warning)
}

// AddDisposal buckets one disposal into its tax year, accumulating
// proceeds, costs, gains and losses.
func (r *Result) AddDisposal(disposal *DisposalResult) {
	ty := TaxYearOf(disposal.Date)
	tyr, ok := r.TaxYears[ty]
	if !ok {
		tyr = &TaxYearResult{
			TaxYear:  ty,
			Proceeds: decimal.Zero,
			Costs:    decimal.Zero,
			Gains:    decimal.Zero,
			Losses:   decimal.Zero,
		}
		r.TaxYears[ty] = tyr
	}
	tyr.Disposals = append(tyr.Disposals, disposal)
	tyr.Proceeds = tyr.Proceeds.Add(disposal.Proceeds)
	tyr.Costs = tyr.Costs.Add(disposal.Costs)
	if disposal.Gain.IsNegative() {
		tyr.Losses = tyr.Losses.Add(disposal.Gain.Neg())
	} else {
		tyr.Gains = tyr.Gains.Add(disposal.Gain)
	}
	util.Assertf(tyr.Proceeds.Sub(tyr.Costs).Equal(tyr.Gains.Sub(tyr.Losses)),
		"tax year %s: proceeds %s less costs %s do not reconcile with gains %s less losses %s\n",
		ty, tyr.Proceeds, tyr.Costs, tyr.Gains, tyr.Losses)
}

// TaxYearsSorted returns the tax years present, ascending.
func (r *Result) TaxYearsSorted() []TaxYear {
	years := maps.Keys(r.TaxYears)
	slices.SortFunc(years, func(a, b TaxYear) bool { return a.Before(b) })
	return years
}

// SecuritiesSorted returns the securities with Section 104 ledgers, in
// name order.
func (r *Result) SecuritiesSorted() []string {
	securities := maps.Keys(r.Section104)
	slices.Sort(securities)
	return securities
}

// Finalize sorts each year's disposals, looks up the year's allowance
// (zero plus a warning when unknown) and derives the taxable gain and
// carried losses. Finalize recomputes everything it touches, so calling it
// again leaves the Result unchanged.
func (r *Result) Finalize() {
	r.Warnings = append([]string(nil), r.baseWarnings...)
	for _, ty := range r.TaxYearsSorted() {
		tyr := r.TaxYears[ty]
		slices.SortStableFunc(tyr.Disposals, func(a, b *DisposalResult) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return a.Security < b.Security
		})
		allowance, known := AllowanceFor(ty)
		if !known {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"No capital gains allowance known for tax year %s; assuming zero", ty))
		}
		tyr.Allowance = allowance
		net := tyr.Proceeds.Sub(tyr.Costs)
		tyr.TaxableGain = util.MaxDecimal(net.Sub(allowance), decimal.Zero)
		tyr.CarriedLosses = util.MaxDecimal(net.Neg(), decimal.Zero)
	}
}

// Filter returns a finalized copy restricted to one tax year, without
// re-running the calculation. Section 104 ledgers are trimmed to the rows
// from the last point the pool was empty before the year starts through
// the end of the year; a year with no disposals yields an empty Result
// with no ledgers.
func (r *Result) Filter(ty TaxYear) *Result {
	out := NewResult()
	out.baseWarnings = append([]string(nil), r.baseWarnings...)

	tyr, ok := r.TaxYears[ty]
	if !ok {
		out.Finalize()
		return out
	}

	tyrCopy := *tyr
	tyrCopy.Disposals = append([]*DisposalResult(nil), tyr.Disposals...)
	out.TaxYears[ty] = &tyrCopy

	start, end := ty.Start(), ty.End()
	for security, updates := range r.Section104 {
		trimmed := trimPoolUpdates(updates, start, end)
		if len(trimmed) > 0 {
			out.Section104[security] = trimmed
		}
	}
	out.Finalize()
	return out
}

// trimPoolUpdates keeps the ledger rows explaining the pool during
// [start, end]: rows after the last pre-start point where the pool emptied,
// up to the end date. A security with no rows dated inside the window is
// dropped entirely.
func trimPoolUpdates(updates []PoolUpdate, start, end date.Date) []PoolUpdate {
	firstIdx := 0
	inWindow := false
	for i, update := range updates {
		if update.Date.Before(start) && update.PoolShares.IsZero() {
			firstIdx = i + 1
		}
		if !update.Date.Before(start) && !update.Date.After(end) {
			inWindow = true
		}
	}
	if !inWindow {
		return nil
	}
	var trimmed []PoolUpdate
	for _, update := range updates[firstIdx:] {
		if update.Date.After(end) {
			break
		}
		trimmed = append(trimmed, update)
	}
	return trimmed
}
