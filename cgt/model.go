package cgt

import (
	"github.com/shopspring/decimal"

	"github.com/LateGenXer/cgtcalc/date"
	decimal_opt "github.com/LateGenXer/cgtcalc/decimal_value"
)

// Kind is the closed set of trade kinds. The declaration order is
// load-bearing: trades on the same date are processed in this order, so
// notional events (DIVIDEND, CAPRETURN) land before same-day buys and sells.
type Kind int

const (
	DIVIDEND Kind = iota
	CAPRETURN
	BUY
	SELL
)

func (k Kind) String() string {
	switch k {
	case DIVIDEND:
		return "DIVIDEND"
	case CAPRETURN:
		return "CAPRETURN"
	case BUY:
		return "BUY"
	case SELL:
		return "SELL"
	}
	return "???"
}

// Trade is one normalised input record. For BUY/SELL, Params is
// (shares, price, charges); any tax parameter has already been folded into
// charges by the parser. For DIVIDEND/CAPRETURN, Params is
// (reference holding, amount). Immutable once merged.
type Trade struct {
	Security string
	Date     date.Date
	Kind     Kind
	Params   []decimal.Decimal
}

// Rule identifies which share-identification rule matched a disposal to an
// acquisition.
type Rule int

const (
	SameDay Rule = iota
	BedAndBreakfast
)

func (r Rule) String() string {
	switch r {
	case SameDay:
		return "same day"
	case BedAndBreakfast:
		return "bed & breakfast"
	}
	return "???"
}

// Identification records shares of a disposal matched to an acquisition
// under a rule. Created once, never modified.
type Identification struct {
	Shares          decimal.Decimal
	Rule            Rule
	AcquisitionDate date.Date
}

// Acquisition is the merged acquisition for one date. Unidentified tracks
// the shares not yet claimed by the same-day or bed & breakfast rules, and
// is only ever decremented by the matching pass.
type Acquisition struct {
	Date         date.Date
	Cost         decimal.Decimal
	Shares       decimal.Decimal
	Unidentified decimal.Decimal
}

// Disposal is the merged disposal for one date. Charges holds the dealing
// costs. The sum of identified shares plus Unidentified always equals
// Shares.
type Disposal struct {
	Date            date.Date
	Proceeds        decimal.Decimal
	Charges         decimal.Decimal
	Shares          decimal.Decimal
	Unidentified    decimal.Decimal
	Identifications []Identification
}

// PoolUpdate is one append-only row of a security's Section 104 ledger,
// written at every pool mutation with the post-mutation totals. Identified
// is null for notional events, which move cost but not shares.
type PoolUpdate struct {
	Date        date.Date
	Description string
	Identified  decimal_opt.DecimalOpt
	DeltaCost   decimal.Decimal
	PoolShares  decimal.Decimal
	PoolCost    decimal.Decimal
}

// CostLine is one itemised allowable-cost entry of a disposal, with the
// arithmetic spelled out in the description.
type CostLine struct {
	Description string
	Amount      decimal.Decimal
}

// DisposalResult is the final per-SELL output unit.
type DisposalResult struct {
	Date      date.Date
	Security  string
	Shares    decimal.Decimal
	Proceeds  decimal.Decimal
	Costs     decimal.Decimal
	Gain      decimal.Decimal
	CostLines []CostLine
}

// SecurityLedger owns all per-security state as it moves through the
// pipeline stages: merged trades, the acquisition/disposal records the
// matching pass mutates, and the date indexes used for ordered walks.
type SecurityLedger struct {
	Security         string
	Trades           []*Trade
	Acquisitions     map[date.Date]*Acquisition
	Disposals        map[date.Date]*Disposal
	acquisitionDates []date.Date
	disposalDates    []date.Date
}
