package cgt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LateGenXer/cgtcalc/date"
)

// Disposals before this date fall under the pre-2008 identification rules,
// which are not modelled.
var earliestDisposalDate = date.New(2008, time.April, 6)

// ParseTrades reads the line-oriented trade format: one record per line,
// whitespace-separated fields KIND DATE SECURITY PARAM..., with DD/MM/YYYY
// dates. Lines starting with '#' and blank lines are ignored. desc names
// the input in error messages.
func ParseTrades(r io.Reader, desc string) ([]*Trade, error) {
	scanner := bufio.NewScanner(r)
	var trades []*Trade
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		trade, err := parseTradeLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", desc, lineNo, err)
		}
		trades = append(trades, trade)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("Failed to read %s: %w", desc, err)
	}
	return trades, nil
}

// ParseTradesFile is ParseTrades over a named file.
func ParseTradesFile(fname string) ([]*Trade, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ParseTrades(fp, fname)
}

func parseTradeLine(line string) (*Trade, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("expected KIND DATE SECURITY PARAM..., got %q", line)
	}

	kind, err := parseKind(fields[0])
	if err != nil {
		return nil, err
	}

	tradeDate, err := date.ParseUk(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", fields[1], err)
	}

	security := fields[2]

	params := make([]decimal.Decimal, 0, len(fields)-3)
	for _, field := range fields[3:] {
		param, err := decimal.NewFromString(field)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", field, err)
		}
		params = append(params, param)
	}

	trade := &Trade{Security: security, Date: tradeDate, Kind: kind, Params: params}
	if err := normalizeTrade(trade); err != nil {
		return nil, err
	}
	return trade, nil
}

func parseKind(field string) (Kind, error) {
	switch strings.ToUpper(field) {
	case "B", "BUY":
		return BUY, nil
	case "S", "SELL":
		return SELL, nil
	case "DIVIDEND":
		return DIVIDEND, nil
	case "CAPRETURN":
		return CAPRETURN, nil
	case "R", "SPLIT", "UNSPLIT":
		return 0, unsupportedf("restructuring trades (%s) are not supported", strings.ToUpper(field))
	}
	return 0, fmt.Errorf("unknown trade kind %q", field)
}

// normalizeTrade validates parameter counts and quantities, and folds a
// trailing tax parameter of a BUY into its charges. SELL tax must be zero:
// disposals with tax withheld are not modelled.
func normalizeTrade(trade *Trade) error {
	switch trade.Kind {
	case BUY, SELL:
		if len(trade.Params) != 3 && len(trade.Params) != 4 {
			return fmt.Errorf("%s expects shares, price, charges[, tax], got %d parameters",
				trade.Kind, len(trade.Params))
		}
		if len(trade.Params) == 4 {
			tax := trade.Params[3]
			if tax.IsNegative() {
				return fmt.Errorf("%s tax must not be negative, got %s", trade.Kind, tax)
			}
			if trade.Kind == SELL {
				if !tax.IsZero() {
					return unsupportedf("tax on a SELL is not supported")
				}
			} else {
				trade.Params[2] = trade.Params[2].Add(tax)
			}
			trade.Params = trade.Params[:3]
		}
		shares, price, charges := trade.Params[0], trade.Params[1], trade.Params[2]
		if !shares.IsPositive() {
			return fmt.Errorf("%s shares must be positive, got %s", trade.Kind, shares)
		}
		if price.IsNegative() {
			return fmt.Errorf("%s price must not be negative, got %s", trade.Kind, price)
		}
		if charges.IsNegative() {
			return fmt.Errorf("%s charges must not be negative, got %s", trade.Kind, charges)
		}
		if trade.Kind == SELL && trade.Date.Before(earliestDisposalDate) {
			return unsupportedf(
				"disposal on %s predates the Section 104 holding regime of 6 April 2008",
				trade.Date)
		}
	case DIVIDEND, CAPRETURN:
		if len(trade.Params) != 2 {
			return fmt.Errorf("%s expects holding, amount, got %d parameters",
				trade.Kind, len(trade.Params))
		}
		holding, amount := trade.Params[0], trade.Params[1]
		if !holding.IsPositive() {
			return fmt.Errorf("%s holding must be positive, got %s", trade.Kind, holding)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("%s amount must be positive, got %s", trade.Kind, amount)
		}
	}
	return nil
}
