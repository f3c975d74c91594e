// Package decimal_value provides DecimalOpt, a decimal which may also be
// null, for columns which are not meaningful on every row.
package decimal_value

import (
	"github.com/shopspring/decimal"
)

var Null = DecimalOpt{IsNull: true}

type DecimalOpt struct {
	Decimal decimal.Decimal
	IsNull  bool
}

func New(value decimal.Decimal) DecimalOpt {
	return DecimalOpt{Decimal: value}
}
