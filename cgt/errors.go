package cgt

import (
	"fmt"
)

// UnsupportedError reports input which uses a feature the calculator
// deliberately refuses to model (restructurings, pre-2008 disposals,
// taxed sales). These abort the whole run.
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string {
	return e.Reason
}

func unsupportedf(format string, v ...interface{}) error {
	return &UnsupportedError{Reason: fmt.Sprintf(format, v...)}
}

// DataError reports trade data which is inconsistent with itself, such as
// a notional distribution on an empty holding or a disposal exceeding the
// Section 104 pool. These abort the whole run.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return e.Reason
}

func dataErrorf(format string, v ...interface{}) error {
	return &DataError{Reason: fmt.Sprintf(format, v...)}
}
