package outfmt

import (
	"github.com/LateGenXer/cgtcalc/cgt"
)

type OutputType int

const (
	Disposals OutputType = iota
	Summary
	Section104
)

type Writer interface {
	PrintRenderTable(outType OutputType, name string, tableModel *cgt.RenderTable) error
}
