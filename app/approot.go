package app

import (
	"io"

	"github.com/LateGenXer/cgtcalc/app/outfmt"
	"github.com/LateGenXer/cgtcalc/cgt"
	"github.com/LateGenXer/cgtcalc/log"
	"github.com/LateGenXer/cgtcalc/util"
)

type DescribedReader struct {
	Desc   string
	Reader io.Reader
}

// RunCgtApp parses every trade file, runs the calculation, applies the
// optional tax year filter and renders the result. Fatal errors abort with
// nothing printed; warnings are advisory and go to the error printer.
func RunCgtApp(
	tradeReaders []DescribedReader,
	options cgt.Options,
	taxYearFilter util.Optional[cgt.TaxYear],
	renderFullValues bool,
	writer outfmt.Writer,
	errPrinter log.ErrorPrinter) error {

	allTrades := make([]*cgt.Trade, 0, 20)
	for _, tradeReader := range tradeReaders {
		trades, err := cgt.ParseTrades(tradeReader.Reader, tradeReader.Desc)
		if err != nil {
			errPrinter.Ln("Error:", err)
			return err
		}
		allTrades = append(allTrades, trades...)
	}

	result, err := cgt.Calculate(allTrades, options)
	if err != nil {
		errPrinter.Ln("Error:", err)
		return err
	}
	if taxYearFilter.Present() {
		result = result.Filter(taxYearFilter.MustGet())
	}

	for _, warning := range result.Warnings {
		errPrinter.F("Warning: %s\n", warning)
	}

	for _, ty := range result.TaxYearsSorted() {
		tyr := result.TaxYears[ty]
		if err := writer.PrintRenderTable(outfmt.Disposals, ty.String(),
			cgt.RenderTaxYearDisposals(tyr, renderFullValues)); err != nil {
			return err
		}
		if err := writer.PrintRenderTable(outfmt.Summary, ty.String(),
			cgt.RenderTaxYearSummary(tyr, renderFullValues)); err != nil {
			return err
		}
	}
	for _, security := range result.SecuritiesSorted() {
		if err := writer.PrintRenderTable(outfmt.Section104, security,
			cgt.RenderSection104(result.Section104[security], renderFullValues)); err != nil {
			return err
		}
	}
	return nil
}
