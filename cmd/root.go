package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LateGenXer/cgtcalc/app"
	"github.com/LateGenXer/cgtcalc/app/outfmt"
	"github.com/LateGenXer/cgtcalc/cgt"
	"github.com/LateGenXer/cgtcalc/log"
	"github.com/LateGenXer/cgtcalc/util"
)

var RoundToWholePounds = true
var TaxYearOpt string
var CsvOutputDir string
var RenderFullValues = false

func runRootCmd(cmd *cobra.Command, args []string) {
	var taxYearFilter util.Optional[cgt.TaxYear]
	if TaxYearOpt != "" {
		ty, err := cgt.ParseTaxYear(TaxYearOpt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing --tax-year: %v\n", err)
			os.Exit(1)
		}
		taxYearFilter.Set(ty)
	}

	tradeReaders := make([]app.DescribedReader, 0, len(args))
	for _, fname := range args {
		fp, err := os.Open(fname)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		defer fp.Close()
		tradeReaders = append(tradeReaders, app.DescribedReader{Desc: fname, Reader: fp})
	}

	var writer outfmt.Writer = outfmt.NewSTDWriter(os.Stdout)
	if CsvOutputDir != "" {
		csvWriter, err := outfmt.NewCSVWriter(CsvOutputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		writer = csvWriter
	}

	options := cgt.Options{Rounding: RoundToWholePounds}
	errPrinter := &log.StderrErrorPrinter{}
	if err := app.RunCgtApp(tradeReaders, options, taxYearFilter,
		RenderFullValues, writer, errPrinter); err != nil {
		os.Exit(1)
	}
}

func cmdName() string {
	binName := os.Args[0]
	return filepath.Base(binName)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   cmdName() + " [TRADES_FILE ...]",
	Short: "UK capital gains tax (CGT) calculation tool",
	Long: `A cli tool which computes UK capital gains tax liabilities from
share trades, applying HMRC share identification rules (same day,
bed & breakfast, Section 104 holding) together with fund notional
distributions and equalisation payments.

Each trades file contains one record per line:

  KIND DATE SECURITY PARAM...

where KIND is B/BUY (shares, price, charges[, tax]), S/SELL (shares,
price, charges[, tax]), DIVIDEND (holding, amount) or CAPRETURN
(holding, amount), and DATE is DD/MM/YYYY. Lines starting with '#' are
ignored.`,
	Run:     runRootCmd,
	Args:    cobra.MinimumNArgs(1),
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags, which are global to the app cli
	RootCmd.PersistentFlags().BoolVarP(&log.VerboseEnabled, "verbose", "v", false,
		"Print verbose output")
	RootCmd.PersistentFlags().BoolVar(&RoundToWholePounds, "rounding", true,
		"Round costs and proceeds to whole pounds, as HMRC allows. "+
			"Disable to round to the penny instead.")
	RootCmd.PersistentFlags().StringVarP(&TaxYearOpt, "tax-year", "y", "",
		"Restrict the output to a single tax year, e.g. 2024/2025")
	RootCmd.PersistentFlags().StringVar(&CsvOutputDir, "csv-output-dir", "",
		"Write tables as CSV files into this directory instead of stdout")
	RootCmd.PersistentFlags().BoolVar(&RenderFullValues, "print-full-values", false,
		"Print full decimal values, instead of rounding to pence for display")
}
