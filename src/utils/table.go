package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/option-screener/src/models"
)

var printer = message.NewPrinter(language.English)

func formatDollars(v float64) string {
	return fmt.Sprintf("$%s", printer.Sprintf("%.2f", v))
}

func formatOptional(v *float64, format string) string {
	if v == nil {
		return "-"
	}

	return printer.Sprintf(format, *v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func formatCheck(ok bool) string {
	if ok {
		return "yes"
	}

	return "no"
}

// RenderScreeningTable writes a human readable report of result to w.
func RenderScreeningTable(result *models.ScreeningResult, w io.Writer) {
	header := fmt.Sprintf("%s %s", result.Ticker, result.Strategy)
	if result.Spot != nil {
		header += fmt.Sprintf(" | spot %s", formatDollars(*result.Spot))
	}

	fmt.Fprintf(w, "%s | expirations: %s\n", header, strings.Join(result.Expirations, ", "))

	if result.Empty {
		fmt.Fprintln(w, result.Message)

		for _, s := range result.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s.Text)
		}

		return
	}

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	if result.Strategy.IsSpread() {
		renderSpreads(table, result.Spreads)
	} else {
		renderContracts(table, result.Contracts)
	}

	table.Render()

	summary := result.Summary
	fmt.Fprintf(w, "evaluated %d, passed %d, shown %d\n", summary.Evaluated, summary.Passed, summary.Returned)
}

func renderContracts(table *tablewriter.Table, contracts []models.EvaluatedContract) {
	table.SetHeader([]string{"Expiration", "Strike", "Bid", "Ask", "Mid", "Src", "Spread", "IV", "|Delta|", "Assign", "DTE", "Capital", "Return", "Annual", "Vol", "OI", "OK"})

	for _, c := range contracts {
		table.Append([]string{
			c.Expiration,
			printer.Sprintf("%.2f", c.Strike),
			formatOptional(c.BidDisplay, "%.2f"),
			formatOptional(c.AskDisplay, "%.2f"),
			formatOptional(c.Mid, "%.2f"),
			string(c.PriceSource),
			formatOptional(c.Spread, "%.2f"),
			formatOptional(c.IV, "%.3f"),
			formatOptional(c.AbsDelta, "%.3f"),
			formatOptional(c.AssignmentProbability, "%.3f"),
			fmt.Sprintf("%d", c.DaysToExpiration),
			formatDollars(c.CapitalAtRisk),
			formatPercent(c.SingleReturn),
			formatPercent(c.AnnualizedReturn),
			printer.Sprintf("%d", c.Volume),
			printer.Sprintf("%d", c.OpenInterest),
			formatCheck(c.OKAll),
		})
	}
}

func renderSpreads(table *tablewriter.Table, spreads []models.WingedSpread) {
	table.SetHeader([]string{"Expiration", "Long P", "Short P", "Short C", "Long C", "Width", "P Wing", "C Wing", "Credit", "Max Loss", "BE Low", "BE High", "RoR", "Annual RoR", "Liquid"})

	for _, s := range spreads {
		table.Append([]string{
			s.Expiration,
			printer.Sprintf("%.2f", s.LongPut.Strike),
			printer.Sprintf("%.2f", s.ShortPut.Strike),
			printer.Sprintf("%.2f", s.ShortCall.Strike),
			printer.Sprintf("%.2f", s.LongCall.Strike),
			printer.Sprintf("%.2f", s.WingWidth),
			printer.Sprintf("%.2f", s.PutWingWidth),
			printer.Sprintf("%.2f", s.CallWingWidth),
			formatDollars(s.NetCredit),
			formatDollars(s.CapitalAtRisk),
			printer.Sprintf("%.2f", s.BreakevenLow),
			printer.Sprintf("%.2f", s.BreakevenHigh),
			formatPercent(s.ReturnOnRisk),
			formatPercent(s.AnnualizedReturnOnRisk),
			formatCheck(s.LiquidityOK),
		})
	}
}
