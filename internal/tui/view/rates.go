package view

import (
	"github.com/dustin/go-humanize"

	tuitheme "github.com/glabrego/urlinfo-cli/internal/tui/theme"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

// FormatAmount renders v with two decimals and thousands separators.
func FormatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func RatesLines(rates urlinfo.Rates, th tuitheme.Theme) []string {
	row := func(label, value string) string {
		return th.MetaLabel.Render(label) + " " + th.Amount.Render(value)
	}
	return []string{
		th.Section.Render("Bitcoin exchange rates"),
		"",
		row("1 BTC in EUR:", FormatAmount(rates.BitcoinEUR)+" €"),
		row("1 EUR in GBP:", FormatAmount(rates.EURToGBP)+" £"),
		row("1 BTC in GBP:", FormatAmount(rates.BitcoinGBP)+" £"),
	}
}
