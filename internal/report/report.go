// Package report formats computed metrics. It never derives a statistic of
// its own; every value comes from stats.Metrics.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/newthinker/tradestats/internal/config"
	"github.com/newthinker/tradestats/internal/core"
	"github.com/newthinker/tradestats/internal/stats"
	"gopkg.in/yaml.v3"
)

// NotAvailable marks a metric that could not be computed.
const NotAvailable = "n/a"

// Render writes m to w in the given format.
func Render(w io.Writer, format string, m stats.Metrics, title string) error {
	switch format {
	case config.FormatText, "":
		return Text(w, m, title)
	case config.FormatYAML:
		return YAML(w, m)
	case config.FormatJSON:
		return JSON(w, m)
	default:
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown report format %q", format))
	}
}

// Text writes the human-readable summary.
func Text(w io.Writer, m stats.Metrics, title string) error {
	var b strings.Builder

	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Total trades: %d\n", m.TotalTrades)
	fmt.Fprintf(&b, "Winners / losers / break-even: %d / %d / %d\n",
		m.WinningTrades, m.LosingTrades, m.BreakevenTrades)
	fmt.Fprintf(&b, "Win rate: %.2f %%\n", m.WinRate)
	fmt.Fprintf(&b, "Total profit (money): %.2f\n", m.TotalProfitMoney)
	fmt.Fprintf(&b, "Total profit (R): %s\n", formatFloat(m.TotalProfitR, ""))
	fmt.Fprintf(&b, "Average R (winners): %s\n", formatFloat(m.AvgRWinners, ""))
	fmt.Fprintf(&b, "Average R (losers): %s\n", formatFloat(m.AvgRLosers, ""))
	fmt.Fprintf(&b, "Max consecutive losses: %d\n", m.MaxConsecutiveLosses)
	fmt.Fprintf(&b, "Max equity drawdown: %s\n", formatFloat(m.MaxDrawdownPct, " %"))
	fmt.Fprintf(&b, "Max balance drawdown: %s\n", formatFloat(m.MaxBalanceDrawdownPct, " %"))

	if len(m.WeekdayCounts) > 0 {
		fmt.Fprintln(&b, "\nTrades by weekday:")
		for _, d := range m.WeekdayCounts {
			fmt.Fprintf(&b, "  %s: %d\n", d.Day, d.Count)
		}
	}

	if len(m.HourCounts) > 0 {
		fmt.Fprintln(&b, "\nTrades by entry hour:")
		for _, h := range m.HourCounts {
			fmt.Fprintf(&b, "  %02d:00 – %d\n", h.Hour, h.Count)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// YAML writes the metrics as a YAML document.
func YAML(w io.Writer, m stats.Metrics) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newSummary(m)); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}

// JSON writes the metrics as an indented JSON object.
func JSON(w io.Writer, m stats.Metrics) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newSummary(m)); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

func formatFloat(v optional.Option[float64], unit string) string {
	if v.IsNone() {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%s", v.Unwrap(), unit)
}
