package report

import (
	"github.com/moznion/go-optional"
	"github.com/newthinker/tradestats/internal/stats"
)

// summary is the serialized shape of stats.Metrics. Metrics that could not
// be computed encode as null.
type summary struct {
	TotalTrades           int            `yaml:"total_trades" json:"total_trades"`
	WinningTrades         int            `yaml:"winning_trades" json:"winning_trades"`
	LosingTrades          int            `yaml:"losing_trades" json:"losing_trades"`
	BreakevenTrades       int            `yaml:"breakeven_trades" json:"breakeven_trades"`
	WinRate               float64        `yaml:"win_rate" json:"win_rate"`
	TotalProfitMoney      float64        `yaml:"total_profit_money" json:"total_profit_money"`
	TotalProfitR          *float64       `yaml:"total_profit_r" json:"total_profit_r"`
	AvgRWinners           *float64       `yaml:"avg_r_winners" json:"avg_r_winners"`
	AvgRLosers            *float64       `yaml:"avg_r_losers" json:"avg_r_losers"`
	MaxConsecutiveLosses  int            `yaml:"max_consecutive_losses" json:"max_consecutive_losses"`
	MaxDrawdownPct        *float64       `yaml:"max_drawdown_pct" json:"max_drawdown_pct"`
	MaxBalanceDrawdownPct *float64       `yaml:"max_balance_drawdown_pct" json:"max_balance_drawdown_pct"`
	WeekdayCounts         []weekdayEntry `yaml:"weekday_counts" json:"weekday_counts"`
	HourCounts            []hourEntry    `yaml:"hour_counts" json:"hour_counts"`
}

type weekdayEntry struct {
	Day   string `yaml:"day" json:"day"`
	Count int    `yaml:"count" json:"count"`
}

type hourEntry struct {
	Hour  int `yaml:"hour" json:"hour"`
	Count int `yaml:"count" json:"count"`
}

func newSummary(m stats.Metrics) summary {
	s := summary{
		TotalTrades:           m.TotalTrades,
		WinningTrades:         m.WinningTrades,
		LosingTrades:          m.LosingTrades,
		BreakevenTrades:       m.BreakevenTrades,
		WinRate:               m.WinRate,
		TotalProfitMoney:      m.TotalProfitMoney,
		TotalProfitR:          ptr(m.TotalProfitR),
		AvgRWinners:           ptr(m.AvgRWinners),
		AvgRLosers:            ptr(m.AvgRLosers),
		MaxConsecutiveLosses:  m.MaxConsecutiveLosses,
		MaxDrawdownPct:        ptr(m.MaxDrawdownPct),
		MaxBalanceDrawdownPct: ptr(m.MaxBalanceDrawdownPct),
		WeekdayCounts:         make([]weekdayEntry, 0, len(m.WeekdayCounts)),
		HourCounts:            make([]hourEntry, 0, len(m.HourCounts)),
	}
	for _, d := range m.WeekdayCounts {
		s.WeekdayCounts = append(s.WeekdayCounts, weekdayEntry{Day: d.Day.String(), Count: d.Count})
	}
	for _, h := range m.HourCounts {
		s.HourCounts = append(s.HourCounts, hourEntry{Hour: h.Hour, Count: h.Count})
	}
	return s
}

func ptr(v optional.Option[float64]) *float64 {
	if v.IsNone() {
		return nil
	}
	f := v.Unwrap()
	return &f
}
