package stats

import (
	"time"

	"github.com/moznion/go-optional"
)

// Metrics holds the performance statistics of one trade log. Optional
// fields are None when the input carries no data to compute them from.
type Metrics struct {
	TotalTrades     int
	WinningTrades   int
	LosingTrades    int
	BreakevenTrades int     // Zero profit, neither winner nor loser
	WinRate         float64 // Percentage of trades with positive profit

	TotalProfitMoney float64
	TotalProfitR     optional.Option[float64]
	AvgRWinners      optional.Option[float64]
	AvgRLosers       optional.Option[float64]

	MaxConsecutiveLosses int

	// Largest peak-to-trough decline as a negative percentage of the peak
	MaxDrawdownPct        optional.Option[float64]
	MaxBalanceDrawdownPct optional.Option[float64]

	WeekdayCounts []WeekdayCount // Monday first, only days that occur
	HourCounts    []HourCount    // Ascending, only hours that occur
}

// WeekdayCount is the number of trades opened on Day.
type WeekdayCount struct {
	Day   time.Weekday
	Count int
}

// HourCount is the number of trades opened during Hour (0-23).
type HourCount struct {
	Hour  int
	Count int
}
