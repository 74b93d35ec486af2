package stats

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/newthinker/tradestats/internal/tradelog"
	"github.com/shopspring/decimal"
)

// Calculate computes performance statistics from trades ordered by close
// time. It never fails; metrics without input data are None.
func Calculate(trades []tradelog.Trade) Metrics {
	m := Metrics{
		TotalTrades:   len(trades),
		TotalProfitR:  optional.None[float64](),
		AvgRWinners:   optional.Some(0.0),
		AvgRLosers:    optional.Some(0.0),
		WeekdayCounts: []WeekdayCount{},
		HourCounts:    []HourCount{},
	}
	if len(trades) == 0 {
		m.MaxDrawdownPct = optional.None[float64]()
		m.MaxBalanceDrawdownPct = optional.None[float64]()
		return m
	}

	totalMoney := decimal.Zero
	totalR := decimal.Zero
	var haveR bool
	var winners, losers []tradelog.Trade

	for _, t := range trades {
		totalMoney = totalMoney.Add(decimal.NewFromFloat(t.ProfitMoney))
		if t.RMultiple.IsSome() {
			totalR = totalR.Add(decimal.NewFromFloat(t.RMultiple.Unwrap()))
			haveR = true
		}
		switch {
		case t.IsWin():
			winners = append(winners, t)
		case t.IsLoss():
			losers = append(losers, t)
		default:
			m.BreakevenTrades++
		}
	}

	m.WinningTrades = len(winners)
	m.LosingTrades = len(losers)
	m.WinRate = float64(len(winners)) / float64(len(trades)) * 100
	m.TotalProfitMoney = totalMoney.InexactFloat64()
	if haveR {
		m.TotalProfitR = optional.Some(totalR.InexactFloat64())
	}
	if len(winners) > 0 {
		m.AvgRWinners = meanR(winners)
	}
	if len(losers) > 0 {
		m.AvgRLosers = meanR(losers)
	}

	m.MaxConsecutiveLosses = maxConsecutiveLosses(trades)
	m.MaxDrawdownPct = maxDrawdownPct(series(trades, func(t tradelog.Trade) optional.Option[float64] {
		return t.EquityAfter
	}))
	m.MaxBalanceDrawdownPct = maxDrawdownPct(series(trades, func(t tradelog.Trade) optional.Option[float64] {
		return t.BalanceAfter
	}))
	m.WeekdayCounts, m.HourCounts = timeDistribution(trades)

	return m
}

// meanR averages the R multiples present in group. None when no trade of
// the group carries one.
func meanR(group []tradelog.Trade) optional.Option[float64] {
	sum := decimal.Zero
	var n int64
	for _, t := range group {
		if t.RMultiple.IsNone() {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(t.RMultiple.Unwrap()))
		n++
	}
	if n == 0 {
		return optional.None[float64]()
	}
	return optional.Some(sum.Div(decimal.NewFromInt(n)).InexactFloat64())
}

// maxConsecutiveLosses finds the longest run of losing trades. Break-even
// trades end a run.
func maxConsecutiveLosses(trades []tradelog.Trade) int {
	var streak, maxStreak int
	for _, t := range trades {
		if t.IsLoss() {
			streak++
		} else {
			maxStreak = max(maxStreak, streak)
			streak = 0
		}
	}
	return max(maxStreak, streak)
}

func series(trades []tradelog.Trade, field func(tradelog.Trade) optional.Option[float64]) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(trades))
	for i, t := range trades {
		out[i] = field(t)
	}
	return out
}

// maxDrawdownPct finds the largest peak-to-trough decline of an account
// series, carrying the last known value over gaps. Points whose running
// peak is not positive are skipped.
func maxDrawdownPct(values []optional.Option[float64]) optional.Option[float64] {
	var last, peak float64
	var seen, computed bool
	var worst float64

	for _, v := range values {
		if v.IsSome() {
			last = v.Unwrap()
			if !seen || last > peak {
				peak = last
			}
			seen = true
		}
		if !seen || peak <= 0 {
			continue
		}
		dd := (last - peak) / peak
		if !computed || dd < worst {
			worst = dd
		}
		computed = true
	}

	if !computed {
		return optional.None[float64]()
	}
	return optional.Some(worst * 100)
}

// timeDistribution counts trades by opening weekday and hour.
func timeDistribution(trades []tradelog.Trade) ([]WeekdayCount, []HourCount) {
	var days [7]int
	var hours [24]int
	for _, t := range trades {
		if t.OpenTime.IsNone() {
			continue
		}
		open := t.OpenTime.Unwrap()
		days[open.Weekday()]++
		hours[open.Hour()]++
	}

	weekdays := []WeekdayCount{}
	for i := 0; i < 7; i++ {
		day := time.Weekday((i + 1) % 7) // Monday first
		if days[day] > 0 {
			weekdays = append(weekdays, WeekdayCount{Day: day, Count: days[day]})
		}
	}

	byHour := []HourCount{}
	for h, n := range hours {
		if n > 0 {
			byHour = append(byHour, HourCount{Hour: h, Count: n})
		}
	}

	return weekdays, byHour
}
