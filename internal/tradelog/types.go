package tradelog

import (
	"time"

	"github.com/moznion/go-optional"
)

// Trade is one closed trade of the normalized log. Every field except
// ProfitMoney may be absent; absent is distinct from zero.
type Trade struct {
	OpenTime  optional.Option[time.Time]
	CloseTime optional.Option[time.Time]

	EntryPrice optional.Option[float64]
	StopLoss   optional.Option[float64]
	TakeProfit optional.Option[float64]
	ExitPrice  optional.Option[float64]
	LotSize    optional.Option[float64]

	ProfitMoney float64
	ProfitPips  optional.Option[float64]
	RMultiple   optional.Option[float64]

	BalanceAfter optional.Option[float64]
	EquityAfter  optional.Option[float64]
}

// IsWin returns true if the trade closed in profit
func (t Trade) IsWin() bool {
	return t.ProfitMoney > 0
}

// IsLoss returns true if the trade closed at a loss
func (t Trade) IsLoss() bool {
	return t.ProfitMoney < 0
}

// LoadStats counts what happened to the source rows during normalization.
type LoadStats struct {
	RowsRead int
	RowsKept int
}

// Dropped is the number of rows rejected for lacking a parseable profit_money.
func (s LoadStats) Dropped() int {
	return s.RowsRead - s.RowsKept
}

// rawRow mirrors the recognized CSV columns. Cells stay strings so that a
// malformed cell degrades to absent instead of failing the decode.
type rawRow struct {
	OpenTime     string `csv:"datetime_open"`
	CloseTime    string `csv:"datetime_close"`
	EntryPrice   string `csv:"entry_price"`
	StopLoss     string `csv:"stop_loss"`
	TakeProfit   string `csv:"take_profit"`
	ExitPrice    string `csv:"exit_price"`
	LotSize      string `csv:"lot_size"`
	ProfitMoney  string `csv:"profit_money"`
	ProfitPips   string `csv:"profit_pips"`
	RMultiple    string `csv:"R_multiple"`
	BalanceAfter string `csv:"balance_after_trade"`
	EquityAfter  string `csv:"equity_after_trade"`
}
