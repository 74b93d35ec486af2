package tradelog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/moznion/go-optional"
	"github.com/newthinker/tradestats/internal/core"
)

// utf8BOM is prepended by spreadsheet re-saves of the log.
var utf8BOM = []byte("\xef\xbb\xbf")

// timeLayouts are tried in order. The MetaTrader layouts cover what
// TimeToString writes from an expert advisor.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse turns CSV content into trades ordered by close time. Rows without a
// parseable profit_money are dropped; any other malformed cell becomes absent.
func Parse(data []byte) ([]Trade, LoadStats, error) {
	var stats LoadStats

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, stats, core.ErrEmptyInput
	}

	// Short rows keep their leading cells; the missing ones decode as "".
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var rows []rawRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, stats, core.WrapError(core.ErrMalformedInput, err)
	}
	stats.RowsRead = len(rows)
	if len(rows) == 0 {
		return nil, stats, core.ErrEmptyInput
	}

	trades := make([]Trade, 0, len(rows))
	for _, r := range rows {
		t, ok := r.toTrade()
		if !ok {
			continue
		}
		trades = append(trades, t)
	}
	stats.RowsKept = len(trades)

	if len(trades) == 0 {
		return nil, stats, core.WrapError(core.ErrAllRowsInvalid,
			fmt.Errorf("%d rows dropped", stats.RowsRead))
	}

	SortByCloseTime(trades)
	return trades, stats, nil
}

// SortByCloseTime orders trades by close time, ascending and stable. Trades
// without a close time go last in their original order.
func SortByCloseTime(trades []Trade) {
	slices.SortStableFunc(trades, func(a, b Trade) int {
		switch {
		case a.CloseTime.IsNone() && b.CloseTime.IsNone():
			return 0
		case a.CloseTime.IsNone():
			return 1
		case b.CloseTime.IsNone():
			return -1
		}
		return a.CloseTime.Unwrap().Compare(b.CloseTime.Unwrap())
	})
}

func (r rawRow) toTrade() (Trade, bool) {
	profit := parseFloat(r.ProfitMoney)
	if profit.IsNone() {
		return Trade{}, false
	}

	return Trade{
		OpenTime:     parseTime(r.OpenTime),
		CloseTime:    parseTime(r.CloseTime),
		EntryPrice:   parseFloat(r.EntryPrice),
		StopLoss:     parseFloat(r.StopLoss),
		TakeProfit:   parseFloat(r.TakeProfit),
		ExitPrice:    parseFloat(r.ExitPrice),
		LotSize:      parseFloat(r.LotSize),
		ProfitMoney:  profit.Unwrap(),
		ProfitPips:   parseFloat(r.ProfitPips),
		RMultiple:    parseFloat(r.RMultiple),
		BalanceAfter: parseFloat(r.BalanceAfter),
		EquityAfter:  parseFloat(r.EquityAfter),
	}, true
}

// parseFloat coerces a cell; empty, malformed and non-finite values are absent.
func parseFloat(s string) optional.Option[float64] {
	s = strings.TrimSpace(s)
	if s == "" {
		return optional.None[float64]()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return optional.None[float64]()
	}
	return optional.Some(v)
}

func parseTime(s string) optional.Option[time.Time] {
	s = strings.TrimSpace(s)
	if s == "" {
		return optional.None[time.Time]()
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return optional.Some(t)
		}
	}
	return optional.None[time.Time]()
}
