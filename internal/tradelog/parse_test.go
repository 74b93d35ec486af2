package tradelog

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/newthinker/tradestats/internal/core"
)

// Rows are deliberately out of close-time order and the last row has no
// usable profit.
const sampleCSV = `ticket,datetime_open,datetime_close,entry_price,stop_loss,take_profit,exit_price,lot_size,profit_money,profit_pips,R_multiple,balance_after_trade,equity_after_trade
4,2024-01-04 16:00:00,2024-01-04 17:00:00,1.0950,1.0930,1.0990,1.0990,0.20,80,40,1.25,10100,10100
1,2024-01-02 09:00:00,2024-01-02 11:00:00,1.1000,1.0980,1.1040,1.1025,0.20,50,25,1.0,10050,10050
3,2024-01-03 15:00:00,2024-01-03 16:00:00,1.0960,1.0940,1.1000,1.0955,0.20,-10,-5,-0.25,10020,9976
2,2024-01-03 10:00:00,2024-01-03 11:00:00,1.0990,1.0970,1.1030,1.0980,0.20,-20,-10,-0.5,10030,10000
5,2024-01-05 10:00:00,2024-01-05 11:00:00,1.0900,1.0880,1.0940,1.0910,0.20,n/a,10,,,
`

func TestParse_FiltersAndSorts(t *testing.T) {
	trades, stats, err := Parse([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(trades) != 4 {
		t.Fatalf("expected 4 trades, got %d", len(trades))
	}
	if stats.RowsRead != 5 || stats.RowsKept != 4 || stats.Dropped() != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	wantProfits := []float64{50, -20, -10, 80}
	for i, tr := range trades {
		if tr.ProfitMoney != wantProfits[i] {
			t.Errorf("trade %d profit = %v, want %v", i, tr.ProfitMoney, wantProfits[i])
		}
	}

	for i := 1; i < len(trades); i++ {
		prev, cur := trades[i-1].CloseTime.Unwrap(), trades[i].CloseTime.Unwrap()
		if cur.Before(prev) {
			t.Errorf("trade %d closes before trade %d", i, i-1)
		}
	}
}

func TestParse_FieldValues(t *testing.T) {
	trades, _, err := Parse([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	first := trades[0]
	wantOpen := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	if !first.OpenTime.IsSome() || !first.OpenTime.Unwrap().Equal(wantOpen) {
		t.Errorf("OpenTime = %v, want %v", first.OpenTime, wantOpen)
	}
	if first.EntryPrice.Unwrap() != 1.1 {
		t.Errorf("EntryPrice = %v, want 1.1", first.EntryPrice.Unwrap())
	}
	if first.RMultiple.Unwrap() != 1.0 {
		t.Errorf("RMultiple = %v, want 1.0", first.RMultiple.Unwrap())
	}
	if first.EquityAfter.Unwrap() != 10050 {
		t.Errorf("EquityAfter = %v, want 10050", first.EquityAfter.Unwrap())
	}
}

func TestParse_MalformedFieldBecomesAbsent(t *testing.T) {
	data := []byte("entry_price,profit_money,R_multiple\nabc,12.5,0.5\n")

	trades, _, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("expected row to be retained, got %d trades", len(trades))
	}
	if trades[0].EntryPrice.IsSome() {
		t.Errorf("EntryPrice should be absent, got %v", trades[0].EntryPrice.Unwrap())
	}
	if trades[0].ProfitMoney != 12.5 {
		t.Errorf("ProfitMoney = %v, want 12.5", trades[0].ProfitMoney)
	}
}

func TestParse_MissingColumnsStayAbsent(t *testing.T) {
	data := []byte("profit_money,comment\n10,first\n-5,second\n")

	trades, _, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, tr := range trades {
		if tr.OpenTime.IsSome() || tr.CloseTime.IsSome() {
			t.Errorf("trade %d should have no timestamps", i)
		}
		if tr.RMultiple.IsSome() || tr.EquityAfter.IsSome() {
			t.Errorf("trade %d should have no optional numerics", i)
		}
	}
}

func TestParse_NoCloseTimeKeepsInputOrder(t *testing.T) {
	data := []byte("profit_money\n3\n1\n2\n")

	trades, _, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, want := range []float64{3, 1, 2} {
		if trades[i].ProfitMoney != want {
			t.Errorf("trade %d profit = %v, want %v", i, trades[i].ProfitMoney, want)
		}
	}
}

func TestParse_StableForTiesAndAbsentLast(t *testing.T) {
	data := []byte(`datetime_close,profit_money
2024-01-02 10:00:00,1
,2
2024-01-01 10:00:00,3
2024-01-02 10:00:00,4
garbage,5
`)

	trades, _, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, want := range []float64{3, 1, 4, 2, 5} {
		if trades[i].ProfitMoney != want {
			t.Errorf("trade %d profit = %v, want %v", i, trades[i].ProfitMoney, want)
		}
	}
}

func TestParse_ShortRowKeepsLeadingCells(t *testing.T) {
	data := []byte(`datetime_open,profit_money,equity_after_trade
2024-01-02 09:00:00,10,100
2024-01-03 09:00:00,5
`)

	trades, stats, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(trades) != 2 || stats.Dropped() != 0 {
		t.Fatalf("expected both rows kept, got %d trades, stats %+v", len(trades), stats)
	}
	if trades[1].ProfitMoney != 5 {
		t.Errorf("short row profit = %v, want 5", trades[1].ProfitMoney)
	}
	if trades[1].EquityAfter.IsSome() {
		t.Errorf("short row EquityAfter should be absent, got %v", trades[1].EquityAfter.Unwrap())
	}
	if trades[0].EquityAfter.Unwrap() != 100 {
		t.Errorf("full row EquityAfter = %v, want 100", trades[0].EquityAfter.Unwrap())
	}
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	wantOpen := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		data string
	}{
		{"profit column first", "\ufeffprofit_money,datetime_open\n10,2024-01-02 09:00:00\n"},
		{"open time column first", "\ufeffdatetime_open,profit_money\n2024-01-02 09:00:00,10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades, _, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(trades) != 1 {
				t.Fatalf("expected 1 trade, got %d", len(trades))
			}
			if trades[0].ProfitMoney != 10 {
				t.Errorf("ProfitMoney = %v, want 10", trades[0].ProfitMoney)
			}
			if !trades[0].OpenTime.IsSome() || !trades[0].OpenTime.Unwrap().Equal(wantOpen) {
				t.Errorf("OpenTime = %v, want %v", trades[0].OpenTime, wantOpen)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *core.Error
	}{
		{"blank file", "", core.ErrEmptyInput},
		{"whitespace only", " \n\n", core.ErrEmptyInput},
		{"header only", "datetime_open,profit_money\n", core.ErrEmptyInput},
		{"no parseable profit", "profit_money\nabc\n\n", core.ErrAllRowsInvalid},
		{"missing profit column", "entry_price,R_multiple\n1.1,0.5\n", core.ErrAllRowsInvalid},
		{"bare quote", "profit_money,lot_size\n1\"0,0.1\n", core.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.25", 1.25, true},
		{" -0.5 ", -0.5, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
	}

	for _, tt := range tests {
		got := parseFloat(tt.in)
		if got.IsSome() != tt.ok {
			t.Errorf("parseFloat(%q) present = %v, want %v", tt.in, got.IsSome(), tt.ok)
			continue
		}
		if tt.ok && math.Abs(got.Unwrap()-tt.want) > 1e-12 {
			t.Errorf("parseFloat(%q) = %v, want %v", tt.in, got.Unwrap(), tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-03-05 14:30:00",
		"2024-03-05T14:30:00",
		"2024-03-05T14:30:00Z",
		"2024.03.05 14:30:00",
		"2024.03.05 14:30",
		"2024-03-05 14:30",
	} {
		got := parseTime(in)
		if !got.IsSome() || !got.Unwrap().Equal(want) {
			t.Errorf("parseTime(%q) = %v, want %v", in, got, want)
		}
	}

	if parseTime("yesterday").IsSome() {
		t.Error("unparseable timestamp should be absent")
	}
}

func TestTrade_IsWinIsLoss(t *testing.T) {
	tests := []struct {
		name     string
		trade    Trade
		win, los bool
	}{
		{"positive profit", Trade{ProfitMoney: 5}, true, false},
		{"negative profit", Trade{ProfitMoney: -2}, false, true},
		{"zero profit", Trade{ProfitMoney: 0}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trade.IsWin(); got != tt.win {
				t.Errorf("IsWin() = %v, want %v", got, tt.win)
			}
			if got := tt.trade.IsLoss(); got != tt.los {
				t.Errorf("IsLoss() = %v, want %v", got, tt.los)
			}
		})
	}
}
