package pricing_test

import (
	"testing"

	"tickify/internal/model"
	"tickify/internal/pricing"

	"github.com/stretchr/testify/assert"
)

var catalog = pricing.Catalog{
	1: {Price: 100.0, TransferFeeEnabled: true},
	2: {Price: 50.0, TransferFeeEnabled: false},
	3: {Price: 33.33, TransferFeeEnabled: true},
}

func TestQuote_EmptyItems(t *testing.T) {
	summary := pricing.Quote(nil, catalog, nil, 3)
	assert.Equal(t, pricing.Summary{}, summary)

	summary = pricing.Quote([]pricing.LineItem{}, catalog, nil, 3)
	assert.Equal(t, 0.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.Discount)
	assert.Equal(t, 0.0, summary.AfterDiscount)
	assert.Equal(t, 0.0, summary.Fee)
	assert.Equal(t, 0.0, summary.Total)
}

func TestQuote_NoPromoNoFee(t *testing.T) {
	items := []pricing.LineItem{
		{TicketID: 2, Quantity: 2},
	}

	summary := pricing.Quote(items, catalog, nil, 3)
	assert.Equal(t, 100.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.Discount)
	assert.Equal(t, 100.0, summary.AfterDiscount)
	assert.Equal(t, 0.0, summary.Fee)
	assert.Equal(t, 100.0, summary.Total)
}

func TestQuote_PercentageDiscount(t *testing.T) {
	items := []pricing.LineItem{
		{TicketID: 1, Quantity: 2}, // 200
	}
	promo := &model.AppliedPromo{
		Code:         "TEN",
		DiscountType: model.DiscountTypePercentage,
		Value:        10,
	}

	summary := pricing.Quote(items, catalog, promo, 3)
	assert.Equal(t, 200.0, summary.Subtotal)
	assert.Equal(t, 20.0, summary.Discount)
	assert.Equal(t, 180.0, summary.AfterDiscount)
	assert.Equal(t, 5.4, summary.Fee) // 180 * 3%
	assert.Equal(t, 185.4, summary.Total)
}

func TestQuote_FixedDiscount(t *testing.T) {
	items := []pricing.LineItem{
		{TicketID: 2, Quantity: 1}, // 50
	}
	promo := &model.AppliedPromo{
		Code:         "MINUS20",
		DiscountType: model.DiscountTypeFixed,
		Value:        20,
	}

	summary := pricing.Quote(items, catalog, promo, 3)
	assert.Equal(t, 50.0, summary.Subtotal)
	assert.Equal(t, 20.0, summary.Discount)
	assert.Equal(t, 30.0, summary.AfterDiscount)
	assert.Equal(t, 0.0, summary.Fee)
	assert.Equal(t, 30.0, summary.Total)
}

// 折扣大於小計時 afterDiscount 必須停在 0，不得為負
func TestQuote_DiscountExceedsSubtotal(t *testing.T) {
	items := []pricing.LineItem{
		{TicketID: 2, Quantity: 1}, // 50
	}
	promo := &model.AppliedPromo{
		Code:         "HUGE",
		DiscountType: model.DiscountTypeFixed,
		Value:        80,
	}

	summary := pricing.Quote(items, catalog, promo, 3)
	assert.Equal(t, 50.0, summary.Subtotal)
	assert.Equal(t, 80.0, summary.Discount)
	assert.Equal(t, 0.0, summary.AfterDiscount)
	assert.Equal(t, 0.0, summary.Fee)
	assert.Equal(t, 0.0, summary.Total)
}

// 手續費只看第一個 line item 的轉嫁旗標（沿用既有行為）
func TestQuote_FeeFollowsFirstItemOnly(t *testing.T) {
	feeFirst := []pricing.LineItem{
		{TicketID: 1, Quantity: 1}, // fee enabled
		{TicketID: 2, Quantity: 1}, // fee disabled
	}
	summary := pricing.Quote(feeFirst, catalog, nil, 10)
	assert.Equal(t, 150.0, summary.Subtotal)
	assert.Equal(t, 15.0, summary.Fee)
	assert.Equal(t, 165.0, summary.Total)

	// 同一批票、順序對調：第一項不收手續費 → 整筆不收
	feeSecond := []pricing.LineItem{
		{TicketID: 2, Quantity: 1},
		{TicketID: 1, Quantity: 1},
	}
	summary = pricing.Quote(feeSecond, catalog, nil, 10)
	assert.Equal(t, 150.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.Fee)
	assert.Equal(t, 150.0, summary.Total)
}

// 各欄位由未捨入的中間值各自捨入到小數兩位
func TestQuote_RoundsEachFieldIndependently(t *testing.T) {
	items := []pricing.LineItem{
		{TicketID: 3, Quantity: 3}, // 99.99
	}
	promo := &model.AppliedPromo{
		Code:         "THIRD",
		DiscountType: model.DiscountTypePercentage,
		Value:        33.333,
	}

	summary := pricing.Quote(items, catalog, promo, 3)
	assert.InDelta(t, 99.99, summary.Subtotal, 1e-9)
	// discount = 99.99 * 0.33333 = 33.3296667 → 33.33
	assert.InDelta(t, 33.33, summary.Discount, 1e-9)
	// afterDiscount = 66.6603333 → 66.66
	assert.InDelta(t, 66.66, summary.AfterDiscount, 1e-9)
	// fee = 66.6603333 * 0.03 = 1.99981 → 2.0（以未捨入值計算）
	assert.InDelta(t, 2.0, summary.Fee, 1e-9)
	// total = 66.6603333 + 1.99981 = 68.6601433 → 68.66
	assert.InDelta(t, 68.66, summary.Total, 1e-9)
}

// 未知票種不報錯，以單價 0 參與計算
func TestQuote_UnknownTicketTreatedAsZero(t *testing.T) {
	items := []pricing.LineItem{
		{TicketID: 99, Quantity: 5},
		{TicketID: 2, Quantity: 1},
	}

	summary := pricing.Quote(items, catalog, nil, 3)
	assert.Equal(t, 50.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.Fee) // 第一項未知 → 旗標為 false
	assert.Equal(t, 50.0, summary.Total)
}

// 純函式：相同輸入必得相同輸出
func TestQuote_Deterministic(t *testing.T) {
	items := []pricing.LineItem{
		{TicketID: 1, Quantity: 2},
		{TicketID: 2, Quantity: 3},
	}
	promo := &model.AppliedPromo{
		Code:         "TEN",
		DiscountType: model.DiscountTypePercentage,
		Value:        10,
	}

	first := pricing.Quote(items, catalog, promo, 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, pricing.Quote(items, catalog, promo, 3))
	}
}
