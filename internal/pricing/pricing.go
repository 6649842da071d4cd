package pricing

import (
	"math"

	"tickify/internal/model"
)

// LineItem 買家選擇的一個票種 + 數量。同一票種最多一筆，數量至少 1。
type LineItem struct {
	TicketID int
	Quantity int
}

// CatalogTicket 結帳當下的票種資訊（單價、手續費轉嫁旗標）
type CatalogTicket struct {
	Price              float64
	TransferFeeEnabled bool
}

// Catalog ticketID → 票種資訊，由活動明細 payload 提供
type Catalog map[int]CatalogTicket

// Summary 結帳金額摘要。各欄位各自四捨五入到小數兩位，
// 不是用其他已捨入欄位相減推導出來的。
type Summary struct {
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	AfterDiscount float64 `json:"after_discount"`
	Fee           float64 `json:"fee"`
	Total         float64 `json:"total"`
}

// Quote 計算買家應付金額。純函式：無 I/O、無隱藏狀態，相同輸入必得相同輸出。
// promo 必須是後端驗證過的折扣值物件，這裡只消費、不驗證。
//
// 計算順序（沿用既有行為，包含已知的粗糙處）：
//  1. subtotal = Σ price * quantity
//  2. discount：百分比為 subtotal*value/100，固定額為 value
//  3. afterDiscount = max(0, subtotal - discount)
//  4. 手續費是否適用只看「第一個」line item 的 TransferFeeEnabled——
//     來源行為原樣保留，疑似缺陷，見 DESIGN.md
//  5. fee = afterDiscount * feePercentage / 100（適用時）
//  6. total = afterDiscount + fee
func Quote(items []LineItem, catalog Catalog, promo *model.AppliedPromo, feePercentage float64) Summary {
	if len(items) == 0 {
		return Summary{}
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += catalog[item.TicketID].Price * float64(item.Quantity)
	}

	discount := 0.0
	if promo != nil {
		switch promo.DiscountType {
		case model.DiscountTypePercentage:
			discount = subtotal * promo.Value / 100
		case model.DiscountTypeFixed:
			discount = promo.Value
		}
	}

	afterDiscount := subtotal - discount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	fee := 0.0
	if catalog[items[0].TicketID].TransferFeeEnabled {
		fee = afterDiscount * feePercentage / 100
	}

	total := afterDiscount + fee

	return Summary{
		Subtotal:      round2(subtotal),
		Discount:      round2(discount),
		AfterDiscount: round2(afterDiscount),
		Fee:           round2(fee),
		Total:         round2(total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
