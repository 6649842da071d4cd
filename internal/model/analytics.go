package model

// AdminSummary 管理後台儀表板的彙總數字
type AdminSummary struct {
	TotalUsers      int     `json:"total_users"`
	TotalEvents     int     `json:"total_events"`
	TotalOrders     int     `json:"total_orders"`
	ConfirmedOrders int     `json:"confirmed_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// EventSalesSummary 單一活動的銷售彙總
type EventSalesSummary struct {
	EventID      int     `json:"event_id"`
	TotalOrders  int     `json:"total_orders"`
	TicketsSold  int     `json:"tickets_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}
