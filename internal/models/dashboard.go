package models

// DashboardStats are the owner dashboard counters. JSON keys follow the
// backend's dashboard payload.
type DashboardStats struct {
	TotalSales   int64 `json:"total"`
	Products     int   `json:"product"`
	Categories   int   `json:"categories"`
	Transactions int   `json:"productTransaction"`
	Buyers       int   `json:"buyersCount"`
}
