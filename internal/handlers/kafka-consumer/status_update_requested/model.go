package status_update_requested

// statusUpdateRequested сообщение из топика запросов смены статуса.
type statusUpdateRequested struct {
	OrderID   string `json:"order_id"`
	NewStatus string `json:"new_status"`
	Source    string `json:"source"`
}
