package status_history

import "time"

type StatusEventDB struct {
	ID        int64
	OrderID   string
	Status    string
	Source    string
	Timestamp time.Time
}
