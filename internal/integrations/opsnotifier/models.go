package opsnotifier

// GenerationAlert итог генерации слотов, в котором часть пакетов не вставилась
type GenerationAlert struct {
	StartDate string
	EndDate   string
	CourseID  string // пусто для слотов без курса
	Created   int
	Skipped   int
	Warnings  []string
	Failed    bool // ни один пакет не вставлен
}

// RefundAlert возврат, отклоненный или не дошедший до платежного шлюза
type RefundAlert struct {
	BookingNumber string
	RefundID      string
	Amount        int64
	Reason        string
}
