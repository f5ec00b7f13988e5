package delete_reservation

// Request модель запроса на удаление бронирования (оператор)
type Request struct {
	ReservationID string
	ActorID       string
}
