package change_slot_status

// SuspendRequest HTTP request model
type SuspendRequest struct {
	Reason string `json:"reason"`
}
