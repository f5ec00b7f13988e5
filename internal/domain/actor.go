package domain

// Role роль вызывающего
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Actor кто выполняет операцию (X-User-ID и X-User-Role)
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin returns true for operators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess клиент видит только свои бронирования, оператор любые
func (a Actor) CanAccess(res *Reservation) bool {
	return a.IsAdmin() || res.IsOwnedBy(a.ID)
}
