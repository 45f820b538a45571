package entity

// Roles válidos en el claim role del token.
const (
	RoleAdmin      = "admin"
	RoleBodeguero  = "bodeguero"
	RoleTechnician = "tecnico"
)
