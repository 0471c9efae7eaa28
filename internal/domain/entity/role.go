// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the fleet platform.
type Role string

const (
	// RoleCustomer indicates a passenger booking rides.
	RoleCustomer Role = "customer"
	// RoleDriver indicates a vehicle driver.
	RoleDriver Role = "driver"
	// RoleAdmin indicates a fleet administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleAdmin:
		return true
	default:
		return false
	}
}
