package models

// Role labels carried on the user record and inside issued tokens.
const (
	RoleUser          = "user"
	RoleAdministrator = "administrator"
)

func ValidRole(name string) bool {
	return name == RoleUser || name == RoleAdministrator
}
