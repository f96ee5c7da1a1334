package authz

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// NormalizeRole maps an empty role to the default and reports whether the
// result is one of the known roles.
func NormalizeRole(role string) (string, bool) {
	switch role {
	case "":
		return RoleUser, true
	case RoleUser, RoleAdmin:
		return role, true
	}
	return role, false
}

