package domain

// Tier is the authorization level the client derives UI affordances from.
type Tier string

const (
	TierAdmin Tier = "admin"
	TierUser  Tier = "user"
	TierGuest Tier = "guest"
)

// Seeded role ids; the seeder guarantees these two rows exist.
const (
	RoleAdminID uint = 1
	RoleUserID  uint = 2
)

const RoleUserName = "User"

// ResolveTier maps a role id from a verified token to a tier. Unknown or
// absent roles fall through to guest.
func ResolveTier(roleID uint) Tier {
	switch roleID {
	case RoleAdminID:
		return TierAdmin
	case RoleUserID:
		return TierUser
	default:
		return TierGuest
	}
}
