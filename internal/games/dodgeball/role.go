package dodgeball

import "github.com/vovakirdan/tui-dodgeball/internal/link"

// Role is the side a node is simulating.
type Role int

const (
	RoleNone Role = iota
	RoleAttack
	RoleDefend
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleAttack:
		return "attack"
	case RoleDefend:
		return "defend"
	default:
		return "unknown"
	}
}

// Opposite returns the role of the other node. RoleNone has no opposite.
func (r Role) Opposite() Role {
	switch r {
	case RoleAttack:
		return RoleDefend
	case RoleDefend:
		return RoleAttack
	default:
		return RoleNone
	}
}

// RoleForSide maps a side letter to the role it selects.
func RoleForSide(side byte) Role {
	if side == link.SideDefend {
		return RoleDefend
	}
	return RoleAttack
}
