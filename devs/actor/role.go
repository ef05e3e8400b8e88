package actor

import (
	"fmt"
	"strings"
)

// Role is the behavioural archetype assigned to a component.
type Role string

const (
	RoleSensor     Role = "sensor"
	RoleActuator   Role = "actuator"
	RoleController Role = "controller"
	RoleInterface  Role = "interface"
	RoleGeneric    Role = "generic"
)

// validRoles maps accepted role names.
var validRoles = map[Role]bool{
	RoleSensor:     true,
	RoleActuator:   true,
	RoleController: true,
	RoleInterface:  true,
	RoleGeneric:    true,
}

// IsValidRole reports whether name is one of the five roles.
func IsValidRole(name string) bool {
	return validRoles[Role(name)]
}

// ParseRole converts a role name to a Role.
func ParseRole(name string) (Role, error) {
	if !IsValidRole(name) {
		return "", fmt.Errorf("unknown role %q; valid: sensor, actuator, controller, interface, generic", name)
	}
	return Role(name), nil
}

// Title returns the role name with its first letter upper-cased.
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}
