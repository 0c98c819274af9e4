// Package access decides whether a subscription plan may use a calculation
// module. Pure lookups, no side effects.
package access

import "fmt"

type Tier int

const (
	Free Tier = iota
	Pro
)

func (t Tier) String() string {
	if t == Pro {
		return "pro"
	}
	return "free"
}

// Name is the plan name shown to users.
func (t Tier) Name() string {
	if t == Pro {
		return "Profissional"
	}
	return "Gratuito"
}

func ParseTier(s string) (Tier, error) {
	switch s {
	case "free":
		return Free, nil
	case "pro":
		return Pro, nil
	}
	return Free, fmt.Errorf("unknown tier %q", s)
}

type Module string

const (
	Structural  Module = "structural"
	Concrete    Module = "concrete"
	Hydraulics  Module = "hydraulics"
	Foundations Module = "foundations"
	Topography  Module = "topography"
)

// Structural and hydraulics are the free teasers; everything else needs Pro.
var required = map[Module]Tier{
	Structural:  Free,
	Hydraulics:  Free,
	Concrete:    Pro,
	Foundations: Pro,
	Topography:  Pro,
}

// Required returns the minimum tier for a module. ok is false for unknown
// module names.
func Required(m Module) (Tier, bool) {
	t, ok := required[m]
	return t, ok
}

// CanAccess reports whether a plan covers a module. Unknown modules are
// never accessible.
func CanAccess(t Tier, m Module) bool {
	req, ok := required[m]
	return ok && t >= req
}

// DeniedMessage names the plan the module requires.
func DeniedMessage(m Module) string {
	req, ok := required[m]
	if !ok {
		return "Módulo desconhecido."
	}
	return fmt.Sprintf("Este módulo está disponível apenas no plano %s. Faça upgrade para continuar.", req.Name())
}
