package authz

import (
	"strings"

	"resto-dashboard/internal/dto"
)

// Gatekeeper остается пустым, это просто "контейнер" для методов
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Flatten собирает коды прав и включённые фичефлаги в одну карту.
// Флаги кладутся с префиксом "feature:".
func Flatten(p *dto.PermissionsDTO) map[string]bool {
	perms := make(map[string]bool)
	if p == nil {
		return perms
	}
	for _, code := range p.Codes {
		perms[code] = true
	}
	for name, enabled := range p.Features {
		if enabled {
			perms[FeaturePrefix+name] = true
		}
	}
	return perms
}

// CanAny - хватает одного из кодов. Superuser и роль root проходят всегда.
func (g *Gatekeeper) CanAny(perms map[string]bool, me *dto.MeDTO, codes ...string) bool {
	// Этап 1: Проверка на Superuser
	if perms[Superuser] || me.HasRole(dto.RoleRoot) {
		return true
	}

	// Этап 2: Любой из кодов. Фичефлаги уже лежат в карте как "feature:<имя>".
	for _, code := range codes {
		if perms[strings.TrimSpace(code)] {
			return true
		}
	}
	return false
}
