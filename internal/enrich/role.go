package enrich

import (
	"slices"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
)

// ResolveRole picks the role the person holds most often across films.
// Each film contributes one token per credit field naming the person,
// checked as actor, then writer, then director. Ties go to the token seen
// first. Films without an id are skipped; no tokens means no role.
func ResolveRole(fullName string, films []search.MovieDoc) domain.Role {
	roleCounts := make(map[domain.Role]int)
	var seen []domain.Role

	count := func(role domain.Role, names []string) {
		if !slices.Contains(names, fullName) {
			return
		}
		if roleCounts[role] == 0 {
			seen = append(seen, role)
		}
		roleCounts[role]++
	}

	for _, f := range films {
		if f.ID == "" {
			continue
		}
		count(domain.RoleActor, f.ActorsNames)
		count(domain.RoleWriter, f.WritersNames)
		count(domain.RoleDirector, f.Director)
	}

	var best domain.Role
	for _, role := range seen {
		if roleCounts[role] > roleCounts[best] {
			best = role
		}
	}
	return best
}
