package repository

import (
	"strings"
	"testing"
)

func TestListByOrganizationQueryIsTenantScoped(t *testing.T) {
	query := strings.ToLower(listByOrganizationQuery)

	requiredFragments := []string{
		"from leads l",
		"where l.organization_id = $1",
		"order by l.created_at desc",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected tenant-scoped query fragment %q to be present", fragment)
		}
	}
}

func TestListByOrganizationQueryResolvesLabelFallbacks(t *testing.T) {
	query := listByOrganizationQuery

	for _, fragment := range []string{
		"COALESCE(c.name, 'Unknown')",
		"COALESCE(u.name, 'Unknown')",
		"CASE WHEN l.status = 'win' THEN 'N/A' ELSE 'Unknown' END",
	} {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected label fallback fragment %q to be present", fragment)
		}
	}
}
