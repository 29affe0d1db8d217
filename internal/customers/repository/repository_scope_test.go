package repository

import (
	"strings"
	"testing"
)

func TestCustomerQueriesAreTenantScoped(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"stats", customerStatsQuery},
		{"list", listCustomersQuery},
		{"timeline", timelineQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !strings.Contains(strings.ToLower(tc.query), "organization_id = $1") {
				t.Fatalf("query %s is not tenant-scoped", tc.name)
			}
		})
	}
}

func TestStatsAggregatesSplitWinAndPipelineValue(t *testing.T) {
	for _, fragment := range []string{
		"SUM(sale_price) FILTER (WHERE status = 'win')",
		"SUM(deal_size) FILTER (WHERE status = 'not_today')",
		"MIN(created_at) AS first_visit",
		"MAX(created_at) AS latest_visit",
		"ORDER BY created_at DESC",
	} {
		if !strings.Contains(statsSelect, fragment) {
			t.Errorf("stats select missing fragment %q", fragment)
		}
	}
}

func TestTimelineOrdersNewestFirst(t *testing.T) {
	if !strings.Contains(timelineQuery, "ORDER BY l.created_at DESC") {
		t.Fatal("timeline must be ordered newest first")
	}
}
