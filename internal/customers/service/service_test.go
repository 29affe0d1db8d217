package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/customers/repository"
	"leadtrack_backend/internal/customers/transport"
	"leadtrack_backend/internal/rbac"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/phone"
)

// visit is a raw lead row the fake aggregates over, the way the SQL
// aggregation does in production.
type visit struct {
	orgID     uuid.UUID
	phone     string
	name      string
	status    string
	salePrice int64
	dealSize  int64
	createdAt time.Time
}

type fakeRepo struct {
	visits []visit
}

func (f *fakeRepo) group(orgID uuid.UUID, p string) []visit {
	var out []visit
	for _, v := range f.visits {
		if v.orgID == orgID && v.phone == p {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].createdAt.After(out[j].createdAt) })
	return out
}

func (f *fakeRepo) statsOf(group []visit) repository.CustomerStats {
	s := repository.CustomerStats{Phone: group[0].phone}
	s.FirstVisit = group[len(group)-1].createdAt
	s.LatestVisit = group[0].createdAt
	for _, v := range group {
		s.LeadCount++
		switch v.status {
		case "win":
			s.WinCount++
			s.TotalValue += v.salePrice
		case "not_today":
			s.LostCount++
			s.PipelineValue += v.dealSize
		}
		if s.DisplayName == "" && v.name != "" {
			s.DisplayName = v.name
		}
	}
	return s
}

func (f *fakeRepo) Stats(_ context.Context, orgID uuid.UUID, p string) (repository.CustomerStats, error) {
	group := f.group(orgID, p)
	if len(group) == 0 {
		return repository.CustomerStats{}, repository.ErrNoHistory
	}
	return f.statsOf(group), nil
}

func (f *fakeRepo) List(_ context.Context, orgID uuid.UUID) ([]repository.CustomerStats, error) {
	seen := map[string]bool{}
	var out []repository.CustomerStats
	for _, v := range f.visits {
		if v.orgID != orgID || seen[v.phone] {
			continue
		}
		seen[v.phone] = true
		out = append(out, f.statsOf(f.group(orgID, v.phone)))
	}
	return out, nil
}

func (f *fakeRepo) Timeline(_ context.Context, orgID uuid.UUID, p string) ([]repository.TimelineEntry, error) {
	var out []repository.TimelineEntry
	for _, v := range f.group(orgID, p) {
		out = append(out, repository.TimelineEntry{
			LeadID:       uuid.New(),
			CustomerName: v.name,
			Status:       v.status,
			CategoryName: "Unknown",
			CreatedAt:    v.createdAt,
		})
	}
	return out, nil
}

func TestProfileAggregatesWinAndPipelineSeparately(t *testing.T) {
	orgID := uuid.New()
	base := time.Now().Add(-72 * time.Hour)
	repo := &fakeRepo{visits: []visit{
		{orgID: orgID, phone: "9999999999", name: "Asha", status: "win", salePrice: 50000, createdAt: base},
		{orgID: orgID, phone: "9999999999", name: "Asha Verma", status: "not_today", dealSize: 80000, createdAt: base.Add(24 * time.Hour)},
		{orgID: orgID, phone: "9999999999", name: "", status: "open", createdAt: base.Add(48 * time.Hour)},
	}}
	svc := NewService(repo)
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), orgID)

	profile, err := svc.Profile(context.Background(), actor, "99999 99999")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	c := profile.Customer
	if c.LeadCount != 3 || c.WinCount != 1 || c.LostCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/1/1", c.LeadCount, c.WinCount, c.LostCount)
	}
	if c.TotalValue != 50000 {
		t.Errorf("TotalValue = %d, want 50000", c.TotalValue)
	}
	if c.PipelineValue != 80000 {
		t.Errorf("PipelineValue = %d, want 80000", c.PipelineValue)
	}
	if !c.IsRepeat {
		t.Error("three visits must mark the customer as repeat")
	}
	// Display name comes from the most recent non-empty name.
	if c.DisplayName != "Asha Verma" {
		t.Errorf("DisplayName = %q, want %q", c.DisplayName, "Asha Verma")
	}
	if len(profile.Timeline) != 3 {
		t.Fatalf("timeline length = %d, want 3", len(profile.Timeline))
	}
	if !profile.Timeline[0].CreatedAt.After(profile.Timeline[2].CreatedAt) {
		t.Error("timeline must be ordered newest first")
	}
}

func TestProfileUnknownCustomerNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{})
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), uuid.New())

	_, err := svc.Profile(context.Background(), actor, "9999999999")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSinglePurchaseRoundTrip(t *testing.T) {
	orgID := uuid.New()
	repo := &fakeRepo{visits: []visit{
		{orgID: orgID, phone: phone.Canonical("99999 99999"), name: "Asha", status: "win", salePrice: 50000, createdAt: time.Now()},
	}}
	svc := NewService(repo)
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), orgID)

	profile, err := svc.Profile(context.Background(), actor, "99999-99999")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	c := profile.Customer
	if c.LeadCount != 1 || c.WinCount != 1 || c.TotalValue != 50000 {
		t.Errorf("single win round trip: got %d/%d/%d, want 1/1/50000", c.LeadCount, c.WinCount, c.TotalValue)
	}
	if c.IsRepeat {
		t.Error("single visit must not be marked repeat")
	}
}

func TestCheckPhoneTriState(t *testing.T) {
	orgID := uuid.New()
	repo := &fakeRepo{visits: []visit{
		{orgID: orgID, phone: "9999999999", name: "Asha", status: "win", salePrice: 1000, createdAt: time.Now()},
		{orgID: orgID, phone: "7777777777", name: "Ravi", status: "open", createdAt: time.Now().Add(-time.Hour)},
		{orgID: orgID, phone: "7777777777", name: "Ravi", status: "win", salePrice: 2000, createdAt: time.Now()},
	}}
	svc := NewService(repo)
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), orgID)

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid", "123", transport.PhoneCheckInvalid},
		{"new", "8888888888", transport.PhoneCheckNew},
		{"single prior lead", "99999 99999", transport.PhoneCheckSingle},
		{"multiple prior leads", "77777 77777", transport.PhoneCheckRepeat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.CheckPhone(context.Background(), actor, tc.input)
			if err != nil {
				t.Fatalf("CheckPhone() error = %v", err)
			}
			if resp.Status != tc.want {
				t.Fatalf("Status = %q, want %q", resp.Status, tc.want)
			}
			known := tc.want == transport.PhoneCheckSingle || tc.want == transport.PhoneCheckRepeat
			if known {
				if resp.Customer == nil || resp.LatestLead == nil {
					t.Fatal("known answer must carry customer and latest lead")
				}
			} else if resp.Customer != nil || resp.LatestLead != nil {
				t.Fatal("unknown answer must not leak customer data")
			}
		})
	}
}

func TestCheckPhoneSingleMatchesRepeatFlag(t *testing.T) {
	orgID := uuid.New()
	repo := &fakeRepo{visits: []visit{
		{orgID: orgID, phone: "9999999999", name: "Asha", status: "win", salePrice: 1000, createdAt: time.Now()},
	}}
	svc := NewService(repo)
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), orgID)

	resp, err := svc.CheckPhone(context.Background(), actor, "9999999999")
	if err != nil {
		t.Fatalf("CheckPhone() error = %v", err)
	}
	if resp.Status != transport.PhoneCheckSingle {
		t.Fatalf("Status = %q, want single", resp.Status)
	}
	if resp.Customer.IsRepeat {
		t.Error("a single prior lead must not mark the customer as repeat")
	}
	if resp.Customer.LeadCount != 1 {
		t.Errorf("LeadCount = %d, want 1", resp.Customer.LeadCount)
	}
}

func TestCheckPhoneIsOrgScoped(t *testing.T) {
	otherOrg := uuid.New()
	repo := &fakeRepo{visits: []visit{
		{orgID: otherOrg, phone: "9999999999", name: "Asha", status: "win", salePrice: 1000, createdAt: time.Now()},
	}}
	svc := NewService(repo)
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), uuid.New())

	resp, err := svc.CheckPhone(context.Background(), actor, "9999999999")
	if err != nil {
		t.Fatalf("CheckPhone() error = %v", err)
	}
	if resp.Status != transport.PhoneCheckNew {
		t.Fatalf("Status = %q, want new: history must not leak across organizations", resp.Status)
	}
}
