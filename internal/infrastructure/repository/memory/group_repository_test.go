package memory

import (
	"testing"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
)

func TestGroupRepository_SeedGroupOne(t *testing.T) {
	repo := NewGroupRepository(SeedGroups())

	got, ok, err := repo.GetByID(t.Context(), GroupIDSegmentOfTheWeek)
	if err != nil || !ok {
		t.Fatalf("expected seeded group 1, ok=%v err=%v", ok, err)
	}

	want := []string{"4634808", "2861283", "3919949", "1469231"}
	if len(got.AthleteIDs) != len(want) {
		t.Fatalf("unexpected athlete count: got=%d want=%d", len(got.AthleteIDs), len(want))
	}
	for i := range want {
		if got.AthleteIDs[i] != want[i] {
			t.Fatalf("athlete #%d: got=%s want=%s", i, got.AthleteIDs[i], want[i])
		}
	}
}

func TestGroupRepository_UnknownGroup(t *testing.T) {
	repo := NewGroupRepository(SeedGroups())

	_, ok, err := repo.GetByID(t.Context(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected group 999 to be missing")
	}
}

func TestGroupRepository_ListSortedAndIsolated(t *testing.T) {
	repo := NewGroupRepository([]group.Group{
		{ID: 3, AthleteIDs: []string{"30"}},
		{ID: 1, AthleteIDs: []string{"10", "11"}},
	})

	groups, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 2 || groups[0].ID != 1 || groups[1].ID != 3 {
		t.Fatalf("expected groups sorted by id, got %+v", groups)
	}

	groups[0].AthleteIDs[0] = "mutated"
	again, _, _ := repo.GetByID(t.Context(), 1)
	if again.AthleteIDs[0] != "10" {
		t.Fatalf("registry changed through returned slice: %v", again.AthleteIDs)
	}
}
