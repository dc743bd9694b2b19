package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
)

// GroupRepository is a read-only registry. Callers get copies, so the
// configured athlete lists cannot be changed through returned values.
type GroupRepository struct {
	mu     sync.RWMutex
	items  map[int]group.Group
	orders []int
}

func NewGroupRepository(groups []group.Group) *GroupRepository {
	items := make(map[int]group.Group, len(groups))
	orders := make([]int, 0, len(groups))

	for _, g := range groups {
		if _, exists := items[g.ID]; !exists {
			orders = append(orders, g.ID)
		}
		items[g.ID] = cloneGroup(g)
	}
	slices.Sort(orders)

	return &GroupRepository{
		items:  items,
		orders: orders,
	}
}

func (r *GroupRepository) List(_ context.Context) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Group, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneGroup(r.items[id]))
	}

	return out, nil
}

func (r *GroupRepository) GetByID(_ context.Context, groupID int) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[groupID]
	if !ok {
		return group.Group{}, false, nil
	}

	return cloneGroup(g), true, nil
}

func cloneGroup(g group.Group) group.Group {
	g.AthleteIDs = slices.Clone(g.AthleteIDs)
	return g
}
