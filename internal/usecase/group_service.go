package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
)

type GroupService struct {
	repo group.Repository
}

func NewGroupService(repo group.Repository) *GroupService {
	return &GroupService{repo: repo}
}

func (s *GroupService) ListGroups(ctx context.Context) ([]group.Group, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// GetGroup fails with *UnknownGroupError for ids missing from the registry.
func (s *GroupService) GetGroup(ctx context.Context, groupID int) (group.Group, error) {
	item, exists, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return group.Group{}, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return group.Group{}, &UnknownGroupError{GroupID: groupID}
	}
	return item, nil
}
