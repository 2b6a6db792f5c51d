package service

import (
	"context"

	"github.com/SharkyKing/EduSpace/internal/domain"
)

// VoteService guards the vote aggregator: only +1/-1 reach the repository
// transaction.
type VoteService struct {
	threads domain.ThreadRepository
}

func NewVoteService(threads domain.ThreadRepository) *VoteService {
	return &VoteService{threads: threads}
}

func (s *VoteService) Cast(ctx context.Context, threadID, userID uint, vote int) (*domain.Thread, *domain.ThreadVote, error) {
	if vote != 1 && vote != -1 {
		return nil, nil, domain.ErrInvalidVote
	}
	return s.threads.CastVote(ctx, threadID, userID, vote)
}
