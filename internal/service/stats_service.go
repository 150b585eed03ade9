package service

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/repository"
)

type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	postRepo  repository.PostRepository
}

func NewStatsService(statsRepo repository.StatsRepository, postRepo repository.PostRepository) StatsService {
	return &statsService{statsRepo: statsRepo, postRepo: postRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*models.Stats, error) {
	counts, err := s.statsRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.postRepo.ListAll(ctx, RecentPosts)
	if err != nil {
		return nil, err
	}

	return &models.Stats{Counts: counts, RecentPosts: recent}, nil
}
