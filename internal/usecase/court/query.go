package court

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/court-booking/internal/domain/court"
	"github.com/BruksfildServices01/court-booking/internal/dto"
)

type GetCourt struct {
	repo  domain.Repository
	cache Cache
}

func NewGetCourt(repo domain.Repository, cache Cache) *GetCourt {
	return &GetCourt{repo: repo, cache: cache}
}

func (uc *GetCourt) Execute(ctx context.Context, id uuid.UUID) (*dto.Court, error) {
	if cached, ok := uc.cache.GetCourt(ctx, id); ok {
		return cached, nil
	}

	c, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "court_not_found")
	}

	out := dto.NewCourt(*c)
	uc.cache.SetCourt(ctx, out)
	return &out, nil
}

type ListCourts struct {
	repo  domain.Repository
	cache Cache
}

func NewListCourts(repo domain.Repository, cache Cache) *ListCourts {
	return &ListCourts{repo: repo, cache: cache}
}

func (uc *ListCourts) Execute(ctx context.Context, activeOnly bool) ([]dto.Court, error) {
	if cached, ok := uc.cache.GetList(ctx, activeOnly); ok {
		return cached, nil
	}

	courts, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := dto.NewCourts(courts)
	uc.cache.SetList(ctx, activeOnly, out)
	return out, nil
}
