package usecase

import (
	"context"
	"strings"

	"shutterbid/internal/domain/market"
	"shutterbid/internal/repository"
)

// ProfileUsecase covers the photographer's own profile and portfolio
// records. Both live under deterministic point keys, so no kind scan is
// involved.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, ident market.Identity) (market.Profile, error)
	UpdateProfile(ctx context.Context, ident market.Identity, p market.Profile) (market.Profile, error)
	GetPortfolio(ctx context.Context, ident market.Identity) (market.Portfolio, error)
	UpdatePortfolio(ctx context.Context, ident market.Identity, p market.Portfolio) (market.Portfolio, error)
}

type ProfileService struct {
	store repository.RecordStore
}

func NewProfileService(store repository.RecordStore) *ProfileService {
	return &ProfileService{store: store}
}

func (s *ProfileService) GetProfile(ctx context.Context, ident market.Identity) (market.Profile, error) {
	if ident.Role != market.RolePhotographer {
		return market.Profile{}, ErrNotAllowed
	}

	rec, err := s.store.Get(ctx, market.ProfileKey(ident.SubjectID()))
	if err != nil {
		if err == repository.ErrRecordNotFound {
			return market.Profile{}, ErrNotFound
		}
		return market.Profile{}, storageErr(err)
	}
	if rec.Kind != market.KindProfile {
		return market.Profile{}, ErrNotFound
	}

	var p market.Profile
	if err := rec.Decode(&p); err != nil {
		return market.Profile{}, storageErr(err)
	}
	return p, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, ident market.Identity, p market.Profile) (market.Profile, error) {
	if ident.Role != market.RolePhotographer {
		return market.Profile{}, ErrNotAllowed
	}
	if strings.TrimSpace(p.Name) == "" {
		return market.Profile{}, validationf("name is required")
	}

	// Key and owner always come from the resolved identity.
	p.UserID = ident.SubjectID()

	rec, err := repository.NewRecord(market.ProfileKey(p.UserID), market.KindProfile, p)
	if err != nil {
		return market.Profile{}, storageErr(err)
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return market.Profile{}, storageErr(err)
	}
	return p, nil
}

func (s *ProfileService) GetPortfolio(ctx context.Context, ident market.Identity) (market.Portfolio, error) {
	if ident.Role != market.RolePhotographer {
		return market.Portfolio{}, ErrNotAllowed
	}

	rec, err := s.store.Get(ctx, market.PortfolioKey(ident.SubjectID()))
	if err != nil {
		if err == repository.ErrRecordNotFound {
			return market.Portfolio{}, ErrNotFound
		}
		return market.Portfolio{}, storageErr(err)
	}
	if rec.Kind != market.KindPortfolio {
		return market.Portfolio{}, ErrNotFound
	}

	var p market.Portfolio
	if err := rec.Decode(&p); err != nil {
		return market.Portfolio{}, storageErr(err)
	}
	return p, nil
}

func (s *ProfileService) UpdatePortfolio(ctx context.Context, ident market.Identity, p market.Portfolio) (market.Portfolio, error) {
	if ident.Role != market.RolePhotographer {
		return market.Portfolio{}, ErrNotAllowed
	}

	p.UserID = ident.SubjectID()
	if p.Items == nil {
		p.Items = []market.PortfolioItem{}
	}

	rec, err := repository.NewRecord(market.PortfolioKey(p.UserID), market.KindPortfolio, p)
	if err != nil {
		return market.Portfolio{}, storageErr(err)
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return market.Portfolio{}, storageErr(err)
	}
	return p, nil
}
