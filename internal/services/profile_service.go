package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"company-portal/internal/boundary"
	"company-portal/internal/domain"
	apperrors "company-portal/internal/errors"
	"company-portal/internal/validation"
)

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	*gateway
	validator *validation.ProfileValidator
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(deps Dependencies) ProfileService {
	return newProfileService(newGateway(deps), deps)
}

func newProfileService(g *gateway, deps Dependencies) *profileServiceImpl {
	return &profileServiceImpl{
		gateway:   g,
		validator: validation.NewProfileValidatorWithConfig(deps.Config),
	}
}

// Fetch loads the profile into the store. A user without a profile yet is
// not an error: the store is left without one and nil is returned.
func (p *profileServiceImpl) Fetch(ctx context.Context) (*domain.CompanyProfile, error) {
	token, err := p.token("fetch company profile")
	if err != nil {
		return nil, err
	}

	var profile *domain.CompanyProfile
	err = p.call(ctx, "fetch company profile", func(ctx context.Context) error {
		var err error
		profile, err = p.backend.FetchCompanyProfile(ctx, token)
		return err
	})
	if err != nil {
		if errors.Is(err, boundary.ErrNotFound) {
			p.store.SetCompanyProfile(nil)
			return nil, nil
		}
		return nil, err
	}

	p.store.SetCompanyProfile(profile)
	return p.store.CompanyProfile(), nil
}

// Save validates the form, stores it remotely and then re-reads it so the
// store reflects what the backend kept.
func (p *profileServiceImpl) Save(ctx context.Context, profile domain.CompanyProfile) (*domain.CompanyProfile, error) {
	if err := p.validator.ValidateForSave(profile); err != nil {
		return nil, apperrors.NewValidationError("invalid company profile", err)
	}

	token, err := p.token("save company profile")
	if err != nil {
		return nil, err
	}

	err = p.call(ctx, "save company profile", func(ctx context.Context) error {
		_, err := p.backend.SaveCompanyProfile(ctx, token, profile)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info("company profile saved", zap.String("company", profile.CompanyName))

	return p.Fetch(ctx)
}

// Merge applies a partial edit on top of the current profile and saves it
func (p *profileServiceImpl) Merge(ctx context.Context, update domain.CompanyProfileUpdate) (*domain.CompanyProfile, error) {
	if update.IsEmpty() {
		return p.store.CompanyProfile(), nil
	}

	var current domain.CompanyProfile
	if existing := p.store.CompanyProfile(); existing != nil {
		current = *existing
	}
	return p.Save(ctx, update.Apply(current))
}

// AddSocialLink appends a link to the profile held in the store
func (p *profileServiceImpl) AddSocialLink(link domain.SocialLink) error {
	return p.store.AddSocialLink(link)
}

// RemoveSocialLink removes the link at index from the profile held in the store
func (p *profileServiceImpl) RemoveSocialLink(index int) error {
	return p.store.RemoveSocialLink(index)
}

// Sync persists the profile currently held in the store
func (p *profileServiceImpl) Sync(ctx context.Context) (*domain.CompanyProfile, error) {
	profile := p.store.CompanyProfile()
	if profile == nil {
		return nil, nil
	}

	token, err := p.token("save company profile")
	if err != nil {
		return nil, err
	}

	err = p.call(ctx, "save company profile", func(ctx context.Context) error {
		_, err := p.backend.SaveCompanyProfile(ctx, token, *profile)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadImage checks the file locally before sending it, then refreshes the
// profile so the new image url is visible.
func (p *profileServiceImpl) UploadImage(ctx context.Context, kind domain.ImageKind, img boundary.Image) (string, error) {
	if err := p.validator.ValidateImage(img.ContentType, int64(len(img.Data))); err != nil {
		return "", apperrors.NewValidationError("invalid image", err)
	}

	token, err := p.token("upload image")
	if err != nil {
		return "", err
	}

	var location string
	err = p.call(ctx, "upload image", func(ctx context.Context) error {
		var err error
		location, err = p.backend.UploadImage(ctx, token, kind, img)
		return err
	})
	if err != nil {
		return "", err
	}

	if _, err := p.Fetch(ctx); err != nil {
		p.logger.Warn("profile refresh after upload failed", zap.Error(err))
		return location, err
	}
	return location, nil
}
