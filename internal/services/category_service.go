package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	dto "taskdeck.com/taskdeck/internal/data_models"
	apperrors "taskdeck.com/taskdeck/internal/errors"
	model "taskdeck.com/taskdeck/internal/models"
	repository "taskdeck.com/taskdeck/internal/repositories"
)

type CategoryService struct {
	categories *repository.CategoryRepository
	identity   *IdentityService
}

func NewCategoryService(
	categories *repository.CategoryRepository,
	identity *IdentityService,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		identity:   identity,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.categories.ListByUser(ctx, user.ID)
}

func (s *CategoryService) GetCategory(ctx context.Context, token, id string) (*model.Category, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, token string, req dto.CategoryRequest) (*model.Category, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidation("name must not be empty")
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		UserID:      user.ID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, token, id string, req dto.UpdateCategoryRequest) (*model.Category, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewValidation("name must not be empty")
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, token, id string) error {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return err
	}

	removed, err := s.categories.Delete(ctx, user.ID, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
