package services

import (
	"context"
	"strings"
	"time"

	apperrors "furniture-service/common/errors"
	"furniture-service/models"
	"furniture-service/repository"
)

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, idHex string) (*models.Category, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, MsgCategoryNotFound, "")
	}
	return category, nil
}

// CreateCategory stores a category with a trimmed, unique name.
func (s *CategoryService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation(MsgCategoryNameMissing, nil)
	}

	now := time.Now().UTC()
	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, storeError(err, MsgCategoryNotFound, MsgCategoryDuplicate)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, idHex string, req models.CategoryUpdateRequest) (*models.Category, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation(MsgCategoryNameMissing, nil)
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	category, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, storeError(err, MsgCategoryNotFound, MsgCategoryDuplicate)
	}
	return category, nil
}

// DeleteCategory removes the category only. Products keep their reference.
func (s *CategoryService) DeleteCategory(ctx context.Context, idHex string) error {
	id, err := parseID(idHex)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, MsgCategoryNotFound, "")
	}
	return nil
}
