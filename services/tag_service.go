package services

import (
	"context"
	"strings"
	"time"

	apperrors "furniture-service/common/errors"
	"furniture-service/models"
	"furniture-service/repository"
)

type TagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return tags, nil
}

func (s *TagService) GetTag(ctx context.Context, idHex string) (*models.Tag, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, MsgTagNotFound, "")
	}
	return tag, nil
}

func (s *TagService) CreateTag(ctx context.Context, req models.TagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation(MsgTagNameMissing, nil)
	}

	now := time.Now().UTC()
	tag := &models.Tag{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, storeError(err, MsgTagNotFound, MsgTagDuplicate)
	}
	return tag, nil
}

func (s *TagService) UpdateTag(ctx context.Context, idHex string, req models.TagRequest) (*models.Tag, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation(MsgTagNameMissing, nil)
	}

	tag, err := s.repo.Update(ctx, id, map[string]interface{}{"name": name})
	if err != nil {
		return nil, storeError(err, MsgTagNotFound, MsgTagDuplicate)
	}
	return tag, nil
}

// DeleteTag removes the tag only. Products keep the id in their tag list.
func (s *TagService) DeleteTag(ctx context.Context, idHex string) error {
	id, err := parseID(idHex)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, MsgTagNotFound, "")
	}
	return nil
}
