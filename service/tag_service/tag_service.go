package tag_service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"product-auth-system/database"
	"product-auth-system/model"
)

// CacheInvalidator drops cached fraud verdicts for a tag after its
// distribution metadata changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tagCode string) error
}

// TagService tag CRUD with the immutability guards around stamping
type TagService struct {
	db    database.Database
	cache CacheInvalidator
}

// NewTagService create tag service instance. cache may be nil.
func NewTagService(db database.Database, cache CacheInvalidator) *TagService {
	return &TagService{db: db, cache: cache}
}

// CreateTagInput input for tag creation
type CreateTagInput struct {
	Code          string
	ProductIds    []int64
	MetaData      map[string]string
	PublishStatus model.PublishStatus
}

// UpdateTagInput input for tag update. Nil fields are left unchanged.
type UpdateTagInput struct {
	ProductIds    []int64
	MetaData      map[string]string
	PublishStatus *model.PublishStatus
}

// Create creates a tag. A blank code gets a generated one; the code is
// immutable from this point on.
func (s *TagService) Create(input CreateTagInput) (*model.Tag, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		generated, err := generateTagCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate tag code: %w", err)
		}
		code = generated
	}

	publishStatus := input.PublishStatus
	if publishStatus == "" {
		publishStatus = model.PublishStatusDraft
	}
	if publishStatus != model.PublishStatusDraft && publishStatus != model.PublishStatusPublished {
		return nil, fmt.Errorf("%w: unknown publish status %q", ErrInvalidArgument, publishStatus)
	}

	tag := &model.Tag{
		Code:          code,
		PublishStatus: publishStatus,
	}
	if err := tag.SetProductIDList(input.ProductIds); err != nil {
		return nil, fmt.Errorf("failed to encode product ids: %w", err)
	}
	if err := tag.SetMetadataMap(input.MetaData); err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := s.db.CreateTag(tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// Update edits a tag. Products and metadata are frozen once the tag is
// stamped; a metadata edit before stamping drops any cached fraud verdicts
// for the tag.
func (s *TagService) Update(ctx context.Context, tagID int64, input UpdateTagInput) (*model.Tag, error) {
	tag, err := s.GetByID(tagID)
	if err != nil {
		return nil, err
	}

	metadataChanged := false

	if input.ProductIds != nil {
		if tag.IsStamped {
			return nil, fmt.Errorf("%w: linked products are frozen once the tag is stamped", ErrInvalidArgument)
		}
		if err := tag.SetProductIDList(input.ProductIds); err != nil {
			return nil, fmt.Errorf("failed to encode product ids: %w", err)
		}
	}

	if input.MetaData != nil {
		if tag.IsStamped {
			return nil, fmt.Errorf("%w: metadata is frozen once the tag is stamped", ErrInvalidArgument)
		}
		if err := tag.SetMetadataMap(input.MetaData); err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		metadataChanged = true
	}

	if input.PublishStatus != nil {
		status := *input.PublishStatus
		if status != model.PublishStatusDraft && status != model.PublishStatusPublished {
			return nil, fmt.Errorf("%w: unknown publish status %q", ErrInvalidArgument, status)
		}
		if tag.IsStamped && status == model.PublishStatusDraft {
			return nil, fmt.Errorf("%w: a stamped tag cannot be unpublished", ErrInvalidArgument)
		}
		tag.PublishStatus = status
	}

	if err := s.db.UpdateTag(tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	if metadataChanged && s.cache != nil {
		if err := s.cache.Invalidate(ctx, tag.Code); err != nil {
			log.Printf("Warning: failed to invalidate risk cache for tag %s: %v", tag.Code, err)
		}
	}
	return tag, nil
}

// GetByID loads a tag by ID
func (s *TagService) GetByID(tagID int64) (*model.Tag, error) {
	tag, err := s.db.GetTagByID(tagID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	return tag, nil
}

// GetByCode loads a tag by its QR code value
func (s *TagService) GetByCode(code string) (*model.Tag, error) {
	tag, err := s.db.GetTagByCode(code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	return tag, nil
}

// List returns tags in reverse ID order with cursor pagination
func (s *TagService) List(cursor int64, size int) ([]*model.Tag, int64, bool, error) {
	tags, nextCursor, hasMore, err := s.db.ListTagsWithCursor(cursor, size)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nextCursor, hasMore, nil
}

// generateTagCode builds a random, unguessable code for the QR image
func generateTagCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "TAG-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
