package tag_service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"product-auth-system/model"
)

type fakeInvalidator struct {
	codes []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, tagCode string) error {
	f.codes = append(f.codes, tagCode)
	return nil
}

func TestTagCreate_GeneratesCode(t *testing.T) {
	service := NewTagService(newFakeDB(), nil)

	tag, err := service.Create(CreateTagInput{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasPrefix(tag.Code, "TAG-") {
		t.Errorf("Expected generated code with TAG- prefix, got %s", tag.Code)
	}
	if tag.PublishStatus != model.PublishStatusDraft {
		t.Errorf("Expected draft by default, got %s", tag.PublishStatus)
	}
}

func TestTagUpdate_FrozenOnceStamped(t *testing.T) {
	db := newFakeDB()
	tag := stampableTag(db)
	db.MarkTagStamped(tag.ID, "0xstamp", model.ChainStatusCreated, time.Now())

	service := NewTagService(db, nil)

	_, err := service.Update(context.Background(), tag.ID, UpdateTagInput{ProductIds: []int64{9}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for product edit on stamped tag, got %v", err)
	}

	_, err = service.Update(context.Background(), tag.ID, UpdateTagInput{MetaData: map[string]string{"x": "y"}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for metadata edit on stamped tag, got %v", err)
	}

	draft := model.PublishStatusDraft
	_, err = service.Update(context.Background(), tag.ID, UpdateTagInput{PublishStatus: &draft})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for unpublishing a stamped tag, got %v", err)
	}
}

func TestTagUpdate_MetadataEditInvalidatesRiskCache(t *testing.T) {
	db := newFakeDB()
	tag := stampableTag(db)
	invalidator := &fakeInvalidator{}

	service := NewTagService(db, invalidator)

	_, err := service.Update(context.Background(), tag.ID, UpdateTagInput{
		MetaData: map[string]string{model.MetaKeyCountry: "sg"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(invalidator.codes) != 1 || invalidator.codes[0] != tag.Code {
		t.Errorf("Expected cache invalidation for %s, got %v", tag.Code, invalidator.codes)
	}

	// A publish-status-only change must not touch the cache
	published := model.PublishStatusPublished
	if _, err := service.Update(context.Background(), tag.ID, UpdateTagInput{PublishStatus: &published}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(invalidator.codes) != 1 {
		t.Errorf("Expected no extra invalidation, got %v", invalidator.codes)
	}
}

func TestTagGetByCode(t *testing.T) {
	db := newFakeDB()
	tag := stampableTag(db)

	service := NewTagService(db, nil)

	got, err := service.GetByCode(tag.Code)
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if got.ID != tag.ID {
		t.Errorf("Expected tag %d, got %d", tag.ID, got.ID)
	}

	if _, err := service.GetByCode("TAG-MISSING"); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound, got %v", err)
	}
}
