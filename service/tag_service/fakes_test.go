package tag_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"product-auth-system/database"
	"product-auth-system/model"
)

// fakeDB in-memory database.Database for service tests
type fakeDB struct {
	tags     map[int64]*model.Tag
	products map[int64]*model.Product

	markStampedErr       error
	updateChainStatusErr error
	markStampedCalls     int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		tags:     make(map[int64]*model.Tag),
		products: make(map[int64]*model.Product),
	}
}

func (f *fakeDB) CreateTag(tag *model.Tag) error {
	if tag.ID == 0 {
		tag.ID = int64(len(f.tags) + 1)
	}
	copied := *tag
	f.tags[tag.ID] = &copied
	return nil
}

func (f *fakeDB) GetTagByID(id int64) (*model.Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *tag
	return &copied, nil
}

func (f *fakeDB) GetTagByCode(code string) (*model.Tag, error) {
	for _, tag := range f.tags {
		if tag.Code == code {
			copied := *tag
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeDB) UpdateTag(tag *model.Tag) error {
	if _, ok := f.tags[tag.ID]; !ok {
		return database.ErrNotFound
	}
	copied := *tag
	f.tags[tag.ID] = &copied
	return nil
}

func (f *fakeDB) MarkTagStamped(id int64, hashTx string, status model.ChainStatus, stampedAt time.Time) error {
	f.markStampedCalls++
	if f.markStampedErr != nil {
		return f.markStampedErr
	}
	tag, ok := f.tags[id]
	if !ok {
		return database.ErrNotFound
	}
	tag.IsStamped = true
	tag.HashTx = hashTx
	tag.ChainStatus = &status
	tag.StampedAt = &stampedAt
	return nil
}

func (f *fakeDB) UpdateTagChainStatus(id int64, status model.ChainStatus, hashTx string, revokeReason string) error {
	if f.updateChainStatusErr != nil {
		return f.updateChainStatusErr
	}
	tag, ok := f.tags[id]
	if !ok {
		return database.ErrNotFound
	}
	tag.ChainStatus = &status
	if hashTx != "" {
		tag.HashTx = hashTx
	}
	if revokeReason != "" {
		tag.RevokeReason = revokeReason
	}
	return nil
}

func (f *fakeDB) ListTagsWithCursor(cursor int64, size int) ([]*model.Tag, int64, bool, error) {
	return nil, 0, false, nil
}

func (f *fakeDB) CreateProduct(product *model.Product) error {
	if product.ID == 0 {
		product.ID = int64(len(f.products) + 1)
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeDB) GetProductByID(id int64) (*model.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeDB) GetProductsByIDs(ids []int64) ([]*model.Product, error) {
	var products []*model.Product
	for _, id := range ids {
		if product, ok := f.products[id]; ok {
			copied := *product
			products = append(products, &copied)
		}
	}
	return products, nil
}

func (f *fakeDB) CreateScanEvent(event *model.ScanEvent) error { return nil }

func (f *fakeDB) CountScanEventsByTagCode(tagCode string) (int64, error) { return 0, nil }

func (f *fakeDB) CountScanEventsByTagCodeSince(tagCode string, since time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeDB) GetRecentScanEvents(tagCode string, limit int) ([]*model.ScanEvent, error) {
	return nil, nil
}

func (f *fakeDB) Close() error { return nil }

// fakeLedger scripted chain.Ledger for service tests
type fakeLedger struct {
	createErr  error
	updateErr  error
	revokeErr  error
	status     int
	statusErr  error
	createdTag string
	updates    []int
	revokes    []string
}

func (f *fakeLedger) CreateTag(_ context.Context, code, metadataURI string, productIDs []int64) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdTag = code
	return "0xcreated", nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, code string, status int) (string, error) {
	if f.updateErr != nil {
		return "", f.updateErr
	}
	f.updates = append(f.updates, status)
	return "0xupdated", nil
}

func (f *fakeLedger) RevokeTag(_ context.Context, code, reason string) (string, error) {
	if f.revokeErr != nil {
		return "", f.revokeErr
	}
	f.revokes = append(f.revokes, reason)
	return "0xrevoked", nil
}

func (f *fakeLedger) GetStatus(_ context.Context, code string) (int, error) {
	if f.statusErr != nil {
		return 0, f.statusErr
	}
	return f.status, nil
}

// fakeStorage records writes keyed by object key
type fakeStorage struct {
	objects map[string][]byte
	saveErr map[string]error
	hook    func(key string) error
	saves   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects: make(map[string][]byte),
		saveErr: make(map[string]error),
	}
}

func (f *fakeStorage) Save(key string, data []byte, contentType string) (string, error) {
	if f.hook != nil {
		if err := f.hook(key); err != nil {
			return "", err
		}
	}
	if err := f.saveErr[key]; err != nil {
		return "", err
	}
	f.objects[key] = append([]byte(nil), data...)
	f.saves = append(f.saves, key)
	return "http://files.test/" + key, nil
}

func (f *fakeStorage) Get(key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (f *fakeStorage) Delete(key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(key string) bool {
	_, ok := f.objects[key]
	return ok
}

func (f *fakeStorage) PublicURL(key string) string {
	return "http://files.test/" + key
}

// fakeQR deterministic QR renderer
type fakeQR struct {
	err error
}

func (f fakeQR) Render(content string, size int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("qr:%s:%d", content, size)), nil
}

// stampableTag builds a published tag with one linked product
func stampableTag(db *fakeDB) *model.Tag {
	product := &model.Product{Brand: "Acme", Name: "Trail Sneaker V2", Price: 129.9, Currency: "USD"}
	db.CreateProduct(product)

	tag := &model.Tag{
		Code:          "TAG-TEST0001",
		PublishStatus: model.PublishStatusPublished,
	}
	tag.SetProductIDList([]int64{product.ID})
	tag.SetMetadataMap(map[string]string{
		model.MetaKeyRegion:  "southeast-asia",
		model.MetaKeyCountry: "id",
		"batch":              "B-42",
	})
	db.CreateTag(tag)
	return tag
}
