package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/pebble"

	"product-auth-system/model"
)

// PebbleDatabase PebbleDB database implementation with multiple collections
type PebbleDatabase struct {
	collections map[string]*pebble.DB // Map of collection name to PebbleDB instance

	tagIDCounter     atomic.Int64
	productIDCounter atomic.Int64
	scanIDCounter    atomic.Int64
}

// PebbleConfig PebbleDB configuration
type PebbleConfig struct {
	DataDir string
}

// Collection names and their key-value formats
const (
	collectionTag       = "tag"        // key: {id:020d}, value: JSON(Tag)
	collectionTagCode   = "tag_code"   // key: {code}, value: {id:020d}
	collectionProduct   = "product"    // key: {id:020d}, value: JSON(Product)
	collectionScanEvent = "scan_event" // key: {tag_code}:{id:020d}, value: JSON(ScanEvent)
	collectionCounters  = "counters"   // key: tag/product/scan, value: {max_id}
)

// Counter keys
const (
	keyTagCounter     = "tag"
	keyProductCounter = "product"
	keyScanCounter    = "scan"
)

// NewPebbleDatabase create PebbleDB database instance with multiple collections
func NewPebbleDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*PebbleConfig)
	if !ok {
		return nil, fmt.Errorf("invalid PebbleDB config type")
	}

	if err := os.MkdirAll(cfg.DataDir, 0777); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	collectionNames := []string{
		collectionTag,
		collectionTagCode,
		collectionProduct,
		collectionScanEvent,
		collectionCounters,
	}

	collections := make(map[string]*pebble.DB, len(collectionNames))
	for _, name := range collectionNames {
		db, err := pebble.Open(filepath.Join(cfg.DataDir, name), &pebble.Options{})
		if err != nil {
			for _, opened := range collections {
				opened.Close()
			}
			return nil, fmt.Errorf("failed to open collection %s: %w", name, err)
		}
		collections[name] = db
	}

	p := &PebbleDatabase{collections: collections}

	// Restore ID counters
	p.tagIDCounter.Store(p.loadCounter(keyTagCounter))
	p.productIDCounter.Store(p.loadCounter(keyProductCounter))
	p.scanIDCounter.Store(p.loadCounter(keyScanCounter))

	log.Printf("PebbleDB opened: dir=%s, collections=%d", cfg.DataDir, len(collections))

	return p, nil
}

func idKey(id int64) []byte {
	return []byte(fmt.Sprintf("%020d", id))
}

func scanEventKey(tagCode string, id int64) []byte {
	return []byte(fmt.Sprintf("%s:%020d", tagCode, id))
}

func (p *PebbleDatabase) loadCounter(key string) int64 {
	value, closer, err := p.collections[collectionCounters].Get([]byte(key))
	if err != nil {
		return 0
	}
	defer closer.Close()

	n, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (p *PebbleDatabase) saveCounter(key string, value int64) error {
	return p.collections[collectionCounters].Set(
		[]byte(key), []byte(strconv.FormatInt(value, 10)), pebble.Sync)
}

func (p *PebbleDatabase) getJSON(collection string, key []byte, dest interface{}) error {
	value, closer, err := p.collections[collection].Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s: %w", collection, err)
	}
	defer closer.Close()

	return json.Unmarshal(value, dest)
}

func (p *PebbleDatabase) setJSON(collection string, key []byte, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", collection, err)
	}
	return p.collections[collection].Set(key, data, pebble.Sync)
}

// Tag operations

func (p *PebbleDatabase) CreateTag(tag *model.Tag) error {
	if tag.ID == 0 {
		tag.ID = p.tagIDCounter.Add(1)
		if err := p.saveCounter(keyTagCounter, tag.ID); err != nil {
			return err
		}
	}
	now := time.Now()
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = now
	}
	tag.UpdatedAt = now

	if err := p.setJSON(collectionTag, idKey(tag.ID), tag); err != nil {
		return err
	}
	return p.collections[collectionTagCode].Set([]byte(tag.Code), idKey(tag.ID), pebble.Sync)
}

func (p *PebbleDatabase) GetTagByID(id int64) (*model.Tag, error) {
	var tag model.Tag
	if err := p.getJSON(collectionTag, idKey(id), &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (p *PebbleDatabase) GetTagByCode(code string) (*model.Tag, error) {
	key, closer, err := p.collections[collectionTagCode].Get([]byte(code))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read tag code index: %w", err)
	}
	idCopy := append([]byte(nil), key...)
	closer.Close()

	var tag model.Tag
	if err := p.getJSON(collectionTag, idCopy, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (p *PebbleDatabase) UpdateTag(tag *model.Tag) error {
	if tag == nil || tag.ID == 0 {
		return fmt.Errorf("tag is nil or has no id")
	}
	tag.UpdatedAt = time.Now()
	return p.setJSON(collectionTag, idKey(tag.ID), tag)
}

func (p *PebbleDatabase) MarkTagStamped(id int64, hashTx string, status model.ChainStatus, stampedAt time.Time) error {
	tag, err := p.GetTagByID(id)
	if err != nil {
		return err
	}
	tag.IsStamped = true
	tag.HashTx = hashTx
	tag.ChainStatus = &status
	tag.StampedAt = &stampedAt
	return p.UpdateTag(tag)
}

func (p *PebbleDatabase) UpdateTagChainStatus(id int64, status model.ChainStatus, hashTx string, revokeReason string) error {
	tag, err := p.GetTagByID(id)
	if err != nil {
		return err
	}
	tag.ChainStatus = &status
	tag.HashTx = hashTx
	if revokeReason != "" {
		tag.RevokeReason = revokeReason
	}
	return p.UpdateTag(tag)
}

func (p *PebbleDatabase) ListTagsWithCursor(cursor int64, size int) ([]*model.Tag, int64, bool, error) {
	if size <= 0 || size > 100 {
		size = 20
	}

	opts := &pebble.IterOptions{}
	if cursor > 0 {
		opts.UpperBound = idKey(cursor)
	}

	iter, err := p.collections[collectionTag].NewIter(opts)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	var tags []*model.Tag
	hasMore := false
	for valid := iter.Last(); valid; valid = iter.Prev() {
		if len(tags) >= size {
			hasMore = true
			break
		}
		var tag model.Tag
		if err := json.Unmarshal(iter.Value(), &tag); err != nil {
			continue
		}
		tags = append(tags, &tag)
	}

	var nextCursor int64
	if len(tags) > 0 {
		nextCursor = tags[len(tags)-1].ID
	}
	return tags, nextCursor, hasMore, nil
}

// Product operations

func (p *PebbleDatabase) CreateProduct(product *model.Product) error {
	if product.ID == 0 {
		product.ID = p.productIDCounter.Add(1)
		if err := p.saveCounter(keyProductCounter, product.ID); err != nil {
			return err
		}
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	return p.setJSON(collectionProduct, idKey(product.ID), product)
}

func (p *PebbleDatabase) GetProductByID(id int64) (*model.Product, error) {
	var product model.Product
	if err := p.getJSON(collectionProduct, idKey(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *PebbleDatabase) GetProductsByIDs(ids []int64) ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(ids))
	for _, id := range ids {
		product, err := p.GetProductByID(id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// ScanEvent operations

func (p *PebbleDatabase) CreateScanEvent(event *model.ScanEvent) error {
	if event.ID == 0 {
		event.ID = p.scanIDCounter.Add(1)
		if err := p.saveCounter(keyScanCounter, event.ID); err != nil {
			return err
		}
	}
	if event.ScannedAt.IsZero() {
		event.ScannedAt = time.Now()
	}
	return p.setJSON(collectionScanEvent, scanEventKey(event.TagCode, event.ID), event)
}

func (p *PebbleDatabase) iterScanEvents(tagCode string, fn func(*model.ScanEvent) bool) error {
	iter, err := p.collections[collectionScanEvent].NewIter(&pebble.IterOptions{
		LowerBound: []byte(tagCode + ":"),
		UpperBound: []byte(tagCode + ";"), // ';' is the byte after ':'
	})
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	for valid := iter.Last(); valid; valid = iter.Prev() {
		var event model.ScanEvent
		if err := json.Unmarshal(iter.Value(), &event); err != nil {
			continue
		}
		if !fn(&event) {
			break
		}
	}
	return nil
}

func (p *PebbleDatabase) CountScanEventsByTagCode(tagCode string) (int64, error) {
	var count int64
	err := p.iterScanEvents(tagCode, func(*model.ScanEvent) bool {
		count++
		return true
	})
	return count, err
}

func (p *PebbleDatabase) CountScanEventsByTagCodeSince(tagCode string, since time.Time) (int64, error) {
	var count int64
	err := p.iterScanEvents(tagCode, func(event *model.ScanEvent) bool {
		if event.ScannedAt.Before(since) {
			return true
		}
		count++
		return true
	})
	return count, err
}

func (p *PebbleDatabase) GetRecentScanEvents(tagCode string, limit int) ([]*model.ScanEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var events []*model.ScanEvent
	err := p.iterScanEvents(tagCode, func(event *model.ScanEvent) bool {
		events = append(events, event)
		return len(events) < limit
	})
	return events, err
}

// Close close all collections
func (p *PebbleDatabase) Close() error {
	var firstErr error
	for name, db := range p.collections {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close collection %s: %w", name, err)
		}
	}
	return firstErr
}
