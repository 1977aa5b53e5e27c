package tag_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"product-auth-system/chain"
	"product-auth-system/database"
	"product-auth-system/model"
	"product-auth-system/storage"
)

// StampingService runs the one-time stamping saga for a tag: QR generation,
// two-phase metadata publish, the ledger create-transaction, and the terminal
// database update. Steps before the chain commit are idempotent (fixed object
// keys, overwrite semantics); the chain commit is the single point of no return.
type StampingService struct {
	db      database.Database
	storage storage.Storage
	ledger  chain.Ledger
	qr      QRRenderer
	builder *MetadataBuilder
}

// NewStampingService create stamping service instance
func NewStampingService(db database.Database, stor storage.Storage, ledger chain.Ledger,
	qr QRRenderer, builder *MetadataBuilder) *StampingService {
	return &StampingService{
		db:      db,
		storage: stor,
		ledger:  ledger,
		qr:      qr,
		builder: builder,
	}
}

// StampResult stamping result
type StampResult struct {
	MetadataUrl string `json:"metadata_url"` // Metadata document URL (referenced on chain)
	QRCodeUrl   string `json:"qr_code_url"`  // QR image URL
	TxHash      string `json:"tx_hash"`      // Create-transaction hash
}

// StampingPreview preview result listing every blocker at once
type StampingPreview struct {
	CanStamp      bool                 `json:"can_stamp"`
	Reasons       []string             `json:"reasons"`
	MetadataDraft *TagMetadataDocument `json:"metadata_draft,omitempty"`
}

// checkPreconditions returns every violated stamping precondition
func checkPreconditions(tag *model.Tag) []string {
	var reasons []string
	if tag.IsStamped {
		reasons = append(reasons, "tag is already stamped")
	}
	if tag.PublishStatus != model.PublishStatusPublished {
		reasons = append(reasons, "tag is not published")
	}
	if len(tag.ProductIDList()) == 0 {
		reasons = append(reasons, "tag has no linked products")
	}
	return reasons
}

// Preview runs the stamping precondition checks without side effects and
// returns all blockers, plus a metadata draft when the tag is stampable.
func (s *StampingService) Preview(tagID int64) (*StampingPreview, error) {
	tag, err := s.db.GetTagByID(tagID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}

	reasons := checkPreconditions(tag)
	preview := &StampingPreview{
		CanStamp: len(reasons) == 0,
		Reasons:  reasons,
	}

	if preview.CanStamp {
		draft, err := s.builder.BuildForTag(tag)
		if err != nil {
			return nil, err
		}
		preview.MetadataDraft = draft
	}
	return preview, nil
}

// Stamp runs the stamping pipeline once. On success the tag is permanently
// stamped with an immutable on-chain record.
func (s *StampingService) Stamp(ctx context.Context, tagID int64) (*StampResult, error) {
	tag, err := s.db.GetTagByID(tagID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}

	if reasons := checkPreconditions(tag); len(reasons) > 0 {
		return nil, &PreconditionError{Reasons: reasons}
	}

	// Step 1: QR image. Fixed key per code, safe to re-run.
	qrImage, err := s.qr.Render(tag.Code, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR image: %w", err)
	}
	qrUrl, err := s.storage.Save(QRKey(tag.Code), qrImage, "image/png")
	if err != nil {
		return nil, fmt.Errorf("failed to upload QR image: %w", err)
	}

	// Step 2: draft metadata document, transaction hash still empty. The URL
	// obtained here is what goes on chain, so it must exist before the commit.
	doc, err := s.builder.BuildForTag(tag)
	if err != nil {
		return nil, err
	}
	doc.Verification.QRCodeUrl = qrUrl

	metadataUrl, err := s.uploadMetadata(tag.Code, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to upload draft metadata: %w", err)
	}

	// Re-check against the freshest row right before the commit point: two
	// operators racing on one tag must not produce two on-chain records.
	fresh, err := s.db.GetTagByID(tag.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload tag: %w", err)
	}
	if reasons := checkPreconditions(fresh); len(reasons) > 0 {
		return nil, &PreconditionError{Reasons: reasons}
	}

	// Step 3: chain commit. Not idempotent; everything after this line must
	// not roll it back.
	txHash, err := s.ledger.CreateTag(ctx, tag.Code, metadataUrl, tag.ProductIDList())
	if err != nil {
		switch {
		case errors.Is(err, chain.ErrTagExists):
			// A previous attempt already committed. Recover by syncing the
			// row from ledger state instead of reporting a failure.
			return s.recoverExistingTag(ctx, fresh, metadataUrl, qrUrl)
		case errors.Is(err, chain.ErrCommitTimeout):
			// Ambiguous: the transaction may still be mined. Never retried
			// here; reconciliation must consult GetStatus first.
			return nil, fmt.Errorf("%w: %v", ErrChainCommitTimeout, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrChainCommitFailed, err)
		}
	}

	// Step 4: finalize metadata with the mined hash, same key. The on-chain
	// record stays valid even if this write fails, so a failure here is only
	// a warning.
	s.builder.SetTransactionHash(doc, txHash)
	if _, err := s.uploadMetadata(tag.Code, doc); err != nil {
		log.Printf("Warning: failed to finalize metadata for tag %s (tx %s): %v", tag.Code, txHash, err)
	}

	// Step 5: terminal database update.
	if err := s.db.MarkTagStamped(tag.ID, txHash, model.ChainStatusCreated, time.Now()); err != nil {
		inconsistent := &InconsistentStateError{TagID: tag.ID, TxHash: txHash, Cause: err}
		log.Printf("ERROR: %v", inconsistent)
		return nil, inconsistent
	}

	return &StampResult{
		MetadataUrl: metadataUrl,
		QRCodeUrl:   qrUrl,
		TxHash:      txHash,
	}, nil
}

// recoverExistingTag handles the "already on chain" outcome of a stale retry:
// the ledger holds a valid record, so the row is repaired rather than failed.
func (s *StampingService) recoverExistingTag(ctx context.Context, tag *model.Tag,
	metadataUrl, qrUrl string) (*StampResult, error) {

	status, err := s.ledger.GetStatus(ctx, tag.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: tag already on chain but status read failed: %v", ErrChainCommitFailed, err)
	}

	chainStatus := model.ChainStatus(status)
	if !chainStatus.IsValid() {
		chainStatus = model.ChainStatusCreated
	}

	if tag.HashTx == "" {
		// The committing attempt never recorded its hash, so the repaired row
		// keeps an empty one until an operator recovers it from the explorer.
		log.Printf("WARNING: tag %s already on chain (status %s) but no transaction hash is recorded, repairing row with hash unknown, reconcile manually", tag.Code, chainStatus)
	} else {
		log.Printf("Tag %s already on chain (status %s), repairing database row", tag.Code, chainStatus)
	}

	if err := s.db.MarkTagStamped(tag.ID, tag.HashTx, chainStatus, time.Now()); err != nil {
		inconsistent := &InconsistentStateError{TagID: tag.ID, TxHash: tag.HashTx, Cause: err}
		log.Printf("ERROR: %v", inconsistent)
		return nil, inconsistent
	}

	return &StampResult{
		MetadataUrl: metadataUrl,
		QRCodeUrl:   qrUrl,
		TxHash:      tag.HashTx,
	}, nil
}

func (s *StampingService) uploadMetadata(code string, doc *TagMetadataDocument) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return s.storage.Save(MetadataKey(code), data, "application/json")
}
