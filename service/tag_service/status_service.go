package tag_service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"product-auth-system/chain"
	"product-auth-system/database"
	"product-auth-system/model"
)

// StatusService drives the post-stamping chain-status lifecycle. Every change
// is committed on chain first and mirrored to the database second, so the
// database never claims a status the ledger does not hold.
type StatusService struct {
	db     database.Database
	ledger chain.Ledger
}

// NewStatusService create status service instance
func NewStatusService(db database.Database, ledger chain.Ledger) *StatusService {
	return &StatusService{db: db, ledger: ledger}
}

// StatusChangeResult result of an on-chain status change
type StatusChangeResult struct {
	TagID     int64             `json:"tag_id"`
	NewStatus model.ChainStatus `json:"new_status"`
	TxHash    string            `json:"tx_hash"`
}

// Advance moves a stamped tag to a new non-terminal chain status. Revocation
// is not reachable from here; it has its own operation with a mandatory reason.
func (s *StatusService) Advance(ctx context.Context, tagID int64, newStatus model.ChainStatus) (*StatusChangeResult, error) {
	if newStatus == model.ChainStatusRevoked {
		return nil, fmt.Errorf("%w: revocation must use the revoke operation", ErrInvalidTransition)
	}
	if newStatus == model.ChainStatusCreated {
		return nil, fmt.Errorf("%w: created is set by stamping and cannot be a target", ErrInvalidTransition)
	}
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %d", ErrInvalidTransition, newStatus)
	}

	tag, err := s.loadStampedTag(tagID)
	if err != nil {
		return nil, err
	}

	txHash, err := s.ledger.UpdateStatus(ctx, tag.Code, int(newStatus))
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	if err := s.db.UpdateTagChainStatus(tag.ID, newStatus, txHash, ""); err != nil {
		inconsistent := &InconsistentStateError{TagID: tag.ID, TxHash: txHash, Cause: err}
		log.Printf("ERROR: %v", inconsistent)
		return nil, inconsistent
	}

	return &StatusChangeResult{TagID: tag.ID, NewStatus: newStatus, TxHash: txHash}, nil
}

// Revoke marks a stamped tag as permanently invalid. Terminal: no status
// change is accepted afterwards. The reason is recorded on chain and in the
// database.
func (s *StatusService) Revoke(ctx context.Context, tagID int64, reason string) (*StatusChangeResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: revoke reason is required", ErrInvalidArgument)
	}

	tag, err := s.loadStampedTag(tagID)
	if err != nil {
		return nil, err
	}

	txHash, err := s.ledger.RevokeTag(ctx, tag.Code, reason)
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	if err := s.db.UpdateTagChainStatus(tag.ID, model.ChainStatusRevoked, txHash, reason); err != nil {
		inconsistent := &InconsistentStateError{TagID: tag.ID, TxHash: txHash, Cause: err}
		log.Printf("ERROR: %v", inconsistent)
		return nil, inconsistent
	}

	return &StatusChangeResult{TagID: tag.ID, NewStatus: model.ChainStatusRevoked, TxHash: txHash}, nil
}

// loadStampedTag loads the tag and enforces the shared status-change guards
func (s *StatusService) loadStampedTag(tagID int64) (*model.Tag, error) {
	tag, err := s.db.GetTagByID(tagID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}

	if !tag.IsStamped {
		return nil, &PreconditionError{Reasons: []string{"tag is not stamped"}}
	}
	if tag.IsRevoked() {
		return nil, ErrTagRevoked
	}
	return tag, nil
}

func wrapLedgerError(err error) error {
	switch {
	case errors.Is(err, chain.ErrTagNotFound):
		return fmt.Errorf("%w: tag missing on chain: %v", ErrChainCommitFailed, err)
	case errors.Is(err, chain.ErrCommitTimeout):
		return fmt.Errorf("%w: %v", ErrChainCommitTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrChainCommitFailed, err)
	}
}
