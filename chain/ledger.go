package chain

import (
	"context"
	"errors"
)

// Ledger client for the tag registry smart contract. All transaction methods
// block until the transaction is mined and return its hash.
type Ledger interface {
	// CreateTag registers a tag on chain. Fails with ErrTagExists if a tag with
	// the same code was already registered.
	CreateTag(ctx context.Context, code, metadataURI string, productIDs []int64) (string, error)

	// UpdateStatus submits a status-update transaction for a stamped tag.
	UpdateStatus(ctx context.Context, code string, status int) (string, error)

	// RevokeTag submits a revoke transaction carrying the audit reason on chain.
	RevokeTag(ctx context.Context, code, reason string) (string, error)

	// GetStatus reads the current on-chain status of a tag.
	GetStatus(ctx context.Context, code string) (int, error)
}

var (
	ErrTagExists      = errors.New("tag already exists on chain")
	ErrTagNotFound    = errors.New("tag not found on chain")
	ErrCommitRejected = errors.New("chain transaction rejected")
	ErrCommitTimeout  = errors.New("chain transaction wait timed out")
)
