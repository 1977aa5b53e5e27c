package tag_service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTagNotFound        = errors.New("tag not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrTagRevoked         = errors.New("tag is revoked")
	ErrChainCommitFailed  = errors.New("chain commit failed")
	ErrChainCommitTimeout = errors.New("chain commit timed out")
)

// PreconditionError carries every violated stamping precondition at once so a
// caller can show all blockers in a single round trip.
type PreconditionError struct {
	Reasons []string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + strings.Join(e.Reasons, "; ")
}

// InconsistentStateError marks the case where the ledger accepted a transaction
// but the database write failed afterwards. The on-chain record is valid; the
// row must be repaired from ledger state, never by resubmitting the transaction.
type InconsistentStateError struct {
	TagID  int64
	TxHash string
	Cause  error
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("inconsistent state: tag %d committed on chain (tx %s) but database update failed: %v",
		e.TagID, e.TxHash, e.Cause)
}

func (e *InconsistentStateError) Unwrap() error {
	return e.Cause
}
