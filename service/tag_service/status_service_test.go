package tag_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"product-auth-system/chain"
	"product-auth-system/model"
)

func stampedTag(db *fakeDB) *model.Tag {
	tag := stampableTag(db)
	now := time.Now()
	db.MarkTagStamped(tag.ID, "0xstamp", model.ChainStatusCreated, now)
	stamped, _ := db.GetTagByID(tag.ID)
	return stamped
}

func TestAdvance_Success(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)
	ledger := &fakeLedger{}

	service := NewStatusService(db, ledger)

	result, err := service.Advance(context.Background(), tag.ID, model.ChainStatusDistributed)
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if result.NewStatus != model.ChainStatusDistributed {
		t.Errorf("Expected status distributed, got %s", result.NewStatus)
	}
	if result.TxHash != "0xupdated" {
		t.Errorf("Expected tx hash 0xupdated, got %s", result.TxHash)
	}

	after, _ := db.GetTagByID(tag.ID)
	if after.ChainStatus == nil || *after.ChainStatus != model.ChainStatusDistributed {
		t.Errorf("Expected persisted status distributed, got %v", after.ChainStatus)
	}
}

func TestAdvance_RejectsRevokedTarget(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)

	service := NewStatusService(db, &fakeLedger{})

	_, err := service.Advance(context.Background(), tag.ID, model.ChainStatusRevoked)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition for revoked target, got %v", err)
	}
}

func TestAdvance_RejectsCreatedTarget(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)
	db.UpdateTagChainStatus(tag.ID, model.ChainStatusDistributed, "0xdist", "")
	ledger := &fakeLedger{}

	service := NewStatusService(db, ledger)

	// Created is the initial status written by stamping; a distributed tag
	// must not be movable back to it
	_, err := service.Advance(context.Background(), tag.ID, model.ChainStatusCreated)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition for created target, got %v", err)
	}
	if len(ledger.updates) != 0 {
		t.Errorf("Expected no on-chain update, got %v", ledger.updates)
	}
}

func TestAdvance_RejectsUnknownStatus(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)

	service := NewStatusService(db, &fakeLedger{})

	_, err := service.Advance(context.Background(), tag.ID, model.ChainStatus(42))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition for unknown status, got %v", err)
	}
}

func TestAdvance_RequiresStampedTag(t *testing.T) {
	db := newFakeDB()
	tag := stampableTag(db) // published but never stamped

	service := NewStatusService(db, &fakeLedger{})

	_, err := service.Advance(context.Background(), tag.ID, model.ChainStatusDistributed)
	var precondition *PreconditionError
	if !errors.As(err, &precondition) {
		t.Errorf("Expected PreconditionError for unstamped tag, got %v", err)
	}
}

func TestAdvance_RevokedTagIsTerminal(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)
	ledger := &fakeLedger{}
	service := NewStatusService(db, ledger)

	if _, err := service.Revoke(context.Background(), tag.ID, "counterfeit batch"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	// Every subsequent change must fail, advance and revoke alike
	if _, err := service.Advance(context.Background(), tag.ID, model.ChainStatusClaimed); !errors.Is(err, ErrTagRevoked) {
		t.Errorf("Expected ErrTagRevoked on advance after revoke, got %v", err)
	}
	if _, err := service.Revoke(context.Background(), tag.ID, "again"); !errors.Is(err, ErrTagRevoked) {
		t.Errorf("Expected ErrTagRevoked on second revoke, got %v", err)
	}
	if len(ledger.revokes) != 1 {
		t.Errorf("Expected exactly 1 on-chain revoke, got %d", len(ledger.revokes))
	}
}

func TestAdvance_ChainFailureKeepsDBUnchanged(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)
	ledger := &fakeLedger{updateErr: chain.ErrCommitRejected}

	service := NewStatusService(db, ledger)

	_, err := service.Advance(context.Background(), tag.ID, model.ChainStatusDistributed)
	if !errors.Is(err, ErrChainCommitFailed) {
		t.Fatalf("Expected ErrChainCommitFailed, got %v", err)
	}

	after, _ := db.GetTagByID(tag.ID)
	if after.ChainStatus == nil || *after.ChainStatus != model.ChainStatusCreated {
		t.Errorf("Expected status to stay created, got %v", after.ChainStatus)
	}
}

func TestAdvance_DBFailureAfterCommitIsInconsistentState(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)
	db.updateChainStatusErr = errors.New("connection lost")

	service := NewStatusService(db, &fakeLedger{})

	_, err := service.Advance(context.Background(), tag.ID, model.ChainStatusDistributed)
	var inconsistent *InconsistentStateError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("Expected InconsistentStateError, got %v", err)
	}
	if inconsistent.TxHash != "0xupdated" {
		t.Errorf("Expected tx hash 0xupdated, got %s", inconsistent.TxHash)
	}
}

func TestRevoke_RequiresReason(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)

	service := NewStatusService(db, &fakeLedger{})

	for _, reason := range []string{"", "   "} {
		if _, err := service.Revoke(context.Background(), tag.ID, reason); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument for reason %q, got %v", reason, err)
		}
	}
}

func TestRevoke_PersistsReason(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)
	ledger := &fakeLedger{}

	service := NewStatusService(db, ledger)

	result, err := service.Revoke(context.Background(), tag.ID, "counterfeit batch recalled")
	if err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if result.NewStatus != model.ChainStatusRevoked {
		t.Errorf("Expected status revoked, got %s", result.NewStatus)
	}

	after, _ := db.GetTagByID(tag.ID)
	if !after.IsRevoked() {
		t.Error("Expected tag revoked")
	}
	if after.RevokeReason != "counterfeit batch recalled" {
		t.Errorf("Expected persisted reason, got %q", after.RevokeReason)
	}
	if len(ledger.revokes) != 1 || ledger.revokes[0] != "counterfeit batch recalled" {
		t.Errorf("Expected reason sent on chain, got %v", ledger.revokes)
	}
}

func TestStatus_TimeoutIsDistinguished(t *testing.T) {
	db := newFakeDB()
	tag := stampedTag(db)
	ledger := &fakeLedger{updateErr: chain.ErrCommitTimeout, revokeErr: chain.ErrCommitTimeout}

	service := NewStatusService(db, ledger)

	if _, err := service.Advance(context.Background(), tag.ID, model.ChainStatusDistributed); !errors.Is(err, ErrChainCommitTimeout) {
		t.Errorf("Expected ErrChainCommitTimeout on advance, got %v", err)
	}
	if _, err := service.Revoke(context.Background(), tag.ID, "reason"); !errors.Is(err, ErrChainCommitTimeout) {
		t.Errorf("Expected ErrChainCommitTimeout on revoke, got %v", err)
	}
}
