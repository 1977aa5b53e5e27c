package tag_service

import (
	"testing"

	"product-auth-system/model"
)

func TestBuildForTag_SnapshotAndDistribution(t *testing.T) {
	db := newFakeDB()
	tag := stampableTag(db)

	builder := NewMetadataBuilder(db, "mainnet", "https://explorer.test", "https://verify.test")

	doc, err := builder.BuildForTag(tag)
	if err != nil {
		t.Fatalf("BuildForTag failed: %v", err)
	}

	if doc.Version != MetadataVersion {
		t.Errorf("Expected version %s, got %s", MetadataVersion, doc.Version)
	}
	if doc.TagCode != tag.Code {
		t.Errorf("Expected tag code %s, got %s", tag.Code, doc.TagCode)
	}
	if len(doc.Products) != 1 || doc.Products[0].Name != "Trail Sneaker V2" {
		t.Errorf("Unexpected product snapshots: %+v", doc.Products)
	}
	if doc.Distribution.Region != "southeast-asia" || doc.Distribution.Country != "id" {
		t.Errorf("Unexpected distribution intent: %+v", doc.Distribution)
	}

	// Distribution keys must not leak into attributes
	if _, ok := doc.Attributes[model.MetaKeyRegion]; ok {
		t.Error("Distribution region leaked into attributes")
	}
	if doc.Attributes["batch"] != "B-42" {
		t.Errorf("Expected batch attribute, got %v", doc.Attributes)
	}

	if doc.Verification.VerifyUrl != "https://verify.test/verify/"+tag.Code {
		t.Errorf("Unexpected verify url: %s", doc.Verification.VerifyUrl)
	}
	if doc.Verification.Blockchain.Network != "mainnet" {
		t.Errorf("Expected network mainnet, got %s", doc.Verification.Blockchain.Network)
	}
	if doc.Verification.Blockchain.TransactionHash != "" {
		t.Error("Expected empty transaction hash in the draft")
	}
}

func TestSetTransactionHash(t *testing.T) {
	db := newFakeDB()
	tag := stampableTag(db)
	builder := NewMetadataBuilder(db, "mainnet", "https://explorer.test", "https://verify.test")

	doc, err := builder.BuildForTag(tag)
	if err != nil {
		t.Fatalf("BuildForTag failed: %v", err)
	}

	builder.SetTransactionHash(doc, "0xabc")
	if doc.Verification.Blockchain.TransactionHash != "0xabc" {
		t.Errorf("Expected tx hash 0xabc, got %s", doc.Verification.Blockchain.TransactionHash)
	}
	if doc.Verification.Blockchain.ExplorerUrl != "https://explorer.test/tx/0xabc" {
		t.Errorf("Unexpected explorer url: %s", doc.Verification.Blockchain.ExplorerUrl)
	}
}

func TestBuildForTag_ProductOrderPreserved(t *testing.T) {
	db := newFakeDB()

	first := &model.Product{Name: "First"}
	second := &model.Product{Name: "Second"}
	db.CreateProduct(first)
	db.CreateProduct(second)

	tag := &model.Tag{Code: "TAG-ORDER", PublishStatus: model.PublishStatusPublished}
	tag.SetProductIDList([]int64{second.ID, first.ID})
	db.CreateTag(tag)

	builder := NewMetadataBuilder(db, "mainnet", "", "")

	doc, err := builder.BuildForTag(tag)
	if err != nil {
		t.Fatalf("BuildForTag failed: %v", err)
	}
	if len(doc.Products) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(doc.Products))
	}
	if doc.Products[0].Name != "Second" || doc.Products[1].Name != "First" {
		t.Errorf("Expected linkage order preserved, got %s, %s", doc.Products[0].Name, doc.Products[1].Name)
	}
}
