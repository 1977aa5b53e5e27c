package tag_service

import (
	"errors"
	"fmt"
	"time"

	"product-auth-system/database"
	"product-auth-system/model"
)

// MetadataVersion current version of the static metadata document
const MetadataVersion = "1.0"

// ProductSnapshot point-in-time copy of a linked product
type ProductSnapshot struct {
	ID          int64    `json:"id"`
	Brand       string   `json:"brand"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Images      []string `json:"images"`
}

// BlockchainRef on-chain reference embedded in the metadata document
type BlockchainRef struct {
	Network         string `json:"network"`
	TransactionHash string `json:"transaction_hash"`
	ExplorerUrl     string `json:"explorer_url,omitempty"`
}

// Verification verification links for the scanning client
type Verification struct {
	VerifyUrl  string        `json:"verify_url"`
	QRCodeUrl  string        `json:"qr_code_url"`
	Blockchain BlockchainRef `json:"blockchain"`
}

// TagMetadataDocument the static off-chain JSON artifact published alongside
// the QR code. Written twice during stamping: once without a transaction hash
// (to obtain a stable URL to pass on chain) and once after the transaction is
// mined. Conceptually immutable after the second write.
type TagMetadataDocument struct {
	Version      string                   `json:"version"`
	TagCode      string                   `json:"tag_code"`
	GeneratedAt  time.Time                `json:"generated_at"`
	Products     []ProductSnapshot        `json:"products"`
	Distribution model.DistributionIntent `json:"distribution"`
	Attributes   map[string]string        `json:"attributes,omitempty"`
	Verification Verification             `json:"verification"`
}

// MetadataBuilder assembles the canonical metadata document for a tag from
// current relational state. Pure read, no side effects, callable repeatedly.
type MetadataBuilder struct {
	db            database.Database
	network       string
	explorerUrl   string
	verifyBaseUrl string
}

// NewMetadataBuilder create metadata builder instance
func NewMetadataBuilder(db database.Database, network, explorerUrl, verifyBaseUrl string) *MetadataBuilder {
	return &MetadataBuilder{
		db:            db,
		network:       network,
		explorerUrl:   explorerUrl,
		verifyBaseUrl: verifyBaseUrl,
	}
}

// Build loads the tag and assembles its metadata document
func (b *MetadataBuilder) Build(tagID int64) (*TagMetadataDocument, error) {
	tag, err := b.db.GetTagByID(tagID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	return b.BuildForTag(tag)
}

// BuildForTag assembles the metadata document for an already-loaded tag.
// QR code URL and transaction hash are left empty for the caller to fill.
func (b *MetadataBuilder) BuildForTag(tag *model.Tag) (*TagMetadataDocument, error) {
	products, err := b.db.GetProductsByIDs(tag.ProductIDList())
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	snapshots := make([]ProductSnapshot, 0, len(products))
	for _, p := range products {
		snapshots = append(snapshots, ProductSnapshot{
			ID:          p.ID,
			Brand:       p.Brand,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Currency:    p.Currency,
			Images:      p.ImageURLList(),
		})
	}

	// Everything except the distribution intent keys goes into attributes
	attributes := tag.MetadataMap()
	delete(attributes, model.MetaKeyRegion)
	delete(attributes, model.MetaKeyCountry)
	delete(attributes, model.MetaKeyChannel)
	delete(attributes, model.MetaKeyIntendedMarket)
	if len(attributes) == 0 {
		attributes = nil
	}

	return &TagMetadataDocument{
		Version:      MetadataVersion,
		TagCode:      tag.Code,
		GeneratedAt:  time.Now().UTC(),
		Products:     snapshots,
		Distribution: tag.DistributionIntent(),
		Attributes:   attributes,
		Verification: Verification{
			VerifyUrl: b.verifyUrl(tag.Code),
			Blockchain: BlockchainRef{
				Network: b.network,
			},
		},
	}, nil
}

// SetTransactionHash fills the blockchain reference once the hash is known
func (b *MetadataBuilder) SetTransactionHash(doc *TagMetadataDocument, txHash string) {
	doc.Verification.Blockchain.TransactionHash = txHash
	if b.explorerUrl != "" && txHash != "" {
		doc.Verification.Blockchain.ExplorerUrl = b.explorerUrl + "/tx/" + txHash
	}
}

func (b *MetadataBuilder) verifyUrl(code string) string {
	if b.verifyBaseUrl == "" {
		return ""
	}
	return b.verifyBaseUrl + "/verify/" + code
}
