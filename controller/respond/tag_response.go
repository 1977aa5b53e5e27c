package respond

import (
	"time"

	"product-auth-system/model"
	"product-auth-system/service/fraud_service"
	"product-auth-system/service/tag_service"
)

// TagResponse tag information response structure
type TagResponse struct {
	ID            int64             `json:"id" example:"1"`
	Code          string            `json:"code" example:"TAG-8F3K2L9Q"`
	ProductIds    []int64           `json:"product_ids"`
	MetaData      map[string]string `json:"meta_data,omitempty"`
	PublishStatus string            `json:"publish_status" example:"published"`
	IsStamped     bool              `json:"is_stamped" example:"true"`
	ChainStatus   *string           `json:"chain_status,omitempty" example:"created"`
	HashTx        string            `json:"hash_tx,omitempty" example:"0xabc123"`
	RevokeReason  string            `json:"revoke_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at" example:"2024-01-01T00:00:00Z"`
	UpdatedAt     time.Time         `json:"updated_at" example:"2024-01-01T00:00:00Z"`
	StampedAt     *time.Time        `json:"stamped_at,omitempty" example:"2024-01-01T00:00:00Z"`
}

// StampResultResponse stamping result response structure
type StampResultResponse struct {
	MetadataUrl string `json:"metadata_url" example:"https://cdn.example.com/tags/meta/TAG-8F3K2L9Q.json"`
	QRCodeUrl   string `json:"qr_code_url" example:"https://cdn.example.com/tags/qr/TAG-8F3K2L9Q.png"`
	TxHash      string `json:"tx_hash" example:"0xabc123"`
}

// StampingPreviewResponse stamping preview response structure
type StampingPreviewResponse struct {
	CanStamp      bool                             `json:"can_stamp" example:"true"`
	Reasons       []string                         `json:"reasons"`
	MetadataDraft *tag_service.TagMetadataDocument `json:"metadata_draft,omitempty"`
}

// StatusChangeResponse status change response structure
type StatusChangeResponse struct {
	TagID     int64  `json:"tag_id" example:"1"`
	NewStatus string `json:"new_status" example:"distributed"`
	TxHash    string `json:"tx_hash" example:"0xdef456"`
}

// RiskAssessmentResponse scan risk assessment response structure
type RiskAssessmentResponse struct {
	Verdict   *fraud_service.Verdict `json:"verdict"`
	FromCache bool                   `json:"from_cache" example:"false"`
	ExpiresAt time.Time              `json:"expires_at" example:"2024-01-01T00:05:00Z"`
}

// ToTagResponse convert model to response
func ToTagResponse(tag *model.Tag) TagResponse {
	if tag == nil {
		return TagResponse{}
	}

	var chainStatus *string
	if tag.ChainStatus != nil {
		name := tag.ChainStatus.String()
		chainStatus = &name
	}

	meta := tag.MetadataMap()
	if len(meta) == 0 {
		meta = nil
	}

	return TagResponse{
		ID:            tag.ID,
		Code:          tag.Code,
		ProductIds:    tag.ProductIDList(),
		MetaData:      meta,
		PublishStatus: string(tag.PublishStatus),
		IsStamped:     tag.IsStamped,
		ChainStatus:   chainStatus,
		HashTx:        tag.HashTx,
		RevokeReason:  tag.RevokeReason,
		CreatedAt:     tag.CreatedAt,
		UpdatedAt:     tag.UpdatedAt,
		StampedAt:     tag.StampedAt,
	}
}

// TagListResponse tag list response structure
type TagListResponse struct {
	Tags       []TagResponse `json:"tags"`
	NextCursor int64         `json:"next_cursor" example:"100"`
	HasMore    bool          `json:"has_more" example:"true"`
}

// ToTagListResponse convert tag list to response
func ToTagListResponse(tags []*model.Tag, nextCursor int64, hasMore bool) TagListResponse {
	responses := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, ToTagResponse(tag))
	}
	return TagListResponse{
		Tags:       responses,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}
}

// ToStampResultResponse convert stamping result to response
func ToStampResultResponse(result *tag_service.StampResult) StampResultResponse {
	if result == nil {
		return StampResultResponse{}
	}
	return StampResultResponse{
		MetadataUrl: result.MetadataUrl,
		QRCodeUrl:   result.QRCodeUrl,
		TxHash:      result.TxHash,
	}
}

// ToStampingPreviewResponse convert preview to response
func ToStampingPreviewResponse(preview *tag_service.StampingPreview) StampingPreviewResponse {
	if preview == nil {
		return StampingPreviewResponse{}
	}
	return StampingPreviewResponse{
		CanStamp:      preview.CanStamp,
		Reasons:       preview.Reasons,
		MetadataDraft: preview.MetadataDraft,
	}
}

// ToStatusChangeResponse convert status change result to response
func ToStatusChangeResponse(result *tag_service.StatusChangeResult) StatusChangeResponse {
	if result == nil {
		return StatusChangeResponse{}
	}
	return StatusChangeResponse{
		TagID:     result.TagID,
		NewStatus: result.NewStatus.String(),
		TxHash:    result.TxHash,
	}
}

// ToRiskAssessmentResponse convert assessment to response
func ToRiskAssessmentResponse(assessment *fraud_service.Assessment) RiskAssessmentResponse {
	if assessment == nil {
		return RiskAssessmentResponse{}
	}
	return RiskAssessmentResponse{
		Verdict:   assessment.Verdict,
		FromCache: assessment.FromCache,
		ExpiresAt: assessment.ExpiresAt,
	}
}
