package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"product-auth-system/controller/respond"
	"product-auth-system/model"
	"product-auth-system/service/tag_service"
)

// TagHandler tag lifecycle HTTP handler
type TagHandler struct {
	stampingService *tag_service.StampingService
	statusService   *tag_service.StatusService
	tagService      *tag_service.TagService
}

// NewTagHandler create tag handler instance
func NewTagHandler(stampingService *tag_service.StampingService, statusService *tag_service.StatusService,
	tagService *tag_service.TagService) *TagHandler {
	return &TagHandler{
		stampingService: stampingService,
		statusService:   statusService,
		tagService:      tagService,
	}
}

// CreateTagRequest request structure for tag creation
type CreateTagRequest struct {
	Code          string            `json:"code" example:"TAG-8F3K2L9Q"`
	ProductIds    []int64           `json:"product_ids"`
	MetaData      map[string]string `json:"meta_data"`
	PublishStatus string            `json:"publish_status" example:"draft"`
}

// UpdateTagRequest request structure for tag update. Omitted fields are left unchanged.
type UpdateTagRequest struct {
	ProductIds    []int64           `json:"product_ids"`
	MetaData      map[string]string `json:"meta_data"`
	PublishStatus *string           `json:"publish_status" example:"published"`
}

// AdvanceStatusRequest request structure for a chain status change
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required" example:"distributed"`
}

// RevokeRequest request structure for tag revocation
type RevokeRequest struct {
	Reason string `json:"reason" binding:"required" example:"counterfeit batch recalled"`
}

// chainStatusFromName maps a status name to its chain value
func chainStatusFromName(name string) (model.ChainStatus, bool) {
	for s := model.ChainStatusCreated; s <= model.ChainStatusRevoked; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

func tagIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.InvalidParam(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// PreviewStamping godoc
// @Summary      Preview stamping preconditions
// @Description  Returns every blocker preventing the tag from being stamped, plus a metadata draft when stampable. No side effects.
// @Tags         tags
// @Produce      json
// @Param        id  path  int  true  "Tag ID"
// @Success      200  {object}  respond.Response{data=respond.StampingPreviewResponse}
// @Failure      404  {object}  respond.Response
// @Router       /tags/{id}/stamping/preview [get]
func (h *TagHandler) PreviewStamping(c *gin.Context) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	preview, err := h.stampingService.Preview(id)
	if err != nil {
		h.respondTagError(c, err)
		return
	}

	respond.Success(c, respond.ToStampingPreviewResponse(preview))
}

// Stamp godoc
// @Summary      Stamp a tag onto the blockchain
// @Description  Runs the full stamping pipeline: QR generation, metadata publish, chain commit, status initialization. One-way; a stamped tag can never be unstamped.
// @Tags         tags
// @Produce      json
// @Param        id  path  int  true  "Tag ID"
// @Success      200  {object}  respond.Response{data=respond.StampResultResponse}
// @Failure      400  {object}  respond.Response
// @Failure      404  {object}  respond.Response
// @Failure      502  {object}  respond.Response
// @Failure      504  {object}  respond.Response
// @Router       /tags/{id}/stamp [post]
func (h *TagHandler) Stamp(c *gin.Context) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	result, err := h.stampingService.Stamp(c.Request.Context(), id)
	if err != nil {
		h.respondTagError(c, err)
		return
	}

	respond.Success(c, respond.ToStampResultResponse(result))
}

// AdvanceStatus godoc
// @Summary      Advance the on-chain status of a stamped tag
// @Description  Moves the tag to a new non-terminal status (distributed, claimed, transferred, flagged). Revocation has its own endpoint.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id       path  int                   true  "Tag ID"
// @Param        request  body  AdvanceStatusRequest  true  "New status"
// @Success      200  {object}  respond.Response{data=respond.StatusChangeResponse}
// @Failure      400  {object}  respond.Response
// @Failure      404  {object}  respond.Response
// @Failure      409  {object}  respond.Response
// @Router       /tags/{id}/status [post]
func (h *TagHandler) AdvanceStatus(c *gin.Context) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	var req AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "status is required")
		return
	}

	status, ok := chainStatusFromName(req.Status)
	if !ok {
		respond.InvalidParam(c, "unknown status: "+req.Status)
		return
	}

	result, err := h.statusService.Advance(c.Request.Context(), id, status)
	if err != nil {
		h.respondTagError(c, err)
		return
	}

	respond.Success(c, respond.ToStatusChangeResponse(result))
}

// Revoke godoc
// @Summary      Revoke a stamped tag
// @Description  Marks the tag permanently invalid on chain and in the database. Terminal; requires a reason.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id       path  int            true  "Tag ID"
// @Param        request  body  RevokeRequest  true  "Revoke reason"
// @Success      200  {object}  respond.Response{data=respond.StatusChangeResponse}
// @Failure      400  {object}  respond.Response
// @Failure      404  {object}  respond.Response
// @Failure      409  {object}  respond.Response
// @Router       /tags/{id}/revoke [post]
func (h *TagHandler) Revoke(c *gin.Context) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	var req RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "reason is required")
		return
	}

	result, err := h.statusService.Revoke(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.respondTagError(c, err)
		return
	}

	respond.Success(c, respond.ToStatusChangeResponse(result))
}

// GetTag godoc
// @Summary      Get tag by ID
// @Tags         tags
// @Produce      json
// @Param        id  path  int  true  "Tag ID"
// @Success      200  {object}  respond.Response{data=respond.TagResponse}
// @Failure      404  {object}  respond.Response
// @Router       /tags/{id} [get]
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	tag, err := h.tagService.GetByID(id)
	if err != nil {
		h.respondTagError(c, err)
		return
	}

	respond.Success(c, respond.ToTagResponse(tag))
}

// GetTagByCode godoc
// @Summary      Get tag by QR code value
// @Description  Resolves the code embedded in a QR image to the tag record, as used by the consumer verification flow.
// @Tags         tags
// @Produce      json
// @Param        code  path  string  true  "Tag code"
// @Success      200  {object}  respond.Response{data=respond.TagResponse}
// @Failure      404  {object}  respond.Response
// @Router       /tags/code/{code} [get]
func (h *TagHandler) GetTagByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		respond.InvalidParam(c, "code is required")
		return
	}

	tag, err := h.tagService.GetByCode(code)
	if err != nil {
		h.respondTagError(c, err)
		return
	}

	respond.Success(c, respond.ToTagResponse(tag))
}

// CreateTag godoc
// @Summary      Create a tag
// @Description  Creates a draft tag. The code is generated when omitted and immutable afterwards.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        request  body  CreateTagRequest  true  "Tag fields"
// @Success      200  {object}  respond.Response{data=respond.TagResponse}
// @Failure      400  {object}  respond.Response
// @Router       /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}

	tag, err := h.tagService.Create(tag_service.CreateTagInput{
		Code:          req.Code,
		ProductIds:    req.ProductIds,
		MetaData:      req.MetaData,
		PublishStatus: model.PublishStatus(req.PublishStatus),
	})
	if err != nil {
		h.respondTagError(c, err)
		return
	}

	respond.Success(c, respond.ToTagResponse(tag))
}

// UpdateTag godoc
// @Summary      Update a tag
// @Description  Edits tag fields. Linked products and metadata are frozen once the tag is stamped.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id       path  int               true  "Tag ID"
// @Param        request  body  UpdateTagRequest  true  "Fields to change"
// @Success      200  {object}  respond.Response{data=respond.TagResponse}
// @Failure      400  {object}  respond.Response
// @Failure      404  {object}  respond.Response
// @Router       /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}

	input := tag_service.UpdateTagInput{
		ProductIds: req.ProductIds,
		MetaData:   req.MetaData,
	}
	if req.PublishStatus != nil {
		status := model.PublishStatus(*req.PublishStatus)
		input.PublishStatus = &status
	}

	tag, err := h.tagService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.respondTagError(c, err)
		return
	}

	respond.Success(c, respond.ToTagResponse(tag))
}

// ListTags godoc
// @Summary      List tags
// @Description  Returns tags in reverse ID order with cursor pagination.
// @Tags         tags
// @Produce      json
// @Param        cursor  query  int  false  "Cursor (0 for the first page)"
// @Param        size    query  int  false  "Page size"
// @Success      200  {object}  respond.Response{data=respond.TagListResponse}
// @Failure      500  {object}  respond.Response
// @Router       /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	cursor, _ := strconv.ParseInt(c.DefaultQuery("cursor", "0"), 10, 64)
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	tags, nextCursor, hasMore, err := h.tagService.List(cursor, size)
	if err != nil {
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, respond.ToTagListResponse(tags, nextCursor, hasMore))
}

// respondTagError maps service errors to HTTP responses
func (h *TagHandler) respondTagError(c *gin.Context, err error) {
	var precondition *tag_service.PreconditionError
	var inconsistent *tag_service.InconsistentStateError

	switch {
	case errors.As(err, &precondition):
		respond.InvalidParam(c, precondition.Error())
	case errors.As(err, &inconsistent):
		// The chain commit succeeded; never tell the caller to retry.
		log.Printf("ERROR: inconsistent state surfaced to API: %v", inconsistent)
		respond.ServerError(c, "stamping succeeded on chain but could not be finalized, contact support")
	case errors.Is(err, tag_service.ErrTagNotFound):
		respond.NotFound(c, err.Error())
	case errors.Is(err, tag_service.ErrInvalidTransition), errors.Is(err, tag_service.ErrInvalidArgument):
		respond.InvalidParam(c, err.Error())
	case errors.Is(err, tag_service.ErrTagRevoked):
		respond.Conflict(c, err.Error())
	case errors.Is(err, tag_service.ErrChainCommitTimeout):
		respond.GatewayTimeout(c, err.Error())
	case errors.Is(err, tag_service.ErrChainCommitFailed):
		respond.BadGateway(c, err.Error())
	default:
		respond.ServerError(c, err.Error())
	}
}
