package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"product-auth-system/controller/respond"
	"product-auth-system/service/fraud_service"
)

// ScanHandler consumer scan HTTP handler
type ScanHandler struct {
	scanService *fraud_service.ScanService
}

// NewScanHandler create scan handler instance
func NewScanHandler(scanService *fraud_service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// AssessScanRequest request structure for scan risk assessment
type AssessScanRequest struct {
	Code         string   `json:"code" binding:"required" example:"TAG-8F3K2L9Q"`
	LocationName string   `json:"location_name" example:"Jakarta, Indonesia"`
	Latitude     *float64 `json:"latitude" example:"-6.2088"`
	Longitude    *float64 `json:"longitude" example:"106.8456"`
}

// AssessScanRisk godoc
// @Summary      Assess the fraud risk of a scan
// @Description  Records the scan event and returns a risk verdict for the tag at the given location. Repeat scans from the same place within the cache TTL reuse the verdict.
// @Tags         scans
// @Accept       json
// @Produce      json
// @Param        request  body  AssessScanRequest  true  "Scanned code and location"
// @Success      200  {object}  respond.Response{data=respond.RiskAssessmentResponse}
// @Failure      400  {object}  respond.Response
// @Failure      404  {object}  respond.Response
// @Router       /scans/assess [post]
func (h *ScanHandler) AssessScanRisk(c *gin.Context) {
	var req AssessScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "code is required")
		return
	}

	result, err := h.scanService.AssessScan(c.Request.Context(), req.Code, fraud_service.ScanLocation{
		LocationName: req.LocationName,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		if errors.Is(err, fraud_service.ErrTagNotFound) {
			respond.NotFound(c, err.Error())
			return
		}
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, respond.ToRiskAssessmentResponse(result.Assessment))
}
