package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/middleware"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/marketplace"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/storage"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

// EngagementHandler exposes the lifecycle coordinator over HTTP.
type EngagementHandler struct {
	Svc     marketplace.Service
	Storage storage.StorageService
	Logger  *zap.Logger
}

func NewEngagementHandler(svc marketplace.Service, storageSvc storage.StorageService, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{Svc: svc, Storage: storageSvc, Logger: logger}
}

type createRequestPayload struct {
	Vehicle         models.Vehicle `json:"vehicle" binding:"required"`
	ServiceCodes    []string       `json:"serviceCodes" binding:"required"`
	Description     string         `json:"description"`
	PhotosRequested bool           `json:"photosRequested"`
}

func (h *EngagementHandler) CreateRequestHandler(c *gin.Context) {
	var payload createRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	req := &models.ServiceRequest{
		CustomerID:      middleware.Principal(c),
		Vehicle:         payload.Vehicle,
		ServiceCodes:    payload.ServiceCodes,
		Description:     payload.Description,
		PhotosRequested: payload.PhotosRequested,
	}
	created, err := h.Svc.CreateRequest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EngagementHandler) GetRequestHandler(c *gin.Context) {
	req, err := h.Svc.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *EngagementHandler) UploadRequestPhotoHandler(c *gin.Context) {
	requestID := c.Param("id")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Photo not provided", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Photo unreadable", err.Error())
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadPhoto(c.Request.Context(), file, "request-photos/"+requestID)
	if err != nil {
		h.Logger.Error("photo upload failed", zap.String("requestId", requestID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Photo upload failed", err.Error())
		return
	}

	if err := h.Svc.AttachRequestPhoto(c.Request.Context(), requestID, middleware.Principal(c), url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
