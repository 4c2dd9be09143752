package handlers

import (
	"context"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"coastwatch/models"
)

// CreateResourceRequest submits a physical-resource aid request.
func (h *Handlers) CreateResourceRequest(c *gin.Context) {
	h.createAidRequest(c, h.requests.CreateResource)
}

// CreateServiceRequest submits a service aid request.
func (h *Handlers) CreateServiceRequest(c *gin.Context) {
	h.createAidRequest(c, h.requests.CreateService)
}

func (h *Handlers) createAidRequest(c *gin.Context,
	create func(ctx context.Context, input models.AidRequestInput) (*models.AidRequest, error)) {
	var input models.AidRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.AidRequestEnvelope{Success: false, Error: err.Error()})
		return
	}

	request, err := create(c.Request.Context(), input)
	if err != nil {
		log.Errorf("failed to create aid request: %v", err)
		c.JSON(http.StatusInternalServerError, models.AidRequestEnvelope{Success: false, Error: "failed to create request"})
		return
	}
	c.JSON(http.StatusCreated, models.AidRequestEnvelope{Success: true, Data: request})
}

// ListResourceRequests returns all resource requests, newest first.
func (h *Handlers) ListResourceRequests(c *gin.Context) {
	h.listAidRequests(c, h.requests.ListResources)
}

// ListServiceRequests returns all service requests, newest first.
func (h *Handlers) ListServiceRequests(c *gin.Context) {
	h.listAidRequests(c, h.requests.ListServices)
}

func (h *Handlers) listAidRequests(c *gin.Context,
	list func(ctx context.Context) ([]*models.AidRequest, error)) {
	requests, err := list(c.Request.Context())
	if err != nil {
		log.Errorf("failed to list aid requests: %v", err)
		c.JSON(http.StatusInternalServerError, models.AidRequestEnvelope{Success: false, Error: "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, models.AidRequestEnvelope{Success: true, Data: requests})
}

// HelpMeSubmissions merges resource and service requests into one
// type-tagged array, newest first.
func (h *Handlers) HelpMeSubmissions(c *gin.Context) {
	merged, err := h.requests.ListAll(c.Request.Context())
	if err != nil {
		log.Errorf("failed to list help-me submissions: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list submissions"})
		return
	}
	c.JSON(http.StatusOK, merged)
}
