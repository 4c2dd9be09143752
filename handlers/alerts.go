package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"coastwatch/database"
	"coastwatch/models"
)

// CreateAlert issues an alert referencing an existing hazard report.
func (h *Handlers) CreateAlert(c *gin.Context) {
	var req models.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	alert, err := h.alerts.Create(c.Request.Context(), req.Message, req.Hazard, req.Recipients)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "hazard not found"})
			return
		}
		log.Errorf("failed to create alert: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create alert"})
		return
	}

	h.notifyRecipients(alert)

	c.JSON(http.StatusCreated, alert)
}

// notifyRecipients emails alert recipients that look like addresses.
// Best effort: delivery failures are logged, never surfaced.
func (h *Handlers) notifyRecipients(alert *models.AlertResponse) {
	if h.notifier == nil || alert.Hazard == nil {
		return
	}
	for _, recipient := range alert.Recipients {
		if !strings.Contains(recipient, "@") {
			continue
		}
		go func(to string) {
			if err := h.notifier.SendAlert(to, alert.Message, alert.Hazard.Type); err != nil {
				log.Warnf("failed to email alert to %s: %v", to, err)
			}
		}(recipient)
	}
}

// ListAlerts returns all alerts, hazards embedded.
func (h *Handlers) ListAlerts(c *gin.Context) {
	alerts, err := h.alerts.List(c.Request.Context())
	if err != nil {
		log.Errorf("failed to list alerts: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// ListAlertsByType returns alerts whose hazard matches the type filter.
func (h *Handlers) ListAlertsByType(c *gin.Context) {
	alerts, err := h.alerts.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		log.Errorf("failed to list alerts by type: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// MarkAlertRead transitions an alert to read.
func (h *Handlers) MarkAlertRead(c *gin.Context) {
	alert, err := h.alerts.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "alert not found"})
			return
		}
		log.Errorf("failed to mark alert read: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to mark alert read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert marked as read", "alert": alert})
}
