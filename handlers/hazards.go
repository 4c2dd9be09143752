package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"coastwatch/database"
	"coastwatch/middleware"
	"coastwatch/models"
	"coastwatch/utils/upload"
)

// CreateHazard accepts a multipart hazard submission with up to five
// media files under the "media" field. Attribution to a user account
// happens only when a valid bearer token accompanied the request.
func (h *Handlers) CreateHazard(c *gin.Context) {
	hazardType := strings.ToLower(strings.TrimSpace(c.PostForm("type")))
	description := strings.TrimSpace(c.PostForm("description"))
	name := strings.TrimSpace(c.PostForm("name"))
	phone := strings.TrimSpace(c.PostForm("phone"))

	if hazardType == "" || description == "" || name == "" || phone == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "type, description, name and phone are required"})
		return
	}
	if !models.IsHazardType(hazardType) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown hazard type: " + hazardType})
		return
	}

	report := &models.HazardReport{
		Type:        hazardType,
		Description: description,
		Name:        name,
		Phone:       phone,
	}

	// FormData serializes the location object as a string; a broken
	// value is dropped rather than failing the whole submission.
	if raw := c.PostForm("location"); raw != "" {
		var loc models.ReportLocation
		if err := json.Unmarshal([]byte(raw), &loc); err != nil {
			log.Warnf("failed to parse location %q: %v", raw, err)
		} else {
			report.Location = &loc
		}
	}

	if user := middleware.CurrentUser(c); user != nil {
		id := user.ID
		report.User = &id
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["media"]
		if len(files) > upload.MaxFiles {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "too many media files, at most 5 allowed"})
			return
		}
		for _, fh := range files {
			if !upload.Allowed(fh.Filename) {
				// disallowed extensions are skipped, not fatal
				log.Warnf("skipping disallowed upload %q", fh.Filename)
				continue
			}
			if fh.Size > upload.MaxFileSize {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large: " + fh.Filename})
				return
			}
			media, err := upload.SaveFile(h.uploadDir, fh)
			if err != nil {
				log.Errorf("failed to store upload: %v", err)
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store media file"})
				return
			}
			report.Media = append(report.Media, *media)
		}
	}

	stored, err := h.hazards.Create(c.Request.Context(), report)
	if err != nil {
		log.Errorf("failed to create hazard report: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create hazard report"})
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// ListHazards returns all hazard reports.
func (h *Handlers) ListHazards(c *gin.Context) {
	reports, err := h.hazards.List(c.Request.Context())
	if err != nil {
		log.Errorf("failed to list hazard reports: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list hazard reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetHazard returns a single hazard report by id.
func (h *Handlers) GetHazard(c *gin.Context) {
	report, err := h.hazards.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "hazard not found"})
			return
		}
		log.Errorf("failed to get hazard report: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get hazard report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// HazardStats returns aggregate report counts. Admin only.
func (h *Handlers) HazardStats(c *gin.Context) {
	stats, err := h.hazards.Stats(c.Request.Context())
	if err != nil {
		log.Errorf("failed to compute hazard stats: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to compute hazard stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
