package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"coastwatch/database"
	"coastwatch/models"
	"coastwatch/utils/otp"
)

// SendOTP classifies the contact, issues a code and dispatches it over
// the matching transport.
func (h *Handlers) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "contact is required"})
		return
	}

	contactType := otp.ClassifyContact(req.Contact)
	code, err := otp.GenerateCode()
	if err != nil {
		log.Errorf("failed to generate OTP: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to send OTP"})
		return
	}

	expiresAt := time.Now().Add(otp.TTL)
	if err := h.verifications.Create(c.Request.Context(), req.Contact, contactType, code, expiresAt); err != nil {
		log.Errorf("failed to store verification: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to send OTP"})
		return
	}

	var sender OTPSender
	var missing string
	if contactType == models.ContactPhone {
		sender, missing = h.sms, "SMS service not configured on server"
	} else {
		sender, missing = h.mail, "email service not configured on server"
	}
	if sender == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: missing})
		return
	}

	if err := sender.SendOTP(req.Contact, code); err != nil {
		log.Errorf("failed to dispatch OTP to %s contact: %v", contactType, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "OTP sent"})
}

// VerifyOTP checks a previously sent code against the newest matching
// record.
func (h *Handlers) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "contact and otp required"})
		return
	}

	if err := h.verifications.Verify(c.Request.Context(), req.Contact, req.OTP); err != nil {
		switch {
		case errors.Is(err, database.ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid OTP"})
		case errors.Is(err, database.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "OTP expired"})
		default:
			log.Errorf("failed to verify OTP: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to verify OTP"})
		}
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "verified"})
}
