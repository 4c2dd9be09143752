// Package otp generates one-time passcodes and classifies the contact
// string they are delivered to.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"coastwatch/models"
)

// TTL is how long an issued code stays valid.
const TTL = 5 * time.Minute

// phoneRe: leading + or digit, then 5+ characters drawn from digits,
// dashes, spaces and parentheses. Anything else is treated as email.
var phoneRe = regexp.MustCompile(`^[+0-9][0-9\-\s()]{5,}$`)

// ClassifyContact decides the delivery channel for a contact string.
func ClassifyContact(contact string) string {
	if phoneRe.MatchString(contact) {
		return models.ContactPhone
	}
	return models.ContactEmail
}

// GenerateCode draws a uniform 6-digit code from [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to draw random code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
