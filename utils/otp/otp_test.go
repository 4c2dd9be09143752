package otp

import (
	"strconv"
	"testing"

	"coastwatch/models"
)

func TestClassifyContact(t *testing.T) {
	tests := []struct {
		contact string
		want    string
	}{
		{"+919876543210", models.ContactPhone},
		{"+91 98765 43210", models.ContactPhone},
		{"(044) 2345-6789", models.ContactEmail}, // must start with + or a digit
		{"0442345678", models.ContactPhone},
		{"044 (2345) 678", models.ContactPhone},
		{"asha@example.com", models.ContactEmail},
		{"12345", models.ContactEmail}, // too short for a phone
		{"+12345a", models.ContactEmail},
		{"", models.ContactEmail},
	}

	for _, tt := range tests {
		if got := ClassifyContact(tt.contact); got != tt.want {
			t.Errorf("ClassifyContact(%q) = %q, want %q", tt.contact, got, tt.want)
		}
	}
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("GenerateCode() = %q, want 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("GenerateCode() = %q, not numeric", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("GenerateCode() = %d, out of range", n)
		}
	}
}
