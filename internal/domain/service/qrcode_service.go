package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for product QR code generation and parsing
type QRCodeService interface {
	// GenerateProductQR renders a PNG linking to the product page
	GenerateProductQR(productID uuid.UUID) ([]byte, error)

	// ParseProductQR extracts the product ID from scanned QR data
	ParseProductQR(qrData string) (uuid.UUID, error)
}
