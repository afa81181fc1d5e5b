// Package qrcode renders product links as QR codes.
package qrcode

import (
	"net/url"
	"path"
	"strings"

	"agromart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	productsPrefix = "products"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance.
// Codes encode baseURL/products/{id}.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// productURL returns the link encoded for productID.
func (s *qrcodeService) productURL(productID uuid.UUID) string {
	return s.baseURL + "/" + productsPrefix + "/" + productID.String()
}

// GenerateProductQR renders the product link as a PNG.
func (s *qrcodeService) GenerateProductQR(productID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.productURL(productID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseProductQR accepts the scanned link and returns the product ID.
func (s *qrcodeService) ParseProductQR(qrData string) (uuid.UUID, error) {
	parsed, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse QR code link")
	}

	dir, last := path.Split(strings.TrimRight(parsed.Path, "/"))
	if path.Base(strings.TrimRight(dir, "/")) != productsPrefix {
		return uuid.Nil, errors.Errorf("QR code does not link to a product: %s", qrData)
	}

	productID, err := uuid.Parse(last)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse product ID")
	}

	return productID, nil
}
