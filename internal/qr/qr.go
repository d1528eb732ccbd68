// Package qr renders contact-card QR codes for the directory view.
//
// The actual 2D-barcode algorithm is not ours — skip2/go-qrcode is the
// long-standing standard Go encoder and we treat it as a trusted primitive.
// This package pins the encoding parameters and owns the payload format so
// every caller produces the same image for the same employee.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/sakif/employee-directory/internal/model"
)

// moduleSize is the pixel width of one QR module.
// A negative size tells go-qrcode to scale the image to the payload
// (fixed module size, variable image size) instead of scaling modules to a
// fixed image. The library adds the standard 4-module quiet zone itself.
const moduleSize = 10

// Encode renders text as a black-on-white PNG QR code.
//
// Error-correction level Low is enough here: the codes are displayed on
// screen and scanned from centimetres away, and Low keeps the symbol small
// for multi-line payloads.
//
// Encode is deterministic — the same text always produces bit-identical
// PNG output. Nothing is cached; at directory scale (tens of rows) encoding
// on every render is cheaper than keeping a cache correct.
func Encode(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Low, -moduleSize)
	if err != nil {
		return nil, fmt.Errorf("qr: encoding payload: %w", err)
	}
	return png, nil
}

// ContactText formats an employee's contact fields as the QR payload.
// Labeled lines scan cleanly into any notes app; LinkedIn is deliberately
// left out — the card already renders it as a clickable link.
func ContactText(e model.Employee) string {
	return fmt.Sprintf("Name: %s\nTitle: %s\nEmail: %s\nPhone: %s",
		e.Name, e.Domain, e.Email, e.Phone)
}
