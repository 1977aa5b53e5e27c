package tag_service

import (
	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize QR image edge length in pixels
const qrImageSize = 512

// QRKey returns the object store key for a tag's QR image
func QRKey(code string) string {
	return "tags/qr/" + code + ".png"
}

// MetadataKey returns the object store key for a tag's metadata document.
// The same key is written twice during stamping (draft, then finalized), so the
// URL referenced on chain never changes.
func MetadataKey(code string) string {
	return "tags/meta/" + code + ".json"
}

// QRRenderer renders a QR image for a tag code. The image encodes only the
// code itself, not a URL; the scanning client resolves code to tag.
type QRRenderer interface {
	Render(content string, size int) ([]byte, error)
}

type qrcodeRenderer struct{}

// NewQRRenderer create default PNG QR renderer
func NewQRRenderer() QRRenderer {
	return qrcodeRenderer{}
}

func (qrcodeRenderer) Render(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
