package share

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

// QRGenerator renders share codes pointing at public directory pages.
type QRGenerator struct {
	baseURL string
	size    int
}

func NewQRGenerator(baseURL string) *QRGenerator {
	return &QRGenerator{baseURL: strings.TrimRight(baseURL, "/"), size: defaultSize}
}

// VenueURL is the public page of a venue.
func (q *QRGenerator) VenueURL(id int64) string {
	return fmt.Sprintf("%s/venues/%d", q.baseURL, id)
}

// ArtistURL is the public page of an artist.
func (q *QRGenerator) ArtistURL(id int64) string {
	return fmt.Sprintf("%s/artists/%d", q.baseURL, id)
}

// VenueQR returns a PNG encoding VenueURL(id).
func (q *QRGenerator) VenueQR(id int64) ([]byte, error) {
	return qrcode.Encode(q.VenueURL(id), qrcode.Medium, q.size)
}

// ArtistQR returns a PNG encoding ArtistURL(id).
func (q *QRGenerator) ArtistQR(id int64) ([]byte, error) {
	return qrcode.Encode(q.ArtistURL(id), qrcode.Medium, q.size)
}
