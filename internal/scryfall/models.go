package scryfall

import "fmt"

// Card represents a Magic card from Scryfall. Only the fields the checker
// and the proof-sheet compositor consume are mapped.
type Card struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// TypeLine is the full type line ("Basic Land — Island", "Creature — ...").
	TypeLine string `json:"type_line"`

	// Legalities maps format name to a legality status string such as
	// "legal", "banned" or "not_legal". The target format is runtime input,
	// so this is a map rather than a fixed struct.
	Legalities map[string]string `json:"legalities"`

	// Prices holds printed prices; all values are decimal strings.
	Prices Prices `json:"prices"`

	// ImageURIs is set for single-faced cards.
	ImageURIs *ImageURIs `json:"image_uris,omitempty"`

	// CardFaces is set for double-faced cards, which carry per-face images
	// instead of a combined one.
	CardFaces []CardFace `json:"card_faces,omitempty"`
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name      string     `json:"name"`
	TypeLine  string     `json:"type_line"`
	ImageURIs *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains URLs for card images in various sizes.
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// Prices represents the prices of a card in various currencies.
type Prices struct {
	USD     *string `json:"usd,omitempty"`
	USDFoil *string `json:"usd_foil,omitempty"`
	EUR     *string `json:"eur,omitempty"`
	TIX     *string `json:"tix,omitempty"`
}

// FaceImageURLs returns the image URL for each printable face, preferring
// the combined image when the card has one. Double-faced cards yield one
// URL per face.
func (c *Card) FaceImageURLs() []string {
	if c.ImageURIs != nil {
		return []string{c.ImageURIs.Large}
	}
	var urls []string
	for _, face := range c.CardFaces {
		if face.ImageURIs != nil {
			urls = append(urls, face.ImageURIs.Large)
		}
	}
	return urls
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError represents a 404 error from the API. Name is set when the
// lookup that missed was by card name; URL identifies the request otherwise.
type NotFoundError struct {
	Name string
	URL  string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("card not found: %s", e.Name)
	}
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}
