package models

import (
	"time"

	"github.com/google/uuid"

	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// Document is a file record attached to a house: manuals, certificates,
// BIM exports. Only the metadata lives here; blob storage is external.
type Document struct {
	ID        uuid.UUID
	HouseID   id.HouseID
	Name      string
	MimeType  string
	Path      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry is the wire shape of one document in a listing.
type Entry struct {
	ID        string    `json:"id"`
	HouseID   int64     `json:"house_id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse is the wire shape of the document listing endpoint.
type ListResponse struct {
	Documents []Entry `json:"documents"`
}

// EntryOf converts a domain document into its wire shape.
func EntryOf(d Document) Entry {
	return Entry{
		ID:        d.ID.String(),
		HouseID:   int64(d.HouseID),
		Name:      d.Name,
		MimeType:  d.MimeType,
		CreatedAt: d.CreatedAt,
	}
}
