package models

import "time"

// Document is the metadata record of a shared document or form. The file
// bytes themselves live in external storage; this application only tracks
// and authorizes access to them.
type Document struct {
	// ID is the unique identifier for the document.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title is the display title.
	Title string `gorm:"size:255;not null" json:"title"`
	// Category groups documents in the UI (e.g. "forms", "guides").
	Category string `gorm:"size:100" json:"category"`
	// FileName is the original upload file name.
	FileName string `gorm:"size:255" json:"fileName"`
	// ContentType is the MIME type reported at upload.
	ContentType string `gorm:"size:100" json:"contentType"`
	// SizeBytes is the stored file size.
	SizeBytes int64 `json:"sizeBytes"`
	// ShareToken is an unguessable identifier for public share links.
	ShareToken string `gorm:"size:64;uniqueIndex" json:"shareToken"`
	// UploadedByID is the user who uploaded the document.
	UploadedByID uint64 `gorm:"not null" json:"uploadedById"`
	// UploadedBy is the uploading user (loaded via foreign key).
	UploadedBy User `gorm:"foreignKey:UploadedByID" json:"-"`
	// CreatedAt is the timestamp when the document was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the document was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}
