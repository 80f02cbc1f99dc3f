package models

import "time"

// Attachment holds file metadata for a card. The file contents are opaque to
// this service; Filepath points at whatever store the deployment uses.
type Attachment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	CardID     uint64    `gorm:"not null;index" json:"card_id"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	Filepath   string    `gorm:"type:varchar(500);not null" json:"filepath"`
	Filesize   int64     `json:"filesize"`
	Filetype   string    `gorm:"type:varchar(50)" json:"filetype"`
	UploadedBy uint64    `json:"uploaded_by"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relations
	Uploader User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}
