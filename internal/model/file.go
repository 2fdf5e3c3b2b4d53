package model

import "time"

type File struct {
	UUID             string    `db:"uuid" json:"uuid"`
	OwnerUUID        string    `db:"owner_uuid" json:"owner_uuid"`
	DirectoryUUID    *string   `db:"directory_uuid" json:"directory_uuid,omitempty"`
	FilenameOriginal string    `db:"filename_original" json:"filename_original"`
	MimeType         string    `db:"mime_type" json:"mime_type"`
	SizeBytes        int64     `db:"size_bytes" json:"size_bytes"`
	StoragePath      string    `db:"storage_path" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
