package model

import "time"

type Directory struct {
	UUID       string    `db:"uuid" json:"uuid"`
	OwnerUUID  string    `db:"owner_uuid" json:"owner_uuid"`
	ParentUUID *string   `db:"parent_uuid" json:"parent_uuid,omitempty"`
	Name       string    `db:"name" json:"name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Breadcrumb : одно звено цепочки родителей директории
type Breadcrumb struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// DirectoryContents : директория вместе с содержимым и путём от корня
type DirectoryContents struct {
	Directory      *Directory   `json:"directory"`
	Subdirectories []Directory  `json:"subdirectories"`
	Files          []File       `json:"files"`
	Breadcrumbs    []Breadcrumb `json:"breadcrumbs"`
	Path           string       `json:"path"`
}
