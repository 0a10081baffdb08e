package models

import "time"

// FileType is the kind of node a File represents.
type FileType string

const (
	// TypeFolder is a pure grouping node with no on-disk content.
	TypeFolder FileType = "folder"
	// TypeFile is a regular file with on-disk content.
	TypeFile FileType = "file"
	// TypeImage is an image file; treated like TypeFile except for MIME inference.
	TypeImage FileType = "image"
)

// IsValid checks if the type is one of the supported file kinds.
func (t FileType) IsValid() bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

// RootParentID is the sentinel parent value meaning "no parent folder".
const RootParentID = "0"

// File represents a node in a user's file hierarchy.
//
// Folders carry no content; files and images reference exactly one on-disk
// payload through LocalPath. UserID, Type, and ParentID are immutable after
// creation; only IsPublic is mutable, via publish/unpublish.
type File struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index:idx_files_owner_parent;not null;size:36" json:"userId"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Type      string    `gorm:"not null;size:16" json:"type"`
	IsPublic  bool      `gorm:"default:false" json:"isPublic"`
	ParentID  string    `gorm:"index:idx_files_owner_parent;default:0;size:36" json:"parentId"`
	LocalPath string    `json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"-"`
}

// TableName returns the table name for File.
func (File) TableName() string {
	return "files"
}

// IsFolder reports whether the file is a grouping node.
func (f *File) IsFolder() bool {
	return f.Type == string(TypeFolder)
}
