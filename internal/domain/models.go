package domain

import "time"

// PhotoKind classifies a photo against the rest of the gallery
type PhotoKind int

const (
	KindUnique    PhotoKind = iota
	KindDuplicate           // another file in the gallery has the same content
)

func (k PhotoKind) String() string {
	switch k {
	case KindDuplicate:
		return "duplicate"
	default:
		return "unique"
	}
}

// Photo represents an image file found in the gallery
type Photo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	Width   int // 0 if the format could not be decoded
	Height  int
	Format  string
	Hash    string // hex SHA-256 of the content
	Kind    PhotoKind
}

// Key returns the identity key used by the selection scope
func (p Photo) Key() string {
	return p.Path
}

// Action names an operation the action layer runs on a selection
type Action string

const (
	ActionMove      Action = "move"
	ActionTrash     Action = "trash"
	ActionFavorite  Action = "favorite"
	ActionCopyPaths Action = "copy"
)
