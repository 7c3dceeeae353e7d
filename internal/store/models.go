package store

import "time"

// Category groups pictures under a unique slug.
type Category struct {
	ID   int64
	Slug string
	Name string
}

// Keyword is a free-form tag attached to pictures. Keywords are created
// implicitly on first use and never deleted by the core.
type Keyword struct {
	ID   int64
	Slug string
	Name string
}

// Picture is a catalog row. Filename and Thumbnail are generated artifact
// identifiers; OriginalFilename is the client-supplied name kept for display
// only and never used in storage paths.
type Picture struct {
	ID               int64
	CategoryID       *int64
	OwnerID          string
	Filename         string
	OriginalFilename string
	Thumbnail        string
	Episode          *int64
	Keywords         []Keyword
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewPicture carries the fields for inserting a picture row together with its
// keyword links.
type NewPicture struct {
	CategoryID       *int64
	OwnerID          string
	Filename         string
	OriginalFilename string
	Thumbnail        string
	Episode          *int64
	KeywordIDs       []int64
}

// Stats counts catalog rows for diagnostics.
type Stats struct {
	Pictures      int
	Categories    int
	Keywords      int
	Uncategorized int
}
