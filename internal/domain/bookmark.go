package domain

// Bookmark represents a stored bookmark record.
//
// Every Bookmark held by a store has passed Validate. There is no update
// path, so a Bookmark never changes after creation.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Generated by the store on creation, never reused.
	ID string `json:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is the display name, 2 to 20 characters.
	// Example: "Google"
	Title string `json:"title"`

	// URL is an absolute http or https URL.
	// Example: http://google.com
	URL string `json:"url"`

	// Desc is a short description, 8 to 60 characters.
	Desc string `json:"desc"`

	// Rating is an integer from 1 to 5.
	Rating int `json:"rating"`
}

// Input is the client-supplied payload for creating a bookmark.
// Nothing in Input is trusted until Validate accepts it.
type Input struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Desc   string `json:"desc"`
	Rating Rating `json:"rating"`
}

// NewBookmark builds the record for a validated input.
// Callers must run Validate first; the coerced rating is stored.
func NewBookmark(id string, in Input) Bookmark {
	n, _ := in.Rating.Int()
	return Bookmark{
		ID:     id,
		Title:  in.Title,
		URL:    in.URL,
		Desc:   in.Desc,
		Rating: n,
	}
}
