package models

// Comment is one free-text comment attached to a catalog item.
//
// ID is assigned at creation. Records written by older app versions carry no
// id; they decode with ID == "" and are addressed by their field tuple until
// rewritten.
type Comment struct {
	ID       string `json:"id,omitempty"`
	AnimeID  int    `json:"anime_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Username string `json:"username"`
}
