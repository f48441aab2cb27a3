package entity

// User is a library member. Document is the member's identity document and
// the key users are looked up by.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
}
