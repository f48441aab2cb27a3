package entity

// Book is a point-in-time view of a catalog book and its lending state.
type Book struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Year         int    `json:"year"`
	Available    bool   `json:"available"`
	Holder       *User  `json:"holder,omitempty"`
	WaitingQueue []User `json:"waiting_queue"`
}
