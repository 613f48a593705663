package department

// Department is the stored record. Name is unique across the collection.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
