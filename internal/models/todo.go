package models

// Todo is a single to-do item owned by a user.
type Todo struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Title is required (at most 200 characters).
	Title string `json:"title"`

	// Details is optional free text (at most 500 characters).
	// Nil means the todo has no details and serializes as null.
	Details *string `json:"details"`

	// Completed starts false and only changes through an explicit update.
	Completed bool `json:"completed"`

	// UserID references the owning User.
	UserID int64 `json:"-"`
}

// NewTodo returns an uncompleted todo for the given user.
func NewTodo(userID int64, title string, details *string) *Todo {
	return &Todo{
		Title:   title,
		Details: details,
		UserID:  userID,
	}
}
