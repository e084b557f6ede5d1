package models

// ProgressUpdate is broadcast over the websocket hub while a background job
// is running.
type ProgressUpdate struct {
	JobID    string  `json:"job_id"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"`
	Done     bool    `json:"done"`
}

// LibraryEvent is broadcast when a library entry changes in a way clients may
// want to react to, such as a book reaching 100 percent.
type LibraryEvent struct {
	Type    string  `json:"type"` // e.g. "book_completed"
	UserID  int64   `json:"user_id"`
	BookID  int64   `json:"book_id"`
	Title   string  `json:"title,omitempty"`
	Percent float64 `json:"percent,omitempty"`
}
