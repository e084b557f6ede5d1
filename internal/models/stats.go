package models

// UserSummary aggregates one user's library by status. AverageRating is the
// mean of the user's non-null ratings; nil when the user has rated nothing,
// which is distinct from a real average of zero.
type UserSummary struct {
	Total         int      `json:"total"`
	Planned       int      `json:"planned"`
	Reading       int      `json:"reading"`
	Completed     int      `json:"completed"`
	Dropped       int      `json:"dropped"`
	AverageRating *float64 `json:"average_rating"`
}
