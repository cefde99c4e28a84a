package models

// Video is the model for the 'videos' table. URL and Thm are stored as full
// public URLs, the way the mobile client consumes them.
type Video struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	URL         string `json:"url" db:"url"`
	Thm         string `json:"thm" db:"thm"`
}

// UpdateVideoInput is the JSON body for the video metadata endpoints.
type UpdateVideoInput struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
