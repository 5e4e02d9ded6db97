package review

type ReviewListResponse struct {
	Items []Review `json:"items"`
	Total int64    `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
}

type ModerationResponse struct {
	Review *Review    `json:"review,omitempty"`
	Rating *Aggregate `json:"rating"`
}
