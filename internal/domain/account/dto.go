package account

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Kind     Kind   `json:"kind" binding:"required,oneof=learner mentor"`
	TimeZone string `json:"time_zone"`

	Headline   string   `json:"headline"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
	HourlyRate float64  `json:"hourly_rate" binding:"gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateMentorProfileRequest struct {
	Headline   *string  `json:"headline"`
	Bio        *string  `json:"bio"`
	Skills     []string `json:"skills"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
}

type SetFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	Account     *Account `json:"account"`
}

type MentorListResponse struct {
	Items []Account `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

type ActiveSessionsResponse struct {
	MentorID   int64   `json:"mentor_id"`
	SessionIDs []int64 `json:"session_ids"`
}
