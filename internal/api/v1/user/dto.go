package user

// UserResponse defines the response structure for user information.
type UserResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	DebitCardCount int64  `json:"debit_card_count"`
	Token          string `json:"token,omitempty"`
}
