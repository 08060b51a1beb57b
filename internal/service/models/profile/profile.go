package profile

// Profile holds the public details of a user account.
type Profile struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Picture   string `json:"picture,omitempty"`
	Address   string `json:"address"`
	Country   string `json:"country"`
}
