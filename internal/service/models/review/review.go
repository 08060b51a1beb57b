package review

import "time"

// Review is a rating with a comment left by a user on a product. A user
// may review a given product at most once.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
