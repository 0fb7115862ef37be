package models

// Rating bounds, inclusive
const (
	MinRating = 1
	MaxRating = 5
)

// TimeLayout formats stored timestamps in UTC with millisecond precision so
// they sort lexically in time order
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultUserName is used when neither the request nor the identity carries a name
const DefaultUserName = "Anonymous"

// Review represents a rating left for a study spot
type Review struct {
	ID        string  `json:"id" db:"id"`
	SpotID    string  `json:"spotId" db:"spot_key"`
	UserID    *string `json:"userId,omitempty" db:"user_id"` // nil for anonymous reviews
	UserName  string  `json:"userName" db:"user_name"`
	Rating    int     `json:"rating" db:"rating"` // 1-5
	Comment   *string `json:"comment,omitempty" db:"comment"`
	CreatedAt string  `json:"createdAt" db:"created_at"` // RFC3339, assigned on insert
}

// ReviewInput is the body of POST /spots/:key/reviews
type ReviewInput struct {
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment"`
	UserName *string `json:"userName"`
}

// ReviewsResponse wraps a list of reviews
type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}
