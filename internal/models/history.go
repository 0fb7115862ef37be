package models

// HistoryEntry records that a user visited a spot
type HistoryEntry struct {
	UserID    string `json:"userId" db:"user_id"`
	SpotKey   string `json:"spotKey" db:"spot_key"`
	VisitedAt string `json:"visitedAt" db:"visited_at"`
}

// HistoryInput is the body of POST /user/history
type HistoryInput struct {
	SpotID string `json:"spotId"`
}

// HistoryResponse lists visited spot keys in visit order, plus the spots that still exist
type HistoryResponse struct {
	Message string      `json:"message,omitempty"`
	History []string    `json:"history"`
	Spots   []StudySpot `json:"spots,omitempty"`
}
