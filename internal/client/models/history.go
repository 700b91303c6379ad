package models

import "encoding/json"

// HistoryRecord is a past result. Data is kept opaque.
type HistoryRecord struct {
	ID   string          `json:"_id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HistoryList is the response of GET /history/<user_id>.
type HistoryList struct {
	Items []HistoryRecord `json:"items"`
}
