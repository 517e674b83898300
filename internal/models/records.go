package models

// RecordHolder is the current owner of a world or national record.
type RecordHolder struct {
	TimeMs      int64  `json:"timeMs"`
	Username    string `json:"username"`
	CountryCode string `json:"countryCode,omitempty"`
}

// ModeRecords holds the world record and per-country national records for one
// competitive mode. Times only ever decrease.
type ModeRecords struct {
	WR *RecordHolder           `json:"wr"`
	NR map[string]RecordHolder `json:"nr"`
}

// GlobalRecords maps each competitive mode to its record table.
type GlobalRecords map[GameMode]*ModeRecords
