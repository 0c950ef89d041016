package model

// SnapshotVersion is the serialization version written by this build.
const SnapshotVersion = 1

// Snapshot is the full persisted state of one set of books.
type Snapshot struct {
	Version      int           `json:"version"`
	Company      Company       `json:"company"`
	Accounts     []Account     `json:"accounts"`
	VatCodes     []VatCode     `json:"vatCodes"`
	Transactions []Transaction `json:"transactions"` // newest first
}
