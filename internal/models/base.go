package models

// Base contains the identity column shared by ledger and asset records.
// IDs are assigned by the owning store as max(existing)+1 and are never
// derived from a record's position in the collection.
type Base struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
}

// NextID returns the id the next created record should receive: one more than
// the largest id in use, starting at 1.
func NextID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
