package entity

// Review joins one Customer to one Item. It holds foreign keys only; the
// related records are resolved through the repositories.
type Review struct {
	ID         int64   `db:"id"`
	Comment    *string `db:"comment"`
	CustomerID int64   `db:"customer_id"`
	ItemID     int64   `db:"item_id"`
}
