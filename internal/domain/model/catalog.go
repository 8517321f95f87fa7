package model

// CatalogEntry mirrors a Product inside the payment processor's catalog.
// The back-reference to the internal product lives in entry metadata; it is
// the only identity link between the two systems.
type CatalogEntry struct {
	ExternalID  string
	InternalID  string
	Name        string
	Description string
	Images      []string
}

// CatalogPrice is a processor-side price record attached to one entry.
// Amounts are integer minor units (cents). At most one price per entry is
// active at any time; superseded prices are deactivated, never deleted.
type CatalogPrice struct {
	ID       string
	EntryID  string
	Amount   int64
	Currency string
	Active   bool
}
