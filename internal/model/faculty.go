package model

// FacultyID uniquely identifies a faculty property
type FacultyID string

// Faculty is a purchasable property. A nil Owner means the bank holds it.
type Faculty struct {
	ID        FacultyID
	Name      string
	SalePrice int64
	RentalFee int64
	Owner     *PlayerID
}

// NewFaculty creates an unowned faculty
func NewFaculty(id FacultyID, name string, salePrice, rentalFee int64) *Faculty {
	return &Faculty{
		ID:        id,
		Name:      name,
		SalePrice: salePrice,
		RentalFee: rentalFee,
	}
}

// IsOwned returns true if a player holds the faculty
func (f *Faculty) IsOwned() bool {
	return f.Owner != nil
}

// IsOwnedBy returns true if the given player holds the faculty
func (f *Faculty) IsOwnedBy(id PlayerID) bool {
	return f.Owner != nil && *f.Owner == id
}

// SetOwner assigns the faculty to a player
func (f *Faculty) SetOwner(id PlayerID) {
	owner := id
	f.Owner = &owner
}

// Release returns the faculty to the unowned pool
func (f *Faculty) Release() {
	f.Owner = nil
}

// AssetID implements Asset
func (f *Faculty) AssetID() string {
	return string(f.ID)
}

// Kind implements Asset
func (f *Faculty) Kind() AssetKind {
	return KindFaculty
}
