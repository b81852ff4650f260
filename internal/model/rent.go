package model

// RentOutcome describes what a rent payment did
type RentOutcome string

const (
	RentNoOwner    RentOutcome = "no_owner"    // Unowned faculty, nothing charged
	RentOwnFaculty RentOutcome = "own_faculty" // Visitor owns the faculty, nothing charged
	RentPaid       RentOutcome = "paid"        // Fee moved from visitor to owner
	RentBankrupt   RentOutcome = "bankrupt"    // Visitor eliminated, holdings liquidated
)

// RentResult is the outcome of a rent payment. Eliminating the visitor is a
// successful result, not an error.
type RentResult struct {
	Outcome   RentOutcome
	FacultyID FacultyID
	VisitorID PlayerID
	OwnerID   PlayerID // Empty when the faculty has no owner
	// Amount is the credit moved from visitor to owner: the rental fee when
	// paid, the visitor's whole remaining balance when bankrupt
	Amount    int64
	Forfeited []FacultyID // Faculties released to the bank on bankruptcy
}
