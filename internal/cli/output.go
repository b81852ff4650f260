package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		for _, p := range v {
			o.printPlayerLine(p)
		}
	case Faculty:
		o.printFaculty(v)
	case []Faculty:
		for _, f := range v {
			o.printFacultyLine(f)
		}
	case RentResult:
		o.printRentResult(v)
	case ExistsResult:
		fmt.Fprintf(o.w, "%s exists: %t\n", v.ID, v.Exists)
	case CreditResult:
		fmt.Fprintf(o.w, "%s credit: %d\n", v.PlayerID, v.Credit)
	case EliminatedResult:
		fmt.Fprintf(o.w, "%s eliminated: %t\n", v.PlayerID, v.Eliminated)
	case OwnerResult:
		fmt.Fprintf(o.w, "%s owner: %s\n", v.FacultyID, ownerString(v.Owner))
	case NamesResult:
		o.printNames(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Credit       int64  `json:"credit"`
	IsEliminated bool   `json:"is_eliminated"`
}

// Faculty response type
type Faculty struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SalePrice int64   `json:"sale_price"`
	RentalFee int64   `json:"rental_fee"`
	Owner     *string `json:"owner"`
}

// RentResult response type
type RentResult struct {
	Outcome   string   `json:"outcome"`
	FacultyID string   `json:"faculty_id"`
	VisitorID string   `json:"visitor_id"`
	OwnerID   string   `json:"owner_id,omitempty"`
	Amount    int64    `json:"amount"`
	Forfeited []string `json:"forfeited"`
}

// ExistsResult response type
type ExistsResult struct {
	ID     string `json:"id"`
	Exists bool   `json:"exists"`
}

// CreditResult response type
type CreditResult struct {
	PlayerID string `json:"player_id"`
	Credit   int64  `json:"credit"`
}

// EliminatedResult response type
type EliminatedResult struct {
	PlayerID   string `json:"player_id"`
	Eliminated bool   `json:"eliminated"`
}

// OwnerResult response type
type OwnerResult struct {
	FacultyID string  `json:"faculty_id"`
	Owner     *string `json:"owner"`
}

// NamesResult response type
type NamesResult struct {
	Names []string `json:"names"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func ownerString(owner *string) string {
	if owner == nil {
		return "bank"
	}
	return *owner
}

func (o *Output) printPlayer(p Player) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(o.w, "Credit: %d\n", p.Credit)
	if p.IsEliminated {
		fmt.Fprintln(o.w, "Status: eliminated")
	} else {
		fmt.Fprintln(o.w, "Status: active")
	}
}

func (o *Output) printPlayerLine(p Player) {
	status := ""
	if p.IsEliminated {
		status = " [eliminated]"
	}
	fmt.Fprintf(o.w, "%s\t%s\t%d%s\n", p.ID, p.Name, p.Credit, status)
}

func (o *Output) printFaculty(f Faculty) {
	fmt.Fprintf(o.w, "Faculty: %s (%s)\n", f.Name, f.ID)
	fmt.Fprintf(o.w, "Sale Price: %d\n", f.SalePrice)
	fmt.Fprintf(o.w, "Rental Fee: %d\n", f.RentalFee)
	fmt.Fprintf(o.w, "Owner: %s\n", ownerString(f.Owner))
}

func (o *Output) printFacultyLine(f Faculty) {
	fmt.Fprintf(o.w, "%s\t%s\t%d/%d\t%s\n", f.ID, f.Name, f.SalePrice, f.RentalFee, ownerString(f.Owner))
}

func (o *Output) printRentResult(r RentResult) {
	switch r.Outcome {
	case "no_owner":
		fmt.Fprintf(o.w, "%s belongs to the bank, nothing to pay\n", r.FacultyID)
	case "own_faculty":
		fmt.Fprintf(o.w, "%s already owns %s, nothing to pay\n", r.VisitorID, r.FacultyID)
	case "paid":
		fmt.Fprintf(o.w, "%s paid %d to %s\n", r.VisitorID, r.Amount, r.OwnerID)
	case "bankrupt":
		fmt.Fprintf(o.w, "%s is bankrupt: paid %d to %s and is eliminated\n", r.VisitorID, r.Amount, r.OwnerID)
		if len(r.Forfeited) > 0 {
			fmt.Fprintf(o.w, "Returned to the bank: %s\n", strings.Join(r.Forfeited, ", "))
		}
	default:
		o.printJSON(r)
	}
}

func (o *Output) printNames(n NamesResult) {
	if len(n.Names) == 0 {
		fmt.Fprintln(o.w, "No active players")
		return
	}
	for _, name := range n.Names {
		fmt.Fprintln(o.w, name)
	}
}
