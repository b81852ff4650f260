package response

import (
	"github.com/mcoot/upmpoly/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Credit       int64  `json:"credit"`
	IsEliminated bool   `json:"is_eliminated"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:           string(p.ID),
		Name:         p.Name,
		Credit:       p.Credit,
		IsEliminated: p.IsEliminated,
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(ps []*model.Player) []Player {
	players := make([]Player, len(ps))
	for i, p := range ps {
		players[i] = PlayerFromModel(p)
	}
	return players
}

// Faculty represents a faculty in API responses
type Faculty struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SalePrice int64   `json:"sale_price"`
	RentalFee int64   `json:"rental_fee"`
	Owner     *string `json:"owner"`
}

// FacultyFromModel converts a model.Faculty to a response Faculty
func FacultyFromModel(f *model.Faculty) Faculty {
	var owner *string
	if f.Owner != nil {
		o := string(*f.Owner)
		owner = &o
	}
	return Faculty{
		ID:        string(f.ID),
		Name:      f.Name,
		SalePrice: f.SalePrice,
		RentalFee: f.RentalFee,
		Owner:     owner,
	}
}

// FacultiesFromModel converts a slice of faculties
func FacultiesFromModel(fs []*model.Faculty) []Faculty {
	faculties := make([]Faculty, len(fs))
	for i, f := range fs {
		faculties[i] = FacultyFromModel(f)
	}
	return faculties
}

// RentResult is the response after a visitor lands on a faculty
type RentResult struct {
	Outcome   string   `json:"outcome"`
	FacultyID string   `json:"faculty_id"`
	VisitorID string   `json:"visitor_id"`
	OwnerID   string   `json:"owner_id,omitempty"`
	Amount    int64    `json:"amount"`
	Forfeited []string `json:"forfeited"`
}

// RentResultFromModel converts model.RentResult
func RentResultFromModel(r *model.RentResult) RentResult {
	forfeited := make([]string, len(r.Forfeited))
	for i, id := range r.Forfeited {
		forfeited[i] = string(id)
	}
	return RentResult{
		Outcome:   string(r.Outcome),
		FacultyID: string(r.FacultyID),
		VisitorID: string(r.VisitorID),
		OwnerID:   string(r.OwnerID),
		Amount:    r.Amount,
		Forfeited: forfeited,
	}
}

// Exists is the response for asset existence checks
type Exists struct {
	ID     string `json:"id"`
	Exists bool   `json:"exists"`
}

// Credit is the response for a player's balance
type Credit struct {
	PlayerID string `json:"player_id"`
	Credit   int64  `json:"credit"`
}

// Eliminated is the response for a player's elimination status
type Eliminated struct {
	PlayerID   string `json:"player_id"`
	Eliminated bool   `json:"eliminated"`
}

// Owner is the response for a faculty's ownership
type Owner struct {
	FacultyID string  `json:"faculty_id"`
	Owner     *string `json:"owner"`
}

// Names is the response listing active player names
type Names struct {
	Names []string `json:"names"`
}
