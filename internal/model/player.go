package model

// PlayerID uniquely identifies a player across the ledger
type PlayerID string

// Player is a participant holding credit
type Player struct {
	ID           PlayerID
	Name         string
	Credit       int64
	IsEliminated bool // once true, never reset
}

// NewPlayer creates an active player with the given starting credit
func NewPlayer(id PlayerID, name string, credit int64) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Credit: credit,
	}
}

// AssetID implements Asset
func (p *Player) AssetID() string {
	return string(p.ID)
}

// Kind implements Asset
func (p *Player) Kind() AssetKind {
	return KindPlayer
}
