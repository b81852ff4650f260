package economy

import (
	"context"
	"log/slog"

	"github.com/mcoot/upmpoly/internal/ledger"
	"github.com/mcoot/upmpoly/internal/model"
)

// SeedPlayer describes a player created by SeedLedger
type SeedPlayer struct {
	ID     model.PlayerID
	Name   string
	Credit int64
}

// DefaultSeed is the initial roster of a fresh ledger
var DefaultSeed = []SeedPlayer{
	{ID: "player1", Name: "Joao", Credit: 5},
	{ID: "player2", Name: "Nicco", Credit: 10},
	{ID: "player3", Name: "Marius", Credit: 10000000},
}

// SeedLedger creates the given players in one transaction. If any id is
// already taken nothing is created.
func (c *Controller) SeedLedger(ctx context.Context, seed []SeedPlayer) ([]*model.Player, error) {
	var players []*model.Player
	err := c.update(ctx, func(l *ledger.Ledger) error {
		players = make([]*model.Player, 0, len(seed))
		for _, sp := range seed {
			p, err := l.CreatePlayer(ctx, sp.ID, sp.Name, sp.Credit)
			if err != nil {
				return err
			}
			players = append(players, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("ledger seeded", slog.Int("player_count", len(players)))
	return players, nil
}
