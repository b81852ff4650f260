package ledger

import (
	"context"
	"fmt"

	"github.com/mcoot/upmpoly/internal/codec"
	"github.com/mcoot/upmpoly/internal/model"
)

// CreatePlayer stores a new active player
func (l *Ledger) CreatePlayer(ctx context.Context, id model.PlayerID, name string, credit int64) (*model.Player, error) {
	if credit < 0 {
		return nil, fmt.Errorf("%w: initial credit %d", model.ErrInvalidAmount, credit)
	}
	if err := l.assertAbsent(ctx, string(id)); err != nil {
		return nil, err
	}

	player := model.NewPlayer(id, name, credit)
	if err := l.WritePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// ReadPlayer loads a player, failing with ErrAssetNotFound or ErrWrongAssetKind
func (l *Ledger) ReadPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := l.read(ctx, string(id))
	if err != nil {
		return nil, err
	}
	player, err := codec.DecodePlayer(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return player, nil
}

// ReadActivePlayer loads a player and checks it has not been eliminated
func (l *Ledger) ReadActivePlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player, err := l.ReadPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AssertActive(player); err != nil {
		return nil, err
	}
	return player, nil
}

// WritePlayer replaces the stored player record
func (l *Ledger) WritePlayer(ctx context.Context, p *model.Player) error {
	data, err := codec.EncodePlayer(p)
	if err != nil {
		return err
	}
	return l.tx.Put(ctx, string(p.ID), data)
}

// Players returns every stored player in key order
func (l *Ledger) Players(ctx context.Context) ([]*model.Player, error) {
	assets, err := l.Assets(ctx)
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(assets))
	for _, a := range assets {
		if p, ok := a.(*model.Player); ok {
			players = append(players, p)
		}
	}
	return players, nil
}

// AssertActive fails with ErrPlayerEliminated for an eliminated player
func AssertActive(p *model.Player) error {
	if p.IsEliminated {
		return fmt.Errorf("%w: %s", model.ErrPlayerEliminated, p.ID)
	}
	return nil
}
