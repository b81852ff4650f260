package query

import (
	"context"
	"log/slog"

	"github.com/mcoot/upmpoly/internal/ledger"
	"github.com/mcoot/upmpoly/internal/model"
	"github.com/mcoot/upmpoly/internal/storage"
)

// Service answers read-only questions about the ledger
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new query Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

func (s *Service) view(ctx context.Context, fn func(l *ledger.Ledger) error) error {
	err := s.storage.View(ctx, func(tx storage.Tx) error {
		return fn(ledger.New(tx))
	})
	if err != nil && !model.IsLedgerError(err) {
		s.logger.Error("ledger read failed", slog.Any("error", err))
	}
	return err
}

// AssetExists reports whether any asset is stored under id
func (s *Service) AssetExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.view(ctx, func(l *ledger.Ledger) error {
		var err error
		exists, err = l.Exists(ctx, id)
		return err
	})
	return exists, err
}

// GetPlayer returns a single player
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player *model.Player
	err := s.view(ctx, func(l *ledger.Ledger) error {
		var err error
		player, err = l.ReadPlayer(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// PlayerCredit returns the current credit of a player
func (s *Service) PlayerCredit(ctx context.Context, id model.PlayerID) (int64, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return 0, err
	}
	return player.Credit, nil
}

// PlayerEliminated reports whether a player has been eliminated
func (s *Service) PlayerEliminated(ctx context.Context, id model.PlayerID) (bool, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return false, err
	}
	return player.IsEliminated, nil
}

// ListPlayers returns every player in key order
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	var players []*model.Player
	err := s.view(ctx, func(l *ledger.Ledger) error {
		var err error
		players, err = l.Players(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

// ListActivePlayerNames returns the names of players still in the game,
// in key order
func (s *Service) ListActivePlayerNames(ctx context.Context) ([]string, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(players))
	for _, p := range players {
		if !p.IsEliminated {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// GetFaculty returns a single faculty
func (s *Service) GetFaculty(ctx context.Context, id model.FacultyID) (*model.Faculty, error) {
	var faculty *model.Faculty
	err := s.view(ctx, func(l *ledger.Ledger) error {
		var err error
		faculty, err = l.ReadFaculty(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return faculty, nil
}

// FacultyOwner returns the owner of a faculty. ok is false while the
// faculty belongs to the bank.
func (s *Service) FacultyOwner(ctx context.Context, id model.FacultyID) (owner model.PlayerID, ok bool, err error) {
	faculty, err := s.GetFaculty(ctx, id)
	if err != nil {
		return "", false, err
	}
	if !faculty.IsOwned() {
		return "", false, nil
	}
	return *faculty.Owner, true, nil
}

// ListFaculties returns every faculty in key order
func (s *Service) ListFaculties(ctx context.Context) ([]*model.Faculty, error) {
	var faculties []*model.Faculty
	err := s.view(ctx, func(l *ledger.Ledger) error {
		var err error
		faculties, err = l.Faculties(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return faculties, nil
}
