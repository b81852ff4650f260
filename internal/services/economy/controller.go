package economy

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/mcoot/upmpoly/internal/ledger"
	"github.com/mcoot/upmpoly/internal/model"
	"github.com/mcoot/upmpoly/internal/storage"
)

// Controller applies the economic transitions of the game. Every exported
// operation runs in a single store transaction: all reads and checks happen
// first, and a returned error means nothing was written.
type Controller struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewController creates a new economy Controller
func NewController(storage storage.Storage, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		logger:  logger,
	}
}

// receive returns p's balance after being paid amount, which must not be negative
func receive(p *model.Player, amount int64) (int64, error) {
	if p.Credit > math.MaxInt64-amount {
		return 0, fmt.Errorf("%w: %s has %d, receiving %d", model.ErrCreditOverflow, p.ID, p.Credit, amount)
	}
	return p.Credit + amount, nil
}

// update runs fn against a ledger in one read-write transaction.
// fn may be re-run if the store retries, so it must not leak state across runs.
func (c *Controller) update(ctx context.Context, fn func(l *ledger.Ledger) error) error {
	err := c.storage.Update(ctx, func(tx storage.Tx) error {
		return fn(ledger.New(tx))
	})
	if err != nil && !model.IsLedgerError(err) {
		c.logger.Error("ledger update failed", slog.Any("error", err))
	}
	return err
}

// CreatePlayer registers a new active player
func (c *Controller) CreatePlayer(ctx context.Context, id model.PlayerID, name string, credit int64) (*model.Player, error) {
	var player *model.Player
	err := c.update(ctx, func(l *ledger.Ledger) error {
		var err error
		player, err = l.CreatePlayer(ctx, id, name, credit)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("player created",
		slog.String("player_id", string(id)),
		slog.Int64("credit", credit),
	)
	return player, nil
}

// CreateFaculty registers a new unowned faculty
func (c *Controller) CreateFaculty(ctx context.Context, id model.FacultyID, name string, salePrice, rentalFee int64) (*model.Faculty, error) {
	var faculty *model.Faculty
	err := c.update(ctx, func(l *ledger.Ledger) error {
		var err error
		faculty, err = l.CreateFaculty(ctx, id, name, salePrice, rentalFee)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("faculty created",
		slog.String("faculty_id", string(id)),
		slog.Int64("sale_price", salePrice),
		slog.Int64("rental_fee", rentalFee),
	)
	return faculty, nil
}

// Purchase buys an unowned faculty from the bank at its sale price
func (c *Controller) Purchase(ctx context.Context, buyerID model.PlayerID, facultyID model.FacultyID) (*model.Faculty, error) {
	var faculty *model.Faculty
	err := c.update(ctx, func(l *ledger.Ledger) error {
		if err := l.AssertExists(ctx, string(buyerID)); err != nil {
			return err
		}
		if err := l.AssertExists(ctx, string(facultyID)); err != nil {
			return err
		}

		buyer, err := l.ReadActivePlayer(ctx, buyerID)
		if err != nil {
			return err
		}
		f, err := l.ReadFaculty(ctx, facultyID)
		if err != nil {
			return err
		}
		if f.IsOwned() {
			return fmt.Errorf("%w: %s by %s", model.ErrFacultyAlreadyOwned, f.ID, *f.Owner)
		}

		balance := buyer.Credit - f.SalePrice
		if balance < 0 {
			return fmt.Errorf("%w: %s has %d, %s costs %d", model.ErrPlayerBroke, buyer.ID, buyer.Credit, f.ID, f.SalePrice)
		}

		buyer.Credit = balance
		f.SetOwner(buyer.ID)

		if err := l.WritePlayer(ctx, buyer); err != nil {
			return err
		}
		if err := l.WriteFaculty(ctx, f); err != nil {
			return err
		}
		faculty = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("faculty purchased",
		slog.String("faculty_id", string(facultyID)),
		slog.String("buyer_id", string(buyerID)),
		slog.Int64("price", faculty.SalePrice),
	)
	return faculty, nil
}

// PayRental charges a visitor the rental fee of the faculty they landed on.
// A visitor who cannot cover the fee is eliminated: their whole balance goes
// to the owner and every faculty they hold returns to the bank.
func (c *Controller) PayRental(ctx context.Context, facultyID model.FacultyID, visitorID model.PlayerID) (*model.RentResult, error) {
	var result *model.RentResult
	err := c.update(ctx, func(l *ledger.Ledger) error {
		if err := l.AssertExists(ctx, string(visitorID)); err != nil {
			return err
		}
		if err := l.AssertExists(ctx, string(facultyID)); err != nil {
			return err
		}

		visitor, err := l.ReadActivePlayer(ctx, visitorID)
		if err != nil {
			return err
		}
		f, err := l.ReadFaculty(ctx, facultyID)
		if err != nil {
			return err
		}

		res := &model.RentResult{
			FacultyID: facultyID,
			VisitorID: visitorID,
		}
		if !f.IsOwned() {
			res.Outcome = model.RentNoOwner
			result = res
			return nil
		}
		res.OwnerID = *f.Owner
		if f.IsOwnedBy(visitorID) {
			res.Outcome = model.RentOwnFaculty
			result = res
			return nil
		}

		owner, err := l.ReadActivePlayer(ctx, *f.Owner)
		if err != nil {
			return err
		}

		balance := visitor.Credit - f.RentalFee
		if balance >= 0 {
			ownerCredit, err := receive(owner, f.RentalFee)
			if err != nil {
				return err
			}

			res.Outcome = model.RentPaid
			res.Amount = f.RentalFee
			visitor.Credit = balance
			owner.Credit = ownerCredit

			if err := l.WritePlayer(ctx, visitor); err != nil {
				return err
			}
			if err := l.WritePlayer(ctx, owner); err != nil {
				return err
			}
			result = res
			return nil
		}

		ownerCredit, err := receive(owner, visitor.Credit)
		if err != nil {
			return err
		}
		holdings, err := l.FacultiesOwnedBy(ctx, visitorID)
		if err != nil {
			return err
		}

		res.Outcome = model.RentBankrupt
		res.Amount = visitor.Credit
		owner.Credit = ownerCredit
		visitor.Credit = 0
		visitor.IsEliminated = true

		if err := l.WritePlayer(ctx, visitor); err != nil {
			return err
		}
		if err := l.WritePlayer(ctx, owner); err != nil {
			return err
		}
		for _, held := range holdings {
			held.Release()
			if err := l.WriteFaculty(ctx, held); err != nil {
				return err
			}
			res.Forfeited = append(res.Forfeited, held.ID)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case model.RentPaid:
		c.logger.Info("rent paid",
			slog.String("faculty_id", string(facultyID)),
			slog.String("visitor_id", string(visitorID)),
			slog.String("owner_id", string(result.OwnerID)),
			slog.Int64("amount", result.Amount),
		)
	case model.RentBankrupt:
		c.logger.Info("player eliminated",
			slog.String("faculty_id", string(facultyID)),
			slog.String("visitor_id", string(visitorID)),
			slog.String("owner_id", string(result.OwnerID)),
			slog.Int64("amount", result.Amount),
			slog.Int("forfeited", len(result.Forfeited)),
		)
	default:
		c.logger.Debug("rent not charged",
			slog.String("faculty_id", string(facultyID)),
			slog.String("visitor_id", string(visitorID)),
			slog.String("outcome", string(result.Outcome)),
		)
	}
	return result, nil
}

// Trade transfers a privately owned faculty to a buyer at a negotiated price.
// The price is not checked against the listed sale price.
func (c *Controller) Trade(ctx context.Context, facultyID model.FacultyID, buyerID model.PlayerID, price int64) (*model.Faculty, error) {
	if price < 0 {
		return nil, fmt.Errorf("%w: negotiated price %d", model.ErrInvalidAmount, price)
	}

	var (
		faculty  *model.Faculty
		sellerID model.PlayerID
	)
	err := c.update(ctx, func(l *ledger.Ledger) error {
		if err := l.AssertExists(ctx, string(buyerID)); err != nil {
			return err
		}
		if err := l.AssertExists(ctx, string(facultyID)); err != nil {
			return err
		}

		buyer, err := l.ReadActivePlayer(ctx, buyerID)
		if err != nil {
			return err
		}
		f, err := l.ReadFaculty(ctx, facultyID)
		if err != nil {
			return err
		}
		if !f.IsOwned() {
			return fmt.Errorf("%w: %s", model.ErrFacultyHasNoOwner, f.ID)
		}
		if f.IsOwnedBy(buyerID) {
			return fmt.Errorf("%w: %s by %s", model.ErrFacultyAlreadyOwned, f.ID, buyerID)
		}

		seller, err := l.ReadActivePlayer(ctx, *f.Owner)
		if err != nil {
			return err
		}

		balance := buyer.Credit - price
		if balance < 0 {
			return fmt.Errorf("%w: %s has %d, offered %d", model.ErrPlayerBroke, buyer.ID, buyer.Credit, price)
		}
		sellerCredit, err := receive(seller, price)
		if err != nil {
			return err
		}

		buyer.Credit = balance
		seller.Credit = sellerCredit
		f.SetOwner(buyer.ID)

		if err := l.WritePlayer(ctx, buyer); err != nil {
			return err
		}
		if err := l.WritePlayer(ctx, seller); err != nil {
			return err
		}
		if err := l.WriteFaculty(ctx, f); err != nil {
			return err
		}
		faculty = f
		sellerID = seller.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("faculty traded",
		slog.String("faculty_id", string(facultyID)),
		slog.String("buyer_id", string(buyerID)),
		slog.String("seller_id", string(sellerID)),
		slog.Int64("price", price),
	)
	return faculty, nil
}

// Delete removes an asset of either kind. It performs no cleanup of
// references to the deleted key.
func (c *Controller) Delete(ctx context.Context, id string) error {
	err := c.update(ctx, func(l *ledger.Ledger) error {
		return l.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	c.logger.Warn("asset deleted", slog.String("asset_id", id))
	return nil
}
