package economy

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/upmpoly/internal/ledger"
	"github.com/mcoot/upmpoly/internal/model"
	"github.com/mcoot/upmpoly/internal/storage"
	"github.com/mcoot/upmpoly/internal/storage/memory"
	"github.com/mcoot/upmpoly/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.controller = NewController(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) createPlayer(id model.PlayerID, credit int64) {
	_, err := s.controller.CreatePlayer(s.ctx, id, "Player "+string(id), credit)
	s.Require().NoError(err)
}

func (s *ControllerSuite) createFaculty(id model.FacultyID, salePrice, rentalFee int64) {
	_, err := s.controller.CreateFaculty(s.ctx, id, "Faculty "+string(id), salePrice, rentalFee)
	s.Require().NoError(err)
}

func (s *ControllerSuite) player(id model.PlayerID) *model.Player {
	var p *model.Player
	err := s.storage.View(s.ctx, func(tx storage.Tx) error {
		var err error
		p, err = ledger.New(tx).ReadPlayer(s.ctx, id)
		return err
	})
	s.Require().NoError(err)
	return p
}

func (s *ControllerSuite) faculty(id model.FacultyID) *model.Faculty {
	var f *model.Faculty
	err := s.storage.View(s.ctx, func(tx storage.Tx) error {
		var err error
		f, err = ledger.New(tx).ReadFaculty(s.ctx, id)
		return err
	})
	s.Require().NoError(err)
	return f
}

// eliminate drives a player into bankruptcy through a rent payment
func (s *ControllerSuite) eliminate(id model.PlayerID) {
	s.createPlayer("landlord-"+id, 10000)
	s.createFaculty(model.FacultyID("trap-"+id), 0, 1000000)
	_, err := s.controller.Purchase(s.ctx, "landlord-"+id, model.FacultyID("trap-"+id))
	s.Require().NoError(err)

	result, err := s.controller.PayRental(s.ctx, model.FacultyID("trap-"+id), id)
	s.Require().NoError(err)
	s.Require().Equal(model.RentBankrupt, result.Outcome)
}

// Create tests

func (s *ControllerSuite) TestCreateTwiceFails() {
	s.createPlayer("p1", 100)

	_, err := s.controller.CreatePlayer(s.ctx, "p1", "Again", 100)
	s.ErrorIs(err, model.ErrAssetAlreadyExists)

	_, err = s.controller.CreateFaculty(s.ctx, "p1", "Clash", 1, 1)
	s.ErrorIs(err, model.ErrAssetAlreadyExists)
}

// Purchase tests

func (s *ControllerSuite) TestPurchaseSucceeds() {
	s.createPlayer("p1", 5000000)
	s.createFaculty("f1", 2000000, 5000)

	f, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.Require().NoError(err)
	s.True(f.IsOwnedBy("p1"))

	s.Equal(int64(3000000), s.player("p1").Credit)
	s.True(s.faculty("f1").IsOwnedBy("p1"))
}

func (s *ControllerSuite) TestPurchaseExactBalance() {
	s.createPlayer("p1", 100)
	s.createFaculty("f1", 100, 5)

	_, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.Require().NoError(err)
	s.Equal(int64(0), s.player("p1").Credit)
}

func (s *ControllerSuite) TestPurchaseBrokeLeavesStateUnchanged() {
	s.createPlayer("p1", 4000)
	s.createFaculty("f1", 2000000, 5000)

	_, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.ErrorIs(err, model.ErrPlayerBroke)

	s.Equal(int64(4000), s.player("p1").Credit)
	s.False(s.faculty("f1").IsOwned())
}

func (s *ControllerSuite) TestPurchaseAlreadyOwned() {
	s.createPlayer("p1", 1000)
	s.createPlayer("p2", 1000)
	s.createFaculty("f1", 100, 5)

	_, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.Require().NoError(err)

	_, err = s.controller.Purchase(s.ctx, "p2", "f1")
	s.ErrorIs(err, model.ErrFacultyAlreadyOwned)
	s.Equal(int64(1000), s.player("p2").Credit)
	s.True(s.faculty("f1").IsOwnedBy("p1"))
}

func (s *ControllerSuite) TestPurchaseMissingAssets() {
	s.createPlayer("p1", 1000)
	s.createFaculty("f1", 100, 5)

	_, err := s.controller.Purchase(s.ctx, "ghost", "f1")
	s.ErrorIs(err, model.ErrAssetNotFound)

	_, err = s.controller.Purchase(s.ctx, "p1", "ghost")
	s.ErrorIs(err, model.ErrAssetNotFound)
}

func (s *ControllerSuite) TestPurchaseWrongKinds() {
	s.createPlayer("p1", 1000)
	s.createPlayer("p2", 1000)
	s.createFaculty("f1", 100, 5)

	_, err := s.controller.Purchase(s.ctx, "p1", "p2")
	s.ErrorIs(err, model.ErrWrongAssetKind)

	_, err = s.controller.Purchase(s.ctx, "f1", "f1")
	s.ErrorIs(err, model.ErrWrongAssetKind)
}

func (s *ControllerSuite) TestPurchaseByEliminatedPlayer() {
	s.createPlayer("p1", 10)
	s.eliminate("p1")
	s.createFaculty("f1", 0, 0)

	_, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.ErrorIs(err, model.ErrPlayerEliminated)
	s.False(s.faculty("f1").IsOwned())
}

// Rent tests

func (s *ControllerSuite) TestRentOnUnownedFacultyIsNoOp() {
	s.createPlayer("p1", 100)
	s.createFaculty("f1", 100, 50)

	result, err := s.controller.PayRental(s.ctx, "f1", "p1")
	s.Require().NoError(err)
	s.Equal(model.RentNoOwner, result.Outcome)
	s.Equal(int64(0), result.Amount)
	s.Equal(int64(100), s.player("p1").Credit)
}

func (s *ControllerSuite) TestRentOnOwnFacultyIsNoOp() {
	s.createPlayer("p1", 1000)
	s.createFaculty("f1", 100, 50)
	_, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.Require().NoError(err)

	result, err := s.controller.PayRental(s.ctx, "f1", "p1")
	s.Require().NoError(err)
	s.Equal(model.RentOwnFaculty, result.Outcome)
	s.Equal(int64(900), s.player("p1").Credit)
}

func (s *ControllerSuite) TestRentSolventConservesCredit() {
	s.createPlayer("owner", 1000)
	s.createPlayer("visitor", 300)
	s.createFaculty("f1", 500, 120)
	_, err := s.controller.Purchase(s.ctx, "owner", "f1")
	s.Require().NoError(err)

	ownerBefore := s.player("owner").Credit
	visitorBefore := s.player("visitor").Credit

	result, err := s.controller.PayRental(s.ctx, "f1", "visitor")
	s.Require().NoError(err)
	s.Equal(model.RentPaid, result.Outcome)
	s.Equal(int64(120), result.Amount)
	s.Equal(model.PlayerID("owner"), result.OwnerID)

	owner := s.player("owner")
	visitor := s.player("visitor")
	s.Equal(visitorBefore-120, visitor.Credit)
	s.Equal(ownerBefore+120, owner.Credit)
	s.Equal(ownerBefore+visitorBefore, owner.Credit+visitor.Credit)
	s.False(visitor.IsEliminated)
}

func (s *ControllerSuite) TestRentExactBalanceIsSolvent() {
	s.createPlayer("owner", 1000)
	s.createPlayer("visitor", 120)
	s.createFaculty("f1", 500, 120)
	_, err := s.controller.Purchase(s.ctx, "owner", "f1")
	s.Require().NoError(err)

	result, err := s.controller.PayRental(s.ctx, "f1", "visitor")
	s.Require().NoError(err)
	s.Equal(model.RentPaid, result.Outcome)
	s.Equal(int64(0), s.player("visitor").Credit)
	s.False(s.player("visitor").IsEliminated)
}

func (s *ControllerSuite) TestRentBankruptcyLiquidatesVisitor() {
	s.createPlayer("owner", 1000)
	s.createPlayer("visitor", 500)
	s.createFaculty("f1", 100, 10000)
	s.createFaculty("f2", 100, 1)
	s.createFaculty("f3", 100, 1)
	s.createFaculty("f4", 100, 1)

	_, err := s.controller.Purchase(s.ctx, "owner", "f1")
	s.Require().NoError(err)
	_, err = s.controller.Purchase(s.ctx, "visitor", "f2")
	s.Require().NoError(err)
	_, err = s.controller.Purchase(s.ctx, "visitor", "f3")
	s.Require().NoError(err)
	_, err = s.controller.Purchase(s.ctx, "owner", "f4")
	s.Require().NoError(err)

	ownerBefore := s.player("owner").Credit
	visitorBefore := s.player("visitor").Credit

	result, err := s.controller.PayRental(s.ctx, "f1", "visitor")
	s.Require().NoError(err)
	s.Equal(model.RentBankrupt, result.Outcome)
	s.Equal(visitorBefore, result.Amount)
	s.Equal([]model.FacultyID{"f2", "f3"}, result.Forfeited)

	visitor := s.player("visitor")
	s.True(visitor.IsEliminated)
	s.Equal(int64(0), visitor.Credit)
	s.Equal(ownerBefore+visitorBefore, s.player("owner").Credit)

	s.False(s.faculty("f2").IsOwned())
	s.False(s.faculty("f3").IsOwned())
	s.True(s.faculty("f1").IsOwnedBy("owner"))
	s.True(s.faculty("f4").IsOwnedBy("owner"))
}

func (s *ControllerSuite) TestRentByEliminatedVisitor() {
	s.createPlayer("p1", 10)
	s.eliminate("p1")

	_, err := s.controller.PayRental(s.ctx, "trap-p1", "p1")
	s.ErrorIs(err, model.ErrPlayerEliminated)
}

func (s *ControllerSuite) TestRentToEliminatedOwner() {
	s.createPlayer("owner", 1000)
	s.createPlayer("visitor", 1000)
	s.createFaculty("f1", 100, 10)
	_, err := s.controller.Purchase(s.ctx, "owner", "f1")
	s.Require().NoError(err)

	// f1 is released on elimination, so reassign it to check the owner guard
	s.eliminate("owner")
	err = s.storage.Update(s.ctx, func(tx storage.Tx) error {
		f := model.NewFaculty("f1", "Faculty f1", 100, 10)
		f.SetOwner("owner")
		return ledger.New(tx).WriteFaculty(s.ctx, f)
	})
	s.Require().NoError(err)

	_, err = s.controller.PayRental(s.ctx, "f1", "visitor")
	s.ErrorIs(err, model.ErrPlayerEliminated)
	s.Equal(int64(1000), s.player("visitor").Credit)
}

func (s *ControllerSuite) TestRentMissingAssets() {
	s.createPlayer("p1", 10)
	s.createFaculty("f1", 10, 1)

	_, err := s.controller.PayRental(s.ctx, "ghost", "p1")
	s.ErrorIs(err, model.ErrAssetNotFound)

	_, err = s.controller.PayRental(s.ctx, "f1", "ghost")
	s.ErrorIs(err, model.ErrAssetNotFound)
}

// Trade tests

func (s *ControllerSuite) TestTradeSucceeds() {
	s.createPlayer("seller", 1000)
	s.createPlayer("buyer", 5000)
	s.createFaculty("f1", 500, 10)
	_, err := s.controller.Purchase(s.ctx, "seller", "f1")
	s.Require().NoError(err)

	// Negotiated price is free of the listed sale price
	f, err := s.controller.Trade(s.ctx, "f1", "buyer", 3000)
	s.Require().NoError(err)
	s.True(f.IsOwnedBy("buyer"))

	s.Equal(int64(2000), s.player("buyer").Credit)
	s.Equal(int64(3500), s.player("seller").Credit)
	s.True(s.faculty("f1").IsOwnedBy("buyer"))
}

func (s *ControllerSuite) TestTradeBelowSalePrice() {
	s.createPlayer("seller", 1000)
	s.createPlayer("buyer", 10)
	s.createFaculty("f1", 500, 10)
	_, err := s.controller.Purchase(s.ctx, "seller", "f1")
	s.Require().NoError(err)

	_, err = s.controller.Trade(s.ctx, "f1", "buyer", 1)
	s.Require().NoError(err)
	s.Equal(int64(9), s.player("buyer").Credit)
	s.Equal(int64(501), s.player("seller").Credit)
}

func (s *ControllerSuite) TestTradeBrokeLeavesStateUnchanged() {
	s.createPlayer("seller", 1000)
	s.createPlayer("buyer", 100)
	s.createFaculty("f1", 500, 10)
	_, err := s.controller.Purchase(s.ctx, "seller", "f1")
	s.Require().NoError(err)

	_, err = s.controller.Trade(s.ctx, "f1", "buyer", 101)
	s.ErrorIs(err, model.ErrPlayerBroke)

	s.Equal(int64(100), s.player("buyer").Credit)
	s.Equal(int64(500), s.player("seller").Credit)
	s.True(s.faculty("f1").IsOwnedBy("seller"))
}

func (s *ControllerSuite) TestTradeUnownedFaculty() {
	s.createPlayer("buyer", 100)
	s.createFaculty("f1", 50, 10)

	_, err := s.controller.Trade(s.ctx, "f1", "buyer", 10)
	s.ErrorIs(err, model.ErrFacultyHasNoOwner)
}

func (s *ControllerSuite) TestTradeWithSelf() {
	s.createPlayer("p1", 1000)
	s.createFaculty("f1", 50, 10)
	_, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.Require().NoError(err)

	_, err = s.controller.Trade(s.ctx, "f1", "p1", 10)
	s.ErrorIs(err, model.ErrFacultyAlreadyOwned)
	s.Equal(int64(950), s.player("p1").Credit)
}

func (s *ControllerSuite) TestTradeNegativePrice() {
	_, err := s.controller.Trade(s.ctx, "f1", "p1", -5)
	s.ErrorIs(err, model.ErrInvalidAmount)
}

func (s *ControllerSuite) TestTradeEliminatedBuyer() {
	s.createPlayer("seller", 1000)
	s.createFaculty("f1", 50, 10)
	_, err := s.controller.Purchase(s.ctx, "seller", "f1")
	s.Require().NoError(err)

	s.createPlayer("buyer", 10)
	s.eliminate("buyer")

	_, err = s.controller.Trade(s.ctx, "f1", "buyer", 0)
	s.ErrorIs(err, model.ErrPlayerEliminated)
}

func (s *ControllerSuite) TestTradeFromEliminatedOwner() {
	s.createPlayer("seller", 1000)
	s.createPlayer("buyer", 1000)
	s.createFaculty("f1", 50, 10)
	s.eliminate("seller")

	err := s.storage.Update(s.ctx, func(tx storage.Tx) error {
		f := model.NewFaculty("f1", "Faculty f1", 50, 10)
		f.SetOwner("seller")
		return ledger.New(tx).WriteFaculty(s.ctx, f)
	})
	s.Require().NoError(err)

	_, err = s.controller.Trade(s.ctx, "f1", "buyer", 10)
	s.ErrorIs(err, model.ErrPlayerEliminated)
}

// Overflow tests

func (s *ControllerSuite) TestRentSolventOverflowLeavesStateUnchanged() {
	s.createPlayer("rich", math.MaxInt64)
	s.createPlayer("visitor", 10)
	s.createFaculty("f1", 0, 5)
	_, err := s.controller.Purchase(s.ctx, "rich", "f1")
	s.Require().NoError(err)

	_, err = s.controller.PayRental(s.ctx, "f1", "visitor")
	s.ErrorIs(err, model.ErrCreditOverflow)

	s.Equal(int64(math.MaxInt64), s.player("rich").Credit)
	s.Equal(int64(10), s.player("visitor").Credit)
}

func (s *ControllerSuite) TestRentBankruptOverflowLeavesStateUnchanged() {
	s.createPlayer("rich", math.MaxInt64-5)
	s.createPlayer("visitor", 10)
	s.createFaculty("f1", 0, 100)
	s.createFaculty("f2", 0, 1)
	_, err := s.controller.Purchase(s.ctx, "rich", "f1")
	s.Require().NoError(err)
	_, err = s.controller.Purchase(s.ctx, "visitor", "f2")
	s.Require().NoError(err)

	_, err = s.controller.PayRental(s.ctx, "f1", "visitor")
	s.ErrorIs(err, model.ErrCreditOverflow)

	visitor := s.player("visitor")
	s.Equal(int64(10), visitor.Credit)
	s.False(visitor.IsEliminated)
	s.Equal(int64(math.MaxInt64-5), s.player("rich").Credit)
	s.True(s.faculty("f2").IsOwnedBy("visitor"))
}

func (s *ControllerSuite) TestRentUpToMaxBalanceIsPaid() {
	s.createPlayer("rich", math.MaxInt64-5)
	s.createPlayer("visitor", 10)
	s.createFaculty("f1", 0, 5)
	_, err := s.controller.Purchase(s.ctx, "rich", "f1")
	s.Require().NoError(err)

	result, err := s.controller.PayRental(s.ctx, "f1", "visitor")
	s.Require().NoError(err)
	s.Equal(model.RentPaid, result.Outcome)
	s.Equal(int64(math.MaxInt64), s.player("rich").Credit)
}

func (s *ControllerSuite) TestTradeOverflowLeavesStateUnchanged() {
	s.createPlayer("rich", math.MaxInt64)
	s.createPlayer("buyer", 100)
	s.createFaculty("f1", 0, 5)
	_, err := s.controller.Purchase(s.ctx, "rich", "f1")
	s.Require().NoError(err)

	_, err = s.controller.Trade(s.ctx, "f1", "buyer", 10)
	s.ErrorIs(err, model.ErrCreditOverflow)

	s.Equal(int64(math.MaxInt64), s.player("rich").Credit)
	s.Equal(int64(100), s.player("buyer").Credit)
	s.True(s.faculty("f1").IsOwnedBy("rich"))
}

// Delete tests

func (s *ControllerSuite) TestDelete() {
	s.createPlayer("p1", 10)

	s.Require().NoError(s.controller.Delete(s.ctx, "p1"))
	s.ErrorIs(s.controller.Delete(s.ctx, "p1"), model.ErrAssetNotFound)

	// The id is free again
	s.createPlayer("p1", 20)
}

// Seed tests

func (s *ControllerSuite) TestSeedLedger() {
	players, err := s.controller.SeedLedger(s.ctx, DefaultSeed)
	s.Require().NoError(err)
	s.Len(players, 3)
	s.Equal(int64(10000000), s.player("player3").Credit)
}

func (s *ControllerSuite) TestSeedLedgerIsAtomic() {
	s.createPlayer("player2", 1)

	_, err := s.controller.SeedLedger(s.ctx, DefaultSeed)
	s.ErrorIs(err, model.ErrAssetAlreadyExists)

	err = s.storage.View(s.ctx, func(tx storage.Tx) error {
		exists, err := ledger.New(tx).Exists(s.ctx, "player1")
		s.Require().NoError(err)
		s.False(exists)
		return nil
	})
	s.Require().NoError(err)
}

// Scenarios

func (s *ControllerSuite) TestScenarioCannotAffordFaculty() {
	s.createPlayer("p1", 4000)
	s.createFaculty("f1", 2000000, 5000)

	_, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.ErrorIs(err, model.ErrPlayerBroke)
	s.Equal(int64(4000), s.player("p1").Credit)
}

func (s *ControllerSuite) TestScenarioPurchaseThenBankruptVisitor() {
	s.createPlayer("p1", 5000000)
	s.createFaculty("f1", 2000000, 5000)

	_, err := s.controller.Purchase(s.ctx, "p1", "f1")
	s.Require().NoError(err)
	s.True(s.faculty("f1").IsOwnedBy("p1"))
	s.Equal(int64(3000000), s.player("p1").Credit)

	s.createPlayer("p2", 100)
	result, err := s.controller.PayRental(s.ctx, "f1", "p2")
	s.Require().NoError(err)
	s.Equal(model.RentBankrupt, result.Outcome)

	p2 := s.player("p2")
	s.True(p2.IsEliminated)
	s.Equal(int64(0), p2.Credit)
	s.Equal(int64(3000100), s.player("p1").Credit)
}
