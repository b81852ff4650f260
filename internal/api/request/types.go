package request

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Credit *int64 `json:"credit" validate:"required"`
}

// CreateFacultyRequest is the request body for creating a faculty
type CreateFacultyRequest struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	SalePrice *int64 `json:"sale_price" validate:"required"`
	RentalFee *int64 `json:"rental_fee" validate:"required"`
}

// PurchaseRequest is the request body for buying a faculty from the bank
type PurchaseRequest struct {
	BuyerID string `json:"buyer_id" validate:"required"`
}

// RentRequest is the request body for paying rent on a faculty
type RentRequest struct {
	VisitorID string `json:"visitor_id" validate:"required"`
}

// TradeRequest is the request body for a player-to-player sale
type TradeRequest struct {
	BuyerID string `json:"buyer_id" validate:"required"`
	Price   *int64 `json:"price" validate:"required"`
}
