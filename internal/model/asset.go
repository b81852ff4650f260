package model

// AssetKind discriminates the entity kinds sharing the ledger keyspace
type AssetKind string

const (
	KindPlayer  AssetKind = "player"
	KindFaculty AssetKind = "faculty"
)

// Asset is any keyed entity stored in the ledger: *Player or *Faculty
type Asset interface {
	AssetID() string
	Kind() AssetKind
}

var (
	_ Asset = (*Player)(nil)
	_ Asset = (*Faculty)(nil)
)
