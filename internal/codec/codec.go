// Package codec converts ledger entities to and from the byte values held by
// the record store. Players and faculties share one keyspace, so every record
// carries a kind tag that is checked on read.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/upmpoly/internal/model"
)

// playerRecord is the stored form of a Player
type playerRecord struct {
	Kind         model.AssetKind `json:"kind"`
	PlayerID     string          `json:"playerID"`
	Name         string          `json:"name"`
	Credit       int64           `json:"credit"`
	IsEliminated bool            `json:"isEliminated"`
}

// facultyRecord is the stored form of a Faculty
type facultyRecord struct {
	Kind      model.AssetKind `json:"kind"`
	FacultyID string          `json:"facultyID"`
	Name      string          `json:"name"`
	SalePrice int64           `json:"salePrice"`
	RentalFee int64           `json:"rentalFee"`
	Owner     *string         `json:"owner"`
}

// header is decoded first to classify a record
type header struct {
	Kind      model.AssetKind `json:"kind"`
	PlayerID  *string         `json:"playerID"`
	FacultyID *string         `json:"facultyID"`
}

// EncodePlayer serializes a player
func EncodePlayer(p *model.Player) ([]byte, error) {
	return json.Marshal(playerRecord{
		Kind:         model.KindPlayer,
		PlayerID:     string(p.ID),
		Name:         p.Name,
		Credit:       p.Credit,
		IsEliminated: p.IsEliminated,
	})
}

// EncodeFaculty serializes a faculty
func EncodeFaculty(f *model.Faculty) ([]byte, error) {
	rec := facultyRecord{
		Kind:      model.KindFaculty,
		FacultyID: string(f.ID),
		Name:      f.Name,
		SalePrice: f.SalePrice,
		RentalFee: f.RentalFee,
	}
	if f.Owner != nil {
		owner := string(*f.Owner)
		rec.Owner = &owner
	}
	return json.Marshal(rec)
}

// Encode serializes any asset
func Encode(a model.Asset) ([]byte, error) {
	switch v := a.(type) {
	case *model.Player:
		return EncodePlayer(v)
	case *model.Faculty:
		return EncodeFaculty(v)
	default:
		return nil, fmt.Errorf("%w: unsupported asset type %T", model.ErrWrongAssetKind, a)
	}
}

// KindOf classifies a stored value. Records written without a kind tag are
// classified by which identifying field is present.
func KindOf(data []byte) (model.AssetKind, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrWrongAssetKind, err)
	}

	switch {
	case h.Kind == model.KindPlayer || h.Kind == model.KindFaculty:
		return h.Kind, nil
	case h.Kind != "":
		return "", fmt.Errorf("%w: unknown kind %q", model.ErrWrongAssetKind, h.Kind)
	case h.PlayerID != nil && h.FacultyID == nil:
		return model.KindPlayer, nil
	case h.FacultyID != nil && h.PlayerID == nil:
		return model.KindFaculty, nil
	default:
		return "", fmt.Errorf("%w: unclassifiable record", model.ErrWrongAssetKind)
	}
}

// DecodePlayer deserializes a player, failing with ErrWrongAssetKind if the
// value holds any other kind of record
func DecodePlayer(data []byte) (*model.Player, error) {
	kind, err := KindOf(data)
	if err != nil {
		return nil, err
	}
	if kind != model.KindPlayer {
		return nil, fmt.Errorf("%w: expected %s, found %s", model.ErrWrongAssetKind, model.KindPlayer, kind)
	}

	var rec playerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrWrongAssetKind, err)
	}
	return &model.Player{
		ID:           model.PlayerID(rec.PlayerID),
		Name:         rec.Name,
		Credit:       rec.Credit,
		IsEliminated: rec.IsEliminated,
	}, nil
}

// DecodeFaculty deserializes a faculty, failing with ErrWrongAssetKind if the
// value holds any other kind of record
func DecodeFaculty(data []byte) (*model.Faculty, error) {
	kind, err := KindOf(data)
	if err != nil {
		return nil, err
	}
	if kind != model.KindFaculty {
		return nil, fmt.Errorf("%w: expected %s, found %s", model.ErrWrongAssetKind, model.KindFaculty, kind)
	}

	var rec facultyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrWrongAssetKind, err)
	}
	f := &model.Faculty{
		ID:        model.FacultyID(rec.FacultyID),
		Name:      rec.Name,
		SalePrice: rec.SalePrice,
		RentalFee: rec.RentalFee,
	}
	if rec.Owner != nil {
		f.SetOwner(model.PlayerID(*rec.Owner))
	}
	return f, nil
}

// Decode deserializes a record of either kind
func Decode(data []byte) (model.Asset, error) {
	kind, err := KindOf(data)
	if err != nil {
		return nil, err
	}
	if kind == model.KindPlayer {
		return DecodePlayer(data)
	}
	return DecodeFaculty(data)
}
