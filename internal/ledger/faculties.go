package ledger

import (
	"context"
	"fmt"

	"github.com/mcoot/upmpoly/internal/codec"
	"github.com/mcoot/upmpoly/internal/model"
)

// CreateFaculty stores a new unowned faculty
func (l *Ledger) CreateFaculty(ctx context.Context, id model.FacultyID, name string, salePrice, rentalFee int64) (*model.Faculty, error) {
	if salePrice < 0 {
		return nil, fmt.Errorf("%w: sale price %d", model.ErrInvalidAmount, salePrice)
	}
	if rentalFee < 0 {
		return nil, fmt.Errorf("%w: rental fee %d", model.ErrInvalidAmount, rentalFee)
	}
	if err := l.assertAbsent(ctx, string(id)); err != nil {
		return nil, err
	}

	faculty := model.NewFaculty(id, name, salePrice, rentalFee)
	if err := l.WriteFaculty(ctx, faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// ReadFaculty loads a faculty, failing with ErrAssetNotFound or ErrWrongAssetKind
func (l *Ledger) ReadFaculty(ctx context.Context, id model.FacultyID) (*model.Faculty, error) {
	data, err := l.read(ctx, string(id))
	if err != nil {
		return nil, err
	}
	faculty, err := codec.DecodeFaculty(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return faculty, nil
}

// WriteFaculty replaces the stored faculty record
func (l *Ledger) WriteFaculty(ctx context.Context, f *model.Faculty) error {
	data, err := codec.EncodeFaculty(f)
	if err != nil {
		return err
	}
	return l.tx.Put(ctx, string(f.ID), data)
}

// Faculties returns every stored faculty in key order
func (l *Ledger) Faculties(ctx context.Context) ([]*model.Faculty, error) {
	assets, err := l.Assets(ctx)
	if err != nil {
		return nil, err
	}

	faculties := make([]*model.Faculty, 0, len(assets))
	for _, a := range assets {
		if f, ok := a.(*model.Faculty); ok {
			faculties = append(faculties, f)
		}
	}
	return faculties, nil
}

// FacultiesOwnedBy returns the faculties currently held by a player
func (l *Ledger) FacultiesOwnedBy(ctx context.Context, id model.PlayerID) ([]*model.Faculty, error) {
	faculties, err := l.Faculties(ctx)
	if err != nil {
		return nil, err
	}

	var owned []*model.Faculty
	for _, f := range faculties {
		if f.IsOwnedBy(id) {
			owned = append(owned, f)
		}
	}
	return owned, nil
}
