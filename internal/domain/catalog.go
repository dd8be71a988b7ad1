package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("referenced entity does not exist")
	ErrInUse            = errors.New("entity is still referenced")
)

// ReferenceError reports which foreign key pointed at a missing row.
// It matches ErrInvalidReference under errors.Is.
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return "invalid reference: " + e.Field
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

type Brand struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BrandFilter struct {
	Name string // substring, case-insensitive
}

type VehicleType struct {
	ID        int64
	Name      string
	BrandID   int64
	Brand     *Brand // populated on reads
	CreatedAt time.Time
	UpdatedAt time.Time
}

type VehicleTypeFilter struct {
	BrandID int64 // 0 = any brand
}

type VehicleModel struct {
	ID        int64
	Name      string
	TypeID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type VehicleModelFilter struct {
	Name   string
	TypeID int64
}

const MinVehicleYear = 1886

type VehicleYear struct {
	ID        int64
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type VehicleYearFilter struct {
	Year string // matched against the decimal year as text
}

type PriceList struct {
	ID        int64
	Code      string
	Price     int
	YearID    int64
	Year      *VehicleYear
	ModelID   int64
	Model     *VehicleModel
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PriceListFilter struct {
	YearID  *int64
	ModelID *int64
}
