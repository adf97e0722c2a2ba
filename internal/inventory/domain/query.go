package domain

import "time"

type SortOrder string

const (
	OrderAsc SortOrder = "asc"
	OrderDsc SortOrder = "dsc"
)

type SortField string

const (
	SortByDate  SortField = "date"
	SortByValue SortField = "value"
	SortByCode  SortField = "code"
	SortByID    SortField = "id"
)

// Page size bounds for device listings.
const (
	MinItems = 10
	MaxItems = 100
)

// DeviceQuery is a validated listing request. Nil slices and pointers mean
// the filter was not given.
type DeviceQuery struct {
	Order SortOrder
	Sort  SortField
	Items int
	Page  int

	Search   string
	Types    []DeviceType
	Subtypes []DeviceSubtype
	Codes    []int
	Date     *TimeRange
	Value    *ValueRange
}

type TimeRange struct {
	Min time.Time
	Max time.Time
}

type ValueRange struct {
	Min float64
	Max float64
}

// Offset is the number of rows skipped before the requested page.
func (q DeviceQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Items
}
