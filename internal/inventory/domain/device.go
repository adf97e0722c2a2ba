package domain

import (
	"slices"
	"time"
)

// DeviceType is the single letter class of a device.
type DeviceType string

const (
	DeviceTypeA DeviceType = "A"
	DeviceTypeC DeviceType = "C"
	DeviceTypeI DeviceType = "I"
	DeviceTypeW DeviceType = "W"
)

// DeviceTypes lists every valid device type.
var DeviceTypes = []DeviceType{DeviceTypeA, DeviceTypeC, DeviceTypeI, DeviceTypeW}

// Valid reports whether t is a known device type.
func (t DeviceType) Valid() bool { return slices.Contains(DeviceTypes, t) }

// RequiresSubtype reports whether devices of this type carry a subtype.
func (t DeviceType) RequiresSubtype() bool {
	return t == DeviceTypeA || t == DeviceTypeW
}

// DeviceSubtype is empty for types C and I.
type DeviceSubtype string

const (
	DeviceSubtypeNone DeviceSubtype = ""
	DeviceSubtypeL    DeviceSubtype = "L"
	DeviceSubtypeD    DeviceSubtype = "D"
)

// DeviceSubtypes lists every non-empty subtype.
var DeviceSubtypes = []DeviceSubtype{DeviceSubtypeL, DeviceSubtypeD}

// Valid reports whether s is a known non-empty subtype.
func (s DeviceSubtype) Valid() bool { return slices.Contains(DeviceSubtypes, s) }

// Status codes run from MinCode to MaxCode inclusive.
const (
	MinCode = -4
	MaxCode = 5
)

// ValidCode reports whether c is a known status code.
func ValidCode(c int) bool { return c >= MinCode && c <= MaxCode }

// Device is a registered piece of inventory.
type Device struct {
	ID          string
	WeekYr      string
	WeekDevice  int
	UniqueID    string
	FullID      string
	Type        DeviceType
	Subtype     DeviceSubtype
	Code        int
	Description string
	EstValue    float64
	Notes       []Note
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Note is an entry in a device's history.
type Note struct {
	Note      string
	Code      int
	CreatedAt time.Time
}

// DeviceID is one allocation from the per-week counter.
type DeviceID struct {
	WeekYr     string
	WeekDevice int
	UniqueID   string
}

// FullID appends the type and subtype letters to the unique id.
func (id DeviceID) FullID(t DeviceType, s DeviceSubtype) string {
	return id.UniqueID + string(t) + string(s)
}

// DeviceRegistration is a validated, normalised registration request.
type DeviceRegistration struct {
	Type        DeviceType
	Subtype     DeviceSubtype
	Code        int
	Note        string
	Description string
	EstValue    float64
}
