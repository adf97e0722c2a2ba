package inventorysdk

import "time"

// RegisterUserRequest creates an account.
type RegisterUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest exchanges credentials for a session cookie.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is returned by register and login.
type UserResponse struct {
	Email string `json:"email"`
}

// ProfileResponse is the signed-in user's profile.
type ProfileResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of non-validation failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RegisterDeviceRequest adds a device to the inventory. Pointer fields
// distinguish "missing" from a zero value.
type RegisterDeviceRequest struct {
	Type        string   `json:"type"`
	Subtype     string   `json:"subtype,omitempty"`
	Code        *int     `json:"code"`
	Note        *string  `json:"note,omitempty"`
	Description string   `json:"description"`
	EstValue    *float64 `json:"estValue"`
}

// RegisterDeviceResponse returns the durable device id.
type RegisterDeviceResponse struct {
	FullID string `json:"fullID"`
}

// ListDevicesRequest is sent as the JSON body of GET /inventory/list.
type ListDevicesRequest struct {
	Order   string       `json:"order"`
	Items   *int         `json:"items"`
	Sort    string       `json:"sort,omitempty"`
	Page    *int         `json:"page,omitempty"`
	Filters *ListFilters `json:"filters,omitempty"`
}

// ListFilters narrows a listing. A nil slice means "not filtered"; an
// empty one is rejected.
type ListFilters struct {
	Search  *string     `json:"search,omitempty"`
	Date    *DateRange  `json:"date,omitempty"`
	Code    []int       `json:"code"`
	Type    []string    `json:"type"`
	Subtype []string    `json:"subtype"`
	Value   *ValueRange `json:"value,omitempty"`
}

// DateRange bounds accept RFC 3339 timestamps or YYYY-MM-DD dates.
type DateRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type ValueRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// AddNoteRequest appends a note and moves the device to a new status code.
type AddNoteRequest struct {
	Note *string `json:"note"`
	Code *int    `json:"code"`
}

// Device is the wire form of a registered device.
type Device struct {
	FullID      string    `json:"fullID"`
	UniqueID    string    `json:"uniqueID"`
	WeekYr      string    `json:"weekYr"`
	WeekDevice  int       `json:"weekDevice"`
	Type        string    `json:"type"`
	Subtype     string    `json:"subtype"`
	Code        int       `json:"code"`
	Description string    `json:"description"`
	EstValue    float64   `json:"estValue"`
	Notes       []Note    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Note struct {
	Note      string    `json:"note"`
	Code      int       `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Events   string `json:"events,omitempty"`
}
