package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/pkg/cryptox"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
)

// Field error kinds.
const (
	KindRequired = "required"
	KindInvalid  = "invalid"
	KindRange    = "out_of_range"
	KindTaken    = "taken"
)

// Password length bounds for new accounts.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 64
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationErrors collects every problem found in a request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Map returns the first message per field, the shape used by the auth
// endpoints.
func (v ValidationErrors) Map() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

func (v *ValidationErrors) add(field, kind, msg string) {
	*v = append(*v, FieldError{Field: field, Kind: kind, Message: msg})
}

// orNil keeps "no errors" as a nil slice.
func (v ValidationErrors) orNil() ValidationErrors {
	if len(v) == 0 {
		return nil
	}
	return v
}

const (
	msgDeviceType    = "A,C,I, and W are valid device types."
	msgSubtypeNeeded = "Types A and W require a subtype."
	msgSubtype       = "L and D are valid device subtypes."
	msgSubtypeBanned = "Only types A and W should have a subtype."
	msgCode          = "Status codes range from -4 to 5"
	msgNote          = "A note cannot be empty."
	msgDescription   = "A description is required."
	msgEstValue      = "An estimated value of 0 or more is required."

	msgOrder      = "Order asc or dsc."
	msgItems      = "Item limit must be between 10 and 100"
	msgSort       = "Sort by date, value, code or id."
	msgPage       = "Page must be 1 or more."
	msgSearch     = "A search term cannot be empty."
	msgDate       = "A valid min and max date are needed."
	msgDateOrder  = "The min date must be before the max date."
	msgCodes      = "An array with valid status codes is needed."
	msgTypes      = "An array with valid types is needed."
	msgSubtypes   = "An array with valid subtypes is needed."
	msgValue      = "Valid min and max values are needed."
	msgValueOrder = "The min value must not be greater than the max value."

	msgEmailRequired    = "An email is required."
	msgEmailInvalid     = "Please enter a valid email address."
	msgPasswordRequired = "A password is required."
	msgPasswordLength   = "The password must be between 8 and 64 characters long."
	msgPasswordCommon   = "We need a more secure password. Try something memorable but unique."
	msgFirstName        = "A first name is required."
	msgLastName         = "A last name is required."
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// ValidateUserRegistration checks a sign up request and returns the
// normalised values.
func ValidateUserRegistration(req inventorysdk.RegisterUserRequest) (inventorysdk.RegisterUserRequest, ValidationErrors) {
	var errs ValidationErrors

	out := inventorysdk.RegisterUserRequest{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	switch {
	case out.Email == "":
		errs.add("email", KindRequired, msgEmailRequired)
	case !emailPattern.MatchString(out.Email):
		errs.add("email", KindInvalid, msgEmailInvalid)
	}

	n := len([]rune(out.Password))
	switch {
	case out.Password == "":
		errs.add("password", KindRequired, msgPasswordRequired)
	case n < MinPasswordLength || n > MaxPasswordLength:
		errs.add("password", KindRange, msgPasswordLength)
	case cryptox.IsCommonPassword(out.Password):
		errs.add("password", KindInvalid, msgPasswordCommon)
	}

	if out.FirstName == "" {
		errs.add("firstName", KindRequired, msgFirstName)
	}
	if out.LastName == "" {
		errs.add("lastName", KindRequired, msgLastName)
	}

	return out, errs.orNil()
}

// ValidateRegistration checks a device registration request. Every
// independent field problem is reported.
func ValidateRegistration(req inventorysdk.RegisterDeviceRequest) (domain.DeviceRegistration, ValidationErrors) {
	var (
		errs ValidationErrors
		out  domain.DeviceRegistration
	)

	typ := domain.DeviceType(strings.ToUpper(strings.TrimSpace(req.Type)))
	sub := domain.DeviceSubtype(strings.ToUpper(strings.TrimSpace(req.Subtype)))

	if !typ.Valid() {
		errs.add("type", KindInvalid, msgDeviceType)
	} else {
		out.Type = typ
		// Subtype rules only make sense once the type is known.
		switch {
		case typ.RequiresSubtype() && sub == domain.DeviceSubtypeNone:
			errs.add("subtype", KindRequired, msgSubtypeNeeded)
		case typ.RequiresSubtype() && !sub.Valid():
			errs.add("subtype", KindInvalid, msgSubtype)
		case !typ.RequiresSubtype() && sub != domain.DeviceSubtypeNone:
			errs.add("subtype", KindInvalid, msgSubtypeBanned)
		default:
			out.Subtype = sub
		}
	}

	switch {
	case req.Code == nil:
		errs.add("code", KindRequired, msgCode)
	case !domain.ValidCode(*req.Code):
		errs.add("code", KindRange, msgCode)
	default:
		out.Code = *req.Code
	}

	if req.Note != nil {
		if note := strings.TrimSpace(*req.Note); note == "" {
			errs.add("note", KindInvalid, msgNote)
		} else {
			out.Note = note
		}
	}

	if desc := strings.TrimSpace(req.Description); desc == "" {
		errs.add("description", KindRequired, msgDescription)
	} else {
		out.Description = desc
	}

	switch {
	case req.EstValue == nil:
		errs.add("estValue", KindRequired, msgEstValue)
	case *req.EstValue < 0:
		errs.add("estValue", KindRange, msgEstValue)
	default:
		out.EstValue = *req.EstValue
	}

	if len(errs) > 0 {
		return domain.DeviceRegistration{}, errs
	}
	return out, nil
}

// ValidateNote checks a note append request.
func ValidateNote(req inventorysdk.AddNoteRequest) (domain.Note, ValidationErrors) {
	var (
		errs ValidationErrors
		out  domain.Note
	)

	if req.Note == nil || strings.TrimSpace(*req.Note) == "" {
		errs.add("note", KindRequired, msgNote)
	} else {
		out.Note = strings.TrimSpace(*req.Note)
	}

	switch {
	case req.Code == nil:
		errs.add("code", KindRequired, msgCode)
	case !domain.ValidCode(*req.Code):
		errs.add("code", KindRange, msgCode)
	default:
		out.Code = *req.Code
	}

	if len(errs) > 0 {
		return domain.Note{}, errs
	}
	return out, nil
}

var sortFields = map[string]domain.SortField{
	"":      domain.SortByDate,
	"date":  domain.SortByDate,
	"value": domain.SortByValue,
	"code":  domain.SortByCode,
	"id":    domain.SortByID,
}

// ValidateListQuery checks a listing request and turns it into a store
// query.
func ValidateListQuery(req inventorysdk.ListDevicesRequest) (domain.DeviceQuery, ValidationErrors) {
	var (
		errs ValidationErrors
		q    domain.DeviceQuery
	)

	switch order := domain.SortOrder(strings.ToLower(strings.TrimSpace(req.Order))); order {
	case domain.OrderAsc, domain.OrderDsc:
		q.Order = order
	default:
		errs.add("order", KindInvalid, msgOrder)
	}

	switch {
	case req.Items == nil:
		errs.add("items", KindRequired, msgItems)
	case *req.Items < domain.MinItems || *req.Items > domain.MaxItems:
		errs.add("items", KindRange, msgItems)
	default:
		q.Items = *req.Items
	}

	if sf, ok := sortFields[strings.ToLower(strings.TrimSpace(req.Sort))]; ok {
		q.Sort = sf
	} else {
		errs.add("sort", KindInvalid, msgSort)
	}

	switch {
	case req.Page == nil:
		q.Page = 1
	case *req.Page < 1:
		errs.add("page", KindRange, msgPage)
	default:
		q.Page = *req.Page
	}

	if f := req.Filters; f != nil {
		validateFilters(f, &q, &errs)
	}

	if len(errs) > 0 {
		return domain.DeviceQuery{}, errs
	}
	return q, nil
}

func validateFilters(f *inventorysdk.ListFilters, q *domain.DeviceQuery, errs *ValidationErrors) {
	if f.Search != nil {
		if s := strings.TrimSpace(*f.Search); s == "" {
			errs.add("filters.search", KindInvalid, msgSearch)
		} else {
			q.Search = s
		}
	}

	if f.Date != nil {
		if r, msg := parseDateRange(*f.Date); msg != "" {
			errs.add("filters.date", KindInvalid, msg)
		} else {
			q.Date = &r
		}
	}

	if f.Code != nil {
		ok := len(f.Code) > 0
		for _, c := range f.Code {
			ok = ok && domain.ValidCode(c)
		}
		if ok {
			q.Codes = f.Code
		} else {
			errs.add("filters.code", KindInvalid, msgCodes)
		}
	}

	if f.Type != nil {
		types := make([]domain.DeviceType, 0, len(f.Type))
		ok := len(f.Type) > 0
		for _, raw := range f.Type {
			t := domain.DeviceType(strings.ToUpper(strings.TrimSpace(raw)))
			ok = ok && t.Valid()
			types = append(types, t)
		}
		if ok {
			q.Types = types
		} else {
			errs.add("filters.type", KindInvalid, msgTypes)
		}
	}

	if f.Subtype != nil {
		subs := make([]domain.DeviceSubtype, 0, len(f.Subtype))
		ok := len(f.Subtype) > 0
		for _, raw := range f.Subtype {
			s := domain.DeviceSubtype(strings.ToUpper(strings.TrimSpace(raw)))
			ok = ok && s.Valid()
			subs = append(subs, s)
		}
		if ok {
			q.Subtypes = subs
		} else {
			errs.add("filters.subtype", KindInvalid, msgSubtypes)
		}
	}

	if v := f.Value; v != nil {
		// Zero bounds are rejected along with missing ones.
		switch {
		case v.Min == nil || v.Max == nil || *v.Min == 0 || *v.Max == 0:
			errs.add("filters.value", KindInvalid, msgValue)
		case *v.Min > *v.Max:
			errs.add("filters.value", KindRange, msgValueOrder)
		default:
			q.Value = &domain.ValueRange{Min: *v.Min, Max: *v.Max}
		}
	}
}

const dateOnly = "2006-01-02"

// parseDateRange returns an error message rather than an error so the
// caller can report it against the field. A date-only max covers that
// whole day.
func parseDateRange(r inventorysdk.DateRange) (domain.TimeRange, string) {
	lo, okLo := parseBound(r.Min, false)
	hi, okHi := parseBound(r.Max, true)
	if !okLo || !okHi {
		return domain.TimeRange{}, msgDate
	}
	if lo.After(hi) {
		return domain.TimeRange{}, msgDateOrder
	}
	return domain.TimeRange{Min: lo, Max: hi}, ""
}

func parseBound(s string, endOfDay bool) (time.Time, bool) {
	s = strings.TrimSpace(s)

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		d, derr := time.Parse(dateOnly, s)
		if derr != nil {
			return time.Time{}, false
		}
		t = d
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	// The Unix epoch counts as "no date".
	if t.IsZero() || t.Unix() == 0 {
		return time.Time{}, false
	}
	return t.UTC(), true
}
