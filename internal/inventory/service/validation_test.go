package service_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
	"github.com/stretchr/testify/require"
)

func validDevice() inventorysdk.RegisterDeviceRequest {
	return inventorysdk.RegisterDeviceRequest{
		Type:        "A",
		Subtype:     "L",
		Code:        ptr(1),
		Description: "ThinkPad",
		EstValue:    ptr(250.0),
	}
}

func fieldMessages(errs service.ValidationErrors) map[string]string {
	return errs.Map()
}

func TestValidateRegistrationNormalisesCase(t *testing.T) {
	req := validDevice()
	req.Type = "w"
	req.Subtype = "d"

	reg, errs := service.ValidateRegistration(req)
	require.Nil(t, errs)
	require.Equal(t, domain.DeviceTypeW, reg.Type)
	require.Equal(t, domain.DeviceSubtypeD, reg.Subtype)
}

func TestValidateRegistrationType(t *testing.T) {
	for _, typ := range []string{"", "B", "AA", "x"} {
		req := validDevice()
		req.Type = typ

		_, errs := service.ValidateRegistration(req)
		msgs := fieldMessages(errs)
		require.Equal(t, "A,C,I, and W are valid device types.", msgs["type"], "type %q", typ)
		require.NotContains(t, msgs, "subtype", "subtype is not judged against an invalid type")
	}
}

func TestValidateRegistrationSubtypeRules(t *testing.T) {
	cases := []struct {
		name, typ, sub, want string
	}{
		{"A without subtype", "A", "", "Types A and W require a subtype."},
		{"W without subtype", "W", "", "Types A and W require a subtype."},
		{"A with bad subtype", "A", "X", "L and D are valid device subtypes."},
		{"C with subtype", "C", "L", "Only types A and W should have a subtype."},
		{"I with subtype", "i", "d", "Only types A and W should have a subtype."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validDevice()
			req.Type, req.Subtype = c.typ, c.sub

			_, errs := service.ValidateRegistration(req)
			require.Equal(t, c.want, fieldMessages(errs)["subtype"])
		})
	}

	t.Run("C without subtype", func(t *testing.T) {
		req := validDevice()
		req.Type, req.Subtype = "c", ""

		reg, errs := service.ValidateRegistration(req)
		require.Nil(t, errs)
		require.Equal(t, domain.DeviceSubtypeNone, reg.Subtype)
	})
}

func TestValidateRegistrationCollectsEveryField(t *testing.T) {
	req := inventorysdk.RegisterDeviceRequest{
		Type:     "A",
		Subtype:  "L",
		Code:     ptr(9),
		Note:     ptr("  "),
		EstValue: ptr(-1.0),
	}

	_, errs := service.ValidateRegistration(req)
	msgs := fieldMessages(errs)
	require.Len(t, msgs, 4)
	require.Equal(t, "Status codes range from -4 to 5", msgs["code"])
	require.Contains(t, msgs, "note")
	require.Contains(t, msgs, "description")
	require.Contains(t, msgs, "estValue")
}

func TestValidateRegistrationCodeBounds(t *testing.T) {
	for _, code := range []int{-4, 0, 5} {
		req := validDevice()
		req.Code = ptr(code)
		_, errs := service.ValidateRegistration(req)
		require.Nil(t, errs, "code %d", code)
	}
	for _, code := range []int{-5, 6} {
		req := validDevice()
		req.Code = ptr(code)
		_, errs := service.ValidateRegistration(req)
		require.NotNil(t, errs, "code %d", code)
	}

	req := validDevice()
	req.Code = nil
	_, errs := service.ValidateRegistration(req)
	require.Equal(t, service.KindRequired, errs[0].Kind)
}

func TestValidateRegistrationNoteAndZeroValue(t *testing.T) {
	req := validDevice()
	req.Note = ptr(" arrived boxed ")
	req.EstValue = ptr(0.0)

	reg, errs := service.ValidateRegistration(req)
	require.Nil(t, errs)
	require.Equal(t, "arrived boxed", reg.Note)
	require.Zero(t, reg.EstValue)
}

func validList() inventorysdk.ListDevicesRequest {
	return inventorysdk.ListDevicesRequest{Order: "asc", Items: ptr(10)}
}

func TestValidateListQueryDefaults(t *testing.T) {
	q, errs := service.ValidateListQuery(validList())
	require.Nil(t, errs)
	require.Equal(t, domain.OrderAsc, q.Order)
	require.Equal(t, domain.SortByDate, q.Sort)
	require.Equal(t, 10, q.Items)
	require.Equal(t, 1, q.Page)
	require.Nil(t, q.Types)
	require.Nil(t, q.Date)
	require.Nil(t, q.Value)
}

func TestValidateListQueryItems(t *testing.T) {
	for _, items := range []int{5, 9, 101} {
		req := validList()
		req.Items = ptr(items)
		_, errs := service.ValidateListQuery(req)
		require.Equal(t, "Item limit must be between 10 and 100", fieldMessages(errs)["items"], "items %d", items)
	}
	for _, items := range []int{10, 55, 100} {
		req := validList()
		req.Items = ptr(items)
		_, errs := service.ValidateListQuery(req)
		require.Nil(t, errs, "items %d", items)
	}

	req := validList()
	req.Items = nil
	_, errs := service.ValidateListQuery(req)
	require.Contains(t, fieldMessages(errs), "items")
}

func TestValidateListQueryOrderSortPage(t *testing.T) {
	req := validList()
	req.Order = "up"
	req.Sort = "colour"
	req.Page = ptr(0)

	_, errs := service.ValidateListQuery(req)
	msgs := fieldMessages(errs)
	require.Equal(t, "Order asc or dsc.", msgs["order"])
	require.Contains(t, msgs, "sort")
	require.Contains(t, msgs, "page")

	req = validList()
	req.Order = "DSC"
	req.Sort = "value"
	req.Page = ptr(3)
	q, errs := service.ValidateListQuery(req)
	require.Nil(t, errs)
	require.Equal(t, domain.OrderDsc, q.Order)
	require.Equal(t, domain.SortByValue, q.Sort)
	require.Equal(t, 20, q.Offset())
}

func TestValidateListQueryEnumFilters(t *testing.T) {
	t.Run("normalises members", func(t *testing.T) {
		req := validList()
		req.Filters = &inventorysdk.ListFilters{
			Type:    []string{"a", "W"},
			Subtype: []string{"l"},
			Code:    []int{-4, 5},
		}
		q, errs := service.ValidateListQuery(req)
		require.Nil(t, errs)
		require.Equal(t, []domain.DeviceType{domain.DeviceTypeA, domain.DeviceTypeW}, q.Types)
		require.Equal(t, []domain.DeviceSubtype{domain.DeviceSubtypeL}, q.Subtypes)
		require.Equal(t, []int{-4, 5}, q.Codes)
	})

	t.Run("empty arrays are rejected", func(t *testing.T) {
		req := validList()
		req.Filters = &inventorysdk.ListFilters{Type: []string{}, Subtype: []string{}, Code: []int{}}
		_, errs := service.ValidateListQuery(req)
		msgs := fieldMessages(errs)
		require.Equal(t, "An array with valid types is needed.", msgs["filters.type"])
		require.Equal(t, "An array with valid subtypes is needed.", msgs["filters.subtype"])
		require.Equal(t, "An array with valid status codes is needed.", msgs["filters.code"])
	})

	t.Run("invalid members are rejected", func(t *testing.T) {
		req := validList()
		req.Filters = &inventorysdk.ListFilters{Type: []string{"A", "Z"}, Subtype: []string{""}, Code: []int{7}}
		_, errs := service.ValidateListQuery(req)
		require.Len(t, errs, 3)
	})

	t.Run("empty search is rejected", func(t *testing.T) {
		req := validList()
		req.Filters = &inventorysdk.ListFilters{Search: ptr(" ")}
		_, errs := service.ValidateListQuery(req)
		require.Contains(t, fieldMessages(errs), "filters.search")
	})
}

func TestValidateListQueryDates(t *testing.T) {
	t.Run("rfc3339 bounds", func(t *testing.T) {
		req := validList()
		req.Filters = &inventorysdk.ListFilters{Date: &inventorysdk.DateRange{
			Min: "2019-02-07T23:51:58.479Z",
			Max: "2019-02-07T23:53:37.554Z",
		}}
		q, errs := service.ValidateListQuery(req)
		require.Nil(t, errs)
		require.Equal(t, time.Date(2019, 2, 7, 23, 51, 58, 479000000, time.UTC), q.Date.Min)
	})

	t.Run("date only max covers the day", func(t *testing.T) {
		req := validList()
		req.Filters = &inventorysdk.ListFilters{Date: &inventorysdk.DateRange{Min: "2019-02-07", Max: "2019-02-07"}}
		q, errs := service.ValidateListQuery(req)
		require.Nil(t, errs)
		require.Equal(t, time.Date(2019, 2, 7, 0, 0, 0, 0, time.UTC), q.Date.Min)
		require.Equal(t, time.Date(2019, 2, 7, 23, 59, 59, 999999999, time.UTC), q.Date.Max)
	})

	t.Run("unparseable or epoch", func(t *testing.T) {
		for _, r := range []inventorysdk.DateRange{
			{Min: "", Max: "2019-02-07"},
			{Min: "yesterday", Max: "2019-02-07"},
			{Min: "1970-01-01T00:00:00Z", Max: "2019-02-07"},
		} {
			req := validList()
			req.Filters = &inventorysdk.ListFilters{Date: &r}
			_, errs := service.ValidateListQuery(req)
			require.Equal(t, "A valid min and max date are needed.", fieldMessages(errs)["filters.date"])
		}
	})

	t.Run("min after max", func(t *testing.T) {
		req := validList()
		req.Filters = &inventorysdk.ListFilters{Date: &inventorysdk.DateRange{Min: "2019-02-08", Max: "2019-02-07"}}
		_, errs := service.ValidateListQuery(req)
		require.Equal(t, "The min date must be before the max date.", fieldMessages(errs)["filters.date"])
	})
}

func TestValidateListQueryValueBounds(t *testing.T) {
	cases := []struct {
		name     string
		min, max *float64
		ok       bool
	}{
		{"both set", ptr(150.0), ptr(1200.0), true},
		{"equal", ptr(5.0), ptr(5.0), true},
		{"missing max", ptr(1.0), nil, false},
		{"zero min is rejected", ptr(0.0), ptr(100.0), false},
		{"zero max is rejected", ptr(-10.0), ptr(0.0), false},
		{"min above max", ptr(10.0), ptr(1.0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validList()
			req.Filters = &inventorysdk.ListFilters{Value: &inventorysdk.ValueRange{Min: c.min, Max: c.max}}
			q, errs := service.ValidateListQuery(req)
			if c.ok {
				require.Nil(t, errs)
				require.Equal(t, *c.min, q.Value.Min)
				return
			}
			require.Contains(t, fieldMessages(errs), "filters.value")
		})
	}

	t.Run("min above max message", func(t *testing.T) {
		req := validList()
		req.Filters = &inventorysdk.ListFilters{Value: &inventorysdk.ValueRange{Min: ptr(10.0), Max: ptr(1.0)}}
		_, errs := service.ValidateListQuery(req)
		require.Equal(t, "The min value must not be greater than the max value.", fieldMessages(errs)["filters.value"])
	})
}

func TestValidateUserRegistration(t *testing.T) {
	ok := inventorysdk.RegisterUserRequest{
		Email:     " grace@example.com ",
		Password:  "correct horse battery",
		FirstName: "Grace",
		LastName:  "Hopper",
	}

	out, errs := service.ValidateUserRegistration(ok)
	require.Nil(t, errs)
	require.Equal(t, "grace@example.com", out.Email)

	_, errs = service.ValidateUserRegistration(inventorysdk.RegisterUserRequest{})
	require.Equal(t, map[string]string{
		"email":     "An email is required.",
		"password":  "A password is required.",
		"firstName": "A first name is required.",
		"lastName":  "A last name is required.",
	}, errs.Map())

	bad := ok
	bad.Email = "grace@localhost"
	bad.Password = "short"
	_, errs = service.ValidateUserRegistration(bad)
	require.Equal(t, "Please enter a valid email address.", errs.Map()["email"])
	require.Equal(t, "The password must be between 8 and 64 characters long.", errs.Map()["password"])

	common := ok
	common.Password = "password123"
	_, errs = service.ValidateUserRegistration(common)
	require.Equal(t, "We need a more secure password. Try something memorable but unique.", errs.Map()["password"])
}

func TestValidateNote(t *testing.T) {
	n, errs := service.ValidateNote(inventorysdk.AddNoteRequest{Note: ptr("fixed"), Code: ptr(2)})
	require.Nil(t, errs)
	require.Equal(t, "fixed", n.Note)
	require.Equal(t, 2, n.Code)

	_, errs = service.ValidateNote(inventorysdk.AddNoteRequest{})
	require.Len(t, errs, 2)
}
