package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
	"github.com/aussiebroadwan/stocktake/pkg/httpx"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
)

const msgDeviceNotFound = "device not found"

type InventoryHandler struct {
	InventoryService *service.InventoryService
}

// Register adds a device and returns its full id.
//
//	@Summary		Register a device
//	@Description	Allocates the next id in the current ISO week and stores the device.
//	@Tags			Inventory
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventorysdk.RegisterDeviceRequest	true	"Device"
//	@Success		200		{object}	inventorysdk.RegisterDeviceResponse	"Full id"
//	@Failure		400		{array}		inventorysdk.FieldError				"Validation errors"
//	@Failure		401		{object}	inventorysdk.ErrorResponse			"No live session"
//	@Failure		429		{object}	inventorysdk.ErrorResponse			"Rate limited"
//	@Failure		500		{object}	inventorysdk.ErrorResponse			"Server error"
//	@Router			/inventory/register [post].
func (h *InventoryHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req inventorysdk.RegisterDeviceRequest
	typeErrs, ok := decodeInventoryBody(w, r, &req)
	if !ok {
		return
	}
	if typeErrs != nil {
		_, verrs := service.ValidateRegistration(req)
		writeFieldErrors(w, mergeFieldErrors(typeErrs, verrs))
		return
	}

	device, err := h.InventoryService.RegisterDevice(ctx, p.UserID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inventorysdk.RegisterDeviceResponse{FullID: device.FullID})
}

// List returns a page of devices.
//
//	@Summary		List devices
//	@Description	Filters, sorts and pages the inventory. The query is sent as a JSON body.
//	@Tags			Inventory
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventorysdk.ListDevicesRequest	true	"Query"
//	@Success		200		{array}		inventorysdk.Device				"Devices"
//	@Failure		400		{array}		inventorysdk.FieldError			"Validation errors"
//	@Failure		401		{object}	inventorysdk.ErrorResponse		"No live session"
//	@Failure		429		{object}	inventorysdk.ErrorResponse		"Rate limited"
//	@Failure		500		{object}	inventorysdk.ErrorResponse		"Server error"
//	@Router			/inventory/list [get].
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var req inventorysdk.ListDevicesRequest
	typeErrs, ok := decodeInventoryBody(w, r, &req)
	if !ok {
		return
	}
	if typeErrs != nil {
		_, verrs := service.ValidateListQuery(req)
		writeFieldErrors(w, mergeFieldErrors(typeErrs, verrs))
		return
	}

	devices, err := h.InventoryService.ListDevices(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]inventorysdk.Device, 0, len(devices))
	for _, d := range devices {
		out = append(out, toSDKDevice(d))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Get returns one device with its notes.
//
//	@Summary		Get a device
//	@Tags			Inventory
//	@Security		SessionCookie
//	@Produce		json
//	@Param			fullID	path		string						true	"Full device id"
//	@Success		200		{object}	inventorysdk.Device			"Device"
//	@Failure		401		{object}	inventorysdk.ErrorResponse	"No live session"
//	@Failure		404		{object}	inventorysdk.ErrorResponse	"Unknown device"
//	@Failure		500		{object}	inventorysdk.ErrorResponse	"Server error"
//	@Router			/inventory/{fullID} [get].
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	device, err := h.InventoryService.GetDevice(r.Context(), r.PathValue("fullID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKDevice(device))
}

// AddNote appends a note and updates the device's status code.
//
//	@Summary		Add a note
//	@Tags			Inventory
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			fullID	path		string						true	"Full device id"
//	@Param			request	body		inventorysdk.AddNoteRequest	true	"Note"
//	@Success		200		{object}	inventorysdk.Device			"Updated device"
//	@Failure		400		{array}		inventorysdk.FieldError		"Validation errors"
//	@Failure		401		{object}	inventorysdk.ErrorResponse	"No live session"
//	@Failure		404		{object}	inventorysdk.ErrorResponse	"Unknown device"
//	@Failure		500		{object}	inventorysdk.ErrorResponse	"Server error"
//	@Router			/inventory/{fullID}/notes [post].
func (h *InventoryHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req inventorysdk.AddNoteRequest
	typeErrs, ok := decodeInventoryBody(w, r, &req)
	if !ok {
		return
	}
	if typeErrs != nil {
		_, verrs := service.ValidateNote(req)
		writeFieldErrors(w, mergeFieldErrors(typeErrs, verrs))
		return
	}

	device, err := h.InventoryService.AppendNote(r.Context(), r.PathValue("fullID"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKDevice(device))
}

func (h *InventoryHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeFieldErrors(w, verrs)
	case errors.Is(err, service.ErrDeviceNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgDeviceNotFound)
	default:
		writeServerError(w, r, err)
	}
}

func toSDKDevice(d domain.Device) inventorysdk.Device {
	notes := make([]inventorysdk.Note, 0, len(d.Notes))
	for _, n := range d.Notes {
		notes = append(notes, inventorysdk.Note{
			Note:      n.Note,
			Code:      n.Code,
			Timestamp: n.CreatedAt,
		})
	}

	return inventorysdk.Device{
		FullID:      d.FullID,
		UniqueID:    d.UniqueID,
		WeekYr:      d.WeekYr,
		WeekDevice:  d.WeekDevice,
		Type:        string(d.Type),
		Subtype:     string(d.Subtype),
		Code:        d.Code,
		Description: d.Description,
		EstValue:    d.EstValue,
		Notes:       notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
