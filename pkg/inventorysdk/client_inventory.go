package inventorysdk

import (
	"context"
	"net/http"
	"net/url"
)

// RegisterDevice adds a device and returns its full id.
func (c *SDKClient) RegisterDevice(ctx context.Context, req RegisterDeviceRequest) (*RegisterDeviceResponse, error) {
	var out RegisterDeviceResponse
	if err := c.doJSON(ctx, http.MethodPost, "/inventory/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDevices runs a listing query. The query travels as the body of a GET.
func (c *SDKClient) ListDevices(ctx context.Context, req ListDevicesRequest) ([]Device, error) {
	var out []Device
	if err := c.doJSON(ctx, http.MethodGet, "/inventory/list", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDevice fetches one device by full id.
func (c *SDKClient) GetDevice(ctx context.Context, fullID string) (*Device, error) {
	var out Device
	if err := c.doJSON(ctx, http.MethodGet, "/inventory/"+url.PathEscape(fullID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddNote appends a note and returns the updated device.
func (c *SDKClient) AddNote(ctx context.Context, fullID string, req AddNoteRequest) (*Device, error) {
	var out Device
	path := "/inventory/" + url.PathEscape(fullID) + "/notes"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
