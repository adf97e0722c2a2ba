/*
Package inventorysdk provides the wire types and a client for the Stocktake
inventory service.

# Client

An SDKClient keeps the session cookie in a cookie jar, so logging in once is
enough for the inventory calls that follow:

	client := inventorysdk.NewSDKClient("http://localhost:8080")

	if _, err := client.Login(ctx, "grace@example.com", password); err != nil {
		return err
	}

	created, err := client.RegisterDevice(ctx, inventorysdk.RegisterDeviceRequest{
		Type:        "C",
		Subtype:     "L",
		Code:        inventorysdk.Ptr(1),
		Description: "ThinkPad X1",
		EstValue:    inventorysdk.Ptr(450.0),
	})

# Errors

Non-2xx responses come back as *APIError. Validation failures fill Fields
for the inventory endpoints and FieldMap for account registration:

	var apiErr *inventorysdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		for _, fe := range apiErr.Fields {
			fmt.Println(fe.Field, fe.Message)
		}
	}
*/
package inventorysdk
