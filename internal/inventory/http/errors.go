package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
	"github.com/aussiebroadwan/stocktake/pkg/httpx"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
	"github.com/aussiebroadwan/stocktake/pkg/slogx"
)

const msgServerError = "There was a server error :("

// writeServerError logs err and hides it from the client.
func writeServerError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
	httpx.WriteJSON(w, http.StatusInternalServerError, inventorysdk.ErrorResponse{Error: msgServerError})
}

// writeFieldErrors writes the validation error array used by the
// inventory endpoints.
func writeFieldErrors(w http.ResponseWriter, errs service.ValidationErrors) {
	httpx.WriteJSON(w, http.StatusBadRequest, errs)
}

// decodeInventoryBody decodes the request into dst. A malformed body is
// answered here and ok is false. A type mismatch on a single field comes
// back as a field error; the rest of dst is still filled, so the caller
// can validate it and report every problem at once.
func decodeInventoryBody(w http.ResponseWriter, r *http.Request, dst any) (typeErrs service.ValidationErrors, ok bool) {
	err := httpx.DecodeJSON(w, r, dst)
	if err == nil || errors.Is(err, httpx.ErrEmptyBody) {
		return nil, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return service.ValidationErrors{{
			Field:   typeErr.Field,
			Kind:    service.KindInvalid,
			Message: "Expected a value of type " + typeErr.Type.String() + ".",
		}}, true
	}

	writeFieldErrors(w, service.ValidationErrors{{
		Field:   "body",
		Kind:    service.KindInvalid,
		Message: "Request body must be valid JSON.",
	}})
	return nil, false
}

// mergeFieldErrors appends verrs to typeErrs, dropping validator entries
// for fields that already failed to decode.
func mergeFieldErrors(typeErrs, verrs service.ValidationErrors) service.ValidationErrors {
	seen := make(map[string]bool, len(typeErrs))
	for _, fe := range typeErrs {
		seen[fe.Field] = true
	}

	out := append(service.ValidationErrors{}, typeErrs...)
	for _, fe := range verrs {
		if !seen[fe.Field] {
			out = append(out, fe)
		}
	}
	return out
}
