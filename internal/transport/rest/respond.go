package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"confetex-be/internal/cart"
	"confetex-be/internal/category"
	"confetex-be/internal/customer"
	"confetex-be/internal/order"
	"confetex-be/internal/product"
	"confetex-be/internal/quotation"
	"confetex-be/internal/user"
	"confetex-be/internal/utils"
	"confetex-be/internal/workshop"

	"github.com/go-chi/chi/v5"
)

// listResponse is the envelope for every paginated collection.
type listResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt32(r *http.Request, name string) *int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil
	}
	value := int32(v)
	return &value
}

func queryInt64(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryFloat(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

func queryDate(r *http.Request, name string) *time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// statusFromErr maps sentinel errors onto HTTP status codes. Anything
// unmapped is a 500.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, customer.ErrCustomerNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, workshop.ErrWorkshopNotFound),
		errors.Is(err, quotation.ErrQuotationNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, category.ErrNameExists),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, quotation.ErrInvalidTransition),
		errors.Is(err, quotation.ErrNotConvertible),
		errors.Is(err, quotation.ErrQuotationExpired):
		return http.StatusConflict

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrUserInactive):
		return http.StatusUnauthorized

	case errors.Is(err, customer.ErrInvalidRUC),
		errors.Is(err, customer.ErrMissingRazon),
		errors.Is(err, customer.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, category.ErrMissingName),
		errors.Is(err, product.ErrMissingName),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStatus),
		errors.Is(err, product.ErrZeroDelta),
		errors.Is(err, workshop.ErrMissingName),
		errors.Is(err, order.ErrEmptyItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidUnitPrice),
		errors.Is(err, order.ErrMissingTalla),
		errors.Is(err, order.ErrTotalMismatch),
		errors.Is(err, order.ErrInvalidPriority),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrWorkshopUnusable),
		errors.Is(err, quotation.ErrEmptyItems),
		errors.Is(err, quotation.ErrTotalMismatch),
		errors.Is(err, quotation.ErrInvalidStatus),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrMissingTalla),
		errors.Is(err, cart.ErrProductUnavailable):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func respondErr(w http.ResponseWriter, err error) {
	utils.WriteJSONError(w, err.Error(), statusFromErr(err))
}
