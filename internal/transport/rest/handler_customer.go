package rest

import (
	"net/http"
	"strconv"

	"confetex-be/internal/customer"
	"confetex-be/internal/utils"
)

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	filter := customer.Filter{
		Search: queryString(r, "search"),
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.Active = &active
		}
	}

	customers, total, err := h.customers.List(r.Context(), filter,
		queryInt32(r, "limit"), queryInt32(r, "page"))
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listResponse{Data: customers, Total: total})
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	c, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) upsertCustomer(w http.ResponseWriter, r *http.Request) {
	var input customer.UpsertInput
	if err := decodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.customers.Upsert(r.Context(), input)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c)
}

// updateCustomer edits an existing cliente. The body is the same upsert
// payload; the path id only guards against editing a record that is gone.
func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	if _, err := h.customers.GetByID(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}

	var input customer.UpsertInput
	if err := decodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.customers.Upsert(r.Context(), input)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) deactivateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	if err := h.customers.Deactivate(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) reactivateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	if err := h.customers.Reactivate(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
