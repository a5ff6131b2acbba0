package rest

import (
	"net/http"

	"confetex-be/internal/quotation"
	"confetex-be/internal/utils"
)

func (h *Handler) listQuotations(w http.ResponseWriter, r *http.Request) {
	filter := quotation.Filter{
		CustomerID: queryInt64(r, "customer_id"),
		Search:     queryString(r, "search"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := quotation.Status(raw)
		filter.Status = &status
	}

	quotations, total, err := h.quotations.GetQuotations(r.Context(), filter,
		queryInt32(r, "limit"), queryInt32(r, "page"))
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listResponse{Data: quotations, Total: total})
}

func (h *Handler) createQuotation(w http.ResponseWriter, r *http.Request) {
	var input quotation.CreateQuotationInput
	if err := decodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.quotations.Create(r.Context(), input)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, q)
}

func (h *Handler) getQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid quotation id", http.StatusBadRequest)
		return
	}

	q, err := h.quotations.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, q)
}

type quotationStatusRequest struct {
	Status quotation.Status `json:"status"`
}

func (h *Handler) updateQuotationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid quotation id", http.StatusBadRequest)
		return
	}

	var req quotationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.quotations.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) convertQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid quotation id", http.StatusBadRequest)
		return
	}

	o, err := h.quotations.Convert(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, o)
}
