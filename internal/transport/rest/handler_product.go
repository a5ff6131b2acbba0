package rest

import (
	"net/http"

	"confetex-be/internal/product"
	"confetex-be/internal/utils"
)

func productFilterFromQuery(r *http.Request) product.Filter {
	filter := product.Filter{
		CategoryID: queryInt64(r, "category_id"),
		Search:     queryString(r, "search"),
		MinPrice:   queryFloat(r, "min_price"),
		MaxPrice:   queryFloat(r, "max_price"),
		LowStock:   r.URL.Query().Get("low_stock") == "true",
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := product.Status(raw)
		filter.Status = &status
	}
	return filter
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, total, err := h.products.List(r.Context(), productFilterFromQuery(r),
		queryInt32(r, "limit"), queryInt32(r, "page"))
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listResponse{Data: products, Total: total})
}

// catalog is the storefront listing. The service pins status to active, so
// a status filter in the query has no effect here.
func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	products, total, err := h.products.Catalog(r.Context(), productFilterFromQuery(r),
		queryInt32(r, "limit"), queryInt32(r, "page"))
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listResponse{Data: products, Total: total})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := decodeJSON(r, &p); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.products.Create(r.Context(), p)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var params product.UpdateParams
	if err := decodeJSON(r, &params); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.products.Update(r.Context(), id, params)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

type stockRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	adj, err := h.products.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, adj)
}
