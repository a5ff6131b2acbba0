package rest

import (
	"net/http"

	"confetex-be/internal/category"
	"confetex-be/internal/utils"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"

	categories, err := h.categories.GetCategories(r.Context(), onlyActive)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.categories.AddCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c := category.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := h.categories.UpdateCategory(r.Context(), c); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c)
}
