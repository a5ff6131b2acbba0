package rest

import (
	"net/http"

	"confetex-be/internal/utils"
	"confetex-be/internal/workshop"
)

func (h *Handler) listWorkshops(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"

	workshops, err := h.workshops.GetAll(r.Context(), onlyActive)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, workshops)
}

func (h *Handler) createWorkshop(w http.ResponseWriter, r *http.Request) {
	var ws workshop.Workshop
	if err := decodeJSON(r, &ws); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.workshops.Create(r.Context(), ws)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateWorkshop(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid workshop id", http.StatusBadRequest)
		return
	}

	var params workshop.UpdateParams
	if err := decodeJSON(r, &params); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ws, err := h.workshops.Update(r.Context(), id, params)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, ws)
}

// workshopLoad reports open orders against declared capacity, used by
// production when picking a taller for a pedido.
func (h *Handler) workshopLoad(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid workshop id", http.StatusBadRequest)
		return
	}

	load, err := h.workshops.Load(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, load)
}
