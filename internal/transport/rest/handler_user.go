package rest

import (
	"net/http"

	"confetex-be/internal/user"
	"confetex-be/internal/utils"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, total, err := h.users.List(r.Context(), queryInt32(r, "limit"), queryInt32(r, "page"))
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listResponse{Data: users, Total: total})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var params user.UpdateUserParams
	if err := decodeJSON(r, &params); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.users.Update(r.Context(), id, params); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
