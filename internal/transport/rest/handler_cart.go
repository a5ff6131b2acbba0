package rest

import (
	"net/http"

	"confetex-be/internal/cart"
	"confetex-be/internal/order"
	"confetex-be/internal/utils"
)

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	items, err := h.carts.GetItems(r.Context(), userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	if items == nil {
		items = []cart.CartItem{}
	}

	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input cart.AddItemInput
	if err := decodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.carts.AddItem(r.Context(), userID, input)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, item)
}

type cartQuantityRequest struct {
	Cantidad int `json:"cantidad"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid cart item id", http.StatusBadRequest)
		return
	}

	var req cartQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.carts.UpdateQuantity(r.Context(), userID, id, req.Cantidad); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid cart item id", http.StatusBadRequest)
		return
	}

	if err := h.carts.RemoveItem(r.Context(), userID, id); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// checkout drains the cart into a pedido and answers with the same
// contract as direct order creation.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input cart.CheckoutInput
	if err := decodeJSON(r, &input); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, order.CreateOrderResult{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	o, err := h.carts.Checkout(r.Context(), userID, input)
	if err != nil {
		utils.WriteJSON(w, statusFromErr(err), order.CreateOrderResult{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, order.CreateOrderResult{
		Success:      true,
		PedidoID:     o.ID,
		NumeroPedido: o.Numero,
	})
}
