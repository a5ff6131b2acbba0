package rest

import (
	"net/http"

	"confetex-be/internal/order"
	"confetex-be/internal/utils"
)

// createOrder speaks the pedido intake contract: the response always
// carries success, and either the allocated ids or an error message.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var input order.CreateOrderInput
	if err := decodeJSON(r, &input); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, order.CreateOrderResult{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	o, err := h.orders.Create(r.Context(), input)
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

func orderFilterFromQuery(r *http.Request) order.Filter {
	filter := order.Filter{
		CustomerID: queryInt64(r, "customer_id"),
		WorkshopID: queryInt64(r, "workshop_id"),
		Search:     queryString(r, "search"),
		DateFrom:   queryDate(r, "date_from"),
		DateTo:     queryDate(r, "date_to"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := order.Status(raw)
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := order.Priority(raw)
		filter.Priority = &priority
	}
	return filter
}

func orderSortFromQuery(r *http.Request) *order.SortInput {
	raw := r.URL.Query().Get("sort")
	if raw == "" {
		return nil
	}

	sort := &order.SortInput{Direction: order.SortDesc}
	switch order.SortField(raw) {
	case order.SortFieldTotal:
		sort.Field = order.SortFieldTotal
	case order.SortFieldPriority:
		sort.Field = order.SortFieldPriority
	default:
		sort.Field = order.SortFieldCreatedAt
	}
	if r.URL.Query().Get("dir") == "asc" {
		sort.Direction = order.SortAsc
	}
	return sort
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, total, err := h.orders.GetOrders(r.Context(),
		orderFilterFromQuery(r), orderSortFromQuery(r),
		queryInt32(r, "limit"), queryInt32(r, "page"))
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listResponse{Data: orders, Total: total})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := h.orders.GetOrderDetail(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

type orderStatusRequest struct {
	Status order.Status `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type orderWorkshopRequest struct {
	WorkshopID *int64 `json:"workshop_id"`
}

func (h *Handler) assignOrderWorkshop(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req orderWorkshopRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orders.AssignWorkshop(r.Context(), id, req.WorkshopID); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
