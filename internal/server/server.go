// Package server exposes the point-of-sale operations over HTTP/JSON.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/maykapos/hotelpos/internal/auth"
	"github.com/maykapos/hotelpos/internal/cart"
	"github.com/maykapos/hotelpos/internal/middleware"
	"github.com/maykapos/hotelpos/internal/service"
	"github.com/maykapos/hotelpos/internal/storage"
)

// Server wires the services into an http.Handler.
type Server struct {
	inventory *service.InventoryService
	billing   *service.BillingService
	pin       *auth.PINVerifier
	jwt       *auth.JWTManager
}

// New creates a Server. The PIN verifier gates the admin token endpoint and
// the JWT manager signs and validates the tokens it hands out.
func New(inventory *service.InventoryService, billing *service.BillingService, pin *auth.PINVerifier, jwt *auth.JWTManager) *Server {
	return &Server{inventory: inventory, billing: billing, pin: pin, jwt: jwt}
}

// Routes builds the request mux. Catalog and bill mutations require an
// admin token; the sales flow (cart, checkout, reads) is open to the
// cashier terminal.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(s.jwt, h)
	}

	mux.HandleFunc("POST /admin/unlock", s.handleAdminUnlock)

	mux.HandleFunc("GET /rooms", s.handleListRooms)
	mux.Handle("POST /rooms", admin(s.handleAddRoom))
	mux.Handle("PUT /rooms/{id}", admin(s.handleUpdateRoom))
	mux.Handle("DELETE /rooms/{id}", admin(s.handleDeleteRoom))

	mux.HandleFunc("GET /foods", s.handleListFoods)
	mux.Handle("POST /foods", admin(s.handleAddFood))
	mux.Handle("PUT /foods/{id}", admin(s.handleUpdateFood))
	mux.Handle("DELETE /foods/{id}", admin(s.handleDeleteFood))

	mux.HandleFunc("GET /cart", s.handleGetCart)
	mux.HandleFunc("DELETE /cart", s.handleClearCart)
	mux.HandleFunc("POST /cart/food/{id}", s.handleCartAddFood)
	mux.HandleFunc("POST /cart/room/{id}", s.handleCartAddRoom)
	mux.HandleFunc("POST /cart/lines/{name}/quantity", s.handleCartChangeQuantity)
	mux.HandleFunc("DELETE /cart/lines/{name}", s.handleCartRemoveLine)
	mux.HandleFunc("POST /cart/checkout", s.handleCheckout)

	mux.HandleFunc("GET /bills", s.handleListBills)
	mux.HandleFunc("GET /bills/{id}/lines", s.handleBillLines)
	mux.HandleFunc("GET /bills/{id}/receipt", s.handleBillReceipt)
	mux.Handle("DELETE /bills/{id}", admin(s.handleDeleteBill))

	return mux
}

type roomRequest struct {
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	PricePerDay float64 `json:"price_per_day"`
	Status      string  `json:"status"`
}

type foodRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func (s *Server) handleAdminUnlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.pin.Verify(req.PIN); err != nil {
		slog.Warn("Admin unlock rejected", "request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusUnauthorized, "wrong PIN")
		return
	}
	token, err := s.jwt.Generate()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.inventory.ListRooms(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) handleAddRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := s.inventory.AddRoom(r.Context(), req.Code, req.Type, req.PricePerDay, req.Status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.inventory.UpdateRoom(r.Context(), id, req.Code, req.Type, req.PricePerDay, req.Status); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.inventory.DeleteRoom(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := s.inventory.ListFoodItems(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (s *Server) handleAddFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := s.inventory.AddFoodItem(r.Context(), req.Name, req.Price, req.Category)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateFood(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req foodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.inventory.UpdateFoodItem(r.Context(), id, req.Name, req.Price, req.Category); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.inventory.DeleteFoodItem(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cartView struct {
	Lines []cart.Line `json:"lines"`
	Total float64     `json:"total"`
}

func (s *Server) currentCart() cartView {
	c := s.billing.Cart()
	return cartView{Lines: c.Lines(), Total: c.Total()}
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentCart())
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.billing.Cart().Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCartAddFood(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := s.inventory.GetFoodItem(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.billing.Cart().AddFood(*item)
	writeJSON(w, http.StatusOK, s.currentCart())
}

func (s *Server) handleCartAddRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	room, err := s.inventory.GetRoom(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.billing.Cart().AddRoomCharge(*room)
	writeJSON(w, http.StatusOK, s.currentCart())
}

func (s *Server) handleCartChangeQuantity(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.billing.Cart().ChangeQuantity(name, req.Delta) {
		writeError(w, http.StatusNotFound, "no such cart line")
		return
	}
	writeJSON(w, http.StatusOK, s.currentCart())
}

func (s *Server) handleCartRemoveLine(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !s.billing.Cart().Remove(name) {
		writeError(w, http.StatusNotFound, "no such cart line")
		return
	}
	writeJSON(w, http.StatusOK, s.currentCart())
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomID *int64 `json:"room_id"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	res, err := s.billing.Checkout(r.Context(), req.RoomID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	bills, err := s.billing.ListBills(r.Context(), limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (s *Server) handleBillLines(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	lines, err := s.billing.BillLines(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (s *Server) handleBillReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	text, err := s.billing.RenderBill(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.billing.DeleteBill(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps the storage failure kinds onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrValidation), errors.Is(err, storage.ErrRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
