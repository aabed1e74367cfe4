// Package api exposes the swap engine over REST. The transport supplies
// the authenticated caller identity; here it is read from the
// X-Swap-Caller header, a stand-in for the real authentication layer,
// which is outside this service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/hwanjo/swapdesk/pkg/engine"
	"github.com/hwanjo/swapdesk/pkg/swap"
)

const callerHeader = "X-Swap-Caller"

// Server handles REST requests against the swap engine.
type Server struct {
	eng    *engine.Engine
	router *mux.Router
	log    *zap.SugaredLogger
}

// NewServer creates a server over the given engine.
func NewServer(eng *engine.Engine, log *zap.SugaredLogger) *Server {
	s := &Server{
		eng:    eng,
		router: mux.NewRouter(),
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/deposit", s.handleDeposit).Methods("POST")
	api.HandleFunc("/orders", s.handleCreateOrder).Methods("POST")
	api.HandleFunc("/orders/{id}", s.handleGetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/execute", s.handleExecuteOrder).Methods("POST")
	api.HandleFunc("/orders/{id}/cancel", s.handleCancelOrder).Methods("POST")
	api.HandleFunc("/balance", s.handleGetBalance).Methods("GET")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", callerHeader},
	})
	return c.Handler(s.router)
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}

	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.eng.Deposit(caller, req.Amount, req.Currency); err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var orderType swap.OrderType
	switch req.Type {
	case "market", "":
		orderType = swap.Market()
	case "limit":
		orderType = swap.Limit(req.Price)
	default:
		respondError(w, http.StatusBadRequest, "bad_request", "type must be market or limit")
		return
	}

	id, err := s.eng.CreateSwapOrder(caller, req.FromCurrency, req.ToCurrency, req.FromAmount, req.ToAmount, orderType)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, CreateOrderResponse{OrderID: id})
}

func (s *Server) handleExecuteOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, ok := s.orderID(w, r)
	if !ok {
		return
	}

	if err := s.eng.ExecuteSwapOrder(caller, id); err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, map[string]string{"status": "executed"})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, ok := s.orderID(w, r)
	if !ok {
		return
	}

	if err := s.eng.CancelSwapOrder(caller, id); err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, map[string]string{"status": "cancelled"})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderID(w, r)
	if !ok {
		return
	}

	ord, err := s.eng.GetSwapOrder(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	if ord == nil {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	respondJSON(w, orderInfo(ord))
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}

	balance, exists, err := s.eng.GetUserBalance(caller)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	respondJSON(w, BalanceResponse{Address: caller.Hex(), Balance: balance, Exists: exists})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// caller extracts the authenticated identity from the request. A missing
// header maps to the anonymous identity; the engine decides whether the
// operation permits it.
func (s *Server) caller(w http.ResponseWriter, r *http.Request) (swap.Identity, bool) {
	hex := r.Header.Get(callerHeader)
	if hex == "" {
		return swap.Anonymous, true
	}
	if !common.IsHexAddress(hex) {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid caller address")
		return swap.Identity{}, false
	}
	return common.HexToAddress(hex), true
}

func (s *Server) orderID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return 0, false
	}
	return id, true
}

func orderInfo(ord *swap.Order) OrderInfo {
	info := OrderInfo{
		ID:           ord.ID,
		Owner:        ord.Owner.Hex(),
		FromCurrency: ord.FromCurrency,
		ToCurrency:   ord.ToCurrency,
		FromAmount:   ord.FromAmount,
		ToAmount:     ord.ToAmount,
		Type:         ord.Type.Kind.String(),
		CreatedAt:    ord.CreatedAt.UnixMilli(),
		Status:       ord.Status.String(),
	}
	if ord.Type.Kind == swap.KindLimit {
		info.Price = ord.Type.Price
	}
	return info
}

// respondEngineError maps the business error taxonomy to HTTP statuses.
// Anything outside the taxonomy is a storage failure, fatal for the call.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, swap.ErrInvalidAmount),
		errors.Is(err, swap.ErrInvalidCurrency),
		errors.Is(err, swap.ErrInvalidPrice):
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, swap.ErrInvalidOrderID):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, swap.ErrUnauthorized),
		errors.Is(err, swap.ErrAnonymousNotAllowed),
		errors.Is(err, swap.ErrOwnerCannotExecute):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, swap.ErrInsufficientFunds),
		errors.Is(err, swap.ErrUserNotFound),
		errors.Is(err, swap.ErrInvalidOrderStatus),
		errors.Is(err, swap.ErrPriceConditionNotMet):
		respondError(w, http.StatusConflict, "rejected", err.Error())
	default:
		s.log.Errorw("storage_error", "err", err)
		respondError(w, http.StatusInternalServerError, "storage_error", err.Error())
	}
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, error string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Message: message,
	})
}
