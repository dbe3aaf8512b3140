package http

import (
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"peermint/internal/core/application/usecases/commands"
	"peermint/internal/core/application/usecases/queries"
	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Server implements the HTTP API for the order lifecycle.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	joinOrderHandler          commands.JoinOrderCommandHandler
	markPaidHandler           commands.MarkPaidCommandHandler
	acknowledgeReleaseHandler commands.AcknowledgeReleaseCommandHandler
	autoReleaseHandler        commands.AutoReleaseCommandHandler
	raiseDisputeHandler       commands.RaiseDisputeCommandHandler
	resolveDisputeHandler     commands.ResolveDisputeCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getOpenOrdersHandler    queries.GetOpenOrdersQueryHandler
	getCreatorOrdersHandler queries.GetCreatorOrdersQueryHandler

	// defaultAsset is applied when a create request omits the asset code.
	defaultAsset string
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	joinOrderHandler commands.JoinOrderCommandHandler,
	markPaidHandler commands.MarkPaidCommandHandler,
	acknowledgeReleaseHandler commands.AcknowledgeReleaseCommandHandler,
	autoReleaseHandler commands.AutoReleaseCommandHandler,
	raiseDisputeHandler commands.RaiseDisputeCommandHandler,
	resolveDisputeHandler commands.ResolveDisputeCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getCreatorOrdersHandler queries.GetCreatorOrdersQueryHandler,
	defaultAsset string,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		joinOrderHandler:          joinOrderHandler,
		markPaidHandler:           markPaidHandler,
		acknowledgeReleaseHandler: acknowledgeReleaseHandler,
		autoReleaseHandler:        autoReleaseHandler,
		raiseDisputeHandler:       raiseDisputeHandler,
		resolveDisputeHandler:     resolveDisputeHandler,
		getOrderHandler:           getOrderHandler,
		getOpenOrdersHandler:      getOpenOrdersHandler,
		getCreatorOrdersHandler:   getCreatorOrdersHandler,
		defaultAsset:              defaultAsset,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/orders", s.GetCreatorOrders)
	e.GET("/api/v1/orders/open", s.GetOpenOrders)
	e.GET("/api/v1/orders/:id", s.GetOrder)
	e.POST("/api/v1/orders/:id/join", s.JoinOrder)
	e.POST("/api/v1/orders/:id/mark-paid", s.MarkPaid)
	e.POST("/api/v1/orders/:id/release", s.AcknowledgeRelease)
	e.POST("/api/v1/orders/:id/auto-release", s.AutoRelease)
	e.POST("/api/v1/orders/:id/dispute", s.RaiseDispute)
	e.POST("/api/v1/orders/:id/resolve", s.ResolveDispute)
}

// Error is the JSON body returned on every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for POST /api/v1/orders.
type NewOrder struct {
	CreatorID     string     `json:"creator_id"`
	Asset         string     `json:"asset,omitempty"`
	Amount        int64      `json:"amount"`
	LocalAmount   int64      `json:"local_amount"`
	ExpiryAt      *time.Time `json:"expiry_at,omitempty"`
	FeePercentage uint8      `json:"fee_percentage"`
	Nonce         uint64     `json:"nonce"`
	QRPayload     string     `json:"qr_payload"`
}

// OrderCreated is the response body for POST /api/v1/orders.
type OrderCreated struct {
	ID string `json:"id"`
}

// JoinOrder is the request body for POST /api/v1/orders/:id/join.
type JoinOrder struct {
	HelperID string `json:"helper_id"`
}

// MarkPaid is the request body for POST /api/v1/orders/:id/mark-paid.
// ReceiptHash, when present, is the hex encoding of a 32-byte digest.
type MarkPaid struct {
	CallerID    string `json:"caller_id"`
	ReceiptHash string `json:"receipt_hash,omitempty"`
}

// Release is the request body for POST /api/v1/orders/:id/release.
type Release struct {
	CallerID string `json:"caller_id"`
}

// Dispute is the request body for POST /api/v1/orders/:id/dispute.
type Dispute struct {
	Reason string `json:"reason,omitempty"`
}

// Resolve is the request body for POST /api/v1/orders/:id/resolve.
// Outcome codes: 0 refunds the creator, 1 pays the helper, 2 splits by
// SplitBps.
type Resolve struct {
	CallerID string  `json:"caller_id"`
	Outcome  uint8   `json:"outcome"`
	SplitBps *uint16 `json:"split_bps,omitempty"`
}

// Order is the full order representation returned by GET /api/v1/orders/:id.
type Order struct {
	ID            string     `json:"id"`
	CreatorID     string     `json:"creator_id"`
	HelperID      *string    `json:"helper_id,omitempty"`
	Asset         string     `json:"asset"`
	Amount        int64      `json:"amount"`
	LocalAmount   int64      `json:"local_amount"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiryAt      *time.Time `json:"expiry_at,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
	ReceiptHash   string     `json:"receipt_hash,omitempty"`
	FeePercentage uint8      `json:"fee_percentage"`
	ArbiterID     string     `json:"arbiter_id"`
	Nonce         uint64     `json:"nonce"`
	QRPayload     string     `json:"qr_payload,omitempty"`
}

// OpenOrder is the board listing entry returned by GET /api/v1/orders/open.
type OpenOrder struct {
	ID            string     `json:"id"`
	CreatorID     string     `json:"creator_id"`
	Asset         string     `json:"asset"`
	Amount        int64      `json:"amount"`
	LocalAmount   int64      `json:"local_amount"`
	FeePercentage uint8      `json:"fee_percentage"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiryAt      *time.Time `json:"expiry_at,omitempty"`
}

// CreatorOrder is the listing entry returned by GET /api/v1/orders?creator=.
type CreatorOrder struct {
	ID          string     `json:"id"`
	HelperID    *string    `json:"helper_id,omitempty"`
	Asset       string     `json:"asset"`
	Amount      int64      `json:"amount"`
	LocalAmount int64      `json:"local_amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiryAt    *time.Time `json:"expiry_at,omitempty"`
}

// CreateOrder handles POST /api/v1/orders - opens a new escrow order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	creator, err := kernel.UUIDFromString(req.CreatorID)
	if err != nil {
		return badRequest(ctx, "Invalid creator_id: "+err.Error())
	}

	asset := req.Asset
	if asset == "" {
		asset = s.defaultAsset
	}

	expiryAt := time.Time{}
	if req.ExpiryAt != nil {
		expiryAt = req.ExpiryAt.UTC()
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, creator, asset, req.Amount, req.LocalAmount, expiryAt,
		req.FeePercentage, req.Nonce, req.QRPayload)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// JoinOrder handles POST /api/v1/orders/:id/join - claims an open order.
func (s *Server) JoinOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req JoinOrder
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	helper, err := kernel.UUIDFromString(req.HelperID)
	if err != nil {
		return badRequest(ctx, "Invalid helper_id: "+err.Error())
	}

	cmd, err := commands.NewJoinOrderCommand(orderID, helper)
	if err != nil {
		return badRequest(ctx, "Invalid join data: "+err.Error())
	}

	if handleErr := s.joinOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkPaid handles POST /api/v1/orders/:id/mark-paid - attests the local
// currency payment.
func (s *Server) MarkPaid(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req MarkPaid
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	caller, err := kernel.UUIDFromString(req.CallerID)
	if err != nil {
		return badRequest(ctx, "Invalid caller_id: "+err.Error())
	}

	var receipt *order.ReceiptHash
	if req.ReceiptHash != "" {
		raw, decodeErr := hex.DecodeString(req.ReceiptHash)
		if decodeErr != nil {
			return badRequest(ctx, "Invalid receipt_hash: "+decodeErr.Error())
		}
		hash, hashErr := order.ReceiptHashFromBytes(raw)
		if hashErr != nil {
			return badRequest(ctx, "Invalid receipt_hash: "+hashErr.Error())
		}
		receipt = &hash
	}

	cmd, err := commands.NewMarkPaidCommand(orderID, caller, receipt)
	if err != nil {
		return badRequest(ctx, "Invalid mark-paid data: "+err.Error())
	}

	if handleErr := s.markPaidHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcknowledgeRelease handles POST /api/v1/orders/:id/release - the creator
// releases custody to the helper.
func (s *Server) AcknowledgeRelease(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req Release
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	caller, err := kernel.UUIDFromString(req.CallerID)
	if err != nil {
		return badRequest(ctx, "Invalid caller_id: "+err.Error())
	}

	cmd, err := commands.NewAcknowledgeReleaseCommand(orderID, caller)
	if err != nil {
		return badRequest(ctx, "Invalid release data: "+err.Error())
	}

	if handleErr := s.acknowledgeReleaseHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AutoRelease handles POST /api/v1/orders/:id/auto-release - releases custody
// on an order whose deadline has passed. Anyone may call it; the deadline
// check happens against current database state.
func (s *Server) AutoRelease(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAutoReleaseCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid auto-release data: "+err.Error())
	}

	if handleErr := s.autoReleaseHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RaiseDispute handles POST /api/v1/orders/:id/dispute - freezes the order
// for arbitration.
func (s *Server) RaiseDispute(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req Dispute
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRaiseDisputeCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid dispute data: "+err.Error())
	}

	if handleErr := s.raiseDisputeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveDispute handles POST /api/v1/orders/:id/resolve - the arbiter
// settles a disputed order.
func (s *Server) ResolveDispute(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req Resolve
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	caller, err := kernel.UUIDFromString(req.CallerID)
	if err != nil {
		return badRequest(ctx, "Invalid caller_id: "+err.Error())
	}

	outcome, err := order.OutcomeFromCode(req.Outcome, req.SplitBps)
	if err != nil {
		return badRequest(ctx, "Invalid outcome: "+err.Error())
	}

	cmd, err := commands.NewResolveDisputeCommand(orderID, caller, outcome)
	if err != nil {
		return badRequest(ctx, "Invalid resolve data: "+err.Error())
	}

	if handleErr := s.resolveDisputeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves the full order state.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := Order{
		ID:            detail.ID.String(),
		CreatorID:     detail.Creator.String(),
		Asset:         detail.Asset,
		Amount:        detail.Amount,
		LocalAmount:   detail.LocalAmount,
		Status:        detail.Status.String(),
		CreatedAt:     detail.CreatedAt,
		ExpiryAt:      detail.ExpiryAt,
		PaidAt:        detail.PaidAt,
		ReleasedAt:    detail.ReleasedAt,
		FeePercentage: detail.FeePercentage,
		ArbiterID:     detail.Arbiter.String(),
		Nonce:         detail.Nonce,
		QRPayload:     detail.QRPayload,
	}
	if detail.Helper != nil {
		helperID := detail.Helper.String()
		response.HelperID = &helperID
	}
	if len(detail.ReceiptHash) > 0 {
		response.ReceiptHash = hex.EncodeToString(detail.ReceiptHash)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOpenOrders handles GET /api/v1/orders/open - lists claimable orders.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OpenOrder, len(orders))
	for i, o := range orders {
		response[i] = OpenOrder{
			ID:            o.ID.String(),
			CreatorID:     o.Creator.String(),
			Asset:         o.Asset,
			Amount:        o.Amount,
			LocalAmount:   o.LocalAmount,
			FeePercentage: o.FeePercentage,
			CreatedAt:     o.CreatedAt,
			ExpiryAt:      o.ExpiryAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCreatorOrders handles GET /api/v1/orders?creator= - lists one creator's
// orders, newest first.
func (s *Server) GetCreatorOrders(ctx echo.Context) error {
	creator, err := kernel.UUIDFromString(ctx.QueryParam("creator"))
	if err != nil {
		return badRequest(ctx, "Invalid creator query parameter")
	}

	query, err := queries.NewGetCreatorOrdersQuery(creator)
	if err != nil {
		return badRequest(ctx, "Invalid creator query parameter: "+err.Error())
	}

	orders, err := s.getCreatorOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]CreatorOrder, len(orders))
	for i, o := range orders {
		response[i] = CreatorOrder{
			ID:          o.ID.String(),
			Asset:       o.Asset,
			Amount:      o.Amount,
			LocalAmount: o.LocalAmount,
			Status:      o.Status.String(),
			CreatedAt:   o.CreatedAt,
			ExpiryAt:    o.ExpiryAt,
		}
		if o.Helper != nil {
			helperID := o.Helper.String()
			response[i].HelperID = &helperID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError translates use case failures into HTTP statuses: validation
// failures map to 400, authorization to 403, missing orders to 404, lifecycle
// conflicts to 409, and arithmetic overflow to 422.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, order.ErrInvalidAmount),
		errors.Is(err, order.ErrInvalidFee),
		errors.Is(err, order.ErrQRTooLong),
		errors.Is(err, order.ErrInvalidOutcome):
		code = http.StatusBadRequest
	case errors.Is(err, order.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrNotExpired),
		errors.Is(err, order.ErrNoHelper),
		errors.Is(err, gorm.ErrDuplicatedKey):
		code = http.StatusConflict
	case errors.Is(err, order.ErrMathOverflow):
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
