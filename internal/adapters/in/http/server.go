// Package http exposes the order workflow over a REST API built on echo.
// Handlers translate HTTP requests into commands and queries and map domain
// errors onto status codes; no business logic lives here.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	fireEventHandler   commands.FireEventCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getOrdersByStateHandler queries.GetOrdersByStateQueryHandler
	getLegalEventsHandler   queries.GetLegalEventsQueryHandler
	getOrderHistoryHandler  queries.GetOrderHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	fireEventHandler commands.FireEventCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByStateHandler queries.GetOrdersByStateQueryHandler,
	getLegalEventsHandler queries.GetLegalEventsQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		fireEventHandler:        fireEventHandler,
		getOrderHandler:         getOrderHandler,
		getOrdersByStateHandler: getOrdersByStateHandler,
		getLegalEventsHandler:   getLegalEventsHandler,
		getOrderHistoryHandler:  getOrderHistoryHandler,
	}
}

// RegisterRoutes binds the API endpoints onto an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/events/:event", s.FireEvent)
	api.GET("/orders/:id/events", s.GetLegalEvents)
	api.GET("/orders/:id/history", s.GetOrderHistory)
}

// CreateOrder handles POST /api/v1/orders - registers a new order in the
// initial workflow state.
func (s *Server) CreateOrder(ctx echo.Context) error {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderResponse{
		ID:    orderID.String(),
		State: order.Created.String(),
	})
}

// FireEvent handles POST /api/v1/orders/:id/events/:event - advances the
// order's workflow by one event. An optional JSON body carries variable
// writes the transition's guards and actions observe.
func (s *Server) FireEvent(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	event, err := workflow.EventFromString(ctx.Param("event"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body FireEventRequest
	if ctx.Request().ContentLength > 0 {
		if bindErr := ctx.Bind(&body); bindErr != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
			})
		}
	}

	cmd, err := commands.NewFireEventCommand(orderID, event, commands.FireEventVars{
		Amount:           body.Amount,
		ShippingAddress:  body.ShippingAddress,
		PaymentMethod:    body.PaymentMethod,
		ExpediteShipping: body.ExpediteShipping,
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.fireEventHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:    resp.ID.String(),
		State: resp.State.String(),
	})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:    resp.ID.String(),
		State: resp.State.String(),
	})
}

// GetOrders handles GET /api/v1/orders?state=X - lists orders in a state.
func (s *Server) GetOrders(ctx echo.Context) error {
	state, err := order.StateFromString(ctx.QueryParam("state"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrdersByStateQuery(state)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getOrdersByStateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, resp := range orders {
		response[i] = OrderResponse{
			ID:    resp.ID.String(),
			State: resp.State.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetLegalEvents handles GET /api/v1/orders/:id/events - lists the events the
// order currently accepts.
func (s *Server) GetLegalEvents(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetLegalEventsQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.getLegalEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	events := make([]string, len(resp.Events))
	for i, event := range resp.Events {
		events[i] = event.String()
	}

	return ctx.JSON(http.StatusOK, LegalEventsResponse{
		ID:     resp.ID.String(),
		State:  resp.State.String(),
		Events: events,
	})
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the
// order's committed transitions, oldest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	transitions, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]TransitionResponse, len(transitions))
	for i, t := range transitions {
		response[i] = TransitionResponse{
			Source:     t.Source.String(),
			Target:     t.Target.String(),
			Event:      t.Event.String(),
			OccurredAt: t.OccurredAt,
			Message:    t.Message,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// errorResponse maps a domain error onto an HTTP status.
//
// Refused transitions are conflicts with the order's current state, missing
// objects are 404s, an unreachable snapshot store after retries means the
// engine cannot answer reliably (503), and validation failures are the
// client's fault.
func errorResponse(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), ErrorResponse{
		Code:    statusFor(err),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSnapshotRecovery):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrAmountIsInvalid),
		errors.Is(err, commands.ErrPaymentMethodIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
