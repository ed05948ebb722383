// Package http is the REST adapter: it binds request bodies, builds
// commands and queries, and maps domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for order management and tracking.
// It coordinates between HTTP requests and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	trackOrderHandler        queries.TrackOrderQueryHandler
	getOrderHandler          queries.GetOrderQueryHandler
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		trackOrderHandler:        trackOrderHandler,
		getOrderHandler:          getOrderHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
	}
}

// CreateOrder handles POST /api/v1/orders - registers a new delivery order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	code, err := kernel.NewTrackingCode(req.Code)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid tracking code: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), code, order.Details{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		Items:           req.Items,
		Weight:          req.Weight,
		Instructions:    req.Instructions,
		PartnerName:     req.PartnerName,
		PartnerPhone:    req.PartnerPhone,
		ETA:             req.Eta,
	})
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status - applies a
// status transition for the assigned partner and returns the updated order.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Unknown status: "+req.Status)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid status change: "+err.Error())
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// TrackOrder handles GET /api/v1/orders/code/:code - the unauthenticated
// customer lookup by tracking code, including the full status timeline.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("code"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid tracking code")
	}

	resp, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromQueryResponse(resp))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order by its
// internal identifier.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromQueryResponse(resp))
}

// GetOrders handles GET /api/v1/orders - lists orders for the partner
// dashboard, optionally filtered by ?status=.
func (s *Server) GetOrders(ctx echo.Context) error {
	var query queries.GetOrdersByStatusQuery
	var err error

	if raw := ctx.QueryParam("status"); raw != "" {
		status, parseErr := order.StatusFromString(raw)
		if parseErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Unknown status: "+raw)
		}
		query, err = queries.NewGetOrdersByStatusQuery(status)
	} else {
		query, err = queries.NewGetAllOrdersQuery()
	}
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid listing query")
	}

	summaries, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	response := make([]OrderSummary, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, summaryFromQueryResponse(summary))
	}

	return ctx.JSON(http.StatusOK, response)
}

// orderFromAggregate maps a domain aggregate onto the response contract.
// Used by command endpoints, which return the updated aggregate directly.
func orderFromAggregate(aggregate *order.Order) Order {
	details := aggregate.Details()

	history := aggregate.StatusHistory()
	timeline := make([]StatusUpdate, 0, len(history))
	for _, entry := range history {
		timeline = append(timeline, StatusUpdate{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Icon:      entry.Icon(),
		})
	}

	return Order{
		ID:              aggregate.ID().String(),
		Code:            aggregate.Code().String(),
		CustomerName:    details.CustomerName,
		CustomerPhone:   details.CustomerPhone,
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		Items:           details.Items,
		Weight:          details.Weight,
		Instructions:    details.Instructions,
		PartnerName:     details.PartnerName,
		PartnerPhone:    details.PartnerPhone,
		Eta:             details.ETA,
		Status:          aggregate.Status().String(),
		StatusHistory:   timeline,
	}
}

// domainErrorResponse translates domain errors into HTTP status codes:
// unknown objects map to 404, validation and rejected transitions to 400,
// anything else to 500.
func domainErrorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}
