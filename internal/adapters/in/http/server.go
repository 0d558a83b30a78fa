// Package http exposes the order intake and listing endpoints.
package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	submitOrderHandler    commands.SubmitOrderCommandHandler
	getOwnerOrdersHandler queries.GetOwnerOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	getOwnerOrdersHandler queries.GetOwnerOrdersQueryHandler,
) *Server {
	return &Server{
		submitOrderHandler:    submitOrderHandler,
		getOwnerOrdersHandler: getOwnerOrdersHandler,
	}
}

// RegisterRoutes wires the endpoints into the echo instance. The order routes
// sit behind the auth middleware; health does not.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", s.Health)
	e.POST("/orders", s.SubmitOrder, auth)
	e.GET("/orders", s.GetOrders, auth)
}

// submitOrderRequest is the intake payload. All three fields are opaque to the
// saga and forwarded verbatim to the downstream systems.
type submitOrderRequest struct {
	ClientName      string `json:"clientName"`
	PackageDetails  string `json:"packageDetails"`
	DeliveryAddress string `json:"deliveryAddress"`
}

// submitOrderResponse is the synchronous answer to a submission; leg outcomes
// arrive asynchronously and are visible via GET /orders.
type submitOrderResponse struct {
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderView struct {
	OrderID         string `json:"orderId"`
	ClientName      string `json:"clientName"`
	PackageDetails  string `json:"packageDetails"`
	DeliveryAddress string `json:"deliveryAddress"`
	Status          string `json:"status"`
	CmsStatus       string `json:"cmsStatus"`
	WmsStatus       string `json:"wmsStatus"`
	RosStatus       string `json:"rosStatus"`
	CreatedAt       string `json:"createdAt"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SubmitOrder handles POST /orders. The owner comes from the verified token,
// never from the body.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req submitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitOrderCommand(
		kernel.NewUUID(),
		OwnerID(ctx),
		req.ClientName,
		req.PackageDetails,
		req.DeliveryAddress,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	result, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, submitOrderResponse{
			Message: result.Message,
			Status:  order.Failed.String(),
		})
	}

	response := submitOrderResponse{
		Message: result.Message,
		Status:  result.Status.String(),
	}
	if result.OrderID != nil {
		response.OrderID = result.OrderID.String()
	}

	return ctx.JSON(http.StatusCreated, response)
}

// GetOrders handles GET /orders, listing the caller's orders newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := queries.NewGetOwnerOrdersQuery(OwnerID(ctx))
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing owner identity",
		})
	}

	orders, err := s.getOwnerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]orderView, len(orders))
	for i, o := range orders {
		response[i] = orderView{
			OrderID:         o.ID.String(),
			ClientName:      o.ClientName,
			PackageDetails:  o.PackageDetails,
			DeliveryAddress: o.DeliveryAddress,
			Status:          o.Status,
			CmsStatus:       o.CmsStatus,
			WmsStatus:       o.WmsStatus,
			RosStatus:       o.RosStatus,
			CreatedAt:       o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
