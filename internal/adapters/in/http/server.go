package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"routetracker/internal/core/application/usecases/commands"
	"routetracker/internal/core/application/usecases/queries"
	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/order"
	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/core/realtime"
	"routetracker/internal/pkg/errs"
	"routetracker/internal/pkg/guard"

	"github.com/labstack/echo/v4"
)

// Handler is a use case that produces a result.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// CommandHandler is a use case that only reports success.
type CommandHandler[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	CreateRoute       Handler[commands.CreateRouteCommand, kernel.ID]
	UpdateRouteStatus CommandHandler[commands.UpdateRouteStatusCommand]
	DeleteRoute       CommandHandler[commands.DeleteRouteCommand]
	CreateOrder       Handler[commands.CreateOrderCommand, kernel.ID]
	UpdateOrderStatus CommandHandler[commands.UpdateOrderStatusCommand]
	DeleteOrder       CommandHandler[commands.DeleteOrderCommand]

	GetRoutes       Handler[queries.GetRoutesQuery, queries.GetRoutesQueryResponse]
	GetRoute        Handler[queries.GetRouteQuery, queries.RouteView]
	GetRouteOrders  Handler[queries.GetRouteOrdersQuery, []queries.OrderView]
	GetOrder        Handler[queries.GetOrderQuery, queries.OrderView]
	ExportRoutesCSV Handler[queries.ExportRoutesCSVQuery, queries.ExportRoutesCSVQueryResponse]
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	registry *realtime.GroupRegistry
	logger   *slog.Logger
	now      func() time.Time
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, registry *realtime.GroupRegistry, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		registry: registry,
		logger:   logger.With("component", "http_server"),
		now:      time.Now,
	}
}

// ListRoutes handles GET /api/v1/routes.
func (s *Server) ListRoutes(ctx echo.Context, params ListRoutesParams) error {
	page, pageSize := 1, queries.DefaultPageSize
	if params.Page != nil {
		page = *params.Page
	}
	if params.PageSize != nil {
		pageSize = *params.PageSize
	}

	query, err := queries.NewGetRoutesQuery(deref(params.Status), deref(params.Search), page, pageSize)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.GetRoutes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(ctx echo.Context) error {
	var body NewRoute
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateRouteCommand(body.Name, body.DriverName)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.CreateRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondRoute(ctx, http.StatusCreated, id)
}

// GetRoute handles GET /api/v1/routes/{id}.
func (s *Server) GetRoute(ctx echo.Context, id int64) error {
	return s.respondRoute(ctx, http.StatusOK, kernel.ID(id))
}

// UpdateRouteStatus handles PATCH /api/v1/routes/{id}/status.
func (s *Server) UpdateRouteStatus(ctx echo.Context, id int64) error {
	var body StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateRouteStatusCommand(kernel.ID(id), route.Status(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.UpdateRouteStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondRoute(ctx, http.StatusOK, kernel.ID(id))
}

// DeleteRoute handles DELETE /api/v1/routes/{id}.
func (s *Server) DeleteRoute(ctx echo.Context, id int64) error {
	cmd, err := commands.NewDeleteRouteCommand(kernel.ID(id))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListRouteOrders handles GET /api/v1/routes/{id}/orders.
func (s *Server) ListRouteOrders(ctx echo.Context, id int64, params ListRouteOrdersParams) error {
	query, err := queries.NewGetRouteOrdersQuery(kernel.ID(id), deref(params.Search))
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.GetRouteOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// ExportRoutes handles GET /api/v1/routes/export.csv.
func (s *Server) ExportRoutes(ctx echo.Context, params ExportRoutesParams) error {
	query, err := queries.NewExportRoutesCSVQuery(deref(params.Status), deref(params.Search), s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	file, err := s.handlers.ExportRoutesCSV.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return ctx.Blob(http.StatusOK, "text/csv; charset=utf-8", file.Content)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.ID(body.Route), body.Code, body.CustomerName, body.Address)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusCreated, id)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id int64) error {
	return s.respondOrder(ctx, http.StatusOK, kernel.ID(id))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id int64) error {
	var body StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(kernel.ID(id), order.Status(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusOK, kernel.ID(id))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id int64) error {
	cmd, err := commands.NewDeleteOrderCommand(kernel.ID(id))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetRealtimeGroups handles GET /api/v1/realtime/groups.
func (s *Server) GetRealtimeGroups(ctx echo.Context) error {
	stats := s.registry.Stats()
	resp := make(map[string]int, len(stats))
	for group, n := range stats {
		resp[group.String()] = n
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (s *Server) respondRoute(ctx echo.Context, status int, id kernel.ID) error {
	query, err := queries.NewGetRouteQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(status, view)
}

func (s *Server) respondOrder(ctx echo.Context, status int, id kernel.ID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(status, view)
}

// fail maps domain errors onto status codes. Anything unrecognised is logged
// and reported as 500 without details.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return ctx.JSON(code, Error{Code: code, Message: http.StatusText(code)})
	}
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrIDIsNotAssigned),
		errors.Is(err, guard.ErrDefaultConstructorGuard):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
