package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Error is the body of every non-2xx JSON response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewRoute struct {
	Name       string `json:"name"`
	DriverName string `json:"driver_name"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type NewOrder struct {
	Route        int64  `json:"route"`
	Code         string `json:"code"`
	CustomerName string `json:"customer_name"`
	Address      string `json:"address"`
}

type ListRoutesParams struct {
	Status   *string `form:"status" json:"status,omitempty"`
	Search   *string `form:"search" json:"search,omitempty"`
	Page     *int    `form:"page" json:"page,omitempty"`
	PageSize *int    `form:"page_size" json:"page_size,omitempty"`
}

type ListRouteOrdersParams struct {
	Search *string `form:"search" json:"search,omitempty"`
}

type ExportRoutesParams struct {
	Status *string `form:"status" json:"status,omitempty"`
	Search *string `form:"search" json:"search,omitempty"`
}

// ServerInterface is the set of operations described in openapi.yaml.
type ServerInterface interface {
	// (GET /api/v1/routes)
	ListRoutes(ctx echo.Context, params ListRoutesParams) error
	// (POST /api/v1/routes)
	CreateRoute(ctx echo.Context) error
	// (GET /api/v1/routes/{id})
	GetRoute(ctx echo.Context, id int64) error
	// (PATCH /api/v1/routes/{id}/status)
	UpdateRouteStatus(ctx echo.Context, id int64) error
	// (DELETE /api/v1/routes/{id})
	DeleteRoute(ctx echo.Context, id int64) error
	// (GET /api/v1/routes/{id}/orders)
	ListRouteOrders(ctx echo.Context, id int64, params ListRouteOrdersParams) error
	// (GET /api/v1/routes/export.csv)
	ExportRoutes(ctx echo.Context, params ExportRoutesParams) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{id})
	GetOrder(ctx echo.Context, id int64) error
	// (PATCH /api/v1/orders/{id}/status)
	UpdateOrderStatus(ctx echo.Context, id int64) error
	// (DELETE /api/v1/orders/{id})
	DeleteOrder(ctx echo.Context, id int64) error
	// (GET /api/v1/realtime/groups)
	GetRealtimeGroups(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListRoutes(ctx echo.Context) error {
	var params ListRoutesParams
	if err := bindQuery(ctx, "status", &params.Status); err != nil {
		return err
	}
	if err := bindQuery(ctx, "search", &params.Search); err != nil {
		return err
	}
	if err := bindQuery(ctx, "page", &params.Page); err != nil {
		return err
	}
	if err := bindQuery(ctx, "page_size", &params.PageSize); err != nil {
		return err
	}
	return w.Handler.ListRoutes(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateRoute(ctx echo.Context) error {
	return w.Handler.CreateRoute(ctx)
}

func (w *ServerInterfaceWrapper) GetRoute(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetRoute(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateRouteStatus(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateRouteStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteRoute(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteRoute(ctx, id)
}

func (w *ServerInterfaceWrapper) ListRouteOrders(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	var params ListRouteOrdersParams
	if err = bindQuery(ctx, "search", &params.Search); err != nil {
		return err
	}
	return w.Handler.ListRouteOrders(ctx, id, params)
}

func (w *ServerInterfaceWrapper) ExportRoutes(ctx echo.Context) error {
	var params ExportRoutesParams
	if err := bindQuery(ctx, "status", &params.Status); err != nil {
		return err
	}
	if err := bindQuery(ctx, "search", &params.Search); err != nil {
		return err
	}
	return w.Handler.ExportRoutes(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) GetRealtimeGroups(ctx echo.Context) error {
	return w.Handler.GetRealtimeGroups(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation on router with middleware m
// applied to each of them. Paths are absolute.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/api/v1/routes", w.ListRoutes, m...)
	router.POST("/api/v1/routes", w.CreateRoute, m...)
	router.GET("/api/v1/routes/export.csv", w.ExportRoutes, m...)
	router.GET("/api/v1/routes/:id", w.GetRoute, m...)
	router.PATCH("/api/v1/routes/:id/status", w.UpdateRouteStatus, m...)
	router.DELETE("/api/v1/routes/:id", w.DeleteRoute, m...)
	router.GET("/api/v1/routes/:id/orders", w.ListRouteOrders, m...)
	router.POST("/api/v1/orders", w.CreateOrder, m...)
	router.GET("/api/v1/orders/:id", w.GetOrder, m...)
	router.PATCH("/api/v1/orders/:id/status", w.UpdateOrderStatus, m...)
	router.DELETE("/api/v1/orders/:id", w.DeleteOrder, m...)
	router.GET("/api/v1/realtime/groups", w.GetRealtimeGroups, m...)
}

func bindID(ctx echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

func bindQuery(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}
