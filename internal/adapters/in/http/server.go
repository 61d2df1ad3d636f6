package http

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Use case ports of the HTTP boundary. The application handlers satisfy them.
type (
	CreateCouriersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCouriersCommand) ([]int64, error)
	}
	UpdateCourierHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateCourierCommand) (*courier.Courier, error)
	}
	CreateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]int64, error)
	}
	AssignOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (commands.AssignOrdersResult, error)
	}
	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (int64, error)
	}
	GetCourierInfoHandler interface {
		Handle(ctx context.Context, query queries.GetCourierInfoQuery) (queries.CourierInfoResponse, error)
	}
	GetAllCouriersHandler interface {
		Handle(ctx context.Context, query queries.GetAllCouriersQuery) ([]queries.CourierResponse, error)
	}
	GetUncompletedOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetUncompletedOrdersQuery) ([]queries.OrderResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateCouriers       CreateCouriersHandler
	UpdateCourier        UpdateCourierHandler
	CreateOrders         CreateOrdersHandler
	AssignOrders         AssignOrdersHandler
	CompleteOrder        CompleteOrderHandler
	GetCourierInfo       GetCourierInfoHandler
	GetAllCouriers       GetAllCouriersHandler
	GetUncompletedOrders GetUncompletedOrdersHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts every endpoint on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/couriers", s.CreateCouriers)
	e.GET("/couriers", s.GetCouriers)
	e.GET("/couriers/:courier_id", s.GetCourier)
	e.PATCH("/couriers/:courier_id", s.UpdateCourier)

	e.POST("/orders", s.CreateOrders)
	e.GET("/orders/active", s.GetActiveOrders)
	e.POST("/orders/assign", s.AssignOrders)
	e.POST("/orders/complete", s.CompleteOrder)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateCouriers handles POST /couriers - imports a batch of couriers.
func (s *Server) CreateCouriers(c echo.Context) error {
	var req CreateCouriersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ids, err := s.handlers.CreateCouriers.Handle(
		c.Request().Context(),
		commands.NewCreateCouriersCommand(req.toInputs()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreateCouriersResponse{Couriers: toIDResponses(ids)})
}

// GetCouriers handles GET /couriers - lists all couriers.
func (s *Server) GetCouriers(c echo.Context) error {
	couriers, err := s.handlers.GetAllCouriers.Handle(c.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return err
	}

	response := make([]CourierResponse, 0, len(couriers))
	for _, cr := range couriers {
		response = append(response, courierFromQuery(cr))
	}

	return c.JSON(http.StatusOK, response)
}

// GetCourier handles GET /couriers/:courier_id - profile with earnings and rating.
func (s *Server) GetCourier(c echo.Context) error {
	courierID, err := courierIDParam(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCourierInfoQuery(courierID)
	if err != nil {
		return errCourierNotFound
	}

	info, err := s.handlers.GetCourierInfo.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CourierInfoResponse{
		CourierResponse: courierFromQuery(info.CourierResponse),
		Earnings:        info.Earnings,
		Rating:          info.Rating,
	})
}

// UpdateCourier handles PATCH /couriers/:courier_id - replaces the listed profile fields.
func (s *Server) UpdateCourier(c echo.Context) error {
	courierID, err := courierIDParam(c)
	if err != nil {
		return err
	}

	patch, err := decodeCourierPatch(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCourierCommand(courierID, patch)
	if err != nil {
		return errCourierNotFound
	}

	updated, err := s.handlers.UpdateCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courierFromDomain(updated))
}

// CreateOrders handles POST /orders - imports a batch of orders.
func (s *Server) CreateOrders(c echo.Context) error {
	var req CreateOrdersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ids, err := s.handlers.CreateOrders.Handle(
		c.Request().Context(),
		commands.NewCreateOrdersCommand(req.toInputs()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreateOrdersResponse{Orders: toIDResponses(ids)})
}

// GetActiveOrders handles GET /orders/active - lists orders that are not completed.
func (s *Server) GetActiveOrders(c echo.Context) error {
	orders, err := s.handlers.GetUncompletedOrders.Handle(
		c.Request().Context(),
		queries.NewGetUncompletedOrdersQuery(),
	)
	if err != nil {
		return err
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderFromQuery(o))
	}

	return c.JSON(http.StatusOK, response)
}

// AssignOrders handles POST /orders/assign.
func (s *Server) AssignOrders(c echo.Context) error {
	var req AssignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAssignOrdersCommand(*req.CourierID)
	if err != nil {
		return err
	}

	result, err := s.handlers.AssignOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AssignResponse{
		Orders:       toIDResponses(result.OrderIDs),
		AssignedTime: formatTimestamp(result.AssignedTime),
	})
}

// CompleteOrder handles POST /orders/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	var req CompleteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCompleteOrderCommand(*req.CourierID, *req.OrderID, *req.CompleteTime)
	if err != nil {
		return err
	}

	orderID, err := s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CompleteResponse{OrderID: orderID})
}

func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errInvalidJSON
	}
	return c.Validate(dst)
}

// courierIDParam parses the path id. Anything but a non-negative integer names no courier.
func courierIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("courier_id"), 10, 64)
	if err != nil || id < 0 {
		return 0, errCourierNotFound
	}
	return id, nil
}

// decodeCourierPatch reads a PATCH body. Only courier_type, regions and working_hours are
// accepted and none of them may be null.
func decodeCourierPatch(c echo.Context) (commands.CourierPatchInput, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil || raw == nil {
		return commands.CourierPatchInput{}, errInvalidJSON
	}

	var patch commands.CourierPatchInput
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value := raw[key]
		if string(value) == "null" {
			return commands.CourierPatchInput{}, badRequest("%s must not be null", key)
		}

		var err error
		switch key {
		case "courier_type":
			var v string
			err = json.Unmarshal(value, &v)
			patch.Type = &v
		case "regions":
			var v []int64
			err = json.Unmarshal(value, &v)
			patch.Regions = &v
		case "working_hours":
			var v []string
			err = json.Unmarshal(value, &v)
			patch.WorkingHours = &v
		default:
			return commands.CourierPatchInput{}, badRequest("unknown field %s", key)
		}
		if err != nil {
			return commands.CourierPatchInput{}, badRequest("invalid %s", key)
		}
	}

	return patch, nil
}

func badRequest(format string, args ...any) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}
