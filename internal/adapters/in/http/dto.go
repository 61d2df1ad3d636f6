package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// CourierItem is one courier of an import batch. Fields stay raw so that a value of the wrong
// JSON type fails only its own item; a missing key still fails the whole request.
type CourierItem struct {
	CourierID    json.RawMessage `json:"courier_id"    validate:"required"`
	CourierType  json.RawMessage `json:"courier_type"  validate:"required"`
	Regions      json.RawMessage `json:"regions"       validate:"required"`
	WorkingHours json.RawMessage `json:"working_hours" validate:"required"`
}

type CreateCouriersRequest struct {
	Data []CourierItem `json:"data" validate:"required,dive"`
}

type OrderItem struct {
	OrderID       json.RawMessage `json:"order_id"       validate:"required"`
	Weight        json.RawMessage `json:"weight"         validate:"required"`
	Region        json.RawMessage `json:"region"         validate:"required"`
	DeliveryHours json.RawMessage `json:"delivery_hours" validate:"required"`
}

type CreateOrdersRequest struct {
	Data []OrderItem `json:"data" validate:"required,dive"`
}

type AssignRequest struct {
	CourierID *int64 `json:"courier_id" validate:"required"`
}

type CompleteRequest struct {
	CourierID    *int64  `json:"courier_id"    validate:"required"`
	OrderID      *int64  `json:"order_id"      validate:"required"`
	CompleteTime *string `json:"complete_time" validate:"required"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

type CreateCouriersResponse struct {
	Couriers []IDResponse `json:"couriers"`
}

type CreateOrdersResponse struct {
	Orders []IDResponse `json:"orders"`
}

type AssignResponse struct {
	Orders       []IDResponse `json:"orders"`
	AssignedTime *string      `json:"assigned_time,omitempty"`
}

type CompleteResponse struct {
	OrderID int64 `json:"order_id"`
}

type CourierResponse struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type CourierInfoResponse struct {
	CourierResponse
	Earnings int64    `json:"earnings"`
	Rating   *float64 `json:"rating,omitempty"`
}

type OrderResponse struct {
	OrderID       int64    `json:"order_id"`
	Weight        float64  `json:"weight"`
	Region        int64    `json:"region"`
	DeliveryHours []string `json:"delivery_hours"`
	CourierID     *int64   `json:"courier_id,omitempty"`
	AssignTime    *string  `json:"assign_time,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"error_description"`
}

type ItemErrorResponse struct {
	ID               any    `json:"id"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse nests the failing items under the entity name, e.g.
// {"validation_error": {"couriers": [...]}}.
type ValidationErrorResponse struct {
	ValidationError map[string][]ItemErrorResponse `json:"validation_error"`
}

func (r CreateCouriersRequest) toInputs() []commands.CourierInput {
	items := make([]commands.CourierInput, 0, len(r.Data))
	for _, item := range r.Data {
		items = append(items, item.toInput())
	}
	return items
}

func (item CourierItem) toInput() commands.CourierInput {
	var in commands.CourierInput
	idErr := decodeField("courier_id", item.CourierID, &in.ID)
	err := errors.Join(
		idErr,
		decodeField("courier_type", item.CourierType, &in.Type),
		decodeField("regions", item.Regions, &in.Regions),
		decodeField("working_hours", item.WorkingHours, &in.WorkingHours),
	)
	if err != nil {
		return commands.CourierInput{Rejection: reject(item.CourierID, in.ID, idErr, err)}
	}
	return in
}

func (r CreateOrdersRequest) toInputs() []commands.OrderInput {
	items := make([]commands.OrderInput, 0, len(r.Data))
	for _, item := range r.Data {
		items = append(items, item.toInput())
	}
	return items
}

func (item OrderItem) toInput() commands.OrderInput {
	var in commands.OrderInput
	idErr := decodeField("order_id", item.OrderID, &in.ID)
	err := errors.Join(
		idErr,
		decodeField("weight", item.Weight, &in.Weight),
		decodeField("region", item.Region, &in.Region),
		decodeField("delivery_hours", item.DeliveryHours, &in.DeliveryHours),
	)
	if err != nil {
		return commands.OrderInput{Rejection: reject(item.OrderID, in.ID, idErr, err)}
	}
	return in
}

// decodeField reads one item field into dst. null counts as a value of the wrong type.
func decodeField(name string, raw json.RawMessage, dst any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errs.NewValueIsInvalidError(name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

// reject names the item by its decoded id, or by the id value as sent when the id itself
// could not be read.
func reject(rawID json.RawMessage, id int64, idErr, err error) *commands.Rejection {
	if idErr == nil {
		return &commands.Rejection{RawID: id, Err: err}
	}

	var sent any
	if json.Unmarshal(rawID, &sent) != nil {
		sent = string(rawID)
	}
	return &commands.Rejection{RawID: sent, Err: err}
}

func toIDResponses(ids []int64) []IDResponse {
	resp := make([]IDResponse, 0, len(ids))
	for _, id := range ids {
		resp = append(resp, IDResponse{ID: id})
	}
	return resp
}

func courierFromDomain(c *courier.Courier) CourierResponse {
	hours := make([]string, 0, len(c.WorkingHours()))
	for _, h := range c.WorkingHours() {
		hours = append(hours, h.String())
	}

	regions := c.Regions()
	if regions == nil {
		regions = []int64{}
	}

	return CourierResponse{
		CourierID:    c.ID(),
		CourierType:  c.Type().String(),
		Regions:      regions,
		WorkingHours: hours,
	}
}

func courierFromQuery(c queries.CourierResponse) CourierResponse {
	return CourierResponse{
		CourierID:    c.ID,
		CourierType:  c.Type,
		Regions:      c.Regions,
		WorkingHours: c.WorkingHours,
	}
}

func orderFromQuery(o queries.OrderResponse) OrderResponse {
	return OrderResponse{
		OrderID:       o.ID,
		Weight:        o.Weight,
		Region:        o.Region,
		DeliveryHours: o.DeliveryHours,
		CourierID:     o.CourierID,
		AssignTime:    formatTimestamp(o.AssignTime),
	}
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := kernel.FormatTimestamp(*t)
	return &s
}
