package http

import (
	"time"

	"tracker/internal/core/application/usecases/queries"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Code            string `json:"code"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	PickupAddress   string `json:"pickupAddress"`
	DeliveryAddress string `json:"deliveryAddress"`
	Items           string `json:"items"`
	Weight          string `json:"weight"`
	Instructions    string `json:"instructions"`
	PartnerName     string `json:"partnerName"`
	PartnerPhone    string `json:"partnerPhone"`
	Eta             string `json:"eta"`
}

// ChangeStatusRequest is the body of PATCH /api/v1/orders/:id/status.
// Status is one of the wire names: pending, picked_up, on_the_way, delivered.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// StatusUpdate is one entry of an order's status timeline.
type StatusUpdate struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Icon      string    `json:"icon"`
}

// Order is the full order representation returned to customers and partners.
type Order struct {
	ID              string         `json:"id"`
	Code            string         `json:"code"`
	CustomerName    string         `json:"customerName"`
	CustomerPhone   string         `json:"customerPhone"`
	PickupAddress   string         `json:"pickupAddress"`
	DeliveryAddress string         `json:"deliveryAddress"`
	Items           string         `json:"items"`
	Weight          string         `json:"weight"`
	Instructions    string         `json:"instructions"`
	PartnerName     string         `json:"partnerName"`
	PartnerPhone    string         `json:"partnerPhone"`
	Eta             string         `json:"eta"`
	Status          string         `json:"status"`
	StatusHistory   []StatusUpdate `json:"statusHistory"`
}

// OrderSummary is one row of the partner order listing.
type OrderSummary struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	CustomerName    string `json:"customerName"`
	DeliveryAddress string `json:"deliveryAddress"`
	PartnerName     string `json:"partnerName"`
	Eta             string `json:"eta"`
	Status          string `json:"status"`
}

func orderFromQueryResponse(resp queries.OrderResponse) Order {
	history := make([]StatusUpdate, 0, len(resp.StatusHistory))
	for _, entry := range resp.StatusHistory {
		history = append(history, StatusUpdate{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			Icon:      entry.Icon,
		})
	}

	return Order{
		ID:              resp.ID.String(),
		Code:            resp.Code,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		PickupAddress:   resp.PickupAddress,
		DeliveryAddress: resp.DeliveryAddress,
		Items:           resp.Items,
		Weight:          resp.Weight,
		Instructions:    resp.Instructions,
		PartnerName:     resp.PartnerName,
		PartnerPhone:    resp.PartnerPhone,
		Eta:             resp.ETA,
		Status:          resp.Status,
		StatusHistory:   history,
	}
}

func summaryFromQueryResponse(resp queries.OrderSummaryResponse) OrderSummary {
	return OrderSummary{
		ID:              resp.ID.String(),
		Code:            resp.Code,
		CustomerName:    resp.CustomerName,
		DeliveryAddress: resp.DeliveryAddress,
		PartnerName:     resp.PartnerName,
		Eta:             resp.ETA,
		Status:          resp.Status,
	}
}
