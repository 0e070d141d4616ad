package order

import (
	"time"

	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CheckoutRequest creates an order from the customer's cart
type CheckoutRequest struct {
	AddressID    uuid.UUID `json:"address_id" binding:"required"`
	DeliveryDate string    `json:"delivery_date" binding:"required"` // YYYY-MM-DD
}

// OverrideStatusRequest forces an order status (admin only). When the
// target is PAID, payment_method may name how the settlement is recorded;
// wallet requires the customer's balance to cover the order total.
type OverrideStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=wallet online"`
}

// ItemResponse is one order line in API responses
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice *string   `json:"unit_price,omitempty"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID            uuid.UUID      `json:"id"`
	CustomerID    uuid.UUID      `json:"customer_id"`
	AddressID     uuid.UUID      `json:"address_id"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"payment_method,omitempty"`
	DeliveryDate  string         `json:"delivery_date"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	GatewayRefID  string         `json:"gateway_ref_id,omitempty"`
	Total         string         `json:"total,omitempty"`
	Items         []ItemResponse `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
}

// PaymentRedirectResponse points the customer at the gateway's hosted page
type PaymentRedirectResponse struct {
	Authority  string `json:"authority"`
	PaymentURL string `json:"payment_url"`
}

// CallbackResult reports the outcome of a gateway callback
type CallbackResult struct {
	Success          bool      `json:"success"`
	AlreadyProcessed bool      `json:"already_processed,omitempty"`
	OrderID          uuid.UUID `json:"order_id"`
	RefID            string    `json:"ref_id,omitempty"`
}

// DeliveryDatesResponse lists the delivery days a customer may pick
type DeliveryDatesResponse struct {
	Dates []string `json:"dates"`
}

// ToOrderResponse maps an order to its API representation. prices supplies
// live unit prices for the total of unpaid orders; it may be nil, in which
// case the total is omitted for unpaid orders.
func ToOrderResponse(o *order.Order, prices map[uuid.UUID]valueobject.Money) *OrderResponse {
	resp := &OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		AddressID:    o.AddressID,
		Status:       o.Status.String(),
		DeliveryDate: o.DeliveryDate.Format("2006-01-02"),
		PaidAt:       o.PaidAt,
		Items:        make([]ItemResponse, 0, len(o.Items)),
		CreatedAt:    o.CreatedAt,
	}
	if o.PaymentMethod != nil {
		resp.PaymentMethod = string(*o.PaymentMethod)
	}
	if o.GatewayRefID != nil {
		resp.GatewayRefID = *o.GatewayRefID
	}

	for _, item := range o.Items {
		ir := ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.UnitPrice != nil {
			s := item.UnitPrice.Amount().String()
			ir.UnitPrice = &s
		}
		resp.Items = append(resp.Items, ir)
	}

	if o.IsPaid() {
		if total, err := o.PaidTotal(); err == nil {
			resp.Total = total.Amount().String()
		}
	} else if prices != nil {
		if total, err := o.LiveTotal(prices); err == nil {
			resp.Total = total.Amount().String()
		}
	}

	return resp
}
