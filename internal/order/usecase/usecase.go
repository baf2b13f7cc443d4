package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/inventory"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/region"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced = "order.placed"
	orderRefType     = "order"
	maxRecentOrders  = 200
)

type Deps struct {
	Repo      order.Repository
	Inventory inventory.Repository
	Regions   region.Repository
	Tx        *database.TxManager
	Cache     cache.Cache
	Publisher broker.Publisher
	Topic     string
	Logger    logger.ZapLogger
}

type orderUseCase struct {
	repo      order.Repository
	inventory inventory.Repository
	regions   region.Repository
	tx        *database.TxManager
	cache     cache.Cache
	publisher broker.Publisher
	topic     string
	logger    logger.ZapLogger
	now       func() time.Time
	newNumber func() (string, error)
}

func NewOrderUseCase(d Deps) order.UseCase {
	uc := &orderUseCase{
		repo:      d.Repo,
		inventory: d.Inventory,
		regions:   d.Regions,
		tx:        d.Tx,
		cache:     d.Cache,
		publisher: d.Publisher,
		topic:     d.Topic,
		logger:    d.Logger,
		now:       func() time.Time { return time.Now().UTC() },
		newNumber: newOrderNumber,
	}
	if uc.cache == nil {
		uc.cache = cache.Noop{}
	}
	if uc.publisher == nil {
		uc.publisher = broker.Noop{}
	}
	return uc
}

// newOrderNumber returns ORD- followed by a time-ordered UUID.
func newOrderNumber() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return "ORD-" + strings.ToUpper(id.String()), nil
}

type pricedLine struct {
	variant   *dto.LineVariant
	quantity  int
	unitPrice decimal.Decimal
	lineTotal decimal.Decimal
}

func validatePlaceOrder(input *dto.PlaceOrderInput) error {
	if strings.TrimSpace(input.CustomerEmail) == "" || len(input.Items) == 0 || input.ShippingAddress == nil {
		return apperror.Invalid("Missing required fields")
	}
	for _, item := range input.Items {
		if item.VariantID <= 0 {
			return apperror.Invalid("variant_id is required")
		}
		if item.Quantity <= 0 {
			return apperror.Invalid("quantity must be greater than 0")
		}
	}
	if strings.TrimSpace(input.ShippingAddress.CountryCode) == "" {
		return apperror.Invalid("shipping_address.country_code is required")
	}
	return nil
}

// PlaceOrder prices the cart, writes the order with its items and
// decrements stock in one transaction. Either every line is committed or
// nothing is.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*dto.PlaceOrderResult, error) {
	if err := validatePlaceOrder(input); err != nil {
		return nil, err
	}

	shippingJSON, err := json.Marshal(input.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("marshal shipping address: %w", err)
	}
	billing := input.BillingAddress
	if billing == nil {
		billing = input.ShippingAddress
	}
	billingJSON, err := json.Marshal(billing)
	if err != nil {
		return nil, fmt.Errorf("marshal billing address: %w", err)
	}

	orderNumber, err := uc.newNumber()
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	var (
		o     *model.Order
		lines []pricedLine
	)
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var (
			subtotal decimal.Decimal
			currency string
		)
		lines = make([]pricedLine, 0, len(input.Items))

		for _, item := range input.Items {
			v, err := uc.repo.FindLineVariant(ctx, item.VariantID)
			if err != nil {
				return fmt.Errorf("load variant %d: %w", item.VariantID, err)
			}
			if v == nil || !v.VariantActive || !v.ProductActive || v.StockQuantity < item.Quantity {
				return apperror.InsufficientStock(item.VariantID)
			}

			if currency == "" {
				currency = v.Currency
			} else if !strings.EqualFold(currency, v.Currency) {
				return apperror.Invalid("Cart mixes %s and %s prices", currency, v.Currency)
			}

			unit := v.UnitPrice()
			lineTotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			lines = append(lines, pricedLine{variant: v, quantity: item.Quantity, unitPrice: unit, lineTotal: lineTotal})
		}

		if input.Currency != "" && !strings.EqualFold(input.Currency, currency) {
			return apperror.Invalid("Orders for these items are charged in %s", currency)
		}

		shippingCost := decimal.Zero
		if input.ShippingMethodID != nil {
			method, err := uc.regions.FindShippingMethodByID(ctx, *input.ShippingMethodID)
			if err != nil {
				return fmt.Errorf("load shipping method: %w", err)
			}
			if method != nil {
				shippingCost = method.BaseCost
			}
		}

		taxAmount := decimal.Zero
		r, err := uc.regions.FindByCode(ctx, input.ShippingAddress.CountryCode)
		if err != nil {
			return fmt.Errorf("load region: %w", err)
		}
		if r != nil {
			// Stored tax is rounded to cents so total_amount is a payable amount.
			taxAmount = model.Round2(subtotal.Mul(r.TaxRate))
		}

		now := uc.now()
		billingStr := string(billingJSON)
		o = &model.Order{
			OrderNumber:         orderNumber,
			CustomerEmail:       strings.TrimSpace(input.CustomerEmail),
			Status:              model.OrderStatusPending,
			Subtotal:            subtotal,
			ShippingCost:        shippingCost,
			TaxAmount:           taxAmount,
			TotalAmount:         subtotal.Add(shippingCost).Add(taxAmount),
			Currency:            strings.ToUpper(currency),
			PaymentStatus:       model.PaymentStatusPending,
			ShippingMethodID:    input.ShippingMethodID,
			ShippingAddressJSON: string(shippingJSON),
			BillingAddressJSON:  &billingStr,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := uc.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		refType := orderRefType
		for _, line := range lines {
			before, after, ok, err := uc.inventory.ApplyStockChange(ctx, line.variant.VariantID, -line.quantity)
			if err != nil {
				return fmt.Errorf("decrement stock for variant %d: %w", line.variant.VariantID, err)
			}
			if !ok {
				return apperror.InsufficientStock(line.variant.VariantID)
			}

			item := &model.OrderItem{
				OrderID:    o.ID,
				ProductID:  line.variant.ProductID,
				VariantID:  line.variant.VariantID,
				Quantity:   line.quantity,
				UnitPrice:  line.unitPrice,
				TotalPrice: line.lineTotal,
				CreatedAt:  now,
			}
			if err := uc.repo.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}

			refID := o.OrderNumber
			movement := &model.InventoryMovement{
				VariantID:      line.variant.VariantID,
				MovementType:   model.MovementTypeSale,
				QuantityChange: -line.quantity,
				QuantityBefore: before,
				QuantityAfter:  after,
				ReferenceType:  &refType,
				ReferenceID:    &refID,
				CreatedAt:      now,
			}
			if err := uc.inventory.LogMovement(ctx, movement); err != nil {
				return fmt.Errorf("log stock movement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.Int64("order_id", o.ID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.String("currency", o.Currency),
	)

	product.InvalidateStockCaches(ctx, uc.cache, uc.logger)
	uc.publishPlaced(ctx, o, lines)

	return &dto.PlaceOrderResult{
		Success:     true,
		OrderNumber: o.OrderNumber,
		OrderID:     o.ID,
		TotalAmount: o.TotalAmount,
		Currency:    o.Currency,
	}, nil
}

func (uc *orderUseCase) publishPlaced(ctx context.Context, o *model.Order, lines []pricedLine) {
	payload := dto.OrderPlaced{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerEmail: o.CustomerEmail,
		Subtotal:      o.Subtotal,
		ShippingCost:  o.ShippingCost,
		TaxAmount:     o.TaxAmount,
		TotalAmount:   o.TotalAmount,
		Currency:      o.Currency,
		Items:         make([]dto.OrderPlacedItem, 0, len(lines)),
	}
	for _, l := range lines {
		payload.Items = append(payload.Items, dto.OrderPlacedItem{
			VariantID: l.variant.VariantID,
			ProductID: l.variant.ProductID,
			SKU:       l.variant.SKU,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
		})
	}

	event, err := broker.NewEvent(EventOrderPlaced, payload)
	if err != nil {
		uc.logger.Error("failed to build order event", zap.Error(err))
		return
	}
	// Best effort: the order is already committed.
	if err := uc.publisher.Publish(ctx, uc.topic, o.OrderNumber, event); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}
}

func (uc *orderUseCase) GetOrder(ctx context.Context, orderNumber string) (*dto.OrderDetail, error) {
	o, err := uc.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if o == nil {
		return nil, apperror.NotFound("Order not found")
	}

	items, err := uc.repo.FindItems(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("find order items: %w", err)
	}

	detail := &dto.OrderDetail{Order: *o, Items: items}

	var shipping model.Address
	if err := json.Unmarshal([]byte(o.ShippingAddressJSON), &shipping); err != nil {
		return nil, fmt.Errorf("decode shipping address of %s: %w", o.OrderNumber, err)
	}
	detail.ShippingAddress = &shipping

	if o.BillingAddressJSON != nil && *o.BillingAddressJSON != "" {
		var billing model.Address
		if err := json.Unmarshal([]byte(*o.BillingAddressJSON), &billing); err != nil {
			return nil, fmt.Errorf("decode billing address of %s: %w", o.OrderNumber, err)
		}
		detail.BillingAddress = &billing
	}

	return detail, nil
}

func (uc *orderUseCase) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxRecentOrders {
		limit = maxRecentOrders
	}
	return uc.repo.FindRecent(ctx, limit)
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, orderNumber, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, apperror.Invalid("Invalid order status: %s", status)
	}

	updated, err := uc.repo.UpdateStatus(ctx, orderNumber, status, uc.now())
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !updated {
		return nil, apperror.NotFound("Order not found")
	}

	uc.logger.Info("order status updated", zap.String("order_number", orderNumber), zap.String("status", status))
	return uc.repo.FindByNumber(ctx, orderNumber)
}
