package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/orderclient"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/pagination"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInsufficientPayment = errors.New("tendered amount is less than the total")
)

// networkErrorMessage is what callers see when the order service could not
// be reached.
const networkErrorMessage = "network error"

type CheckoutRequest struct {
	CustomerName string              `json:"customerName"`
	CustomerID   string              `json:"customerId"`
	Method       model.PaymentMethod `json:"method" validate:"required,oneof=cash card mobile"`
	Tendered     *decimal.Decimal    `json:"tendered,omitempty"`
}

type Receipt struct {
	Order    *model.Order    `json:"order"`
	Tendered decimal.Decimal `json:"tendered"`
	Change   decimal.Decimal `json:"change"`
	Text     string          `json:"text"`
}

// OrderResult mirrors the response of the external order service.
type OrderResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OrderSubmitter is satisfied by *orderclient.Client.
type OrderSubmitter interface {
	CreateSell(ctx context.Context, order *model.Order) (interface{}, error)
}

type OrderService interface {
	Checkout(ctx context.Context, cartID string, req *CheckoutRequest, actor string) (*Receipt, error)
	CreateOrder(ctx context.Context, cartID string, req *CheckoutRequest, actor string) (*OrderResult, error)
	List(page, pageSize int) (pagination.Page[model.Order], error)
	Get(id string) (*model.Order, error)
}

type orderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	submitter OrderSubmitter
	delay     time.Duration
	storeName string
	bus       broadcaster
	log       *zap.Logger
}

type OrderServiceConfig struct {
	CheckoutDelay time.Duration
	StoreName     string
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	submitter OrderSubmitter,
	cfg OrderServiceConfig,
	pub event.Publisher,
	log *zap.Logger,
) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("orders")
	if cfg.StoreName == "" {
		cfg.StoreName = "POS"
	}
	return &orderService{
		orders:    orders,
		carts:     carts,
		submitter: submitter,
		delay:     cfg.CheckoutDelay,
		storeName: cfg.StoreName,
		bus:       newBroadcaster(pub, log),
		log:       log,
	}
}

// Checkout simulates payment, records the order and clears the cart.
func (s *orderService) Checkout(ctx context.Context, cartID string, req *CheckoutRequest, actor string) (*Receipt, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	cart, err := s.nonEmptyCart(cartID)
	if err != nil {
		return nil, err
	}

	order := s.buildOrder(cart, req, actor)
	tendered := order.Amount
	if req.Tendered != nil {
		tendered = *req.Tendered
	}
	if tendered.LessThan(order.Amount) {
		return nil, ErrInsufficientPayment
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}
	if err := s.carts.Delete(cartID); err != nil {
		s.log.Warn("clear cart after checkout", zap.String("cart_id", cartID), zap.Error(err))
	}

	receipt := &Receipt{Order: order, Tendered: tendered, Change: tendered.Sub(order.Amount)}
	receipt.Text = renderReceipt(s.storeName, receipt)

	s.log.Info("checkout completed", zap.String("order_id", order.ID), zap.String("amount", order.Amount.StringFixed(2)))
	s.bus.emit(event.Event{Type: event.TypeOrder, Action: "order_completed", Actor: actor, Data: order})
	return receipt, nil
}

// CreateOrder submits the cart to the external order service. The cart is
// cleared only when the service accepts the order.
func (s *orderService) CreateOrder(ctx context.Context, cartID string, req *CheckoutRequest, actor string) (*OrderResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	cart, err := s.nonEmptyCart(cartID)
	if err != nil {
		return nil, err
	}

	order := s.buildOrder(cart, req, actor)
	data, err := s.submitter.CreateSell(ctx, order)
	if err != nil {
		var remote *orderclient.RemoteError
		if errors.As(err, &remote) {
			return &OrderResult{Success: false, Error: remote.Message}, nil
		}
		return &OrderResult{Success: false, Error: networkErrorMessage}, nil
	}

	if err := s.orders.Create(order); err != nil {
		s.log.Warn("record submitted order", zap.String("order_id", order.ID), zap.Error(err))
	}
	if err := s.carts.Delete(cartID); err != nil {
		s.log.Warn("clear cart after order", zap.String("cart_id", cartID), zap.Error(err))
	}
	s.bus.emit(event.Event{Type: event.TypeOrder, Action: "order_submitted", Actor: actor, Data: order})
	return &OrderResult{Success: true, Data: data}, nil
}

// List returns orders newest first.
func (s *orderService) List(page, pageSize int) (pagination.Page[model.Order], error) {
	all, err := s.orders.FindAll()
	if err != nil {
		return pagination.Page[model.Order]{}, err
	}
	out := make([]model.Order, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return pagination.Paginate(out, page, pageSize), nil
}

func (s *orderService) Get(id string) (*model.Order, error) {
	o, err := s.orders.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return o, nil
}

func (s *orderService) nonEmptyCart(cartID string) (*model.Cart, error) {
	cart, err := s.carts.FindByID(cartID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	return cart, nil
}

func (s *orderService) buildOrder(cart *model.Cart, req *CheckoutRequest, actor string) *model.Order {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		name = "Walk-in Customer"
	}
	order := &model.Order{
		CustomerName: name,
		CustomerID:   req.CustomerID,
		Method:       req.Method,
		Amount:       cart.Total(),
		Status:       model.OrderCompleted,
		Items:        make([]model.OrderItem, 0, len(cart.Lines)),
	}
	order.Stamp(actor, now())
	for _, l := range cart.Lines {
		order.Items = append(order.Items, model.OrderItem{
			OrderID:     order.ID,
			ProductID:   l.ProductID,
			ProductName: l.Name,
			VariantID:   l.VariantID,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	return order
}

func renderReceipt(store string, r *Receipt) string {
	const width = 40
	var b strings.Builder
	rule := strings.Repeat("-", width) + "\n"

	pad := (width - len(store)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + store + "\n")
	b.WriteString(rule)
	fmt.Fprintf(&b, "Order:    %s\n", r.Order.ID)
	fmt.Fprintf(&b, "Date:     %s\n", r.Order.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Customer: %s\n", r.Order.CustomerName)
	b.WriteString(rule)
	for _, item := range r.Order.Items {
		fmt.Fprintf(&b, "%s\n", item.ProductName)
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		qty := fmt.Sprintf("%d x %s", item.Quantity, item.Price.StringFixed(2))
		fmt.Fprintf(&b, "  %-18s%20s\n", qty, lineTotal.StringFixed(2))
	}
	b.WriteString(rule)
	fmt.Fprintf(&b, "%-20s%20s\n", "TOTAL", r.Order.Amount.StringFixed(2))
	fmt.Fprintf(&b, "%-20s%20s\n", "Paid ("+string(r.Order.Method)+")", r.Tendered.StringFixed(2))
	fmt.Fprintf(&b, "%-20s%20s\n", "Change", r.Change.StringFixed(2))
	b.WriteString(rule)
	b.WriteString("Thank you for your purchase!\n")
	return b.String()
}
