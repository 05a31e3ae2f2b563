package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
)

var (
	ErrCartLineNotFound   = errors.New("cart line not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product is not available for sale")
)

// CartView is a cart with its derived totals.
type CartView struct {
	ID        string           `json:"id"`
	Lines     []model.CartLine `json:"lines"`
	ItemCount int              `json:"itemCount"`
	Total     decimal.Decimal  `json:"total"`
}

type CartService interface {
	AddToCart(cartID, productID, variantID string, quantity int) (*CartView, error)
	AdjustQuantity(cartID, productID, variantID string, delta int) (*CartView, error)
	RemoveLine(cartID, productID, variantID string) (*CartView, error)
	Clear(cartID string) error
	Get(cartID string) (*CartView, error)
}

type cartService struct {
	mu      sync.Mutex
	carts   repository.CartRepository
	catalog CatalogService
}

func NewCartService(carts repository.CartRepository, catalog CatalogService) CartService {
	return &cartService{carts: carts, catalog: catalog}
}

func (s *cartService) AddToCart(cartID, productID, variantID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	line, err := s.lineFor(productID, variantID)
	if err != nil {
		return nil, err
	}
	line.Quantity = quantity

	return s.update(cartID, func(c *model.Cart) error {
		c.Add(line)
		return nil
	})
}

func (s *cartService) AdjustQuantity(cartID, productID, variantID string, delta int) (*CartView, error) {
	return s.update(cartID, func(c *model.Cart) error {
		if !c.Adjust(productID, variantID, delta) {
			return ErrCartLineNotFound
		}
		return nil
	})
}

func (s *cartService) RemoveLine(cartID, productID, variantID string) (*CartView, error) {
	return s.update(cartID, func(c *model.Cart) error {
		if !c.Remove(productID, variantID) {
			return ErrCartLineNotFound
		}
		return nil
	})
}

func (s *cartService) Clear(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts.Delete(cartID)
}

func (s *cartService) Get(cartID string) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.load(cartID)
	if err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

func (s *cartService) update(cartID string, fn func(c *model.Cart) error) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.carts.Save(c); err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

// load returns the stored cart or a new empty one.
func (s *cartService) load(cartID string) (*model.Cart, error) {
	c, err := s.carts.FindByID(cartID)
	if errors.Is(err, repository.ErrNotFound) {
		return &model.Cart{ID: cartID}, nil
	}
	return c, err
}

// lineFor prices a product or variant for the register.
func (s *cartService) lineFor(productID, variantID string) (model.CartLine, error) {
	p, err := s.catalog.Get(productID)
	if err != nil {
		return model.CartLine{}, err
	}
	if p.Status == model.ProductInactive {
		return model.CartLine{}, ErrProductUnavailable
	}

	line := model.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     model.UnitPrice(p.Price, p.SalePrice),
	}
	if !p.HasVariants() {
		if variantID != "" {
			return model.CartLine{}, ErrVariantNotFound
		}
		return line, nil
	}

	if variantID == "" {
		return model.CartLine{}, ErrVariantRequired
	}
	v := p.FindVariant(variantID)
	if v == nil {
		return model.CartLine{}, ErrVariantNotFound
	}
	line.VariantID = v.ID
	line.Name = p.Name + " - " + v.Name
	if v.SKU != "" {
		line.SKU = v.SKU
	}
	if price := model.UnitPrice(v.Price, v.SalePrice); price.IsPositive() {
		line.Price = price
	}
	return line, nil
}

func viewOf(c *model.Cart) *CartView {
	lines := c.Lines
	if lines == nil {
		lines = []model.CartLine{}
	}
	return &CartView{ID: c.ID, Lines: lines, ItemCount: c.ItemCount(), Total: c.Total()}
}
