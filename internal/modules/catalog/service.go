// Package catalog mantém o espelho de produtos e categorias buscados do
// backend hospedado e a flag de conexão da vitrine.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Inovatum/site-vendas/internal/cache"
	"github.com/Inovatum/site-vendas/internal/gateway"
)

const (
	productsKey   = "store:products"
	categoriesKey = "store:categories"

	// AllCategories é a aba "todas" do filtro da vitrine.
	AllCategories = "Todos"
)

type Service struct {
	gw     gateway.Client
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger

	mu         sync.RWMutex
	products   []gateway.Product
	categories []gateway.Category
}

func NewService(gw gateway.Client, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{gw: gw, cache: c, ttl: ttl, logger: logger}
}

// Connected reflete o resultado da última ida ao backend. Toda ação que
// muda estado (carrinho, cupom, checkout, admin) é recusada offline.
func (s *Service) Connected() bool { return s.gw.Connected() }

// Refresh recarrega produtos e categorias, atualizando o espelho local.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.gw.ListProducts(ctx)
	if err != nil {
		return err
	}
	categories, err := s.gw.ListCategories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.mu.Unlock()

	s.cacheSet(ctx, productsKey, products)
	s.cacheSet(ctx, categoriesKey, categories)
	return nil
}

// Products devolve todos os produtos (visão do admin).
func (s *Service) Products(ctx context.Context) ([]gateway.Product, error) {
	if cached, ok := cacheGet[[]gateway.Product](ctx, s.cache, productsKey); ok {
		return cached, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]gateway.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// ActiveProducts filtra a visão da vitrine: só status active, busca por
// substring do nome (sem caixa) e categoria ("Todos" não filtra).
func (s *Service) ActiveProducts(ctx context.Context, search, category string) ([]gateway.Product, error) {
	all, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]gateway.Product, 0, len(all))
	for _, p := range all {
		if p.Status != gateway.StatusActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ProductByID procura no espelho; recarrega uma vez se estiver vazio.
func (s *Service) ProductByID(ctx context.Context, id int64) (gateway.Product, error) {
	s.mu.RLock()
	empty := len(s.products) == 0
	s.mu.RUnlock()
	if empty {
		if err := s.Refresh(ctx); err != nil {
			return gateway.Product{}, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return gateway.Product{}, gateway.ErrNotFound
}

// Categories devolve as categorias do banco (visão do admin).
func (s *Service) Categories(ctx context.Context) ([]gateway.Category, error) {
	if cached, ok := cacheGet[[]gateway.Category](ctx, s.cache, categoriesKey); ok {
		return cached, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]gateway.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// CategoryNames monta a barra de filtro: "Todos" + categorias ativas em
// display_order; sem linhas na tabela, cai para as categorias distintas
// dos próprios produtos.
func (s *Service) CategoryNames(ctx context.Context) ([]string, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	names := []string{AllCategories}
	active := make([]gateway.Category, 0, len(categories))
	for _, c := range categories {
		if c.IsActive {
			active = append(active, c)
		}
	}
	if len(active) > 0 {
		sort.SliceStable(active, func(i, j int) bool { return active[i].DisplayOrder < active[j].DisplayOrder })
		for _, c := range active {
			names = append(names, c.Name)
		}
		return names, nil
	}

	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		names = append(names, p.Category)
	}
	return names, nil
}

// ---- admin CRUD (delegado ao backend, depois refetch) ------------------

func (s *Service) CreateProduct(ctx context.Context, in gateway.ProductInput) (gateway.Product, error) {
	if !s.Connected() {
		return gateway.Product{}, gateway.ErrUnavailable
	}
	p, err := s.gw.InsertProduct(ctx, in)
	if err != nil {
		return gateway.Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, in gateway.ProductInput) error {
	if !s.Connected() {
		return gateway.ErrUnavailable
	}
	if err := s.gw.UpdateProduct(ctx, id, in); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if !s.Connected() {
		return gateway.ErrUnavailable
	}
	if err := s.gw.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ToggleProductStatus alterna active/inactive.
func (s *Service) ToggleProductStatus(ctx context.Context, id int64) (string, error) {
	if !s.Connected() {
		return "", gateway.ErrUnavailable
	}
	p, err := s.ProductByID(ctx, id)
	if err != nil {
		return "", err
	}
	next := gateway.StatusActive
	if p.Status == gateway.StatusActive {
		next = gateway.StatusInactive
	}
	if err := s.gw.UpdateProductStatus(ctx, id, next); err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return next, nil
}

func (s *Service) CreateCategory(ctx context.Context, in gateway.CategoryInput) (gateway.Category, error) {
	if !s.Connected() {
		return gateway.Category{}, gateway.ErrUnavailable
	}
	c, err := s.gw.InsertCategory(ctx, in)
	if err != nil {
		return gateway.Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, in gateway.CategoryInput) error {
	if !s.Connected() {
		return gateway.ErrUnavailable
	}
	if err := s.gw.UpdateCategory(ctx, id, in); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if !s.Connected() {
		return gateway.ErrUnavailable
	}
	if err := s.gw.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ---- cache plumbing -----------------------------------------------------

func (s *Service) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, productsKey)
	_ = s.cache.Delete(ctx, categoriesKey)
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after write failed", "err", err)
	}
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("catalog cache set failed", "key", key, "err", err)
	}
}

func cacheGet[T any](ctx context.Context, c cache.Cache, key string) (T, bool) {
	var out T
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}
