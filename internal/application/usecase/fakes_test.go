package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProducts struct {
	mu   sync.Mutex
	byID map[string]*entity.Product
}

func newFakeProducts() *fakeProducts { return &fakeProducts{byID: map[string]*entity.Product{}} }

func (r *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.byID[p.ID] = &c
	return nil
}

func (r *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *p
	// Update no toca cantidad ni seriales.
	c.Quantity = cur.Quantity
	c.SerialNumbers = cur.SerialNumbers
	r.byID[p.ID] = &c
	return nil
}

func (r *fakeProducts) UpdateStock(_ context.Context, id string, quantity int, serials []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id].Quantity = quantity
	r.byID[id].SerialNumbers = serials
	return nil
}

func (r *fakeProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProducts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeImages struct {
	mu        sync.Mutex
	byProduct map[string][]entity.ProductImage
}

func newFakeImages() *fakeImages { return &fakeImages{byProduct: map[string][]entity.ProductImage{}} }

func (r *fakeImages) Replace(_ context.Context, productID string, images []entity.ProductImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range images {
		images[i].ProductID = productID
	}
	r.byProduct[productID] = images
	return nil
}

func (r *fakeImages) ListByProduct(_ context.Context, productID string) ([]entity.ProductImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byProduct[productID], nil
}

func (r *fakeImages) ListByProducts(_ context.Context, ids []string) (map[string][]entity.ProductImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string][]entity.ProductImage{}
	for _, id := range ids {
		out[id] = r.byProduct[id]
	}
	return out, nil
}

// fakeCatalogTx ejecuta fn directamente sobre los fakes (sin rollback).
type fakeCatalogTx struct {
	products *fakeProducts
	images   *fakeImages
}

func (t fakeCatalogTx) RunCatalog(_ context.Context, fn func(repository.ProductRepository, repository.ProductImageRepository) error) error {
	return fn(t.products, t.images)
}

type fakeMovements struct {
	countByProduct map[string]int
}

func (r *fakeMovements) Create(context.Context, *entity.Movement) error { return nil }
func (r *fakeMovements) GetByID(context.Context, string) (*entity.Movement, error) {
	return nil, nil
}
func (r *fakeMovements) List(context.Context, repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *fakeMovements) GetDocument(context.Context, string) (*entity.MovementDocument, error) {
	return nil, nil
}
func (r *fakeMovements) CountByProduct(_ context.Context, id string) (int, error) {
	return r.countByProduct[id], nil
}

// fakeLookup implementa LookupRepository[T] sobre un slice.
type fakeLookup[T any] struct {
	mu    sync.Mutex
	items []T
	inUse map[string]bool
	id    func(*T) *string
}

func (r *fakeLookup[T]) List(context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T{}, r.items...), nil
}

func (r *fakeLookup[T]) Create(_ context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id := r.id(item); *id == "" {
		*id = uuid.New().String()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeLookup[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inUse[id] {
		return domain.ErrConflict
	}
	for i := range r.items {
		if *r.id(&r.items[i]) == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func newLookup[T any](id func(*T) *string) *fakeLookup[T] {
	return &fakeLookup[T]{inUse: map[string]bool{}, id: id}
}

type fakeUsers struct {
	mu    sync.Mutex
	users []*entity.User
}

func (r *fakeUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Username == u.Username || x.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUsers) FindByUsernameOrEmail(_ context.Context, login string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUsers) List(context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.User{}, r.users...), nil
}

func (r *fakeUsers) CountByRole(_ context.Context, role string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeMailConfig struct{ cfg *entity.MailConfig }

func (r *fakeMailConfig) Get(context.Context) (*entity.MailConfig, error) {
	if r.cfg == nil {
		return nil, nil
	}
	c := *r.cfg
	return &c, nil
}

func (r *fakeMailConfig) Save(_ context.Context, cfg *entity.MailConfig) error {
	c := *cfg
	if c.SMTPPass == "" && r.cfg != nil {
		c.SMTPPass = r.cfg.SMTPPass
	}
	r.cfg = &c
	return nil
}

type fakeMailer struct {
	sent []ports.MailMessage
	cfgs []entity.MailConfig
	err  error
}

func (m *fakeMailer) Send(_ context.Context, cfg entity.MailConfig, msg ports.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.cfgs = append(m.cfgs, cfg)
	m.sent = append(m.sent, msg)
	return nil
}
