package inventory_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

var errDB = errors.New("fallo de base de datos")

// memStore guarda productos y movimientos. fakeTxRunner trabaja sobre una copia
// y solo la publica si fn termina sin error (Commit); si no, la descarta (Rollback).
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement
	failOn    string // "update" | "create"
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: map[string]*entity.Product{}}
	for _, p := range products {
		s.products[p.ID] = cloneProduct(p)
	}
	return s
}

func (s *memStore) product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProduct(s.products[id])
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	c.SerialNumbers = append([]string(nil), p.SerialNumbers...)
	return &c
}

type fakeTxRunner struct{ store *memStore }

func (r fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := &memTx{failOn: r.store.failOn, products: map[string]*entity.Product{}}
	for id, p := range r.store.products {
		tx.products[id] = cloneProduct(p)
	}
	if err := fn(&memProducts{tx}, &memMovements{tx}); err != nil {
		return err
	}
	r.store.products = tx.products
	r.store.movements = append(r.store.movements, tx.movements...)
	return nil
}

// memTx estado de una transacción en curso.
type memTx struct {
	failOn    string
	products  map[string]*entity.Product
	movements []*entity.Movement
}

type memProducts struct{ tx *memTx }

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	r.tx.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return cloneProduct(r.tx.products[id]), nil
}

func (r *memProducts) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	return cloneProduct(r.tx.products[id]), nil
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	r.tx.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *memProducts) UpdateStock(_ context.Context, id string, quantity int, serials []string) error {
	if r.tx.failOn == "update" {
		return errDB
	}
	p, ok := r.tx.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.SerialNumbers = append([]string(nil), serials...)
	return nil
}

func (r *memProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.tx.products))
	for _, p := range r.tx.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	delete(r.tx.products, id)
	return nil
}

type memMovements struct{ tx *memTx }

func (r *memMovements) Create(_ context.Context, m *entity.Movement) error {
	if r.tx.failOn == "create" {
		return errDB
	}
	r.tx.movements = append(r.tx.movements, m)
	return nil
}

func (r *memMovements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.tx.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovements) List(context.Context, repository.MovementFilter) ([]*entity.Movement, error) {
	return r.tx.movements, nil
}

func (r *memMovements) GetDocument(context.Context, string) (*entity.MovementDocument, error) {
	return nil, nil
}

func (r *memMovements) CountByProduct(_ context.Context, productID string) (int, error) {
	n := 0
	for _, m := range r.tx.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}
