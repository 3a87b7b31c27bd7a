// Package memory implementa los repositorios sobre un estado en memoria. Las transacciones
// trabajan sobre una copia que reemplaza al estado solo si la función termina sin error, y se
// serializan con un único mutex.
package memory

import (
	"context"
	"slices"
	"sync"

	app "github.com/jhoicas/semillas-api/internal/application/production"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

var _ app.TxRunner = (*Store)(nil)

type state struct {
	units      map[string]*entity.Unit
	varieties  map[string]*entity.Variety
	categories map[string]*entity.Category
	orders     map[string]*entity.IntakeOrder
	batches    map[string]*entity.ProductionBatch
	movements  map[string][]*entity.BatchMovement // por lote, en orden de secuencia
	outgoing   map[string]*entity.OutgoingOrder
	sequences  map[string]int
}

func newState() *state {
	return &state{
		units:      map[string]*entity.Unit{},
		varieties:  map[string]*entity.Variety{},
		categories: map[string]*entity.Category{},
		orders:     map[string]*entity.IntakeOrder{},
		batches:    map[string]*entity.ProductionBatch{},
		movements:  map[string][]*entity.BatchMovement{},
		outgoing:   map[string]*entity.OutgoingOrder{},
		sequences:  map[string]int{},
	}
}

// clone copia profunda de lo mutable. Los asientos son inmutables y se comparten.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.units {
		c.units[k] = v
	}
	for k, v := range s.varieties {
		c.varieties[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.orders {
		o := *v
		c.orders[k] = &o
	}
	for k, v := range s.batches {
		b := *v
		c.batches[k] = &b
	}
	for k, v := range s.movements {
		c.movements[k] = slices.Clone(v)
	}
	for k, v := range s.outgoing {
		o := *v
		o.Lines = slices.Clone(v.Lines)
		c.outgoing[k] = &o
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

// Store estado en memoria para APP_STORAGE=memory y tests.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Repos repositorios fuera de transacción; cada llamada lee el estado confirmado.
func (s *Store) Repos() app.Repos {
	return s.repos(&view{store: s})
}

// Run ejecuta fn sobre una copia del estado; si fn no falla la copia pasa a ser el estado.
func (s *Store) Run(ctx context.Context, fn func(r app.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(s.repos(&view{tx: work})); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) repos(v *view) app.Repos {
	return app.Repos{
		Orders:     &IntakeOrderRepo{v: v},
		Batches:    &BatchRepo{v: v},
		Movements:  &MovementRepo{v: v},
		Outgoing:   &OutgoingOrderRepo{v: v},
		Sequences:  &SequenceRepo{v: v},
		Categories: &CategoryRepo{v: v},
		Varieties:  &VarietyRepo{v: v},
		Units:      &UnitRepo{v: v},
		Inventory:  &InventoryRepo{v: v},
	}
}

// view da acceso al estado: el de la transacción en curso o, fuera de ella, el confirmado
// tomando el mutex.
type view struct {
	store *Store
	tx    *state
}

func (v *view) read() (*state, func()) {
	if v.tx != nil {
		return v.tx, func() {}
	}
	v.store.mu.Lock()
	return v.store.data, v.store.mu.Unlock
}

// SeedUnit carga una sede (datos maestros).
func (s *Store) SeedUnit(u entity.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.units[u.ID] = &u
}

// SeedVariety carga una variedad.
func (s *Store) SeedVariety(v entity.Variety) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.varieties[v.ID] = &v
}

// SeedCategory carga una categoría.
func (s *Store) SeedCategory(c entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.categories[c.ID] = &c
}
