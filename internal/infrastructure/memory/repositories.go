package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
	"github.com/jhoicas/semillas-api/internal/domain/repository"
)

var (
	_ repository.IntakeOrderRepository     = (*IntakeOrderRepo)(nil)
	_ repository.ProductionBatchRepository = (*BatchRepo)(nil)
	_ repository.BatchMovementRepository   = (*MovementRepo)(nil)
	_ repository.OutgoingOrderRepository   = (*OutgoingOrderRepo)(nil)
	_ repository.SequenceRepository        = (*SequenceRepo)(nil)
	_ repository.CategoryRepository        = (*CategoryRepo)(nil)
	_ repository.VarietyRepository         = (*VarietyRepo)(nil)
	_ repository.UnitRepository            = (*UnitRepo)(nil)
	_ repository.InventoryRepository       = (*InventoryRepo)(nil)
)

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
}

// IntakeOrderRepo órdenes de ingreso en memoria.
type IntakeOrderRepo struct{ v *view }

func (r *IntakeOrderRepo) Create(_ context.Context, o *entity.IntakeOrder) error {
	st, done := r.v.read()
	defer done()
	for _, x := range st.orders {
		if x.OrderNumber == o.OrderNumber {
			return fmt.Errorf("%w: número de orden %s ya existe", domain.ErrConflict, o.OrderNumber)
		}
	}
	c := *o
	st.orders[o.ID] = &c
	return nil
}

func (r *IntakeOrderRepo) GetByID(_ context.Context, id string) (*entity.IntakeOrder, error) {
	st, done := r.v.read()
	defer done()
	o, ok := st.orders[id]
	if !ok {
		return nil, notFound("orden de ingreso", id)
	}
	c := *o
	return &c, nil
}

// GetForUpdate dentro de Run el mutex del store ya serializa.
func (r *IntakeOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.IntakeOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *IntakeOrderRepo) Update(_ context.Context, o *entity.IntakeOrder) error {
	st, done := r.v.read()
	defer done()
	if _, ok := st.orders[o.ID]; !ok {
		return notFound("orden de ingreso", o.ID)
	}
	c := *o
	st.orders[o.ID] = &c
	return nil
}

func (r *IntakeOrderRepo) AllocatedKg(_ context.Context, orderID string) (decimal.Decimal, error) {
	st, done := r.v.read()
	defer done()
	total := decimal.Zero
	for _, b := range st.batches {
		if b.IntakeOrderID == orderID {
			total = total.Add(b.OriginalKg)
		}
	}
	return total, nil
}

func (r *IntakeOrderRepo) CountBatches(_ context.Context, orderID string) (int, error) {
	st, done := r.v.read()
	defer done()
	n := 0
	for _, b := range st.batches {
		if b.IntakeOrderID == orderID {
			n++
		}
	}
	return n, nil
}

// BatchRepo lotes en memoria.
type BatchRepo struct{ v *view }

func (r *BatchRepo) Create(_ context.Context, b *entity.ProductionBatch) error {
	st, done := r.v.read()
	defer done()
	for _, x := range st.batches {
		if x.LotNumber == b.LotNumber {
			return fmt.Errorf("%w: número de lote %s ya existe", domain.ErrConflict, b.LotNumber)
		}
	}
	c := *b
	st.batches[b.ID] = &c
	return nil
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.ProductionBatch, error) {
	st, done := r.v.read()
	defer done()
	b, ok := st.batches[id]
	if !ok {
		return nil, notFound("lote", id)
	}
	c := *b
	return &c, nil
}

func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *BatchRepo) Update(_ context.Context, b *entity.ProductionBatch) error {
	st, done := r.v.read()
	defer done()
	if _, ok := st.batches[b.ID]; !ok {
		return notFound("lote", b.ID)
	}
	c := *b
	st.batches[b.ID] = &c
	return nil
}

func (r *BatchRepo) Delete(_ context.Context, id string) error {
	st, done := r.v.read()
	defer done()
	if _, ok := st.batches[id]; !ok {
		return notFound("lote", id)
	}
	delete(st.batches, id)
	return nil
}

func (r *BatchRepo) List(_ context.Context, f repository.BatchFilter) ([]*entity.ProductionBatch, error) {
	st, done := r.v.read()
	defer done()
	out := make([]*entity.ProductionBatch, 0)
	for _, b := range st.batches {
		if !matchBatch(b, f) {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].LotNumber < out[j].LotNumber
	})
	return out, nil
}

func matchBatch(b *entity.ProductionBatch, f repository.BatchFilter) bool {
	if f.UnitID != "" && b.UnitID != f.UnitID {
		return false
	}
	if f.VarietyID != "" && b.VarietyID != f.VarietyID {
		return false
	}
	if f.CategoryID != "" && b.CategoryID != f.CategoryID {
		return false
	}
	if f.IntakeOrderID != "" && b.IntakeOrderID != f.IntakeOrderID {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, s := range f.Statuses {
			if b.Status == s {
				return true
			}
		}
		return false
	}
	return true
}

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct{ v *view }

func (r *MovementRepo) Create(_ context.Context, m *entity.BatchMovement) error {
	st, done := r.v.read()
	defer done()
	list := st.movements[m.BatchID]
	if n := len(list); n > 0 && list[n-1].Sequence >= m.Sequence {
		return fmt.Errorf("%w: secuencia %d repetida en lote %s", domain.ErrConflict, m.Sequence, m.BatchID)
	}
	c := *m
	st.movements[m.BatchID] = append(list, &c)
	return nil
}

func (r *MovementRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.BatchMovement, error) {
	st, done := r.v.read()
	defer done()
	list := st.movements[batchID]
	out := make([]*entity.BatchMovement, 0, len(list))
	for _, m := range list {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func (r *MovementRepo) CountByBatch(_ context.Context, batchID string) (int, error) {
	st, done := r.v.read()
	defer done()
	return len(st.movements[batchID]), nil
}

func (r *MovementRepo) LastSequence(_ context.Context, batchID string) (int, error) {
	st, done := r.v.read()
	defer done()
	list := st.movements[batchID]
	if len(list) == 0 {
		return 0, nil
	}
	return list[len(list)-1].Sequence, nil
}

func (r *MovementRepo) ListByOutgoingOrder(_ context.Context, outgoingOrderID string) ([]*entity.BatchMovement, error) {
	st, done := r.v.read()
	defer done()
	out := make([]*entity.BatchMovement, 0)
	for _, list := range st.movements {
		for _, m := range list {
			if m.OutgoingOrderID == outgoingOrderID {
				c := *m
				out = append(out, &c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BatchID != out[j].BatchID {
			return out[i].BatchID < out[j].BatchID
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out, nil
}

// OutgoingOrderRepo órdenes de salida en memoria.
type OutgoingOrderRepo struct{ v *view }

func (r *OutgoingOrderRepo) Create(_ context.Context, o *entity.OutgoingOrder) error {
	st, done := r.v.read()
	defer done()
	for _, x := range st.outgoing {
		if x.OrderNumber == o.OrderNumber {
			return fmt.Errorf("%w: número de orden de salida %s ya existe", domain.ErrConflict, o.OrderNumber)
		}
	}
	c := *o
	c.Lines = nil
	st.outgoing[o.ID] = &c
	return nil
}

func (r *OutgoingOrderRepo) AddLine(_ context.Context, line *entity.OutgoingOrderLine) error {
	st, done := r.v.read()
	defer done()
	o, ok := st.outgoing[line.OutgoingOrderID]
	if !ok {
		return notFound("orden de salida", line.OutgoingOrderID)
	}
	o.Lines = append(o.Lines, *line)
	return nil
}

func (r *OutgoingOrderRepo) GetByID(_ context.Context, id string) (*entity.OutgoingOrder, error) {
	st, done := r.v.read()
	defer done()
	o, ok := st.outgoing[id]
	if !ok {
		return nil, notFound("orden de salida", id)
	}
	c := *o
	c.Lines = append([]entity.OutgoingOrderLine(nil), o.Lines...)
	return &c, nil
}

func (r *OutgoingOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.OutgoingOrder, error) {
	return r.GetByID(ctx, id)
}

// Update actualiza la cabecera (estado, anulación, nota); las líneas no cambian.
func (r *OutgoingOrderRepo) Update(_ context.Context, o *entity.OutgoingOrder) error {
	st, done := r.v.read()
	defer done()
	cur, ok := st.outgoing[o.ID]
	if !ok {
		return notFound("orden de salida", o.ID)
	}
	c := *o
	c.Lines = cur.Lines
	st.outgoing[o.ID] = &c
	return nil
}

func (r *OutgoingOrderRepo) Delete(_ context.Context, id string) error {
	st, done := r.v.read()
	defer done()
	if _, ok := st.outgoing[id]; !ok {
		return notFound("orden de salida", id)
	}
	delete(st.outgoing, id)
	return nil
}

// SequenceRepo numerador en memoria.
type SequenceRepo struct{ v *view }

func (r *SequenceRepo) Next(_ context.Context, key string) (int, error) {
	st, done := r.v.read()
	defer done()
	st.sequences[key]++
	return st.sequences[key], nil
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ v *view }

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	st, done := r.v.read()
	defer done()
	c, ok := st.categories[id]
	if !ok {
		return nil, notFound("categoría", id)
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	st, done := r.v.read()
	defer done()
	out := make([]*entity.Category, 0, len(st.categories))
	for _, c := range st.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// VarietyRepo variedades en memoria.
type VarietyRepo struct{ v *view }

func (r *VarietyRepo) GetByID(_ context.Context, id string) (*entity.Variety, error) {
	st, done := r.v.read()
	defer done()
	v, ok := st.varieties[id]
	if !ok {
		return nil, notFound("variedad", id)
	}
	cp := *v
	return &cp, nil
}

func (r *VarietyRepo) List(_ context.Context) ([]*entity.Variety, error) {
	st, done := r.v.read()
	defer done()
	out := make([]*entity.Variety, 0, len(st.varieties))
	for _, v := range st.varieties {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UnitRepo sedes en memoria.
type UnitRepo struct{ v *view }

func (r *UnitRepo) GetByID(_ context.Context, id string) (*entity.Unit, error) {
	st, done := r.v.read()
	defer done()
	u, ok := st.units[id]
	if !ok {
		return nil, notFound("sede", id)
	}
	cp := *u
	return &cp, nil
}

// InventoryRepo consolidación en memoria sobre production.Consolidate.
type InventoryRepo struct{ v *view }

func (r *InventoryRepo) Consolidate(_ context.Context, f repository.InventoryFilter) ([]*entity.InventorySnapshot, error) {
	st, done := r.v.read()
	defer done()
	bf := repository.BatchFilter{UnitID: f.UnitID, VarietyID: f.VarietyID, CategoryID: f.CategoryID}
	batches := make([]*entity.ProductionBatch, 0)
	for _, b := range st.batches {
		if matchBatch(b, bf) {
			batches = append(batches, b)
		}
	}
	return production.Consolidate(batches, st.varieties, st.categories, f.GroupByUnit), nil
}
