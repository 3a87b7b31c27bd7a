package production_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/application/production"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/infrastructure/memory"
	"github.com/jhoicas/semillas-api/pkg/logger"
)

const (
	unitNorte   = "unidad-norte"
	unitSur     = "unidad-sur"
	varietyV1   = "V1"
	varietyV2   = "V2"
	catA        = "Cat-A"
	catB        = "Cat-B"
	catInactiva = "Cat-X"
)

var (
	operador = entity.Actor{UserID: "op-1", UnitID: unitNorte, Role: entity.RoleOperador}
	vendedor = entity.Actor{UserID: "ve-1", UnitID: unitNorte, Role: entity.RoleVendedor}
	ajeno    = entity.Actor{UserID: "op-2", UnitID: unitSur, Role: entity.RoleOperador}
	admin    = entity.Actor{UserID: "ad-1", Role: entity.RoleAdmin}
)

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	intake    *production.IntakeOrderUseCase
	batches   *production.BatchUseCase
	ledger    *production.LedgerUseCase
	outgoing  *production.OutgoingOrderUseCase
	inventory *production.InventoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.SeedUnit(entity.Unit{ID: unitNorte, Name: "Planta Norte"})
	store.SeedUnit(entity.Unit{ID: unitSur, Name: "Planta Sur"})
	store.SeedVariety(entity.Variety{ID: varietyV1, Name: "DM 46i20", SeedName: "Soja"})
	store.SeedVariety(entity.Variety{ID: varietyV2, Name: "Baguette 620", SeedName: "Trigo"})
	store.SeedCategory(entity.Category{ID: catA, Name: "Primera", Status: entity.CategoryStatusActive})
	store.SeedCategory(entity.Category{ID: catB, Name: "Segunda", Status: entity.CategoryStatusActive})
	store.SeedCategory(entity.Category{ID: catInactiva, Name: "Descontinuada", Status: entity.CategoryStatusInactive})

	log := logger.Nop()
	repos := store.Repos()
	return &fixture{
		ctx:       context.Background(),
		store:     store,
		intake:    production.NewIntakeOrderUseCase(store, repos, log),
		batches:   production.NewBatchUseCase(store, repos, log),
		ledger:    production.NewLedgerUseCase(store, repos, log),
		outgoing:  production.NewOutgoingOrderUseCase(store, repos, log),
		inventory: production.NewInventoryUseCase(repos, nil, log),
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) order(t *testing.T, number, netWeight string) *dto.IntakeOrderResponse {
	t.Helper()
	o, err := f.intake.Create(f.ctx, operador, dto.CreateIntakeOrderRequest{
		OrderNumber: number,
		VarietyID:   varietyV1,
		CategoryID:  catA,
		NetWeight:   d(netWeight),
	})
	require.NoError(t, err)
	return o
}

func (f *fixture) batch(t *testing.T, orderID string, units int, kgPerUnit string) *dto.BatchResponse {
	t.Helper()
	b, err := f.batches.Create(f.ctx, operador, orderID, dto.CreateBatchRequest{
		CategoryID:   catA,
		Presentation: entity.PresentationBolsas,
		Units:        units,
		KgPerUnit:    d(kgPerUnit),
	})
	require.NoError(t, err)
	return b
}
