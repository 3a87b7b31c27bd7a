package production

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
	"github.com/jhoicas/semillas-api/pkg/logger"
)

// IntakeOrderUseCase órdenes de ingreso: alta, peso neto, estado y consultas de peso disponible.
type IntakeOrderUseCase struct {
	tx    TxRunner
	repos Repos
	log   *logger.Logger
}

// NewIntakeOrderUseCase construye el caso de uso.
func NewIntakeOrderUseCase(tx TxRunner, repos Repos, log *logger.Logger) *IntakeOrderUseCase {
	return &IntakeOrderUseCase{tx: tx, repos: repos, log: log.Named("ordenes_ingreso")}
}

// Create registra una orden de ingreso en estado pendiente.
func (uc *IntakeOrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateIntakeOrderRequest) (*dto.IntakeOrderResponse, error) {
	number := strings.TrimSpace(in.OrderNumber)
	if number == "" {
		return nil, domain.Invalid("order_number", "es obligatorio")
	}
	if err := validateWeight("net_weight", in.NetWeight); err != nil {
		return nil, err
	}
	if in.VarietyID == "" {
		return nil, domain.Invalid("variety_id", "es obligatoria")
	}
	if in.CategoryID == "" {
		return nil, domain.Invalid("category_id", "es obligatoria")
	}
	unitID, err := resolveUnit(actor, in.UnitID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repos.Units.GetByID(ctx, unitID); err != nil {
		return nil, asReference(err, "unit_id")
	}
	if _, err := uc.repos.Varieties.GetByID(ctx, in.VarietyID); err != nil {
		return nil, asReference(err, "variety_id")
	}
	if _, err := uc.repos.Categories.GetByID(ctx, in.CategoryID); err != nil {
		return nil, asReference(err, "category_id")
	}

	t := now()
	o := &entity.IntakeOrder{
		ID:          newID(),
		OrderNumber: number,
		UnitID:      unitID,
		VarietyID:   in.VarietyID,
		CategoryID:  in.CategoryID,
		NetWeight:   in.NetWeight,
		Status:      entity.IntakeStatusPendiente,
		CreatedAt:   t,
		CreatedBy:   actor.UserID,
		UpdatedAt:   t,
	}
	if err := uc.repos.Orders.Create(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", o.ID).
		Str("order_number", o.OrderNumber).
		Str("unit_id", o.UnitID).
		Str("net_weight", dto.Kg(o.NetWeight)).
		Msg("orden de ingreso creada")
	return toIntakeOrderResponse(o), nil
}

// GetByID obtiene una orden de ingreso.
func (uc *IntakeOrderUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.IntakeOrderResponse, error) {
	o, err := loadOrder(ctx, uc.repos, actor, id, false)
	if err != nil {
		return nil, err
	}
	return toIntakeOrderResponse(o), nil
}

// UpdateNetWeight corrige el peso neto. Solo mientras la orden no sea terminal y ningún lote la referencie.
func (uc *IntakeOrderUseCase) UpdateNetWeight(ctx context.Context, actor entity.Actor, id string, in dto.UpdateNetWeightRequest) (*dto.IntakeOrderResponse, error) {
	if err := validateWeight("net_weight", in.NetWeight); err != nil {
		return nil, err
	}
	var order *entity.IntakeOrder
	err := uc.tx.Run(ctx, func(r Repos) error {
		o, err := loadOrder(ctx, r, actor, id, true)
		if err != nil {
			return err
		}
		if o.IsTerminal() {
			return domain.ErrOrderNotEditable
		}
		n, err := r.Orders.CountBatches(ctx, o.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrOrderNotEditable
		}
		o.NetWeight = in.NetWeight
		o.UpdatedAt = now()
		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("net_weight", dto.Kg(order.NetWeight)).Msg("peso neto actualizado")
	return toIntakeOrderResponse(order), nil
}

// ChangeStatus cambia el estado de la orden (en_proceso, completado, cancelado).
func (uc *IntakeOrderUseCase) ChangeStatus(ctx context.Context, actor entity.Actor, id, status string) (*dto.IntakeOrderResponse, error) {
	var (
		order *entity.IntakeOrder
		from  string
	)
	err := uc.tx.Run(ctx, func(r Repos) error {
		o, err := loadOrder(ctx, r, actor, id, true)
		if err != nil {
			return err
		}
		if err := production.ValidateIntakeTransition(o.Status, status); err != nil {
			return err
		}
		from = o.Status
		o.Status = status
		o.UpdatedAt = now()
		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("from", from).Str("to", order.Status).Msg("estado de orden de ingreso")
	return toIntakeOrderResponse(order), nil
}

// AvailableWeight peso neto menos lo asignado en lotes.
func (uc *IntakeOrderUseCase) AvailableWeight(ctx context.Context, actor entity.Actor, id string) (*dto.AvailableWeightResponse, error) {
	o, err := loadOrder(ctx, uc.repos, actor, id, false)
	if err != nil {
		return nil, err
	}
	allocated, err := uc.repos.Orders.AllocatedKg(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AvailableWeightResponse{
		OrderID:     o.ID,
		NetWeight:   dto.Kg(o.NetWeight),
		AllocatedKg: dto.Kg(allocated),
		AvailableKg: dto.Kg(production.AvailableWeight(o.NetWeight, allocated)),
	}, nil
}

// Progress avance de producción de la orden.
func (uc *IntakeOrderUseCase) Progress(ctx context.Context, actor entity.Actor, id string) (*dto.ProductionProgressResponse, error) {
	o, err := loadOrder(ctx, uc.repos, actor, id, false)
	if err != nil {
		return nil, err
	}
	allocated, err := uc.repos.Orders.AllocatedKg(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	n, err := uc.repos.Orders.CountBatches(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	p := production.ProductionProgress(o.NetWeight, allocated)
	return &dto.ProductionProgressResponse{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		Status:       o.Status,
		NetWeight:    dto.Kg(p.NetWeight),
		ProducedKg:   dto.Kg(p.ProducedKg),
		AvailableKg:  dto.Kg(p.AvailableKg),
		PercentUsed:  p.PercentUsed.StringFixed(2),
		BatchCount:   n,
		ProducedText: production.FormatKg(p.ProducedKg),
	}, nil
}

// BatchDefaults propuesta para el formulario de lote nuevo.
func (uc *IntakeOrderUseCase) BatchDefaults(ctx context.Context, actor entity.Actor, id string) (*dto.BatchDefaultsResponse, error) {
	o, err := loadOrder(ctx, uc.repos, actor, id, false)
	if err != nil {
		return nil, err
	}
	if !production.CanCreateBatchesAgainstOrder(o) {
		return nil, domain.ErrOrderNotEditable
	}
	allocated, err := uc.repos.Orders.AllocatedKg(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.BatchDefaultsResponse{
		OrderID:      o.ID,
		VarietyID:    o.VarietyID,
		Presentation: entity.PresentationBolsas,
		AvailableKg:  dto.Kg(production.AvailableWeight(o.NetWeight, allocated)),
	}
	cat, err := uc.repos.Categories.GetByID(ctx, o.CategoryID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if cat.IsActive() {
		resp.CategoryID = cat.ID
	}
	return resp, nil
}
