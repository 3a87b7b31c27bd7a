package production

import (
	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/domain/production"
)

func toIntakeOrderResponse(o *entity.IntakeOrder) *dto.IntakeOrderResponse {
	return &dto.IntakeOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UnitID:      o.UnitID,
		VarietyID:   o.VarietyID,
		CategoryID:  o.CategoryID,
		NetWeight:   dto.Kg(o.NetWeight),
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		CreatedBy:   o.CreatedBy,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toBatchResponse(b *entity.ProductionBatch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:                b.ID,
		IntakeOrderID:     b.IntakeOrderID,
		UnitID:            b.UnitID,
		VarietyID:         b.VarietyID,
		CategoryID:        b.CategoryID,
		LotNumber:         b.LotNumber,
		Presentation:      b.Presentation,
		PresentationLabel: production.PresentationLabel(b.Presentation, b.CurrentUnits),
		KgPerUnit:         dto.Kg(b.KgPerUnit),
		OriginalUnits:     b.OriginalUnits,
		OriginalKg:        dto.Kg(b.OriginalKg),
		CurrentUnits:      b.CurrentUnits,
		CurrentKg:         dto.Kg(b.CurrentKg),
		Status:            b.Status,
		StatusLabel:       production.StatusLabel(b.Status),
		CanEdit:           production.CanEdit(b),
		CanPost:           production.CanPost(b, false),
		CreatedAt:         b.CreatedAt,
		CreatedBy:         b.CreatedBy,
		UpdatedAt:         b.UpdatedAt,
	}
}

func toMovementResponse(m *entity.BatchMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:              m.ID,
		BatchID:         m.BatchID,
		Sequence:        m.Sequence,
		Type:            m.Type,
		TypeLabel:       production.MovementTypeLabel(m.Type),
		UnitsDelta:      m.UnitsDelta,
		KgDelta:         dto.Kg(m.KgDelta),
		BalanceUnits:    m.BalanceUnits,
		BalanceKg:       dto.Kg(m.BalanceKg),
		OutgoingOrderID: m.OutgoingOrderID,
		Note:            m.Note,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

func toOutgoingOrderResponse(o *entity.OutgoingOrder) *dto.OutgoingOrderResponse {
	resp := &dto.OutgoingOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UnitID:      o.UnitID,
		Status:      o.Status,
		Note:        o.Note,
		Lines:       make([]dto.OutgoingLineResponse, 0, len(o.Lines)),
		CreatedAt:   o.CreatedAt,
		CreatedBy:   o.CreatedBy,
		CancelledAt: o.CancelledAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.OutgoingLineResponse{
			ID:         l.ID,
			BatchID:    l.BatchID,
			Units:      l.Units,
			MovementID: l.MovementID,
		})
	}
	return resp
}

func toInventoryRow(s *entity.InventorySnapshot) dto.InventoryRowResponse {
	return dto.InventoryRowResponse{
		UnitID:       s.UnitID,
		VarietyID:    s.VarietyID,
		VarietyName:  s.VarietyName,
		SeedName:     s.SeedName,
		CategoryID:   s.CategoryID,
		CategoryName: s.CategoryName,
		TotalUnits:   s.TotalUnits,
		TotalKg:      dto.Kg(s.TotalKg),
		TotalKgLabel: production.FormatKg(s.TotalKg),
		BatchCount:   s.BatchCount,
	}
}
