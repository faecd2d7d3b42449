package usecase

import (
	"context"
	"log"
)

// IngestSubmissionUseCase é a porta de entrada do webhook: classifica o
// payload e despacha para o ingestor certo.
type IngestSubmissionUseCase struct {
	Leads  *CreateLeadUseCase
	Orders *UpsertOrderUseCase
}

func NewIngestSubmissionUseCase(leads *CreateLeadUseCase, orders *UpsertOrderUseCase) *IngestSubmissionUseCase {
	return &IngestSubmissionUseCase{Leads: leads, Orders: orders}
}

func (uc *IngestSubmissionUseCase) Execute(ctx context.Context, p *Payload) (*IngestOutput, error) {
	kind := Classify(p)
	log.Printf("🔄 [WEBHOOK] submissão classificada como %s (%d campos)", kind, p.Len())

	if kind == KindOrder {
		return uc.Orders.Execute(ctx, p)
	}
	return uc.Leads.Execute(ctx, p, kind)
}
