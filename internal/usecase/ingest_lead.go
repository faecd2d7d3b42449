package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type CreateLeadUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	Notifier     *Notifier
	Events       EventPublisher
	SystemUserID string
}

func NewCreateLeadUseCase(
	leadRepo entity.LeadRepositoryInterface,
	notifier *Notifier,
	events EventPublisher,
	systemUserID string,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		LeadRepo:     leadRepo,
		Notifier:     notifier,
		Events:       events,
		SystemUserID: systemUserID,
	}
}

// Execute grava um lead (ou quiz, que é um lead com as respostas no comentário).
func (uc *CreateLeadUseCase) Execute(ctx context.Context, p *Payload, kind SubmissionKind) (*IngestOutput, error) {
	name := p.String("name")
	if err := requireField("name", name); err != nil {
		return nil, err
	}

	var source string
	comment := optionalString(p.Text("comment"))

	if kind == KindQuiz {
		source = "Quiz: " + formLabel(p, "Unknown")
		comment = mergeQuizComment(comment, quizFields(p))
	} else {
		kind = KindLead
		source = "Form: " + formLabel(p, "Unknown")
	}

	lead, err := entity.NewLead(name, p.String("phone"), p.String("email"), source, comment)
	if err != nil {
		return nil, ValidationError{Field: "name", Message: err.Error()}
	}

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, newStoreError("failed to create lead", err)
	}
	log.Printf("✅ [LEAD] %s criado: %s (%s)", kind, lead.ID, lead.Source)

	sent := uc.Notifier.Notify(ctx, uc.SystemUserID,
		fmt.Sprintf("New %s: %s (%s)", kind, lead.Name, lead.Source),
		entity.EntityTypeLead, lead.ID,
	)

	publishEvent(ctx, uc.Events, queue.Event{
		Type:       queue.EventLeadCreated,
		EntityType: entity.EntityTypeLead,
		EntityID:   lead.ID,
		Title:      fmt.Sprintf("New %s: %s", kind, lead.Name),
		Details: map[string]string{
			"name":    lead.Name,
			"phone":   lead.Phone,
			"email":   lead.Email,
			"source":  lead.Source,
			"comment": derefString(lead.Comment),
		},
		OccurredAt: time.Now(),
	})

	return &IngestOutput{Kind: kind, Data: lead, NotificationSent: sent}, nil
}

// mergeQuizComment anexa o bloco "Quiz data:" depois do comentário do usuário.
func mergeQuizComment(comment *string, answers []quizAnswer) *string {
	if len(answers) == 0 {
		return comment
	}

	var b strings.Builder
	b.WriteString("Quiz data:")
	for _, a := range answers {
		b.WriteString("\n")
		b.WriteString(a.Question)
		b.WriteString(": ")
		b.WriteString(a.Answer)
	}

	if comment == nil {
		merged := b.String()
		return &merged
	}
	merged := *comment + "\n\n" + b.String()
	return &merged
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
