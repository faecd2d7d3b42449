package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const LeadStatusNew = "New"

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLead monta um lead com status inicial fixo, independente do que veio no formulário.
func NewLead(name, phone, email, source string, comment *string) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Source:    source,
		Status:    LeadStatusNew,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
}
