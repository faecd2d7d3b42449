package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ContactPhone struct {
	Number string `json:"number"`
}

type ContactEmail struct {
	Address string `json:"address"`
}

// Contact é o cliente reaproveitado entre leads, pedidos e tarefas.
type Contact struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Phones    []ContactPhone `json:"phones"`
	Emails    []ContactEmail `json:"emails"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewContact nunca devolve listas nil: sem telefone/email vira lista vazia.
func NewContact(name, phone, email string) *Contact {
	c := &Contact{
		ID:        uuid.New().String(),
		Name:      name,
		Phones:    []ContactPhone{},
		Emails:    []ContactEmail{},
		CreatedAt: time.Now(),
	}
	if phone != "" {
		c.Phones = append(c.Phones, ContactPhone{Number: phone})
	}
	if email != "" {
		c.Emails = append(c.Emails, ContactEmail{Address: email})
	}
	return c
}

func (c *Contact) PhoneNumbers() []string {
	out := make([]string, 0, len(c.Phones))
	for _, p := range c.Phones {
		out = append(out, p.Number)
	}
	return out
}

func (c *Contact) EmailAddresses() []string {
	out := make([]string, 0, len(c.Emails))
	for _, e := range c.Emails {
		out = append(out, e.Address)
	}
	return out
}

type ContactRepositoryInterface interface {
	// FindByPhoneOrEmail devolve o primeiro contato cujo telefone ou email
	// contém (case-insensitive) o valor informado, ou nil se não houver.
	FindByPhoneOrEmail(ctx context.Context, phone, email string) (*Contact, error)
	Create(ctx context.Context, contact *Contact) error
}
