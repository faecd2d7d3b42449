package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

// FindByPhoneOrEmail faz a busca "fuzzy": algum telefone/email gravado
// contém o valor recebido, sem diferenciar maiúsculas. O mais antigo vence.
func (r *ContactRepository) FindByPhoneOrEmail(ctx context.Context, phone, email string) (*entity.Contact, error) {
	var conds []string
	var args []any

	if phone != "" {
		args = append(args, likePattern(phone))
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(phones) AS p WHERE p ILIKE $%d)", len(args)))
	}
	if email != "" {
		args = append(args, likePattern(email))
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(emails) AS e WHERE e ILIKE $%d)", len(args)))
	}
	if len(conds) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, phones, emails, created_at FROM contacts WHERE ` +
		strings.Join(conds, " OR ") +
		` ORDER BY created_at ASC LIMIT 1`

	var c entity.Contact
	var phones, emails []string
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		pq.Array(&phones),
		pq.Array(&emails),
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar contato: %w", err)
	}

	c.Phones = make([]entity.ContactPhone, 0, len(phones))
	for _, p := range phones {
		c.Phones = append(c.Phones, entity.ContactPhone{Number: p})
	}
	c.Emails = make([]entity.ContactEmail, 0, len(emails))
	for _, e := range emails {
		c.Emails = append(c.Emails, entity.ContactEmail{Address: e})
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, name, phones, emails, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		pq.Array(c.PhoneNumbers()),
		pq.Array(c.EmailAddresses()),
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar contato: %w", err)
	}
	return nil
}
