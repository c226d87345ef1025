package lettertemplate

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const templateCols = `id, name, kind, body, created_at, updated_at`

func (r *repoPG) scanTemplate(row pgx.Row) (*LetterTemplate, error) {
	var t LetterTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Kind, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *LetterTemplate) error {
	t.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO letter_template (id, name, kind, body)
		VALUES ($1,$2,$3,$4)`,
		t.ID, t.Name, t.Kind, t.Body)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*LetterTemplate, error) {
	return r.scanTemplate(r.pool.QueryRow(ctx, `SELECT `+templateCols+` FROM letter_template WHERE id = $1`, id))
}

func (r *repoPG) GetByKind(ctx context.Context, kind string) (*LetterTemplate, error) {
	return r.scanTemplate(r.pool.QueryRow(ctx,
		`SELECT `+templateCols+` FROM letter_template WHERE kind = $1 ORDER BY updated_at DESC LIMIT 1`, kind))
}

func (r *repoPG) Update(ctx context.Context, t *LetterTemplate) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE letter_template SET name=$2, kind=$3, body=$4, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.Kind, t.Body)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM letter_template WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*LetterTemplate, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM letter_template`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+templateCols+` FROM letter_template ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*LetterTemplate
	for rows.Next() {
		t, err := r.scanTemplate(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}
