package superbill

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const superbillCols = `id, patient_name, patient_dob, issue_date,
	clinic_name, clinic_address, clinic_phone, clinic_email, ein, npi, provider_name,
	visits, status, created_at, updated_at`

func (r *repoPG) scanSuperbill(row pgx.Row) (*Superbill, error) {
	var sb Superbill
	err := row.Scan(&sb.ID, &sb.PatientName, &sb.PatientDOB, &sb.IssueDate,
		&sb.ClinicName, &sb.ClinicAddress, &sb.ClinicPhone, &sb.ClinicEmail,
		&sb.EIN, &sb.NPI, &sb.ProviderName,
		&sb.Visits, &sb.Status, &sb.CreatedAt, &sb.UpdatedAt)
	return &sb, err
}

func (r *repoPG) Create(ctx context.Context, sb *Superbill) error {
	sb.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO superbill (id, patient_name, patient_dob, issue_date,
			clinic_name, clinic_address, clinic_phone, clinic_email, ein, npi, provider_name,
			visits, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		sb.ID, sb.PatientName, sb.PatientDOB, sb.IssueDate,
		sb.ClinicName, sb.ClinicAddress, sb.ClinicPhone, sb.ClinicEmail,
		sb.EIN, sb.NPI, sb.ProviderName, sb.Visits, sb.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Superbill, error) {
	return r.scanSuperbill(r.pool.QueryRow(ctx, `SELECT `+superbillCols+` FROM superbill WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, sb *Superbill) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE superbill SET patient_name=$2, patient_dob=$3, issue_date=$4,
			clinic_name=$5, clinic_address=$6, clinic_phone=$7, clinic_email=$8,
			ein=$9, npi=$10, provider_name=$11, visits=$12, status=$13, updated_at=NOW()
		WHERE id = $1`,
		sb.ID, sb.PatientName, sb.PatientDOB, sb.IssueDate,
		sb.ClinicName, sb.ClinicAddress, sb.ClinicPhone, sb.ClinicEmail,
		sb.EIN, sb.NPI, sb.ProviderName, sb.Visits, sb.Status)
	return err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE superbill SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("superbill %s not found", id)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM superbill WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Superbill, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM superbill`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+superbillCols+` FROM superbill ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repoPG) ListByPatientName(ctx context.Context, patientName string) ([]*Superbill, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+superbillCols+` FROM superbill WHERE patient_name = $1 ORDER BY issue_date DESC`, patientName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListByIDs preserves the order of ids in the result so that grouped
// submissions render in the caller's selection order.
func (r *repoPG) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Superbill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+superbillCols+` FROM superbill WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	found, err := r.collect(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*Superbill, len(found))
	for _, sb := range found {
		byID[sb.ID] = sb
	}
	var ordered []*Superbill
	for _, id := range ids {
		if sb, ok := byID[id]; ok {
			ordered = append(ordered, sb)
		}
	}
	return ordered, nil
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Superbill, int, error) {
	query := `SELECT ` + superbillCols + ` FROM superbill WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM superbill WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["q"]; ok && p != "" {
		clause := fmt.Sprintf(` AND patient_name ILIKE $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, "%"+strings.TrimSpace(p)+"%")
		idx++
	}
	if p, ok := params["status"]; ok && p != "" {
		clause := fmt.Sprintf(` AND status = $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repoPG) collect(rows pgx.Rows) ([]*Superbill, error) {
	var items []*Superbill
	for rows.Next() {
		sb, err := r.scanSuperbill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, sb)
	}
	return items, rows.Err()
}
