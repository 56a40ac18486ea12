package prescription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) ([]Prescription, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, dosage, frequency,
		       quantity, days, refills, last_taken, analysis, created_at
		FROM prescriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prescriptions []Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Dosage, &p.Frequency,
			&p.Quantity, &p.Days, &p.Refills, &p.LastTaken, &p.Analysis, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

func (r *PostgresRepository) Insert(ctx context.Context, p *Prescription) (string, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO prescriptions
			(id, user_id, name, dosage, frequency,
			 quantity, days, refills, last_taken, analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		p.ID, p.UserID, p.Name, p.Dosage, p.Frequency,
		p.Quantity, p.Days, p.Refills, p.LastTaken, p.Analysis, p.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM prescriptions
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
