// Package referrer exposes the read-only referrer and clinic lookup
// the front desk uses. Writes happen upstream in the practice
// management system; this service only searches.
package referrer

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Referrer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Practice  string    `json:"practice"`
	Specialty string    `json:"specialty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Clinic struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Search(ctx context.Context, query string, limit int) ([]Referrer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, practice, specialty, phone, email, created_at
    FROM referrers
    WHERE $1 = ''
       OR name ILIKE '%' || $1 || '%'
       OR practice ILIKE '%' || $1 || '%'
       OR specialty ILIKE '%' || $1 || '%'
    ORDER BY name
    LIMIT $2
  `, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var referrers []Referrer
	for rows.Next() {
		var ref Referrer
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Practice, &ref.Specialty, &ref.Phone, &ref.Email, &ref.CreatedAt); err != nil {
			return nil, err
		}
		referrers = append(referrers, ref)
	}
	return referrers, rows.Err()
}

func (s *Store) ListClinics(ctx context.Context) ([]Clinic, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, address, phone
    FROM clinics
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clinics []Clinic
	for rows.Next() {
		var clinic Clinic
		if err := rows.Scan(&clinic.ID, &clinic.Name, &clinic.Address, &clinic.Phone); err != nil {
			return nil, err
		}
		clinics = append(clinics, clinic)
	}
	return clinics, rows.Err()
}
