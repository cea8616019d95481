package qr

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateLink(ctx context.Context, link Link) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO qr_links (slug, target_url, label, created_by)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (slug) DO NOTHING
    RETURNING id
  `, link.Slug, link.TargetURL, link.Label, link.CreatedBy).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrSlugTaken
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (Link, error) {
	var link Link
	err := s.DB.QueryRow(ctx, `
    SELECT id, slug, target_url, label, created_by, created_at
    FROM qr_links
    WHERE slug = $1
  `, slug).Scan(&link.ID, &link.Slug, &link.TargetURL, &link.Label, &link.CreatedBy, &link.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Link{}, ErrLinkNotFound
	}
	if err != nil {
		return Link{}, err
	}
	return link, nil
}

func (s *Store) ListLinks(ctx context.Context) ([]Link, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, slug, target_url, label, created_by, created_at
    FROM qr_links
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var link Link
		if err := rows.Scan(&link.ID, &link.Slug, &link.TargetURL, &link.Label, &link.CreatedBy, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (s *Store) RecordScan(ctx context.Context, linkID, userAgent, referer, ip string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO qr_scans (link_id, user_agent, referer, ip)
    VALUES ($1,$2,$3,$4)
  `, linkID, userAgent, referer, ip)
	return err
}

func (s *Store) Stats(ctx context.Context, linkID string) (Stats, error) {
	stats := Stats{}
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM qr_scans WHERE link_id = $1
  `, linkID).Scan(&stats.TotalScans); err != nil {
		return Stats{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT to_char(date_trunc('day', scanned_at), 'YYYY-MM-DD') AS day, COUNT(1)
    FROM qr_scans
    WHERE link_id = $1 AND scanned_at >= now() - interval '30 days'
    GROUP BY day
    ORDER BY day
  `, linkID)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var day DayCount
		if err := rows.Scan(&day.Date, &day.Count); err != nil {
			return Stats{}, err
		}
		stats.Daily = append(stats.Daily, day)
	}
	return stats, rows.Err()
}

func (s *Store) DeleteScansBefore(ctx context.Context, cutoffDays int) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM qr_scans WHERE scanned_at < now() - ($1 || ' days')::interval
  `, cutoffDays)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
