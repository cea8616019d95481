package qr

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrLinkNotFound  = errors.New("qr link not found")
	ErrSlugTaken     = errors.New("slug already in use")
	ErrInvalidSlug   = errors.New("slug must be 3-64 lowercase letters, digits or hyphens")
	ErrInvalidTarget = errors.New("target must be an absolute http(s) URL")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{2,63}$`)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// CreateLink validates and stores a short link. An empty slug gets a
// generated one.
func (s *Service) CreateLink(ctx context.Context, link Link) (Link, error) {
	link.Slug = strings.ToLower(strings.TrimSpace(link.Slug))
	if link.Slug == "" {
		link.Slug = GenerateSlug()
	}
	if err := ValidateSlug(link.Slug); err != nil {
		return Link{}, err
	}
	if err := ValidateTarget(link.TargetURL); err != nil {
		return Link{}, err
	}

	id, err := s.Store.CreateLink(ctx, link)
	if err != nil {
		return Link{}, err
	}
	link.ID = id
	return link, nil
}

func (s *Service) List(ctx context.Context) ([]Link, error) {
	return s.Store.ListLinks(ctx)
}

// Resolve returns the link for a slug; callers redirect and then
// record the scan separately so a failed insert never blocks the
// visitor.
func (s *Service) Resolve(ctx context.Context, slug string) (Link, error) {
	return s.Store.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

func (s *Service) Track(ctx context.Context, linkID, userAgent, referer, ip string) error {
	return s.Store.RecordScan(ctx, linkID, userAgent, referer, ip)
}

func (s *Service) Stats(ctx context.Context, slug string) (Stats, error) {
	link, err := s.Resolve(ctx, slug)
	if err != nil {
		return Stats{}, err
	}
	stats, err := s.Store.Stats(ctx, link.ID)
	if err != nil {
		return Stats{}, err
	}
	stats.Slug = link.Slug
	return stats, nil
}

func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

func ValidateTarget(target string) error {
	parsed, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return ErrInvalidTarget
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ErrInvalidTarget
	}
	return nil
}

func GenerateSlug() string {
	return strings.Split(uuid.NewString(), "-")[0]
}
