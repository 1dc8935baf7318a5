package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/epicbeats/internal/domain"
	"github.com/Skotchmaster/epicbeats/internal/events"
	"github.com/Skotchmaster/epicbeats/internal/logging"
	"github.com/Skotchmaster/epicbeats/internal/transport"
	"github.com/Skotchmaster/epicbeats/internal/util"
)

type CatalogStore interface {
	ListAll(ctx context.Context) ([]domain.Instrumental, error)
	ListFiltered(ctx context.Context, f domain.FilterCriteria) ([]domain.Instrumental, error)
	FindByID(ctx context.Context, id uint) (*domain.Instrumental, error)
	Create(ctx context.Context, item domain.Instrumental) (uint, error)
	Update(ctx context.Context, item domain.Instrumental) (bool, error)
	Delete(ctx context.Context, item domain.Instrumental) (bool, error)
}

type CatalogIndex interface {
	Put(ctx context.Context, item domain.Instrumental) error
	Remove(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []domain.Instrumental, error)
}

type CatalogService struct {
	Repo      CatalogStore
	Index     CatalogIndex
	Publisher events.Publisher
	Topic     string
}

func (s *CatalogService) List(ctx context.Context, f domain.FilterCriteria) ([]domain.Instrumental, error) {
	if f.BPMExact < 0 || f.BPMMin < 0 || f.BPMMax < 0 || f.PriceMin < 0 || f.PriceMax < 0 {
		return nil, fmt.Errorf("%w: filters must not be negative", ErrValidation)
	}
	if f.IsEmpty() {
		return s.Repo.ListAll(ctx)
	}
	return s.Repo.ListFiltered(ctx, f)
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*domain.Instrumental, error) {
	item, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateInstrumentalRequest) (*domain.Instrumental, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Genre = strings.TrimSpace(req.Genre)
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	item := domain.Instrumental{
		Title:     req.Title,
		Genre:     req.Genre,
		BPM:       req.BPM,
		CoverPath: req.CoverPath,
		AudioPath: req.AudioPath,
		Price:     req.Price,
	}
	id, err := s.Repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id

	s.index(ctx, item)
	s.publish(ctx, events.InstrumentalCreated, item.ID, item)
	return &item, nil
}

func (s *CatalogService) Patch(ctx context.Context, id uint, req transport.PatchInstrumentalRequest) (*domain.Instrumental, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Genre != nil {
		item.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.BPM != nil {
		item.BPM = *req.BPM
	}
	if req.CoverPath != nil {
		item.CoverPath = *req.CoverPath
	}
	if req.AudioPath != nil {
		item.AudioPath = *req.AudioPath
	}
	if req.Price != nil {
		item.Price = *req.Price
	}

	check := transport.CreateInstrumentalRequest{
		Title:     item.Title,
		Genre:     item.Genre,
		BPM:       item.BPM,
		CoverPath: item.CoverPath,
		AudioPath: item.AudioPath,
		Price:     item.Price,
	}
	if err := validateStruct(&check); err != nil {
		return nil, err
	}

	ok, err := s.Repo.Update(ctx, *item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	s.index(ctx, *item)
	s.publish(ctx, events.InstrumentalUpdated, item.ID, *item)
	return item, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.Repo.Delete(ctx, *item)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_failed", "op", "remove", "id", id, "error", err)
		}
	}
	s.publish(ctx, events.InstrumentalDeleted, id, map[string]any{"id": id})
	return nil
}

func (s *CatalogService) Search(ctx context.Context, q string, page, size int) (*transport.SearchResponse, error) {
	if s.Index == nil {
		return nil, ErrSearchUnavailable
	}

	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}
	resp := &transport.SearchResponse{Page: page, Size: limit, Items: []domain.Instrumental{}}

	q = strings.TrimSpace(q)
	if q == "" {
		return resp, nil
	}

	total, items, err := s.Index.Search(ctx, q, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("search_failed", "status", 503, "error", err)
		return nil, ErrSearchUnavailable
	}
	resp.Total = total
	resp.Items = items
	return resp, nil
}

func (s *CatalogService) index(ctx context.Context, item domain.Instrumental) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, item); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "op", "put", "id", item.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, typ string, id uint, payload any) {
	if s.Publisher == nil {
		return
	}
	key := strconv.FormatUint(uint64(id), 10)
	if err := s.Publisher.Publish(ctx, s.Topic, key, events.New(typ, payload)); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", s.Topic, "type", typ, "error", err)
	}
}
