package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourneyslots/internal/domain"
)

type contentService struct {
	contentRepo    domain.ContentRepository
	authorizer     domain.Authorizer
	contextTimeout time.Duration
}

func NewContentService(contentRepo domain.ContentRepository, authorizer domain.Authorizer, timeout time.Duration) domain.ContentService {
	return &contentService{
		contentRepo:    contentRepo,
		authorizer:     authorizer,
		contextTimeout: timeout,
	}
}

func (s *contentService) ListScheduleItems(ctx context.Context) ([]*domain.ScheduleItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	items, err := s.contentRepo.ListScheduleItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedule items: %w", err)
	}
	return items, nil
}

func (s *contentService) ManageScheduleItem(ctx context.Context, actorID string, action domain.ContentAction, item *domain.ScheduleItem) (*domain.ScheduleItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return nil, domain.ErrForbidden
	}
	switch action {
	case domain.ContentActionAdd:
		if item.Title == "" {
			return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
		}
		if err := s.contentRepo.CreateScheduleItem(ctx, item); err != nil {
			return nil, fmt.Errorf("create schedule item: %w", err)
		}
		return item, nil
	case domain.ContentActionUpdate:
		if item.ID == "" {
			return nil, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
		}
		if err := s.contentRepo.UpdateScheduleItem(ctx, item); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("update schedule item: %w", err)
		}
		return item, nil
	case domain.ContentActionDelete:
		if item.ID == "" {
			return nil, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
		}
		if err := s.contentRepo.DeleteScheduleItem(ctx, item.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("delete schedule item: %w", err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, action)
	}
}

func (s *contentService) ListPrizeItems(ctx context.Context) ([]*domain.PrizeItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	items, err := s.contentRepo.ListPrizeItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prize items: %w", err)
	}
	return items, nil
}

func (s *contentService) ManagePrizeItem(ctx context.Context, actorID string, action domain.ContentAction, item *domain.PrizeItem) (*domain.PrizeItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return nil, domain.ErrForbidden
	}
	switch action {
	case domain.ContentActionAdd:
		if item.Label == "" {
			return nil, fmt.Errorf("%w: label is required", domain.ErrInvalidInput)
		}
		if err := s.contentRepo.CreatePrizeItem(ctx, item); err != nil {
			return nil, fmt.Errorf("create prize item: %w", err)
		}
		return item, nil
	case domain.ContentActionUpdate:
		if item.ID == "" {
			return nil, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
		}
		if err := s.contentRepo.UpdatePrizeItem(ctx, item); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("update prize item: %w", err)
		}
		return item, nil
	case domain.ContentActionDelete:
		if item.ID == "" {
			return nil, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
		}
		if err := s.contentRepo.DeletePrizeItem(ctx, item.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("delete prize item: %w", err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, action)
	}
}

func (s *contentService) GetSiteContent(ctx context.Context) (domain.SiteContent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	content, err := s.contentRepo.GetSiteContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("get site content: %w", err)
	}
	return content, nil
}

func (s *contentService) UpdateSiteContent(ctx context.Context, actorID string, content domain.SiteContent) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return domain.ErrForbidden
	}
	if len(content) == 0 {
		return fmt.Errorf("%w: content cannot be empty", domain.ErrInvalidInput)
	}
	if err := s.contentRepo.MergeSiteContent(ctx, content); err != nil {
		return fmt.Errorf("merge site content: %w", err)
	}
	return nil
}
