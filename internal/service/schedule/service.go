package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Service сервис управления расписанием ресурсов
type Service struct {
	availabilityRepo AvailabilityRepository
	resourceRepo     ResourceRepository
	studioRepo       StudioRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	resourceRepo ResourceRepository,
	studioRepo StudioRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		resourceRepo:     resourceRepo,
		studioRepo:       studioRepo,
		logger:           logger,
	}
}

// ListTemplates получает недельное расписание ресурса
// Доступно владельцу студии и администратору
func (s *Service) ListTemplates(ctx context.Context, resourceID int64, actor domain.Actor) (*models.TemplateListResponse, error) {
	s.logger.Info("ListTemplates: fetching schedule for resource=%d, user=%d", resourceID, actor.UserID)

	if err := s.checkResourceAccess(ctx, resourceID, actor); err != nil {
		return nil, err
	}

	templates, err := s.availabilityRepo.ListTemplates(ctx, resourceID)
	if err != nil {
		s.logger.Error("ListTemplates: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: ListTemplates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListTemplates: successfully fetched %d rows for resource=%d", len(templates), resourceID)
	return models.FromDomainTemplateList(resourceID, templates), nil
}

// UpsertTemplate создает или обновляет запись недельного расписания
// Не более одной записи на (ресурс, день недели) - конфликт разрешается обновлением
// Доступно владельцу студии и администратору
func (s *Service) UpsertTemplate(ctx context.Context, req *models.UpsertTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("UpsertTemplate: upserting schedule for resource=%d, day=%d by user=%d",
		req.ResourceID, req.DayOfWeek, req.Actor.UserID)

	if err := s.checkResourceAccess(ctx, req.ResourceID, req.Actor); err != nil {
		return nil, err
	}

	openTime, closeTime, err := validateWindow(req.DayOfWeek, req.OpenTime, req.CloseTime)
	if err != nil {
		s.logger.Warn("UpsertTemplate: validation failed for resource=%d: %v", req.ResourceID, err)
		return nil, err
	}

	tmpl := &domain.AvailabilityTemplate{
		ResourceID:  req.ResourceID,
		DayOfWeek:   req.DayOfWeek,
		OpenTime:    openTime,
		CloseTime:   closeTime,
		IsAvailable: req.IsAvailable,
	}

	upserted, err := s.availabilityRepo.UpsertTemplate(ctx, tmpl)
	if err != nil {
		s.logger.Error("UpsertTemplate: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: UpsertTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertTemplate: successfully upserted schedule row id=%d", upserted.ID)
	return models.FromDomainTemplate(upserted), nil
}

// CreateException создает исключение из расписания на дату
// Позволяет закрыть день, сузить окно или переопределить цену за час
// Доступно владельцу студии и администратору
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: creating exception for resource=%d, date=%s by user=%d",
		req.ResourceID, req.Date, req.Actor.UserID)

	if err := s.checkResourceAccess(ctx, req.ResourceID, req.Actor); err != nil {
		return nil, err
	}

	exc, err := buildException(req)
	if err != nil {
		s.logger.Warn("CreateException: validation failed for resource=%d: %v", req.ResourceID, err)
		return nil, err
	}

	created, err := s.availabilityRepo.CreateException(ctx, exc)
	if err != nil {
		s.logger.Error("CreateException: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: successfully created exception id=%d", created.ID)
	return models.FromDomainException(created), nil
}

// Вспомогательные методы

// checkResourceAccess проверяет права на управление расписанием ресурса
// через владение студией
func (s *Service) checkResourceAccess(ctx context.Context, resourceID int64, actor domain.Actor) error {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("checkResourceAccess: resource id=%d not found", resourceID)
			return ErrResourceNotFound
		}
		s.logger.Error("checkResourceAccess: repository error for resource id=%d: %v", resourceID, err)
		return fmt.Errorf("%w: checkResourceAccess - repository error: %v", ErrInternal, err)
	}

	if actor.IsAdmin() {
		return nil
	}

	studio, err := s.studioRepo.GetByID(ctx, resource.StudioID)
	if err != nil {
		s.logger.Error("checkResourceAccess: failed to get studio id=%d: %v", resource.StudioID, err)
		return fmt.Errorf("%w: checkResourceAccess - failed to get studio: %v", ErrInternal, err)
	}

	if studio.OwnerID != actor.UserID {
		s.logger.Warn("checkResourceAccess: user=%d is not the owner of studio=%d", actor.UserID, resource.StudioID)
		return ErrAccessDenied
	}

	return nil
}

// validateWindow проверяет день недели и окно открытия
func validateWindow(dayOfWeek int, open, close string) (types.TimeString, types.TimeString, error) {
	if dayOfWeek < 0 || dayOfWeek > domain.MaxWeekday {
		return "", "", fmt.Errorf("%w: day of week must be 0-%d", ErrInvalidInput, domain.MaxWeekday)
	}

	openTime, err := types.NewTimeStringFromString(open)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid open time %q", ErrInvalidInput, open)
	}
	closeTime, err := types.NewTimeStringFromString(close)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid close time %q", ErrInvalidInput, close)
	}

	if !openTime.IsBefore(closeTime) {
		return "", "", fmt.Errorf("%w: open time must be before close time", ErrInvalidTimeRange)
	}

	return openTime, closeTime, nil
}

// buildException валидирует запрос и собирает domain модель исключения
func buildException(req *models.CreateExceptionRequest) (*domain.AvailabilityException, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	// Окно задаётся только целиком: обе границы или ни одной
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return nil, fmt.Errorf("%w: start and end time must be set together", ErrInvalidInput)
	}

	exc := &domain.AvailabilityException{
		ResourceID:    req.ResourceID,
		Date:          date,
		IsAvailable:   req.IsAvailable,
		Reason:        req.Reason,
		OverridePrice: req.OverridePrice,
	}

	if req.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, *req.StartTime)
		}
		endTime, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, *req.EndTime)
		}
		if !startTime.IsBefore(endTime) {
			return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidTimeRange)
		}
		exc.StartTime = &startTime
		exc.EndTime = &endTime
	}

	if req.OverridePrice != nil && *req.OverridePrice <= 0 {
		return nil, fmt.Errorf("%w: override price must be positive", ErrInvalidInput)
	}

	return exc, nil
}
