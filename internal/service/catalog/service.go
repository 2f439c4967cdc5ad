package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/resource"
	studioRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/studio"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

// Service сервис каталога студий и ресурсов
type Service struct {
	studioRepo   StudioRepository
	resourceRepo ResourceRepository
	eventRepo    EventRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(studioRepo StudioRepository, resourceRepo ResourceRepository, eventRepo EventRepository, logger Logger) *Service {
	return &Service{
		studioRepo:   studioRepo,
		resourceRepo: resourceRepo,
		eventRepo:    eventRepo,
		logger:       logger,
	}
}

// Студии

// CreateStudio создает студию, владельцем становится инициатор запроса
// Доступно пользователям с ролью owner и администраторам
func (s *Service) CreateStudio(ctx context.Context, req *models.CreateStudioRequest) (*models.StudioResponse, error) {
	s.logger.Info("CreateStudio: creating studio %q by user=%d", req.Name, req.Actor.UserID)

	if !req.Actor.IsOwner() && !req.Actor.IsAdmin() {
		s.logger.Warn("CreateStudio: access denied for user=%d with role=%s", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	studio := &domain.Studio{
		OwnerID:     req.Actor.UserID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Phone:       req.Phone,
		IsActive:    true,
		IsPublished: false, // Новая студия не видна в каталоге до публикации
	}

	created, err := s.studioRepo.Create(ctx, studio)
	if err != nil {
		s.logger.Error("CreateStudio: repository error for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: CreateStudio - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStudio: successfully created studio id=%d", created.ID)
	return models.FromDomainStudio(created), nil
}

// GetStudio получает студию по ID
// Неопубликованная студия видна только владельцу и администратору
func (s *Service) GetStudio(ctx context.Context, id int64, actor domain.Actor) (*models.StudioResponse, error) {
	s.logger.Info("GetStudio: fetching studio id=%d for user=%d", id, actor.UserID)

	studio, err := s.getStudio(ctx, id, "GetStudio")
	if err != nil {
		return nil, err
	}

	if !studio.IsPublished && studio.OwnerID != actor.UserID && !actor.IsAdmin() {
		s.logger.Warn("GetStudio: studio id=%d is not published, hidden from user=%d", id, actor.UserID)
		return nil, ErrStudioNotFound
	}

	return models.FromDomainStudio(studio), nil
}

// ListPublishedStudios получает каталог опубликованных студий
// Опционально фильтрует по городу
func (s *Service) ListPublishedStudios(ctx context.Context, city *string) (*models.StudioListResponse, error) {
	s.logger.Info("ListPublishedStudios: fetching catalog, city=%v", city)

	studios, err := s.studioRepo.ListPublished(ctx, city)
	if err != nil {
		s.logger.Error("ListPublishedStudios: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPublishedStudios - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPublishedStudios: successfully fetched %d studios", len(studios))
	return models.FromDomainStudioList(studios), nil
}

// ListOwnStudios получает все студии владельца, включая неопубликованные
func (s *Service) ListOwnStudios(ctx context.Context, actor domain.Actor) (*models.StudioListResponse, error) {
	s.logger.Info("ListOwnStudios: fetching studios for user=%d", actor.UserID)

	studios, err := s.studioRepo.ListByOwner(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("ListOwnStudios: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: ListOwnStudios - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOwnStudios: successfully fetched %d studios for user=%d", len(studios), actor.UserID)
	return models.FromDomainStudioList(studios), nil
}

// UpdateStudio обновляет студию, nil-поля остаются без изменений
// Доступно владельцу студии и администратору
func (s *Service) UpdateStudio(ctx context.Context, id int64, req *models.UpdateStudioRequest) (*models.StudioResponse, error) {
	s.logger.Info("UpdateStudio: updating studio id=%d by user=%d", id, req.Actor.UserID)

	studio, err := s.getStudio(ctx, id, "UpdateStudio")
	if err != nil {
		return nil, err
	}

	if err := s.checkStudioAccess(studio, req.Actor); err != nil {
		s.logger.Warn("UpdateStudio: access denied for user=%d to studio id=%d", req.Actor.UserID, id)
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		studio.Name = *req.Name
	}
	if req.Description != nil {
		studio.Description = req.Description
	}
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			return nil, fmt.Errorf("%w: address cannot be empty", ErrInvalidInput)
		}
		studio.Address = *req.Address
	}
	if req.City != nil {
		studio.City = req.City
	}
	if req.Phone != nil {
		studio.Phone = req.Phone
	}
	if req.IsActive != nil {
		studio.IsActive = *req.IsActive
	}

	if err := s.studioRepo.Update(ctx, studio); err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			return nil, ErrStudioNotFound
		}
		s.logger.Error("UpdateStudio: repository error for studio id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStudio - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStudio: successfully updated studio id=%d", id)
	return models.FromDomainStudio(studio), nil
}

// SetStudioPublished публикует или снимает студию с публикации
// Доступно владельцу студии и администратору
func (s *Service) SetStudioPublished(ctx context.Context, id int64, published bool, actor domain.Actor) error {
	s.logger.Info("SetStudioPublished: setting studio id=%d published=%t by user=%d", id, published, actor.UserID)

	studio, err := s.getStudio(ctx, id, "SetStudioPublished")
	if err != nil {
		return err
	}

	if err := s.checkStudioAccess(studio, actor); err != nil {
		s.logger.Warn("SetStudioPublished: access denied for user=%d to studio id=%d", actor.UserID, id)
		return err
	}

	if err := s.studioRepo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			return ErrStudioNotFound
		}
		s.logger.Error("SetStudioPublished: repository error for studio id=%d: %v", id, err)
		return fmt.Errorf("%w: SetStudioPublished - repository error: %v", ErrInternal, err)
	}

	if published {
		// Запись аудита не критична для публикации
		event := &domain.EventLog{
			UserID:      ptr.Ptr(actor.UserID),
			StudioID:    ptr.Ptr(id),
			EventType:   domain.EventStudioPublished,
			Description: ptr.Ptr(fmt.Sprintf("studio %q published", studio.Name)),
		}
		if err := s.eventRepo.Append(ctx, event); err != nil {
			s.logger.Error("SetStudioPublished: failed to append audit event for studio id=%d: %v", id, err)
		}
	}

	s.logger.Info("SetStudioPublished: successfully set studio id=%d published=%t", id, published)
	return nil
}

// Ресурсы

// CreateResource создает ресурс в студии
// Доступно владельцу студии и администратору
func (s *Service) CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("CreateResource: creating resource %q in studio=%d by user=%d", req.Name, req.StudioID, req.Actor.UserID)

	studio, err := s.getStudio(ctx, req.StudioID, "CreateResource")
	if err != nil {
		return nil, err
	}

	if err := s.checkStudioAccess(studio, req.Actor); err != nil {
		s.logger.Warn("CreateResource: access denied for user=%d to studio id=%d", req.Actor.UserID, req.StudioID)
		return nil, err
	}

	if err := validateResourceFields(req.Name, req.ResourceType, req.BasePricePerHour, req.MaxOccupancy); err != nil {
		s.logger.Warn("CreateResource: validation failed for studio=%d: %v", req.StudioID, err)
		return nil, err
	}

	resource := &domain.Resource{
		StudioID:         req.StudioID,
		Name:             req.Name,
		ResourceType:     domain.ResourceType(req.ResourceType),
		Description:      req.Description,
		BasePricePerHour: req.BasePricePerHour,
		MaxOccupancy:     req.MaxOccupancy,
		IsActive:         true,
	}

	created, err := s.resourceRepo.Create(ctx, resource)
	if err != nil {
		s.logger.Error("CreateResource: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: CreateResource - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateResource: successfully created resource id=%d", created.ID)
	return models.FromDomainResource(created), nil
}

// ListResources получает ресурсы студии
// Клиенты видят только активные ресурсы, владелец и администратор - все
func (s *Service) ListResources(ctx context.Context, studioID int64, actor domain.Actor) (*models.ResourceListResponse, error) {
	s.logger.Info("ListResources: fetching resources for studio=%d, user=%d", studioID, actor.UserID)

	studio, err := s.getStudio(ctx, studioID, "ListResources")
	if err != nil {
		return nil, err
	}

	isManager := studio.OwnerID == actor.UserID || actor.IsAdmin()
	if !studio.IsPublished && !isManager {
		s.logger.Warn("ListResources: studio id=%d is not published, hidden from user=%d", studioID, actor.UserID)
		return nil, ErrStudioNotFound
	}

	resources, err := s.resourceRepo.ListByStudio(ctx, studioID, !isManager)
	if err != nil {
		s.logger.Error("ListResources: repository error for studio=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: ListResources - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListResources: successfully fetched %d resources for studio=%d", len(resources), studioID)
	return models.FromDomainResourceList(resources), nil
}

// UpdateResource обновляет ресурс, nil-поля остаются без изменений
// Деактивация ресурса (isActive=false) убирает его из каталога и расчёта слотов
// Доступно владельцу студии и администратору
func (s *Service) UpdateResource(ctx context.Context, id int64, req *models.UpdateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("UpdateResource: updating resource id=%d by user=%d", id, req.Actor.UserID)

	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("UpdateResource: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("UpdateResource: repository error for resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateResource - repository error: %v", ErrInternal, err)
	}

	studio, err := s.getStudio(ctx, resource.StudioID, "UpdateResource")
	if err != nil {
		return nil, err
	}

	if err := s.checkStudioAccess(studio, req.Actor); err != nil {
		s.logger.Warn("UpdateResource: access denied for user=%d to resource id=%d", req.Actor.UserID, id)
		return nil, err
	}

	if req.Name != nil {
		resource.Name = *req.Name
	}
	if req.ResourceType != nil {
		resource.ResourceType = domain.ResourceType(*req.ResourceType)
	}
	if req.Description != nil {
		resource.Description = req.Description
	}
	if req.BasePricePerHour != nil {
		resource.BasePricePerHour = *req.BasePricePerHour
	}
	if req.MaxOccupancy != nil {
		resource.MaxOccupancy = req.MaxOccupancy
	}
	if req.IsActive != nil {
		resource.IsActive = *req.IsActive
	}

	if err := validateResourceFields(resource.Name, string(resource.ResourceType), resource.BasePricePerHour, resource.MaxOccupancy); err != nil {
		s.logger.Warn("UpdateResource: validation failed for resource id=%d: %v", id, err)
		return nil, err
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("UpdateResource: repository error for resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateResource - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateResource: successfully updated resource id=%d", id)
	return models.FromDomainResource(resource), nil
}

// Вспомогательные методы

func (s *Service) getStudio(ctx context.Context, id int64, op string) (*domain.Studio, error) {
	studio, err := s.studioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			s.logger.Warn("%s: studio id=%d not found", op, id)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("%s: repository error for studio id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return studio, nil
}

// checkStudioAccess проверяет права на управление студией
func (s *Service) checkStudioAccess(studio *domain.Studio, actor domain.Actor) error {
	if studio.OwnerID == actor.UserID || actor.IsAdmin() {
		return nil
	}
	return ErrAccessDenied
}

// validateResourceFields проверяет поля ресурса
func validateResourceFields(name, resourceType string, basePrice float64, maxOccupancy *int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !domain.ResourceType(resourceType).IsValid() {
		return fmt.Errorf("%w: invalid resource type %q", ErrInvalidInput, resourceType)
	}
	if basePrice <= 0 {
		return fmt.Errorf("%w: base price must be positive", ErrInvalidInput)
	}
	if maxOccupancy != nil && *maxOccupancy <= 0 {
		return fmt.Errorf("%w: max occupancy must be positive", ErrInvalidInput)
	}
	return nil
}
