package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// Request модели

// CreateStudioRequest запрос на создание студии
type CreateStudioRequest struct {
	Actor       domain.Actor
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

// UpdateStudioRequest запрос на обновление студии
// Nil-поля остаются без изменений
type UpdateStudioRequest struct {
	Actor       domain.Actor
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CreateResourceRequest запрос на создание ресурса студии
type CreateResourceRequest struct {
	Actor            domain.Actor
	StudioID         int64   `json:"studioId"`
	Name             string  `json:"name"`
	ResourceType     string  `json:"resourceType"`
	Description      *string `json:"description,omitempty"`
	BasePricePerHour float64 `json:"basePricePerHour"`
	MaxOccupancy     *int    `json:"maxOccupancy,omitempty"`
}

// UpdateResourceRequest запрос на обновление ресурса
// Nil-поля остаются без изменений
type UpdateResourceRequest struct {
	Actor            domain.Actor
	Name             *string  `json:"name,omitempty"`
	ResourceType     *string  `json:"resourceType,omitempty"`
	Description      *string  `json:"description,omitempty"`
	BasePricePerHour *float64 `json:"basePricePerHour,omitempty"`
	MaxOccupancy     *int     `json:"maxOccupancy,omitempty"`
	IsActive         *bool    `json:"isActive,omitempty"`
}

// Response модели

// StudioResponse ответ с данными студии
type StudioResponse struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"ownerId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsActive    bool    `json:"isActive"`
	IsPublished bool    `json:"isPublished"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StudioListResponse ответ со списком студий
type StudioListResponse struct {
	Studios []StudioResponse `json:"studios"`
}

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID               int64   `json:"id"`
	StudioID         int64   `json:"studioId"`
	Name             string  `json:"name"`
	ResourceType     string  `json:"resourceType"`
	Description      *string `json:"description,omitempty"`
	BasePricePerHour float64 `json:"basePricePerHour"`
	MaxOccupancy     *int    `json:"maxOccupancy,omitempty"`
	IsActive         bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// Методы конвертации

// FromDomainStudio конвертирует domain модель в DTO
func FromDomainStudio(s *domain.Studio) *StudioResponse {
	if s == nil {
		return nil
	}

	return &StudioResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		City:        s.City,
		Phone:       s.Phone,
		IsActive:    s.IsActive,
		IsPublished: s.IsPublished,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainStudioList конвертирует список domain моделей в DTO
func FromDomainStudioList(studios []*domain.Studio) *StudioListResponse {
	resp := &StudioListResponse{
		Studios: make([]StudioResponse, 0, len(studios)),
	}
	for _, s := range studios {
		if studioResp := FromDomainStudio(s); studioResp != nil {
			resp.Studios = append(resp.Studios, *studioResp)
		}
	}
	return resp
}

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	return &ResourceResponse{
		ID:               r.ID,
		StudioID:         r.StudioID,
		Name:             r.Name,
		ResourceType:     string(r.ResourceType),
		Description:      r.Description,
		BasePricePerHour: r.BasePricePerHour,
		MaxOccupancy:     r.MaxOccupancy,
		IsActive:         r.IsActive,
		CreatedAt:        r.CreatedAt,
	}
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(resources)),
	}
	for _, r := range resources {
		if resourceResp := FromDomainResource(r); resourceResp != nil {
			resp.Resources = append(resp.Resources, *resourceResp)
		}
	}
	return resp
}
