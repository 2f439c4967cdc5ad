package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// Request модели

// UpsertTemplateRequest запрос на создание/обновление записи недельного расписания
type UpsertTemplateRequest struct {
	Actor       domain.Actor
	ResourceID  int64  `json:"resourceId"`
	DayOfWeek   int    `json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	OpenTime    string `json:"openTime"`  // "10:00"
	CloseTime   string `json:"closeTime"` // "22:00"
	IsAvailable bool   `json:"isAvailable"`
}

// CreateExceptionRequest запрос на создание исключения из расписания
type CreateExceptionRequest struct {
	Actor         domain.Actor
	ResourceID    int64    `json:"resourceId"`
	Date          string   `json:"date"`                // "2026-03-15"
	StartTime     *string  `json:"startTime,omitempty"` // Суженное окно (опционально)
	EndTime       *string  `json:"endTime,omitempty"`
	IsAvailable   bool     `json:"isAvailable"`
	Reason        *string  `json:"reason,omitempty"`
	OverridePrice *float64 `json:"overridePrice,omitempty"` // Цена за час на эту дату
}

// Response модели

// TemplateResponse запись недельного расписания
type TemplateResponse struct {
	ID          int64  `json:"id"`
	ResourceID  int64  `json:"resourceId"`
	DayOfWeek   int    `json:"dayOfWeek"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// TemplateListResponse недельное расписание ресурса
type TemplateListResponse struct {
	ResourceID int64              `json:"resourceId"`
	Templates  []TemplateResponse `json:"templates"`
}

// ExceptionResponse исключение из расписания
type ExceptionResponse struct {
	ID            int64    `json:"id"`
	ResourceID    int64    `json:"resourceId"`
	Date          string   `json:"date"`
	StartTime     *string  `json:"startTime,omitempty"`
	EndTime       *string  `json:"endTime,omitempty"`
	IsAvailable   bool     `json:"isAvailable"`
	Reason        *string  `json:"reason,omitempty"`
	OverridePrice *float64 `json:"overridePrice,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.AvailabilityTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}

	return &TemplateResponse{
		ID:          t.ID,
		ResourceID:  t.ResourceID,
		DayOfWeek:   t.DayOfWeek,
		OpenTime:    t.OpenTime.String(),
		CloseTime:   t.CloseTime.String(),
		IsAvailable: t.IsAvailable,
	}
}

// FromDomainTemplateList конвертирует недельное расписание в DTO
func FromDomainTemplateList(resourceID int64, templates []*domain.AvailabilityTemplate) *TemplateListResponse {
	resp := &TemplateListResponse{
		ResourceID: resourceID,
		Templates:  make([]TemplateResponse, 0, len(templates)),
	}
	for _, t := range templates {
		if tmplResp := FromDomainTemplate(t); tmplResp != nil {
			resp.Templates = append(resp.Templates, *tmplResp)
		}
	}
	return resp
}

// FromDomainException конвертирует domain модель в DTO
func FromDomainException(e *domain.AvailabilityException) *ExceptionResponse {
	if e == nil {
		return nil
	}

	resp := &ExceptionResponse{
		ID:            e.ID,
		ResourceID:    e.ResourceID,
		Date:          e.Date.Format(domain.DateFormat),
		IsAvailable:   e.IsAvailable,
		Reason:        e.Reason,
		OverridePrice: e.OverridePrice,
		CreatedAt:     e.CreatedAt,
	}

	if e.StartTime != nil {
		startStr := e.StartTime.String()
		resp.StartTime = &startStr
	}
	if e.EndTime != nil {
		endStr := e.EndTime.String()
		resp.EndTime = &endStr
	}

	return resp
}
