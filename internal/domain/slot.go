package domain

import "github.com/m04kA/SMC-StudioBookingService/pkg/types"

// Slot производный (не хранимый) получасовой слот с вычисленной ценой
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	Price       float64
	IsAvailable bool
}
