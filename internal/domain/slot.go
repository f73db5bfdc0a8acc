package domain

import (
	"math"

	"github.com/google/uuid"
)

// SlotUnavailableReason explains why a generated slot cannot be booked
type SlotUnavailableReason string

const (
	ReasonOccupied SlotUnavailableReason = "occupied"
	ReasonPast     SlotUnavailableReason = "past"
)

// Slot is a candidate booking window derived at generation time; never persisted
type Slot struct {
	Interval          TimeInterval
	Available         bool
	UnavailableReason SlotUnavailableReason // empty when available
	StaffID           *uuid.UUID
	Price             *float64
}

// DaySlots groups the generated slots of a single calendar day, in walk order
type DaySlots struct {
	Date  string // YYYY-MM-DD
	Slots []Slot
}

// SlotMetrics aggregates a single generation call
type SlotMetrics struct {
	TotalSlots      int
	AvailableCount  int
	BookedCount     int
	UtilizationRate float64 // booked / total as a 0-100 percentage, rounded to two decimals
}

// CalculateSlotMetrics computes the aggregate counters over a generated period.
// Every unavailable slot counts as booked so AvailableCount + BookedCount
// always equals TotalSlots. A fully booked period yields a rate of 100.
func CalculateSlotMetrics(days []DaySlots) SlotMetrics {
	var m SlotMetrics

	for _, day := range days {
		for _, slot := range day.Slots {
			m.TotalSlots++
			if slot.Available {
				m.AvailableCount++
			} else {
				m.BookedCount++
			}
		}
	}

	if m.TotalSlots > 0 {
		m.UtilizationRate = math.Round(float64(m.BookedCount)/float64(m.TotalSlots)*100*100) / 100
	}

	return m
}
