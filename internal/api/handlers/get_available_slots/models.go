package get_available_slots

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	generateSlots "github.com/Dramanable/rv-server-sub004/internal/usecase/generate_slots"
)

// SlotResponse HTTP-модель одного слота
type SlotResponse struct {
	StartTime         string   `json:"startTime"`
	EndTime           string   `json:"endTime"`
	Available         bool     `json:"available"`
	UnavailableReason string   `json:"unavailableReason,omitempty"`
	StaffID           *string  `json:"staffId,omitempty"`
	Price             *float64 `json:"price,omitempty"`
}

// DaySlotsResponse HTTP-модель слотов одного дня
type DaySlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// MetricsResponse HTTP-модель агрегатов по периоду
type MetricsResponse struct {
	TotalSlots      int     `json:"totalSlots"`
	AvailableCount  int     `json:"availableCount"`
	BookedCount     int     `json:"bookedCount"`
	UtilizationRate float64 `json:"utilizationRate"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	CalendarID  string             `json:"calendarId"`
	ServiceID   string             `json:"serviceId"`
	Mode        string             `json:"mode"`
	PeriodStart string             `json:"periodStart"`
	PeriodEnd   string             `json:"periodEnd"`
	Days        []DaySlotsResponse `json:"days"`
	Metrics     MetricsResponse    `json:"metrics"`
	HasPrevious bool               `json:"hasPrevious"`
	HasNext     bool               `json:"hasNext"`
}

// ParseRequest собирает модель use case из path- и query-параметров запроса
func ParseRequest(r *http.Request, calendarIDRaw string) (*generateSlots.Request, error) {
	calendarID, err := uuid.Parse(calendarIDRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid calendarId: %w", err)
	}

	query := r.URL.Query()

	serviceID, err := uuid.Parse(query.Get("serviceId"))
	if err != nil {
		return nil, fmt.Errorf("invalid serviceId: %w", err)
	}

	var staffID *uuid.UUID
	if raw := query.Get("staffId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid staffId: %w", err)
		}
		staffID = &id
	}

	mode := generateSlots.ViewMode(query.Get("mode"))
	if mode == "" {
		mode = generateSlots.ModeDay
	}

	referenceDate := time.Now().UTC()
	if raw := query.Get("date"); raw != "" {
		referenceDate, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
	}

	slotDuration := 0
	if raw := query.Get("slotDuration"); raw != "" {
		slotDuration, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid slotDuration: %w", err)
		}
	}

	includeUnavailable := false
	if raw := query.Get("includeUnavailable"); raw != "" {
		includeUnavailable, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeUnavailable: %w", err)
		}
	}

	return &generateSlots.Request{
		CalendarID:          calendarID,
		ServiceID:           serviceID,
		StaffID:             staffID,
		Mode:                mode,
		ReferenceDate:       referenceDate,
		SlotDurationMinutes: slotDuration,
		IncludeUnavailable:  includeUnavailable,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GetAvailableSlotsResponse {
	out := &GetAvailableSlotsResponse{
		CalendarID:  resp.CalendarID.String(),
		ServiceID:   resp.ServiceID.String(),
		Mode:        string(resp.Mode),
		PeriodStart: resp.PeriodStart.Format(time.RFC3339),
		PeriodEnd:   resp.PeriodEnd.Format(time.RFC3339),
		Days:        make([]DaySlotsResponse, 0, len(resp.Days)),
		Metrics: MetricsResponse{
			TotalSlots:      resp.Metrics.TotalSlots,
			AvailableCount:  resp.Metrics.AvailableCount,
			BookedCount:     resp.Metrics.BookedCount,
			UtilizationRate: resp.Metrics.UtilizationRate,
		},
		HasPrevious: resp.HasPrevious,
		HasNext:     resp.HasNext,
	}

	for _, day := range resp.Days {
		daySlots := DaySlotsResponse{
			Date:  day.Date,
			Slots: make([]SlotResponse, 0, len(day.Slots)),
		}
		for _, slot := range day.Slots {
			slotResp := SlotResponse{
				StartTime:         slot.Interval.Start.Format(time.RFC3339),
				EndTime:           slot.Interval.End.Format(time.RFC3339),
				Available:         slot.Available,
				UnavailableReason: string(slot.UnavailableReason),
				Price:             slot.Price,
			}
			if slot.StaffID != nil {
				staffID := slot.StaffID.String()
				slotResp.StaffID = &staffID
			}
			daySlots.Slots = append(daySlots.Slots, slotResp)
		}
		out.Days = append(out.Days, daySlots)
	}

	return out
}
