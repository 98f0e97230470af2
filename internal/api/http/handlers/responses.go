package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/api/dto"
	"github.com/stagepass/event-ticketing/internal/domain"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

func eventResponse(event *domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:                event.ID,
		Name:              event.Name,
		StartsAt:          event.StartsAt,
		Venue:             event.Venue,
		UnitPrice:         event.UnitPrice,
		TotalCapacity:     event.TotalCapacity,
		RemainingCapacity: event.RemainingCapacity,
		Organizer:         string(event.Organizer),
		IsActive:          event.IsActive,
		Description:       event.Description,
		ImageURL:          event.ImageURL,
		CreatedAt:         event.CreatedAt,
		UpdatedAt:         event.UpdatedAt,
	}
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	history := make([]dto.TransferRecordResponse, 0, len(ticket.History))
	for _, record := range ticket.History {
		history = append(history, dto.TransferRecordResponse{
			From:  string(record.From),
			To:    string(record.To),
			Price: record.Price,
			At:    record.At,
		})
	}
	return dto.TicketResponse{
		ID:            ticket.ID,
		EventID:       ticket.EventID,
		Owner:         string(ticket.Owner),
		OriginalPrice: ticket.OriginalPrice,
		CurrentPrice:  ticket.CurrentPrice,
		IsValid:       ticket.IsValid,
		EventName:     ticket.EventName,
		Class:         ticket.Class,
		Seat:          ticket.Seat,
		PurchasedAt:   ticket.PurchasedAt,
		History:       history,
	}
}

func idParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidInput("invalid id parameter", map[string]any{"param": name})
	}
	return id, nil
}
