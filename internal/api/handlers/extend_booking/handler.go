package extend_booking

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	"github.com/parkease/parkease-backend/internal/api/middleware"
	extendBooking "github.com/parkease/parkease-backend/internal/usecase/extend_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgBookingNotFound    = "бронирование не найдено"
	msgNotOwner           = "бронирование принадлежит другому пользователю"
	msgBookingNotActive   = "бронирование не активно"
	msgInvalidEndTime     = "новое время окончания должно быть позже текущего"
	msgSlotConflict       = "слот уже забронирован на выбранный период"
)

type Handler struct {
	useCase ExtendBookingUseCase
	logger  Logger
}

func NewHandler(useCase ExtendBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ExtendBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/extend - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, principal.ID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/%d/extend - Failed to parse request: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, extendBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/extend - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, extendBooking.ErrNotOwner):
			h.logger.Warn("PATCH /bookings/%d/extend - Not owner: user_id=%d", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, extendBooking.ErrBookingNotActive):
			h.logger.Warn("PATCH /bookings/%d/extend - Not active", bookingID)
			handlers.RespondConflict(w, msgBookingNotActive)

		case errors.Is(err, extendBooking.ErrInvalidEndTime):
			h.logger.Warn("PATCH /bookings/%d/extend - Invalid end time", bookingID)
			handlers.RespondBadRequest(w, msgInvalidEndTime)

		case errors.Is(err, extendBooking.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/%d/extend - Slot conflict", bookingID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, extendBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/extend - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/%d/extend - Failed: user_id=%d, error=%v", bookingID, principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/extend - Extended: user_id=%d, new_price=%.2f", bookingID, principal.ID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
