package create_booking

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	"github.com/parkease/parkease-backend/internal/api/middleware"
	createBooking "github.com/parkease/parkease-backend/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidRange       = "время окончания должно быть позже времени начала"
	msgPastBooking        = "нельзя бронировать в прошлом"
	msgTooFarInFuture     = "бронирование слишком далеко в будущем"
	msgSlotNotFound       = "слот не найден"
	msgLotNotFound        = "парковка не найдена"
	msgSlotConflict       = "слот уже забронирован на выбранный период"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal.ID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, slot_id=%d", principal.ID, req.SlotID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrLotNotFound):
			h.logger.Warn("POST /bookings - Lot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, createBooking.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: user_id=%d", principal.ID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrPastBooking):
			h.logger.Warn("POST /bookings - Past booking: user_id=%d", principal.ID)
			handlers.RespondBadRequest(w, msgPastBooking)

		case errors.Is(err, createBooking.ErrAdvanceLimitExceeded):
			h.logger.Warn("POST /bookings - Too far in future: user_id=%d", principal.ID)
			handlers.RespondBadRequest(w, msgTooFarInFuture)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d: %v", principal.ID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d", result.ID, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
