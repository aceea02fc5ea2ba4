package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/hotel-admin/internal/model"
    "github.com/iliyamo/hotel-admin/internal/queue"
    "github.com/iliyamo/hotel-admin/internal/repository"
    queue_publisher "github.com/iliyamo/hotel-admin/internal/service"
    "github.com/iliyamo/hotel-admin/internal/settlement"
)

// Storage surfaces the desk needs.  The repository types satisfy these;
// narrowing to interfaces keeps the pricing and settlement paths
// testable without a database.
type reservationStore interface {
    Create(ctx context.Context, m *model.Reservation) error
    GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
    List(ctx context.Context, status string, roomID uint64) ([]*model.Reservation, error)
    UpdateFields(ctx context.Context, id uint64, p repository.ReservationPatch) (*model.Reservation, error)
}

type roomStore interface {
    GetByID(ctx context.Context, id uint64) (*model.Room, error)
    FindAvailableRooms(ctx context.Context, roomID, excludeReservationID uint64, checkIn, checkOut time.Time, guests uint32) ([]settlement.RoomCandidate, error)
    FindAvailableByType(ctx context.Context, roomTypeID uint64, checkIn, checkOut time.Time, guests uint32) ([]settlement.RoomCandidate, error)
}

type roomTypeStore interface {
    GetByID(ctx context.Context, id uint64) (*model.RoomType, error)
}

type comboStore interface {
    GetByID(ctx context.Context, id uint64) (*model.ServiceCombo, error)
}

// DeskHandler implements the reservation desk: create, browse, cancel,
// and the two-step date-change workflow.  A date change is first
// evaluated (POST /:id/settlement) so the operator can quote the guest,
// then committed (PATCH /:id with confirm=true) which re-evaluates
// against current availability before persisting anything.
type DeskHandler struct {
    reservations reservationStore
    rooms        roomStore
    roomTypes    roomTypeStore
    combos       comboStore
    calc         *settlement.Calculator
}

func NewDeskHandler(res reservationStore, rooms roomStore, types roomTypeStore, combos comboStore, calc *settlement.Calculator) *DeskHandler {
    return &DeskHandler{reservations: res, rooms: rooms, roomTypes: types, combos: combos, calc: calc}
}

// ----- DTOs -----

type createReservationReq struct {
    RoomID     uint64           `json:"room_id"`
    GuestName  string           `json:"guest_name"`
    CheckIn    string           `json:"check_in"`
    CheckOut   string           `json:"check_out"`
    Guests     uint32           `json:"guests"`
    AmountPaid *decimal.Decimal `json:"amount_paid"`
}

type editReq struct {
    Confirm  bool   `json:"confirm"`
    RoomID   uint64 `json:"room_id"`
    CheckIn  string `json:"check_in"`
    CheckOut string `json:"check_out"`
    Guests   uint32 `json:"guests"`
}

// outcomeResp is the client-facing settlement.  Amounts are rounded to
// two decimals here, at the display boundary.
type outcomeResp struct {
    Kind             settlement.OutcomeKind     `json:"kind"`
    DailyRate        decimal.Decimal            `json:"daily_rate"`
    OriginalStayDays int                        `json:"original_stay_days"`
    NewStayDays      int                        `json:"new_stay_days"`
    DayDelta         int                        `json:"day_delta"`
    AdditionalAmount decimal.Decimal            `json:"additional_amount"`
    RefundAmount     decimal.Decimal            `json:"refund_amount"`
    Rooms            []settlement.RoomCandidate `json:"rooms,omitempty"`
}

func toOutcomeResp(out *settlement.Outcome) outcomeResp {
    return outcomeResp{
        Kind:             out.Kind,
        DailyRate:        out.DailyRate.Round(2),
        OriginalStayDays: out.OriginalStayDays,
        NewStayDays:      out.NewStayDays,
        DayDelta:         out.DayDelta,
        AdditionalAmount: out.AdditionalAmount.Round(2),
        RefundAmount:     out.RefundAmount.Round(2),
        Rooms:            out.Rooms,
    }
}

// settlementError maps calculator sentinels onto HTTP responses.  The
// no-availability case carries the informational outcome so the desk can
// still quote the amount that would have been owed.
func settlementError(c echo.Context, err error, out *settlement.Outcome) error {
    switch {
    case errors.Is(err, settlement.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, settlement.ErrInvalidDate), errors.Is(err, settlement.ErrInvalidStay):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    case errors.Is(err, settlement.ErrNoOpEdit):
        return c.JSON(http.StatusConflict, echo.Map{"error": "dates do not change the stay length"})
    case errors.Is(err, settlement.ErrNoAvailability):
        resp := echo.Map{"error": "no rooms available for the new dates"}
        if out != nil {
            resp["settlement"] = toOutcomeResp(out)
        }
        return c.JSON(http.StatusConflict, resp)
    case errors.Is(err, settlement.ErrCorruptRecord), errors.Is(err, settlement.ErrInvalidOriginalDuration):
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation record is not adjustable"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "settlement evaluation failed"})
}

// toSettlement converts the stored row into the calculator's input.
func toSettlement(m *model.Reservation) settlement.Reservation {
    return settlement.Reservation{
        ID:           m.ID,
        RoomID:       m.RoomID,
        CheckIn:      m.CheckIn,
        CheckOut:     m.CheckOut,
        Guests:       m.Guests,
        Status:       m.Status,
        TotalPrice:   m.TotalPrice,
        AmountPaid:   m.AmountPaid,
        RefundAmount: m.RefundAmount,
    }
}

// editFromReq fills unset edit fields from the original so a date-only
// request keeps the room and party size.
func editFromReq(m *model.Reservation, req editReq) settlement.EditRequest {
    edit := settlement.EditRequest{
        ReservationID: m.ID,
        RoomID:        req.RoomID,
        CheckIn:       strings.TrimSpace(req.CheckIn),
        CheckOut:      strings.TrimSpace(req.CheckOut),
        Guests:        req.Guests,
    }
    if edit.RoomID == 0 {
        edit.RoomID = m.RoomID
    }
    if edit.Guests == 0 {
        edit.Guests = m.Guests
    }
    return edit
}

// Create handles POST /v1/reservations.  The stay is priced as
// nights x room type base price plus nights x combo daily price when the
// room carries a service combination, and the room itself must be free
// over the requested range.
func (h *DeskHandler) Create(c echo.Context) error {
    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.GuestName = strings.TrimSpace(req.GuestName)
    if req.RoomID == 0 || req.GuestName == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id and guest_name required"})
    }
    if req.Guests == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests must be positive"})
    }
    checkIn, err := settlement.ParseDate(strings.TrimSpace(req.CheckIn))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in"})
    }
    checkOut, err := settlement.ParseDate(strings.TrimSpace(req.CheckOut))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out"})
    }
    nights := settlement.StayDays(checkIn, checkOut)
    if nights <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    room, err := h.rooms.GetByID(ctx, req.RoomID)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
    }
    if !room.IsActive {
        return c.JSON(http.StatusConflict, echo.Map{"error": "room is not bookable"})
    }

    roomType, err := h.roomTypes.GetByID(ctx, room.RoomTypeID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room type failed"})
    }
    if req.Guests > roomType.Capacity {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "party exceeds room capacity"})
    }

    // The requested room must itself appear among the free candidates.
    free, err := h.rooms.FindAvailableRooms(ctx, req.RoomID, 0, checkIn, checkOut, req.Guests)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
    }
    available := false
    for _, cand := range free {
        if cand.ID == req.RoomID {
            available = true
            break
        }
    }
    if !available {
        return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available for these dates"})
    }

    nightsDec := decimal.NewFromInt(int64(nights))
    total := roomType.BasePrice.Mul(nightsDec)
    if room.ServiceComboID != nil {
        combo, err := h.combos.GetByID(ctx, *room.ServiceComboID)
        switch {
        case err == nil:
            if combo.IsActive {
                total = total.Add(combo.DailyPrice.Mul(nightsDec))
            }
        case errors.Is(err, repository.ErrServiceComboNotFound):
            // Dangling reference; price the stay on the room type alone.
        default:
            // A failed lookup must not silently drop the combo charge.
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load combo failed"})
        }
    }

    paid := decimal.Zero
    status := model.ReservationPending
    if req.AmountPaid != nil {
        if req.AmountPaid.IsNegative() {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_paid must not be negative"})
        }
        paid = *req.AmountPaid
        if paid.GreaterThanOrEqual(total) {
            status = model.ReservationConfirmed
        }
    }

    m := &model.Reservation{
        RoomID:     req.RoomID,
        GuestName:  req.GuestName,
        CheckIn:    checkIn.Format(settlement.DateLayout),
        CheckOut:   checkOut.Format(settlement.DateLayout),
        Guests:     req.Guests,
        Status:     status,
        TotalPrice: total,
        AmountPaid: paid,
    }
    if err := h.reservations.Create(ctx, m); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
    }
    return c.JSON(http.StatusCreated, m)
}

// List handles GET /v1/reservations with optional ?status= and ?room_id=.
func (h *DeskHandler) List(c echo.Context) error {
    status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
    switch status {
    case "", model.ReservationPending, model.ReservationConfirmed, model.ReservationCancelled:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
    }
    var roomID uint64
    if s := c.QueryParam("room_id"); s != "" {
        n, err := strconv.ParseUint(s, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_id"})
        }
        roomID = n
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.reservations.List(ctx, status, roomID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
    }
    return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/reservations/:id.
func (h *DeskHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    m, err := h.reservations.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
    }
    return c.JSON(http.StatusOK, m)
}

// PreviewSettlement handles POST /v1/reservations/:id/settlement.  It
// evaluates the proposed date change and returns the settlement without
// mutating anything, so the operator can quote the guest first.
func (h *DeskHandler) PreviewSettlement(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req editReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    m, err := h.reservations.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
    }
    if m.Status == model.ReservationCancelled {
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is cancelled"})
    }

    out, err := h.calc.EvaluateEdit(ctx, toSettlement(m), editFromReq(m, req))
    if err != nil {
        return settlementError(c, err, out)
    }
    return c.JSON(http.StatusOK, echo.Map{"settlement": toOutcomeResp(out)})
}

// CommitEdit handles PATCH /v1/reservations/:id.  It requires an
// explicit confirm flag, re-evaluates the settlement against current
// availability and persists the date, room, guest and money changes in
// one partial update.  The audit event is published best-effort after
// the commit.
func (h *DeskHandler) CommitEdit(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req editReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if !req.Confirm {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirm must be true"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    m, err := h.reservations.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
    }
    if m.Status == model.ReservationCancelled {
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is cancelled"})
    }

    edit := editFromReq(m, req)
    out, err := h.calc.EvaluateEdit(ctx, toSettlement(m), edit)
    if err != nil {
        return settlementError(c, err, out)
    }

    patch := repository.ReservationPatch{
        CheckIn:  &edit.CheckIn,
        CheckOut: &edit.CheckOut,
    }
    if edit.RoomID != m.RoomID {
        patch.RoomID = &edit.RoomID
    }
    if edit.Guests != m.Guests {
        patch.Guests = &edit.Guests
    }
    if out.Kind == settlement.OutcomeAdditional {
        total := m.TotalPrice.Add(out.AdditionalAmount)
        patch.TotalPrice = &total
    } else {
        total := m.TotalPrice.Sub(out.RefundAmount)
        refund := out.RefundAmount
        patch.TotalPrice = &total
        patch.RefundAmount = &refund
    }

    fresh, err := h.reservations.UpdateFields(ctx, id, patch)
    if err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update reservation failed"})
    }

    staffID, _ := getUserID(c)
    ev := queue.ReservationAdjustedEvent{
        ReservationID: fresh.ID,
        RoomID:        fresh.RoomID,
        GuestName:     fresh.GuestName,
        StaffID:       staffID,
        Kind:          string(out.Kind),
        OldCheckIn:    m.CheckIn,
        OldCheckOut:   m.CheckOut,
        NewCheckIn:    fresh.CheckIn,
        NewCheckOut:   fresh.CheckOut,
        DayDelta:      out.DayDelta,
        DailyRate:     out.DailyRate.Round(2).String(),
        AdjustedAt:    time.Now().UTC().Format(time.RFC3339),
    }
    if out.Kind == settlement.OutcomeAdditional {
        ev.Amount = out.AdditionalAmount.Round(2).String()
    } else {
        ev.Amount = out.RefundAmount.Round(2).String()
    }
    go func() {
        pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer pcancel()
        _ = queue_publisher.PublishReservationAdjusted(pctx, ev)
    }()

    return c.JSON(http.StatusOK, echo.Map{
        "reservation": fresh,
        "settlement":  toOutcomeResp(out),
    })
}

// Cancel handles POST /v1/reservations/:id/cancel.  Cancelling a stay
// refunds what was paid and releases the room by excluding the
// reservation from future overlap checks.
func (h *DeskHandler) Cancel(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    m, err := h.reservations.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
    }
    if m.Status == model.ReservationCancelled {
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
    }

    status := model.ReservationCancelled
    refund := m.AmountPaid
    fresh, err := h.reservations.UpdateFields(ctx, id, repository.ReservationPatch{
        Status:       &status,
        RefundAmount: &refund,
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel reservation failed"})
    }
    return c.JSON(http.StatusOK, fresh)
}

// AvailableRooms handles GET /v1/rooms/available, the browse endpoint
// the desk uses before creating a reservation.
func (h *DeskHandler) AvailableRooms(c echo.Context) error {
    typeID, err := strconv.ParseUint(c.QueryParam("room_type_id"), 10, 64)
    if err != nil || typeID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_type_id required"})
    }
    checkIn, err := settlement.ParseDate(c.QueryParam("check_in"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in"})
    }
    checkOut, err := settlement.ParseDate(c.QueryParam("check_out"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out"})
    }
    if settlement.StayDays(checkIn, checkOut) <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
    }
    var guests uint32 = 1
    if s := c.QueryParam("guests"); s != "" {
        n, err := strconv.ParseUint(s, 10, 32)
        if err != nil || n == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
        }
        guests = uint32(n)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rooms, err := h.rooms.FindAvailableByType(ctx, typeID, checkIn, checkOut, guests)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability query failed"})
    }
    return c.JSON(http.StatusOK, rooms)
}
