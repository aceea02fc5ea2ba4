package handler

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/hotel-admin/internal/model"
    "github.com/iliyamo/hotel-admin/internal/repository"
    "github.com/iliyamo/hotel-admin/internal/settlement"
)

// ----- fakes -----

type fakeReservationStore struct {
    created []*model.Reservation
}

func (f *fakeReservationStore) Create(_ context.Context, m *model.Reservation) error {
    m.ID = uint64(len(f.created) + 1)
    f.created = append(f.created, m)
    return nil
}

func (f *fakeReservationStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
    for _, m := range f.created {
        if m.ID == id {
            return m, nil
        }
    }
    return nil, repository.ErrReservationNotFound
}

func (f *fakeReservationStore) List(context.Context, string, uint64) ([]*model.Reservation, error) {
    return f.created, nil
}

func (f *fakeReservationStore) UpdateFields(_ context.Context, id uint64, _ repository.ReservationPatch) (*model.Reservation, error) {
    return f.GetByID(context.Background(), id)
}

type fakeRoomStore struct {
    room *model.Room
    free []settlement.RoomCandidate
}

func (f *fakeRoomStore) GetByID(_ context.Context, id uint64) (*model.Room, error) {
    if f.room != nil && f.room.ID == id {
        return f.room, nil
    }
    return nil, repository.ErrRoomNotFound
}

func (f *fakeRoomStore) FindAvailableRooms(context.Context, uint64, uint64, time.Time, time.Time, uint32) ([]settlement.RoomCandidate, error) {
    return f.free, nil
}

func (f *fakeRoomStore) FindAvailableByType(context.Context, uint64, time.Time, time.Time, uint32) ([]settlement.RoomCandidate, error) {
    return f.free, nil
}

type fakeRoomTypeStore struct {
    roomType *model.RoomType
}

func (f *fakeRoomTypeStore) GetByID(_ context.Context, id uint64) (*model.RoomType, error) {
    if f.roomType != nil && f.roomType.ID == id {
        return f.roomType, nil
    }
    return nil, repository.ErrRoomTypeNotFound
}

type fakeComboStore struct {
    combo *model.ServiceCombo
    err   error
}

func (f *fakeComboStore) GetByID(context.Context, uint64) (*model.ServiceCombo, error) {
    if f.err != nil {
        return nil, f.err
    }
    if f.combo == nil {
        return nil, repository.ErrServiceComboNotFound
    }
    return f.combo, nil
}

// ----- helpers -----

func comboID(id uint64) *uint64 { return &id }

func deskFixture(combos *fakeComboStore) (*DeskHandler, *fakeReservationStore) {
    rooms := &fakeRoomStore{
        room: &model.Room{ID: 4, RoomTypeID: 2, ServiceComboID: comboID(9), Number: "104", IsActive: true},
        free: []settlement.RoomCandidate{{ID: 4, RoomTypeID: 2, Number: "104"}},
    }
    types := &fakeRoomTypeStore{
        roomType: &model.RoomType{ID: 2, Name: "Double", BasePrice: decimal.NewFromInt(100), Capacity: 2},
    }
    res := &fakeReservationStore{}
    calc := settlement.NewCalculator(rooms, 0)
    return NewDeskHandler(res, rooms, types, combos, calc), res
}

func postReservation(t *testing.T, h *DeskHandler, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    if err := h.Create(e.NewContext(req, rec)); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    return rec
}

const createBody = `{"room_id":4,"guest_name":"A. Karimi","check_in":"2025-09-01","check_out":"2025-09-03","guests":2}`

// ----- tests -----

func TestCreateReservationPricesCombo(t *testing.T) {
    combos := &fakeComboStore{combo: &model.ServiceCombo{
        ID: 9, Name: "Breakfast+Spa", Services: "breakfast,spa",
        DailyPrice: decimal.NewFromInt(40), IsActive: true,
    }}
    h, res := deskFixture(combos)

    rec := postReservation(t, h, createBody)
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
    }
    if len(res.created) != 1 {
        t.Fatalf("created %d reservations, want 1", len(res.created))
    }
    // 2 nights x (100 base + 40 combo).
    if got := res.created[0].TotalPrice; !got.Equal(decimal.NewFromInt(280)) {
        t.Fatalf("total = %s, want 280", got.StringFixed(2))
    }
}

func TestCreateReservationComboLookupFailure(t *testing.T) {
    // A transient store error must fail the request, not quietly price
    // the stay without the combo's daily charge.
    combos := &fakeComboStore{err: errors.New("connection reset")}
    h, res := deskFixture(combos)

    rec := postReservation(t, h, createBody)
    if rec.Code != http.StatusInternalServerError {
        t.Fatalf("status = %d, want 500: %s", rec.Code, rec.Body.String())
    }
    if len(res.created) != 0 {
        t.Fatalf("reservation was persisted despite the failed combo lookup")
    }
}

func TestCreateReservationDanglingComboSkipped(t *testing.T) {
    // A room pointing at a deleted combo still books; only the base
    // price applies.
    combos := &fakeComboStore{}
    h, res := deskFixture(combos)

    rec := postReservation(t, h, createBody)
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
    }
    if got := res.created[0].TotalPrice; !got.Equal(decimal.NewFromInt(200)) {
        t.Fatalf("total = %s, want 200", got.StringFixed(2))
    }
}

func TestCreateReservationInactiveComboNotCharged(t *testing.T) {
    combos := &fakeComboStore{combo: &model.ServiceCombo{
        ID: 9, Name: "Legacy", Services: "minibar",
        DailyPrice: decimal.NewFromInt(40), IsActive: false,
    }}
    h, res := deskFixture(combos)

    rec := postReservation(t, h, createBody)
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
    }
    if got := res.created[0].TotalPrice; !got.Equal(decimal.NewFromInt(200)) {
        t.Fatalf("total = %s, want 200 for inactive combo", got.StringFixed(2))
    }
}
