package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapsplay/console-rental/internal/model"
)

type bookingFixture struct {
	h        *BookingHandler
	bookings *fakeBookingStore
	users    *fakeUserStore
	files    *fakeFiles
	events   *fakePublisher
	e        *echo.Echo
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings: newFakeBookingStore(),
		users:    newFakeUserStore(),
		files:    &fakeFiles{},
		events:   &fakePublisher{},
		e:        echo.New(),
	}
	f.h = NewBookingHandler(f.bookings, f.users, f.files, f.events)
	return f
}

// validForm is a correct hourly standard booking: PS5, 2 controllers,
// 3 hours, which prices at 520.
func validForm() map[string]string {
	return map[string]string{
		"console":       "ps5",
		"rental_period": "hourly",
		"controllers":   "2",
		"duration":      "3",
		"is_member":     "false",
		"start_at":      "2026-09-01T10:00:00Z",
		"end_at":        "2026-09-01T13:00:00Z",
		"start_label":   "1 Sep, 3:30 PM",
		"end_label":     "1 Sep, 6:30 PM",
		"games":         `["fc25","gta5"]`,
		"contact":       `{"name":"Asha Rao","email":"asha@example.com","phone":"9990001111","address":"12 Lake Rd"}`,
	}
}

func (f *bookingFixture) multipartReq(t *testing.T, fields map[string]string, withImages bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImages {
		for _, field := range []string{"id_image", "holder_image"} {
			fw, err := w.CreateFormFile(field, field+".jpg")
			require.NoError(t, err)
			_, err = fw.Write([]byte("fake image bytes"))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return f.e.NewContext(req, rec), rec
}

func TestCreateBookingPricesServerSide(t *testing.T) {
	f := newBookingFixture()

	c, rec := f.multipartReq(t, validForm(), true)
	require.NoError(t, f.h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, 520, b.Total)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.True(t, strings.HasPrefix(b.Code, "RP-"))
	assert.Len(t, b.Code, 9)
	assert.Nil(t, b.OwnerID) // no account with the contact email
	assert.Equal(t, "ids/id_image-test.jpg", b.IDImage)
	assert.Equal(t, "ids/holder_image-test.jpg", b.HolderImage)
	assert.Equal(t, "Asia/Kolkata", b.TZ)

	assert.Eventually(t, func() bool {
		f.events.mu.Lock()
		defer f.events.mu.Unlock()
		return len(f.events.created) == 1 && f.events.created[0].Code == b.Code
	}, time.Second, 10*time.Millisecond)
}

func TestCreateBookingAttachesToAccountByEmail(t *testing.T) {
	f := newBookingFixture()
	u := f.users.add(model.User{Name: "Asha", Email: "asha@example.com"})

	c, rec := f.multipartReq(t, validForm(), true)
	require.NoError(t, f.h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.NotNil(t, b.OwnerID)
	assert.Equal(t, u.ID, *b.OwnerID)
}

func TestCreateBookingAttachesToSignedInAccount(t *testing.T) {
	f := newBookingFixture()
	// The token identity wins even when the contact email belongs to
	// a different account.
	f.users.add(model.User{Name: "Asha", Email: "asha@example.com"})
	me := f.users.add(model.User{Name: "Ravi", Email: "ravi@example.com"})

	c, rec := f.multipartReq(t, validForm(), true)
	c.Set("user_id", me.ID)
	require.NoError(t, f.h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.NotNil(t, b.OwnerID)
	assert.Equal(t, me.ID, *b.OwnerID)
}

func TestCreateBookingLegacyImageFieldNames(t *testing.T) {
	f := newBookingFixture()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range validForm() {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, field := range []string{"AdharImg", "PersonWithAdharImg"} {
		fw, err := w.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	require.NoError(t, f.h.Create(f.e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "ids/id_image-test.jpg", b.IDImage)
	assert.Equal(t, "ids/holder_image-test.jpg", b.HolderImage)
}

func TestCreateBookingMemberRate(t *testing.T) {
	f := newBookingFixture()

	form := validForm()
	form["is_member"] = "true"
	c, rec := f.multipartReq(t, form, true)
	require.NoError(t, f.h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, 415, b.Total)
	assert.True(t, b.IsMember)
}

func TestCreateBookingRejectsUncoveredDuration(t *testing.T) {
	f := newBookingFixture()

	form := validForm()
	form["duration"] = "8" // hourly tables stop at 6
	c, rec := f.multipartReq(t, form, true)
	require.NoError(t, f.h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid pricing selection.")
}

func TestCreateBookingWithoutImages(t *testing.T) {
	f := newBookingFixture()

	c, rec := f.multipartReq(t, validForm(), false)
	require.NoError(t, f.h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Empty(t, b.IDImage)
	assert.Empty(t, b.HolderImage)
	assert.Empty(t, f.files.saved)
}

func TestCreateBookingPlanTypeFallback(t *testing.T) {
	f := newBookingFixture()

	form := validForm()
	delete(form, "rental_period")
	form["plan_type"] = "hourly"
	c, rec := f.multipartReq(t, form, true)
	require.NoError(t, f.h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUpdateStatus(t *testing.T) {
	f := newBookingFixture()

	c, rec := f.multipartReq(t, validForm(), true)
	require.NoError(t, f.h.Create(c))
	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = f.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, f.h.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, model.StatusConfirmed, updated.Status)

	assert.Eventually(t, func() bool {
		f.events.mu.Lock()
		defer f.events.mu.Unlock()
		return len(f.events.status) == 1 && f.events.status[0].Status == model.StatusConfirmed
	}, time.Second, 10*time.Millisecond)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newBookingFixture()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"done"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, f.h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	f := newBookingFixture()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"cancelled"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, f.h.UpdateStatus(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMyBooking(t *testing.T) {
	f := newBookingFixture()
	u := f.users.add(model.User{Name: "Asha", Email: "asha@example.com"})

	// Not booked yet.
	req := httptest.NewRequest(http.MethodGet, "/v1/my-booking", nil)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.Set("user_id", u.ID)
	require.NoError(t, f.h.MyBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, createRec := f.multipartReq(t, validForm(), true)
	require.NoError(t, f.h.Create(c))
	require.Equal(t, http.StatusCreated, createRec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/my-booking", nil)
	rec = httptest.NewRecorder()
	c = f.e.NewContext(req, rec)
	c.Set("user_id", u.ID)
	require.NoError(t, f.h.MyBooking(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.NotNil(t, b.OwnerID)
	assert.Equal(t, u.ID, *b.OwnerID)
}

func TestListBookings(t *testing.T) {
	f := newBookingFixture()

	c, rec := f.multipartReq(t, validForm(), true)
	require.NoError(t, f.h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, f.h.List(f.e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Bookings []model.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Bookings, 1)
}
