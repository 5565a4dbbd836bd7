package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rapsplay/console-rental/internal/booking"
	"github.com/rapsplay/console-rental/internal/model"
	"github.com/rapsplay/console-rental/internal/queue"
	"github.com/rapsplay/console-rental/internal/repository"
)

// Publisher emits booking events to the message broker. Failures are
// logged, never surfaced to the client.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
	PublishBookingStatus(ctx context.Context, ev queue.BookingStatusEvent) error
}

// BookingHandler bundles dependencies for the rental booking endpoints.
type BookingHandler struct {
	Bookings BookingStore
	Users    UserStore
	Files    FileStore
	Events   Publisher
}

func NewBookingHandler(b BookingStore, u UserStore, f FileStore, p Publisher) *BookingHandler {
	return &BookingHandler{Bookings: b, Users: u, Files: f, Events: p}
}

type statusReq struct {
	Status string `json:"status"`
}

// Create accepts the multipart booking form, validates it, stores any
// attached ID images, prices the rental server-side and persists the
// booking as pending. The client's total, if any, is ignored. When the
// contact email matches an account the booking is attached to it.
func (h *BookingHandler) Create(c echo.Context) error {
	raw := booking.RawRequest{
		Console:     c.FormValue("console"),
		Period:      c.FormValue("rental_period"),
		PlanType:    c.FormValue("plan_type"),
		Controllers: c.FormValue("controllers"),
		Duration:    c.FormValue("duration"),
		IsMember:    c.FormValue("is_member"),
		StartAt:     c.FormValue("start_at"),
		EndAt:       c.FormValue("end_at"),
		StartLabel:  c.FormValue("start_label"),
		EndLabel:    c.FormValue("end_label"),
		TZ:          c.FormValue("tz"),
		Games:       c.FormValue("games"),
		Contact:     c.FormValue("contact"),
	}

	for _, img := range []struct {
		field string
		alias string
		dst   *string
	}{
		{"id_image", "AdharImg", &raw.IDImage},
		{"holder_image", "PersonWithAdharImg", &raw.HolderImage},
	} {
		fh, err := c.FormFile(img.field)
		if err != nil {
			// Older clients send the original field names.
			fh, err = c.FormFile(img.alias)
		}
		if err != nil {
			// Images are optional; the reference stays empty.
			continue
		}
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": img.field + " unreadable"})
		}
		name, err := h.Files.Save("ids", img.field, fh.Filename, src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
		}
		*img.dst = name
	}

	draft, verr := booking.Validate(raw)
	if verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Attach the booking to the signed-in account when a token was
	// presented, otherwise to an existing account matching the contact
	// email. Guests book without an account.
	var ownerID *uint64
	if uid, ok := c.Get("user_id").(uint64); ok && uid > 0 {
		ownerID = &uid
	} else if u, err := h.Users.GetByEmail(ctx, draft.Contact.Email); err == nil {
		id := u.ID
		ownerID = &id
	}

	b, err := h.Bookings.Create(ctx, draft, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	if h.Events != nil {
		go func(b model.Booking) {
			ev := queue.BookingCreatedEvent{
				BookingID:   b.ID,
				Code:        b.Code,
				OwnerID:     b.OwnerID,
				Console:     b.Console,
				Period:      b.Period,
				Controllers: b.Controllers,
				Duration:    b.Duration,
				Games:       b.Games,
				StartAt:     b.StartAt.UTC().Format(time.RFC3339),
				EndAt:       b.EndAt.UTC().Format(time.RFC3339),
				Total:       b.Total,
				CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
			}
			pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pcancel()
			if err := h.Events.PublishBookingCreated(pctx, ev); err != nil {
				log.Printf("booking: publish created event for %s failed: %v", b.Code, err)
			}
		}(b)
	}

	return c.JSON(http.StatusCreated, b)
}

// UpdateStatus moves a booking between pending, confirmed and
// cancelled. Admin only.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	switch req.Status {
	case model.StatusPending, model.StatusConfirmed, model.StatusCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.UpdateStatus(ctx, id, req.Status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if h.Events != nil {
		go func(b model.Booking) {
			ev := queue.BookingStatusEvent{
				BookingID: b.ID,
				Code:      b.Code,
				Status:    b.Status,
				ChangedAt: time.Now().UTC().Format(time.RFC3339),
			}
			pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pcancel()
			if err := h.Events.PublishBookingStatus(pctx, ev); err != nil {
				log.Printf("booking: publish status event for %s failed: %v", b.Code, err)
			}
		}(b)
	}

	return c.JSON(http.StatusOK, b)
}

// List returns every booking, newest first. Admin only.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.GetAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Get returns one booking by id. Admin only.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, b)
}

// MyBooking returns a booking of the authenticated account, or 404 when
// none exists. When the account has several the choice is arbitrary.
func (h *BookingHandler) MyBooking(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByOwner(ctx, uid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, b)
}
