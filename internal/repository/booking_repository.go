package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/rapsplay/console-rental/internal/booking"
	"github.com/rapsplay/console-rental/internal/model"
	"github.com/rapsplay/console-rental/internal/utils"
)

// BookingRepo provides CRUD operations for console rental bookings.
// Games and contact are stored as JSON columns. All timestamp fields
// are stored in UTC.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// codeRetries bounds how often Create regenerates a booking code after
// hitting the unique index. Six characters over a 32-char alphabet make
// collisions rare; the retry exists so a collision is a hiccup, not a
// failed booking.
const codeRetries = 5

const bookingColumns = "id,code,owner_id,console,games,period,controllers,duration,is_member," +
	"start_at,end_at,start_label,end_label,tz,contact,id_image,holder_image,total,status,created_at,updated_at"

// Create persists a validated draft with a freshly generated booking
// code and initial status pending. On a duplicate-code insert it
// regenerates and retries up to codeRetries times before giving up
// with ErrCodeExhausted.
func (r *BookingRepo) Create(ctx context.Context, draft *booking.Draft, ownerID *uint64) (model.Booking, error) {
	games, err := json.Marshal(draft.Games)
	if err != nil {
		return model.Booking{}, err
	}
	contact, err := json.Marshal(draft.Contact)
	if err != nil {
		return model.Booking{}, err
	}

	const q = `INSERT INTO bookings
		(code, owner_id, console, games, period, controllers, duration, is_member,
		 start_at, end_at, start_label, end_label, tz, contact, id_image, holder_image, total, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

	id, err := insertWithCodeRetry(func(code string) (int64, error) {
		res, err := r.DB.ExecContext(ctx, q,
			code, ownerID, draft.Console, games, draft.Period, draft.Controllers,
			draft.Duration, draft.IsMember, draft.StartAt, draft.EndAt,
			draft.StartLabel, draft.EndLabel, draft.TZ, contact,
			draft.IDImage, draft.HolderImage, draft.Total, model.StatusPending)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	})
	if err != nil {
		return model.Booking{}, err
	}
	// Query back the full row to populate timestamps and defaults.
	return r.GetByID(ctx, uint64(id))
}

// insertWithCodeRetry generates a booking code and runs insert with it,
// regenerating on a duplicate-key error up to codeRetries times. Any
// other error aborts; exhausting the budget yields ErrCodeExhausted.
func insertWithCodeRetry(insert func(code string) (int64, error)) (int64, error) {
	for attempt := 0; attempt < codeRetries; attempt++ {
		code, err := utils.NewBookingCode()
		if err != nil {
			return 0, err
		}
		id, err := insert(code)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				continue // code collision, regenerate
			}
			return 0, err
		}
		return id, nil
	}
	return 0, ErrCodeExhausted
}

// UpdateStatus sets the booking status. Allowed values are pending,
// confirmed and cancelled; callers validate before reaching here.
// An unknown id produces ErrNotFound.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such booking" from "status unchanged".
		var one int
		if scanErr := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM bookings WHERE id=? LIMIT 1", id).Scan(&one); scanErr == sql.ErrNoRows {
			return ErrNotFound
		} else if scanErr != nil {
			return scanErr
		}
	}
	return nil
}

// GetAll returns every booking, newest first.
func (r *BookingRepo) GetAll(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// GetByID fetches a booking by its storage id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// GetByOwner returns at most one booking created by the given account.
// When several exist the choice is arbitrary (first row, no ordering);
// callers must not read "most recent" into it.
func (r *BookingRepo) GetByOwner(ctx context.Context, ownerID uint64) (model.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE owner_id=? LIMIT 1", ownerID))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b       model.Booking
		ownerID sql.NullInt64
		games   []byte
		contact []byte
	)
	err := row.Scan(&b.ID, &b.Code, &ownerID, &b.Console, &games, &b.Period,
		&b.Controllers, &b.Duration, &b.IsMember, &b.StartAt, &b.EndAt,
		&b.StartLabel, &b.EndLabel, &b.TZ, &contact, &b.IDImage,
		&b.HolderImage, &b.Total, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if ownerID.Valid {
		v := uint64(ownerID.Int64)
		b.OwnerID = &v
	}
	if len(games) > 0 {
		if err := json.Unmarshal(games, &b.Games); err != nil {
			return model.Booking{}, err
		}
	}
	if b.Games == nil {
		b.Games = []string{}
	}
	if len(contact) > 0 {
		if err := json.Unmarshal(contact, &b.Contact); err != nil {
			return model.Booking{}, err
		}
	}
	return b, nil
}
