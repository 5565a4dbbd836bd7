package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rapsplay/console-rental/internal/model"
	"github.com/rapsplay/console-rental/internal/utils"
)

// UserRepo provides account persistence over the `users` table. The
// public read methods never select password_hash or the OTP columns;
// auth flows use the dedicated *WithSecrets lookups.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,phone,address,avatar,is_admin,created_at,updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address,
		&u.Avatar, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a new account with a bcrypt-hashed password and
// returns its ID. The email is normalized to lower case before the
// unique check; a duplicate produces ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, phone, password, avatar string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, phone, password_hash, avatar) VALUES (?,?,?,?,?)",
		name, email, phone, hash, avatar)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user without secret columns.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches a user by normalized email, without secret columns.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByEmailWithSecrets fetches a user including password_hash and the
// OTP columns. Only the login and reset flows call this.
func (r *UserRepo) GetByEmailWithSecrets(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var (
		u      model.User
		otp    sql.NullString
		otpExp sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,phone,address,password_hash,avatar,is_admin,reset_otp,reset_otp_expires_at,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.PasswordHash,
		&u.Avatar, &u.IsAdmin, &otp, &otpExp, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if otp.Valid {
		u.ResetOTP = otp.String
	}
	if otpExp.Valid {
		t := otpExp.Time
		u.ResetOTPExpires = &t
	}
	return u, nil
}

// ExistsByEmail reports whether an account with the email exists.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email=? LIMIT 1", email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns all accounts without secret columns.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile updates the mutable profile fields. A duplicate email
// produces ErrEmailExists; an unknown id produces ErrNotFound.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, email, phone, address string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, phone=?, address=? WHERE id=?",
		name, email, phone, address, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	return requireRow(res)
}

// UpdateAvatar stores a new avatar reference (URL or relative path).
func (r *UserRepo) UpdateAvatar(ctx context.Context, id uint64, avatar string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET avatar=? WHERE id=?", avatar, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetResetOTP stores a pending reset code with its absolute expiry,
// overwriting any previous pending code.
func (r *UserRepo) SetResetOTP(ctx context.Context, id uint64, otp string, expiresAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET reset_otp=?, reset_otp_expires_at=? WHERE id=?",
		otp, expiresAt.UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdatePassword re-hashes the password and clears the OTP columns in
// a single statement so a redeemed code cannot be replayed.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, reset_otp='', reset_otp_expires_at=NULL WHERE id=?",
		hash, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow converts a zero-row update into ErrNotFound. The DSN sets
// clientFoundRows, so RowsAffected counts matched rows and a no-change
// update on an existing row reports 1.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
