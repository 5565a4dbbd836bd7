package model

import "time"

// User represents an account record as stored in the `users` table.
// PasswordHash and the OTP columns are secrets: list and detail
// queries omit them, and only the dedicated auth lookups load them.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – display name.
//  Email           – unique email address, stored lowercased.
//  Phone           – contact phone, optional.
//  Address         – postal address, optional.
//  PasswordHash    – bcrypt hashed password, never serialized.
//  Avatar          – avatar URL or stored file path.
//  IsAdmin         – staff role flag.
//  ResetOTP        – pending password-reset code, empty when idle.
//  ResetOTPExpires – absolute expiry of the pending code.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64     `json:"id"`         // users.id
	Name            string     `json:"name"`       // users.name
	Email           string     `json:"email"`      // users.email
	Phone           string     `json:"phone"`      // users.phone
	Address         string     `json:"address"`    // users.address
	PasswordHash    string     `json:"-"`          // users.password_hash
	Avatar          string     `json:"avatar"`     // users.avatar
	IsAdmin         bool       `json:"is_admin"`   // users.is_admin
	ResetOTP        string     `json:"-"`          // users.reset_otp
	ResetOTPExpires *time.Time `json:"-"`          // users.reset_otp_expires_at (nullable)
	CreatedAt       time.Time  `json:"created_at"` // users.created_at
	UpdatedAt       time.Time  `json:"updated_at"` // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries expiry and revocation
// metadata. The plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
