package model

import "time"

// User represents a hotel staff account as stored in the `users` table.
// Two roles exist: ADMIN manages rooms, types, combos and other users;
// RECEPTIONIST works the reservation desk.  Handlers define their own
// response types, so no json tags are carried here.
//
// Fields:
//  ID           - primary key identifier.
//  Email        - unique email address.
//  PasswordHash - bcrypt hashed password.
//  Role         - ADMIN or RECEPTIONIST.
//  IsActive     - whether the account may log in.
//  CreatedAt    - timestamp of creation.
//  UpdatedAt    - timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is stored.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
