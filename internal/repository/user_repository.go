package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/utils"
)

// User mirrors the 'users' table. Passwords are stored as bcrypt hashes;
// the plaintext never leaves the registration or login call.
type User struct {
	ID   int64
	Name string
	Role string
}

// Roles stored in the users.usertype column.
const (
	RoleCustomer = "Customer"
	RoleManager  = "Manager"
)

type UserRepo struct{ Sess *database.Session }

func NewUserRepo(s *database.Session) *UserRepo { return &UserRepo{Sess: s} }

// Create inserts a new customer and returns the generated user ID,
// recovered from the users_userid_seq sequence. Insert and readback run
// as one unit so a concurrent registration cannot shift the sequence in
// between.
func (r *UserRepo) Create(ctx context.Context, name, password string, cost int) (int64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id, err := r.Sess.ExecuteInsertReturningID(ctx, "users_userid_seq",
		`INSERT INTO users (name, password, usertype) VALUES ($1, $2, $3)`,
		strings.TrimSpace(name), hash, RoleCustomer)
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, ErrSequenceMiss
	}
	return id, nil
}

// Authenticate checks a user's password and returns the user on a match.
// A missing user and a wrong password both come back as
// ErrInvalidCredentials.
func (r *UserRepo) Authenticate(ctx context.Context, userID int64, password string) (User, error) {
	res, err := r.Sess.ExecuteMaterialize(ctx,
		`SELECT userid, name, password, usertype FROM users WHERE userid = $1`, userID)
	if err != nil {
		return User{}, err
	}
	if res.Empty() {
		return User{}, ErrInvalidCredentials
	}
	row := res.Rows[0]
	if !utils.VerifyPassword(row[2], password) {
		return User{}, ErrInvalidCredentials
	}
	return User{ID: userID, Name: row[1], Role: row[3]}, nil
}
