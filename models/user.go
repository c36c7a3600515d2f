package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a stored credential. Password holds a plaintext only between
// SetPassword and the next save; it is never persisted or serialized.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         Role               `bson:"role" json:"role"`

	password        string
	passwordChanged bool
}

// SetPassword stages a new plaintext password to be hashed on save.
func (u *User) SetPassword(plain string) {
	u.password = plain
	u.passwordChanged = true
}

// PendingPassword reports the staged plaintext, if any.
func (u *User) PendingPassword() (string, bool) {
	return u.password, u.passwordChanged
}

// ApplyPasswordHash stores the hash of the staged password and clears it.
func (u *User) ApplyPasswordHash(hash string) {
	u.PasswordHash = hash
	u.password = ""
	u.passwordChanged = false
}

// PublicUser is what login returns to the client.
type PublicUser struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{Username: u.Username, Role: u.Role}
}
