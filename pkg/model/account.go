package model

import "time"

// Account is a registered client or host. PasswordHash is the bcrypt digest;
// the raw password never reaches the repository layer.
type Account struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Surname      string    `json:"surname" bson:"surname" validate:"required,min=1,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email_shape"`
	Phone        string    `json:"phone" bson:"phone" validate:"required"`
	PasswordHash string    `json:"-" bson:"password_hash" validate:"required"`
	Role         Role      `json:"role" bson:"role" validate:"required,oneof=client host"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Profile is the public projection returned on login.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}

func (a *Account) Profile() Profile {
	return Profile{
		ID:      a.ID,
		Name:    a.Name,
		Surname: a.Surname,
		Email:   a.Email,
		Role:    a.Role,
	}
}
