package domain

import (
	"net/mail"
	"time"
)

type Customer struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	CustomerName   string     `json:"customer_name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	PhoneNumber    string     `json:"phone_number"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	ProfilePicture string     `json:"profile_picture"`
	IsActive       bool       `json:"is_active"`
	IsStaff        bool       `json:"is_staff"`
	IsSuperuser    bool       `json:"is_superuser"`
	LastLogin      *time.Time `json:"last_login"`
}

// Identity is the authenticated caller threaded through every service
// operation. It replaces any notion of an ambient "current user".
type Identity struct {
	CustomerID int64
	Username   string
	IsStaff    bool
}

// Registration is the payload accepted by customer sign-up and self-service
// profile update. Password fields are empty on profile reads.
type Registration struct {
	Username        string `json:"username"`
	CustomerName    string `json:"customer_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ProfilePicture  string `json:"profile_picture"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func ValidateRegistration(r *Registration) FieldErrors {
	errs := FieldErrors{}
	if r.Username == "" {
		errs["username"] = "username is required"
	}
	if len(r.Username) > 150 {
		errs["username"] = "username must be at most 150 characters"
	}
	if r.CustomerName == "" {
		errs["customer_name"] = "customer name is required"
	}
	if r.Email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errs["email"] = "email is not a valid address"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	} else if len(r.Password) < 8 {
		errs["password"] = "password must be at least 8 characters"
	}
	if r.Password != r.ConfirmPassword {
		errs["confirm_password"] = "password fields didn't match"
	}
	return errs
}

// ValidateProfileUpdate is the relaxed variant for updates: password is
// optional, but when present it must still be confirmed.
func ValidateProfileUpdate(r *Registration) FieldErrors {
	errs := FieldErrors{}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			errs["email"] = "email is not a valid address"
		}
	}
	if r.Password != "" {
		if len(r.Password) < 8 {
			errs["password"] = "password must be at least 8 characters"
		}
		if r.Password != r.ConfirmPassword {
			errs["confirm_password"] = "password fields didn't match"
		}
	}
	return errs
}
