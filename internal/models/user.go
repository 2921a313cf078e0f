package models

import (
	"time"
)

// User is the profile stored under users/{uid}. UID is the Firebase uid and
// doubles as the owner key for every other record.
type User struct {
	UID       string    `firestore:"uid" json:"uid"`
	Email     string    `firestore:"email" json:"email"`
	FirstName string    `firestore:"firstName" json:"firstName"`
	LastName  string    `firestore:"lastName" json:"lastName"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func NewUser(uid, email, firstName, lastName string, now time.Time) *User {
	return &User{
		UID:       uid,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DisplayName joins the first and last name, skipping whichever is empty.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
