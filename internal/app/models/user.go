package models

import "strings"

// User defines the user model based on the 'users' table.
// ID is the student number chosen at registration.
type User struct {
	ID           int64    `json:"id" db:"id" example:"20201234"`
	Email        string   `json:"email" db:"email" example:"student@campus.edu.tr"`
	Password     string   `json:"-" db:"password_hash"`
	FirstName    string   `json:"first_name" db:"first_name" example:"Ayşe"`
	LastName     string   `json:"last_name" db:"last_name" example:"Yılmaz"`
	Department   *string  `json:"department,omitempty" db:"department"`
	Gender       *string  `json:"gender,omitempty" db:"gender"`
	ProfileImage *string  `json:"profile_photo,omitempty" db:"profile_image"`
	Bio          *string  `json:"bio,omitempty" db:"bio"`
	Interests    *string  `json:"interests,omitempty" db:"interests"`
	Role         RoleType `json:"role" db:"role" example:"student"`
	SoftDelete
}

// FullName joins first and last name the way the UI displays it.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsBanned reports the ban flag, which shares the soft-delete column.
func (u *User) IsBanned() bool {
	return u.IsDeleted
}

// SplitFullName splits on the first space: the rest becomes the last name.
func SplitFullName(fullName string) (first, last string) {
	fullName = strings.TrimSpace(fullName)
	first, last, _ = strings.Cut(fullName, " ")
	return first, strings.TrimSpace(last)
}

// StringValue dereferences an optional column.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ProfileUpdate carries optional profile changes; nil fields stay untouched.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Department   *string
	ProfileImage *string
	Bio          *string
	Interests    *string
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Department == nil &&
		u.ProfileImage == nil && u.Bio == nil && u.Interests == nil
}
