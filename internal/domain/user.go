package domain

import "time"

type Role string

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
)

func ValidRole(r Role) bool {
	return r == RoleDonor || r == RoleRecipient
}

type User struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Name            string     `bson:"name" json:"name"`
	Email           string     `bson:"email" json:"email"`
	Password        string     `bson:"password" json:"-"`
	Role            Role       `bson:"role" json:"role"`
	IsEmailVerified bool       `bson:"is_email_verified" json:"isEmailVerified"`
	VerificationCode          string     `bson:"email_verification_code,omitempty" json:"-"`
	VerificationCodeExpiresAt *time.Time `bson:"email_verification_code_expires_at,omitempty" json:"-"`
	JoinedAt        time.Time  `bson:"joined_at" json:"joinedAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"-"`
}
