package documents

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/estantedigital/plataforma/internal/entities"
)

// User is the document-store authentication record derived from a Pessoa.
// At most one User exists per institutional email; ProfileID, once set, is
// only ever written again to fill a nil.
type User struct {
	ID                   primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Username             string              `bson:"username" json:"username"`
	EmailInstitucional   string              `bson:"emailInstitucional" json:"emailInstitucional"`
	PasswordHash         string              `bson:"passwordHash" json:"-"`
	Role                 entities.Role       `bson:"role" json:"role"`
	Tipo                 entities.Tipo       `bson:"tipo" json:"tipo"`
	IsActive             bool                `bson:"isActive" json:"isActive"`
	LastLogin            *time.Time          `bson:"lastLogin" json:"lastLogin"`
	ProfileID            *primitive.ObjectID `bson:"profileId" json:"profileId"`
	ResetPasswordToken   *string             `bson:"resetPasswordToken" json:"-"`
	ResetPasswordExpires *time.Time          `bson:"resetPasswordExpires" json:"-"`
	CreatedAt            time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// NewUserFor derives a User from a Pessoa, referencing the given Profile.
func NewUserFor(p *entities.Pessoa, profileID primitive.ObjectID) *User {
	return &User{
		Username:           p.Username,
		EmailInstitucional: p.EmailInstitucional,
		PasswordHash:       p.PasswordHash,
		Role:               p.Role,
		Tipo:               p.Tipo,
		IsActive:           true,
		ProfileID:          &profileID,
	}
}
