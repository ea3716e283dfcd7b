package entities

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

type Tipo string

const (
	TipoPessoaFisica   Tipo = "PF"
	TipoPessoaJuridica Tipo = "PJ"
)

// Pessoa is the authoritative identity record in the relational store.
// Username and EmailInstitucional are globally unique; the store's
// constraints reject concurrent duplicates, not application locking.
type Pessoa struct {
	IDPessoa           uint      `gorm:"primaryKey;column:idPessoa" json:"idPessoa"`
	ManagerKey         string    `gorm:"column:manager_key;size:36" json:"managerKey"`
	NomeReferencial    string    `gorm:"column:nome_referencial;size:255;not null" json:"nome_referencial"`
	Username           string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	EmailInstitucional string    `gorm:"column:email_institucional;uniqueIndex;size:255;not null" json:"email_institucional"`
	PasswordHash       string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Location           string    `gorm:"size:255" json:"-"` // hashed documento oficial; also the recovery credential
	Role               Role      `gorm:"size:20;default:user" json:"role"`
	Tipo               Tipo      `gorm:"size:2;default:PF" json:"tipo"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Pessoa) TableName() string { return "Pessoa" }

// Account is an auxiliary record linked to a Pessoa. Its creation is
// best-effort: a failure never aborts Pessoa creation.
type Account struct {
	IDAccount uint      `gorm:"primaryKey;column:idAccount" json:"idAccount"`
	IDPessoa  uint      `gorm:"column:idPessoa_Pessoa;index" json:"idPessoa_Pessoa"`
	Username  string    `gorm:"size:100" json:"username"`
	Location  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Account) TableName() string { return "Account" }

// NewPessoa builds a Pessoa from signup input. documentoHash is the
// bcrypt hash of the documento oficial: it seeds both the password hash
// and the recovery credential (Location), mirroring the dual use of the
// documento as initial password and recovery secret.
func NewPessoa(nomeReferencial, username, emailInstitucional, documentoHash string, role Role, tipo Tipo) *Pessoa {
	if role == "" {
		role = RoleUser
	}
	if tipo == "" {
		tipo = TipoPessoaFisica
	}
	return &Pessoa{
		ManagerKey:         uuid.NewString(),
		NomeReferencial:    nomeReferencial,
		Username:           username,
		EmailInstitucional: emailInstitucional,
		PasswordHash:       documentoHash,
		Location:           documentoHash,
		Role:               role,
		Tipo:               tipo,
	}
}

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// ValidTipo reports whether t is one of the enumerated tipos.
func ValidTipo(t Tipo) bool {
	switch t {
	case TipoPessoaFisica, TipoPessoaJuridica:
		return true
	}
	return false
}
