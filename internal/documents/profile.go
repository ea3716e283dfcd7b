// Package documents defines the MongoDB document models: the Profile and
// User pair derived from a relational Pessoa, and the book catalog.
package documents

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/estantedigital/plataforma/internal/entities"
)

// Educacao is one education entry on a profile.
type Educacao struct {
	TagEducacao     *string             `bson:"tagEducacao" json:"tagEducacao"`
	Instituicao     *string             `bson:"instituicao" json:"instituicao"`
	Curso           *string             `bson:"curso" json:"curso"`
	Descricao       *string             `bson:"descricao" json:"descricao"`
	AnoInicio       *int                `bson:"anoInicio" json:"anoInicio"`
	AnoFim          *int                `bson:"anoFim" json:"anoFim"`
	LogoInstituicao *primitive.ObjectID `bson:"logoInstituicao" json:"logoInstituicao"`
}

// Projeto is one project entry on a profile.
type Projeto struct {
	Nome          *string             `bson:"nome" json:"nome"`
	Descricao     *string             `bson:"descricao" json:"descricao"`
	Ano           *int                `bson:"ano" json:"ano"`
	Repositorio   *string             `bson:"repositorio" json:"repositorio"`
	Link          *string             `bson:"link" json:"link"`
	Documentacoes []string            `bson:"documentacoes" json:"documentacoes"`
	Cover         *primitive.ObjectID `bson:"cover" json:"cover"`
	Icon          *primitive.ObjectID `bson:"icon" json:"icon"`
}

// Experiencia is one professional-history entry on a profile.
type Experiencia struct {
	Nome        *string             `bson:"nome" json:"nome"`
	Cargo       *string             `bson:"cargo" json:"cargo"`
	Empresa     *string             `bson:"empresa" json:"empresa"`
	AnoInicio   *int                `bson:"anoInicio" json:"anoInicio"`
	AnoFim      *int                `bson:"anoFim" json:"anoFim"`
	Descricao   *string             `bson:"descricao" json:"descricao"`
	IsCurrent   bool                `bson:"isCurrent" json:"isCurrent"`
	LogoEmpresa *primitive.ObjectID `bson:"logoEmpresa" json:"logoEmpresa"`
}

// Pesquisa is one research entry on a profile.
type Pesquisa struct {
	Titulo    *string             `bson:"titulo" json:"titulo"`
	Descricao *string             `bson:"descricao" json:"descricao"`
	Ano       *int                `bson:"ano" json:"ano"`
	Link      *string             `bson:"link" json:"link"`
	Documento *primitive.ObjectID `bson:"documento" json:"documento"`
	Cover     *primitive.ObjectID `bson:"cover" json:"cover"`
}

// Certificacao is one certification entry on a profile.
type Certificacao struct {
	Nome        *string             `bson:"nome" json:"nome"`
	Instituicao *string             `bson:"instituicao" json:"instituicao"`
	Ano         *int                `bson:"ano" json:"ano"`
	Descricao   *string             `bson:"descricao" json:"descricao"`
	Certificado *primitive.ObjectID `bson:"certificado" json:"certificado"`
}

// Idioma is one language entry on a profile.
type Idioma struct {
	Idioma *string `bson:"idioma" json:"idioma"`
	Nivel  *string `bson:"nivel" json:"nivel"` // Básico, Intermediário, Avançado, Fluente, Nativo
}

// RedesSociais holds the social links, all optional.
type RedesSociais struct {
	Linkedin  *string `bson:"linkedin" json:"linkedin"`
	Github    *string `bson:"github" json:"github"`
	Twitter   *string `bson:"twitter" json:"twitter"`
	Facebook  *string `bson:"facebook" json:"facebook"`
	Instagram *string `bson:"instagram" json:"instagram"`
	Youtube   *string `bson:"youtube" json:"youtube"`
}

// Profile is the biographical document derived from a Pessoa. The
// referential fields (NomeReferencial, Username, EmailInstitucional) mirror
// the Pessoa at creation time and are only touched by explicit sync.
type Profile struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	NomeReferencial    string             `bson:"nomeReferencial" json:"nomeReferencial"`
	Username           string             `bson:"username" json:"username"`
	EmailInstitucional string             `bson:"emailInstitucional" json:"emailInstitucional"`
	Bio                *string            `bson:"bio" json:"bio"`
	Email              *string            `bson:"email" json:"email"`
	Telefone           *string            `bson:"telefone" json:"telefone"`
	Estado             *string            `bson:"estado" json:"estado"`
	Pais               *string            `bson:"pais" json:"pais"`
	DataNascimento     *time.Time         `bson:"dataNascimento" json:"dataNascimento"`
	Nacionalidade      *string            `bson:"nacionalidade" json:"nacionalidade"`
	Educacao           []Educacao         `bson:"educacao" json:"educacao"`
	Projetos           []Projeto          `bson:"projetos" json:"projetos"`
	Profissionais      []Experiencia      `bson:"profissionais" json:"profissionais"`
	Pesquisa           []Pesquisa         `bson:"pesquisa" json:"pesquisa"`
	Habilidades        []string           `bson:"habilidades" json:"habilidades"`
	Certificacoes      []Certificacao     `bson:"certificacoes" json:"certificacoes"`
	Idiomas            []Idioma           `bson:"idiomas" json:"idiomas"`
	InteressesProf     []string           `bson:"interessesProfissionais" json:"interessesProfissionais"`
	RedesSociais       RedesSociais       `bson:"redesSociais" json:"redesSociais"`
	FotoPerfil         *primitive.ObjectID `bson:"fotoPerfil" json:"fotoPerfil"`
	FotoCapa           *primitive.ObjectID `bson:"fotoCapa" json:"fotoCapa"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func stringPtr(s string) *string { return &s }

// NewProfileFor seeds a Profile from a Pessoa with every optional section
// in its empty form.
func NewProfileFor(p *entities.Pessoa) *Profile {
	return &Profile{
		NomeReferencial:    p.NomeReferencial,
		Username:           p.Username,
		EmailInstitucional: p.EmailInstitucional,
		Pais:               stringPtr("Brasil"),
		Nacionalidade:      stringPtr("Brasileira"),
		Educacao:           []Educacao{},
		Projetos:           []Projeto{},
		Profissionais:      []Experiencia{},
		Pesquisa:           []Pesquisa{},
		Habilidades:        []string{},
		Certificacoes:      []Certificacao{},
		Idiomas:            []Idioma{},
		InteressesProf:     []string{},
		RedesSociais:       RedesSociais{},
	}
}
