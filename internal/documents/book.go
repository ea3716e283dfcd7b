package documents

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is one reader comment on a book.
type Comment struct {
	User    primitive.ObjectID `bson:"user" json:"user"`
	Comment string             `bson:"comment" json:"comment"`
	Date    time.Time          `bson:"date" json:"date"`
}

// Rating is one reader rating on a book, 1 to 5.
type Rating struct {
	User   primitive.ObjectID `bson:"user" json:"user"`
	Rating int                `bson:"rating" json:"rating"`
}

// Book is a catalog entry in the document store.
type Book struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description" json:"description"`
	Author         string              `bson:"author" json:"author"`
	Code           string              `bson:"code" json:"code"`
	PublishedYear  int                 `bson:"publishedYear,omitempty" json:"publishedYear,omitempty"`
	Theme          string              `bson:"theme,omitempty" json:"theme,omitempty"`
	Pages          int                 `bson:"pages,omitempty" json:"pages,omitempty"`
	Language       string              `bson:"language" json:"language"`
	Status         bool                `bson:"status" json:"status"`
	CoverImage     string              `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	CreatedBy      *primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	Cover          *primitive.ObjectID `bson:"cover" json:"cover"`
	PDF            *primitive.ObjectID `bson:"pdf" json:"pdf"`
	Icon           *primitive.ObjectID `bson:"icon" json:"icon"`
	Sinopsis       *string             `bson:"sinopsis" json:"sinopsis"`
	URL            *string             `bson:"url" json:"url"`
	Repository     *string             `bson:"repository" json:"repository"`
	Documentations []string            `bson:"documentations" json:"documentations"`
	Comments       []Comment           `bson:"comments" json:"comments"`
	Ratings        []Rating            `bson:"ratings" json:"ratings"`
	Likes          int                 `bson:"likes" json:"likes"`
	Dislikes       int                 `bson:"dislikes" json:"dislikes"`
	Views          int                 `bson:"views" json:"views"`
	Downloads      int                 `bson:"downloads" json:"downloads"`
	Tags           []string            `bson:"tags" json:"tags"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
