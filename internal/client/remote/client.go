// Package remote speaks the hosted GameVault backend's JSON REST contract.
// The backend is an external collaborator: this package consumes its
// request/response shapes as-is and maps transport outcomes onto the shared
// sentinel errors.
package remote

import (
	"context"

	"github.com/gamevault-app/gamevault/internal/client/models"
)

// Client is the remote backend contract.
//
// Endpoints (relative to the base URL):
//
//	POST   register              create an account
//	POST   login                 authenticate, returns the account
//	POST   comments              create a comment
//	GET    comments/{animeId}    comments for one catalog item
//	GET    comments/user/{email} all comments by one account
//	PUT    comments/{id}         update title/content
//	DELETE comments/{id}         delete
//	GET    users/{email}         account lookup
type Client interface {
	Register(ctx context.Context, email, username, password string) error
	Login(ctx context.Context, email, password string) (*models.Account, error)
	SaveComment(ctx context.Context, c models.Comment, email string) error
	CommentsByAnime(ctx context.Context, animeID int) ([]models.Comment, error)
	CommentsByUser(ctx context.Context, email string) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id int, title, content string) error
	DeleteComment(ctx context.Context, id int) error
	UserByEmail(ctx context.Context, email string) (*models.Account, error)
}
