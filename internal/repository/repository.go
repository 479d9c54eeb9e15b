// Package repository declares the persistence contracts the service layer
// depends on. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/asif/userstore/internal/model"
)

// UserRepository is the Record Store contract for user accounts.
//
// List returns every record; an empty store yields an empty slice and a nil
// error — "no records" is not an error at this layer. Lookup and mutation
// methods report a missing id (or email) with apperror.ErrNotFound, and
// Create reports a duplicate email with apperror.ErrConflict.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error

	// ComparePassword looks up the account by email and compares the stored
	// password to the supplied one by direct string equality. Returns
	// apperror.ErrNotFound if no account has that email.
	ComparePassword(ctx context.Context, email, password string) (bool, error)
}

// ProductRepository mirrors the user contract for the product resource,
// minus the email lookup and credential comparison. The method names carry
// the Product prefix because the sqlite DB type implements both interfaces.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}
