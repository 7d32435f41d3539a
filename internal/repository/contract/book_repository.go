package contract

import (
	"context"

	"booksland-be/internal/entity"

	"github.com/google/uuid"
)

type IBookRepository interface {
	FindAll(ctx context.Context) ([]*entity.Book, error)
	FindOne(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	CreateBulk(ctx context.Context, books []*entity.Book) error
	Count(ctx context.Context) (int64, error)
}
