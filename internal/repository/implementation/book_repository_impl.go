package implementation

import (
	"context"
	"errors"
	"fmt"

	"booksland-be/internal/entity"
	"booksland-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookRepository struct {
	db *gorm.DB
}

var _ contract.IBookRepository = &bookRepository{}

func NewBookRepository(db *gorm.DB) contract.IBookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) FindAll(ctx context.Context) ([]*entity.Book, error) {
	var books []*entity.Book
	if err := r.db.WithContext(ctx).Order("title asc").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) FindOne(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var book entity.Book
	err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find book %s: %w", id, err)
	}
	return &book, nil
}

func (r *bookRepository) CreateBulk(ctx context.Context, books []*entity.Book) error {
	if len(books) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&books).Error; err != nil {
		return fmt.Errorf("create books: %w", err)
	}
	return nil
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}
