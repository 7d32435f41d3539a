package service

import (
	"context"
	"math/rand"

	"booksland-be/internal/dto"
	"booksland-be/internal/mapper"
	"booksland-be/internal/repository/contract"
	"booksland-be/pkg/chat"
	"booksland-be/pkg/store"

	"github.com/google/uuid"
)

// ICatalogService is the read side of the book inventory. The store.Book
// methods feed the chat orchestrator; the DTO methods feed the REST surface.
type ICatalogService interface {
	All(ctx context.Context) ([]store.Book, error)
	FindByID(ctx context.Context, id string) (*store.Book, error)
	Sample(ctx context.Context, n int) ([]store.Book, error)
	GetBooks(ctx context.Context) ([]dto.BookResponse, error)
	GetRecommended(ctx context.Context, n int) ([]dto.BookResponse, error)
}

type catalogService struct {
	bookRepo contract.IBookRepository
}

var _ chat.Catalog = &catalogService{}

func NewCatalogService(bookRepo contract.IBookRepository) ICatalogService {
	return &catalogService{bookRepo: bookRepo}
}

func (cs *catalogService) All(ctx context.Context) ([]store.Book, error) {
	books, err := cs.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToStoreBooks(books), nil
}

// FindByID returns nil for an unknown or malformed id; both read as "the book
// is no longer in the catalog" to the caller.
func (cs *catalogService) FindByID(ctx context.Context, id string) (*store.Book, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	book, err := cs.bookRepo.FindOne(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, nil
	}
	mapped := mapper.ToStoreBook(book)
	return &mapped, nil
}

// Sample returns up to n random books. Order is randomized on every call.
func (cs *catalogService) Sample(ctx context.Context, n int) ([]store.Book, error) {
	books, err := cs.All(ctx)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(books), func(i, j int) {
		books[i], books[j] = books[j], books[i]
	})
	if len(books) > n {
		books = books[:n]
	}
	return books, nil
}

func (cs *catalogService) GetBooks(ctx context.Context) ([]dto.BookResponse, error) {
	books, err := cs.All(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToBookResponses(books), nil
}

func (cs *catalogService) GetRecommended(ctx context.Context, n int) ([]dto.BookResponse, error) {
	books, err := cs.Sample(ctx, n)
	if err != nil {
		return nil, err
	}
	return mapper.ToBookResponses(books), nil
}
