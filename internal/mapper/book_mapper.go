package mapper

import (
	"booksland-be/internal/dto"
	"booksland-be/internal/entity"
	"booksland-be/pkg/store"
)

func ToStoreBook(book *entity.Book) store.Book {
	return store.Book{
		ID:          book.Id.String(),
		Title:       book.Title,
		Author:      book.Author,
		Price:       book.Price,
		Cover:       book.Cover,
		Description: book.Description,
		Stock:       book.Stock,
	}
}

func ToStoreBooks(books []*entity.Book) []store.Book {
	result := make([]store.Book, 0, len(books))
	for _, book := range books {
		result = append(result, ToStoreBook(book))
	}
	return result
}

func ToBookResponse(book store.Book) dto.BookResponse {
	return dto.BookResponse{
		Id:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Price:       book.Price,
		Cover:       book.Cover,
		Description: book.Description,
		Stock:       book.Stock,
	}
}

func ToBookResponses(books []store.Book) []dto.BookResponse {
	result := make([]dto.BookResponse, 0, len(books))
	for _, book := range books {
		result = append(result, ToBookResponse(book))
	}
	return result
}
