package entity

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"index"`
	Author      string
	Price       int64
	Cover       string
	Description string
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (Book) TableName() string {
	return "books"
}
