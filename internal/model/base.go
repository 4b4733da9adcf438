package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func NewBaseModel() BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidID reports whether id can be a row identifier. Anything else is
// treated as a missing row so malformed ids never reach the uuid columns.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

const FoodTypeName = "food"

// IsFoodType reports whether a product type name denotes food.
func IsFoodType(name string) bool {
	return strings.EqualFold(name, FoodTypeName)
}
