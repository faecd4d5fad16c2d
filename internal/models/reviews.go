package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID    int64              `bson:"room_id" json:"roomId"`
	UserID    int64              `bson:"user_id" json:"-"`
	UserName  string             `bson:"user_name" json:"userName"`
	Rating    int                `bson:"rating" json:"rating" validate:"min=1,max=5"`
	Comment   string             `bson:"comment" json:"comment" validate:"max=2000"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

func (r *Review) BeforeCreate() {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewsByRoom(ctx context.Context, roomID int64) ([]*Review, error)
}
