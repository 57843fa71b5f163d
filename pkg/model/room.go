package model

import (
	"time"
)

type Room struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OrgID     string    `json:"org_id" bson:"org_id" validate:"required,min=1,max=64"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=80"`
	Capacity  int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=500"`
	SiteID    string    `json:"site_id,omitempty" bson:"site_id,omitempty" validate:"omitempty,max=64"`
	Equipment []string  `json:"equipment" bson:"equipment" validate:"omitempty,max=20,dive,min=1,max=40"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type RoomUpdate struct {
	Name      string    `json:"name,omitempty" validate:"omitempty,min=2,max=80"`
	Capacity  *int      `json:"capacity,omitempty" validate:"omitempty,min=1,max=500"`
	SiteID    *string   `json:"site_id,omitempty" validate:"omitempty,max=64"`
	Equipment *[]string `json:"equipment,omitempty" validate:"omitempty,max=20,dive,min=1,max=40"`
	IsActive  *bool     `json:"is_active,omitempty"`
}
