package types

import (
	"time"
)

type User struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type Topic struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	RoomCount int    `json:"room_count,omitempty"`
}

type Room struct {
	Id           int       `json:"id"`
	ExternalId   string    `json:"external_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Topic        Topic     `json:"topic"`
	HostId       int       `json:"host_id"`
	HostUsername string    `json:"host_username"`
	Participants []User    `json:"participants,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type Message struct {
	Id             int       `json:"id"`
	RoomId         int       `json:"room_id"`
	RoomName       string    `json:"room_name,omitempty"`
	AuthorId       int       `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}
