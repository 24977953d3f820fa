package database

import "time"

type User struct {
	Id           int
	Username     string
	Email        string
	Bio          string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Topic struct {
	Id        int
	Name      string
	RoomCount int
	CreatedAt time.Time
}

type Room struct {
	Id           int
	ExternalId   string
	Name         string
	Description  string
	TopicId      int
	TopicName    string
	HostId       int
	HostUsername string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Message struct {
	Id             int
	RoomId         int
	RoomName       string
	UserId         int
	AuthorUsername string
	Body           string
	CreatedAt      time.Time
}

type CreateAccountParams struct {
	Username     string
	Email        string
	PasswordHash string
}

type UpdateAccountParams struct {
	UserId   int
	Username string
	Email    string
	Bio      string
}

type CreateRoomParams struct {
	Name        string
	Description string
	TopicName   string
	HostId      int
	ExternalId  string
}

type UpdateRoomParams struct {
	RoomId      int
	Name        string
	Description string
	TopicName   string
}

type CreateMessageParams struct {
	RoomId int
	UserId int
	Body   string
}
