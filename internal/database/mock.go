package database

import (
	"github.com/stretchr/testify/mock"
)

type MockForumRepository struct {
	mock.Mock
}

func (m *MockForumRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockForumRepository) CreateAccount(params CreateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockForumRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockForumRepository) GetAccountById(userId int) (User, error) {
	args := m.Called(userId)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockForumRepository) GetAccountByUsername(username string) (User, error) {
	args := m.Called(username)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockForumRepository) SearchRooms(query string) ([]Room, error) {
	args := m.Called(query)
	return args.Get(0).([]Room), args.Error(1)
}

func (m *MockForumRepository) SearchTopics(query string) ([]Topic, error) {
	args := m.Called(query)
	return args.Get(0).([]Topic), args.Error(1)
}

func (m *MockForumRepository) ListTopics(limit int) ([]Topic, error) {
	args := m.Called(limit)
	return args.Get(0).([]Topic), args.Error(1)
}

func (m *MockForumRepository) GetRoom(roomId int) (Room, error) {
	args := m.Called(roomId)
	return args.Get(0).(Room), args.Error(1)
}

func (m *MockForumRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Error(1)
}

func (m *MockForumRepository) UpdateRoom(params UpdateRoomParams) (Room, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Error(1)
}

func (m *MockForumRepository) DeleteRoom(roomId int) error {
	args := m.Called(roomId)
	return args.Error(0)
}

func (m *MockForumRepository) GetMessage(messageId int) (Message, error) {
	args := m.Called(messageId)
	return args.Get(0).(Message), args.Error(1)
}

func (m *MockForumRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}

func (m *MockForumRepository) DeleteMessage(messageId int) error {
	args := m.Called(messageId)
	return args.Error(0)
}

func (m *MockForumRepository) MessagesByRoom(roomId int) ([]Message, error) {
	args := m.Called(roomId)
	return args.Get(0).([]Message), args.Error(1)
}

func (m *MockForumRepository) MessagesByAccount(userId int) ([]Message, error) {
	args := m.Called(userId)
	return args.Get(0).([]Message), args.Error(1)
}

func (m *MockForumRepository) MessagesByTopicQuery(query string) ([]Message, error) {
	args := m.Called(query)
	return args.Get(0).([]Message), args.Error(1)
}

func (m *MockForumRepository) RecentMessages(limit int) ([]Message, error) {
	args := m.Called(limit)
	return args.Get(0).([]Message), args.Error(1)
}

func (m *MockForumRepository) RoomsByHost(userId int) ([]Room, error) {
	args := m.Called(userId)
	return args.Get(0).([]Room), args.Error(1)
}

func (m *MockForumRepository) ParticipantsByRoom(roomId int) ([]User, error) {
	args := m.Called(roomId)
	return args.Get(0).([]User), args.Error(1)
}
