package database

type ForumRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (User, error)
	UpdateAccount(params UpdateAccountParams) (User, error)
	GetAccountById(userId int) (User, error)
	GetAccountByUsername(username string) (User, error)
	SearchRooms(query string) ([]Room, error)
	SearchTopics(query string) ([]Topic, error)
	ListTopics(limit int) ([]Topic, error)
	GetRoom(roomId int) (Room, error)
	CreateRoom(params CreateRoomParams) (Room, error)
	UpdateRoom(params UpdateRoomParams) (Room, error)
	DeleteRoom(roomId int) error
	GetMessage(messageId int) (Message, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	DeleteMessage(messageId int) error
	MessagesByRoom(roomId int) ([]Message, error)
	MessagesByAccount(userId int) ([]Message, error)
	MessagesByTopicQuery(query string) ([]Message, error)
	RecentMessages(limit int) ([]Message, error)
	RoomsByHost(userId int) ([]Room, error)
	ParticipantsByRoom(roomId int) ([]User, error)
}
