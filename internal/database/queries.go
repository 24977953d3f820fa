package database

import (
	"strings"
	"time"
)

const (
	upsertTopicQuery = "INSERT INTO topics (name, created_at) VALUES ($1, $2) " +
		"ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id"

	roomColumns = "r.id, r.external_id, r.name, r.description, r.topic_id, t.name, r.host_id, u.username, r.created_at, r.updated_at"

	searchRoomsQuery = "SELECT " + roomColumns + " FROM rooms r " +
		"JOIN topics t ON r.topic_id = t.id " +
		"JOIN users u ON r.host_id = u.id " +
		"WHERE r.name ILIKE '%' || $1 || '%' " +
		"OR t.name ILIKE '%' || $1 || '%' " +
		"OR u.username ILIKE '%' || $1 || '%' " +
		"ORDER BY r.created_at DESC"

	roomsByHostQuery = "SELECT " + roomColumns + " FROM rooms r " +
		"JOIN topics t ON r.topic_id = t.id " +
		"JOIN users u ON r.host_id = u.id " +
		"WHERE r.host_id = $1 ORDER BY r.created_at DESC"

	getRoomQuery = "SELECT " + roomColumns + " FROM rooms r " +
		"JOIN topics t ON r.topic_id = t.id " +
		"JOIN users u ON r.host_id = u.id " +
		"WHERE r.id = $1 LIMIT 1"
)

func (db *PgForumRepository) CreateAccount(params CreateAccountParams) (User, error) {
	now := time.Now().UTC()
	res := db.conn.QueryRow(
		"INSERT INTO users (username, email, password_hash, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, username, email, bio, created_at, updated_at",
		params.Username,
		params.Email,
		params.PasswordHash,
		now,
		now,
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Username,
		&u.Email,
		&u.Bio,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgForumRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	res := db.conn.QueryRow(
		"UPDATE users SET username = $2, email = $3, bio = $4, updated_at = $5 "+
			"WHERE id = $1 RETURNING id, username, email, bio, created_at, updated_at",
		params.UserId,
		params.Username,
		params.Email,
		params.Bio,
		time.Now().UTC(),
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Username,
		&u.Email,
		&u.Bio,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgForumRepository) GetAccountById(userId int) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, bio, password_hash, created_at, updated_at FROM users "+
			"WHERE id = $1 LIMIT 1",
		userId,
	)

	var u User
	err := row.Scan(
		&u.Id,
		&u.Username,
		&u.Email,
		&u.Bio,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgForumRepository) GetAccountByUsername(username string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, bio, password_hash, created_at, updated_at FROM users "+
			"WHERE username = $1 LIMIT 1",
		username,
	)

	var u User
	err := row.Scan(
		&u.Id,
		&u.Username,
		&u.Email,
		&u.Bio,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgForumRepository) scanRooms(query string, args ...any) ([]Room, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(
			&room.Id,
			&room.ExternalId,
			&room.Name,
			&room.Description,
			&room.TopicId,
			&room.TopicName,
			&room.HostId,
			&room.HostUsername,
			&room.CreatedAt,
			&room.UpdatedAt,
		); err != nil {
			return nil, err
		}

		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// escapeLike neutralizes LIKE wildcards in user input so searching for
// "100%" matches the literal text instead of everything starting with
// "100". Backslash is the default escape character in Postgres.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (db *PgForumRepository) SearchRooms(query string) ([]Room, error) {
	return db.scanRooms(searchRoomsQuery, escapeLike(query))
}

func (db *PgForumRepository) RoomsByHost(userId int) ([]Room, error) {
	return db.scanRooms(roomsByHostQuery, userId)
}

func (db *PgForumRepository) GetRoom(roomId int) (Room, error) {
	row := db.conn.QueryRow(getRoomQuery, roomId)

	var room Room
	err := row.Scan(
		&room.Id,
		&room.ExternalId,
		&room.Name,
		&room.Description,
		&room.TopicId,
		&room.TopicName,
		&room.HostId,
		&room.HostUsername,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	return room, err
}

func (db *PgForumRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Room{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()

	var topicId int
	err = tx.QueryRow(upsertTopicQuery, params.TopicName, now).Scan(&topicId)
	if err != nil {
		return Room{}, err
	}

	res := tx.QueryRow(
		"INSERT INTO rooms (external_id, name, description, topic_id, host_id, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at",
		params.ExternalId,
		params.Name,
		params.Description,
		topicId,
		params.HostId,
		now,
		now,
	)

	room := Room{
		ExternalId:  params.ExternalId,
		Name:        params.Name,
		Description: params.Description,
		TopicId:     topicId,
		TopicName:   params.TopicName,
		HostId:      params.HostId,
	}
	err = res.Scan(&room.Id, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return Room{}, err
	}

	if err = tx.Commit(); err != nil {
		return Room{}, err
	}

	return room, nil
}

func (db *PgForumRepository) UpdateRoom(params UpdateRoomParams) (Room, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Room{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()

	var topicId int
	err = tx.QueryRow(upsertTopicQuery, params.TopicName, now).Scan(&topicId)
	if err != nil {
		return Room{}, err
	}

	res := tx.QueryRow(
		"UPDATE rooms SET name = $2, description = $3, topic_id = $4, updated_at = $5 "+
			"WHERE id = $1 RETURNING id, external_id, host_id, created_at, updated_at",
		params.RoomId,
		params.Name,
		params.Description,
		topicId,
		now,
	)

	room := Room{
		Name:        params.Name,
		Description: params.Description,
		TopicId:     topicId,
		TopicName:   params.TopicName,
	}
	err = res.Scan(&room.Id, &room.ExternalId, &room.HostId, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return Room{}, err
	}

	if err = tx.Commit(); err != nil {
		return Room{}, err
	}

	return room, nil
}

// DeleteRoom removes a room along with its messages and participant
// records. The room exclusively owns its messages, so they go with it.
func (db *PgForumRepository) DeleteRoom(roomId int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.Exec("DELETE FROM room_participants WHERE room_id = $1", roomId)
	if err != nil {
		return err
	}

	_, err = tx.Exec("DELETE FROM messages WHERE room_id = $1", roomId)
	if err != nil {
		return err
	}

	_, err = tx.Exec("DELETE FROM rooms WHERE id = $1", roomId)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (db *PgForumRepository) GetMessage(messageId int) (Message, error) {
	row := db.conn.QueryRow(
		"SELECT m.id, m.room_id, r.name, m.user_id, u.username, m.body, m.created_at FROM messages m "+
			"JOIN rooms r ON m.room_id = r.id "+
			"JOIN users u ON m.user_id = u.id "+
			"WHERE m.id = $1 LIMIT 1",
		messageId,
	)

	var msg Message
	err := row.Scan(
		&msg.Id,
		&msg.RoomId,
		&msg.RoomName,
		&msg.UserId,
		&msg.AuthorUsername,
		&msg.Body,
		&msg.CreatedAt,
	)

	return msg, err
}

// CreateMessage inserts a message and records the author as a room
// participant in the same transaction. The participant insert is
// idempotent, posting again does not produce a duplicate row.
func (db *PgForumRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Message{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()

	msg := Message{
		RoomId: params.RoomId,
		UserId: params.UserId,
		Body:   params.Body,
	}
	res := tx.QueryRow(
		"INSERT INTO messages (room_id, user_id, body, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		params.RoomId,
		params.UserId,
		params.Body,
		now,
	)
	err = res.Scan(&msg.Id, &msg.CreatedAt)
	if err != nil {
		return Message{}, err
	}

	_, err = tx.Exec(
		"INSERT INTO room_participants (room_id, user_id, created_at) "+
			"VALUES ($1, $2, $3) ON CONFLICT (room_id, user_id) DO NOTHING",
		params.RoomId,
		params.UserId,
		now,
	)
	if err != nil {
		return Message{}, err
	}

	err = tx.QueryRow("SELECT username FROM users WHERE id = $1", params.UserId).Scan(&msg.AuthorUsername)
	if err != nil {
		return Message{}, err
	}

	if err = tx.Commit(); err != nil {
		return Message{}, err
	}

	return msg, nil
}

func (db *PgForumRepository) DeleteMessage(messageId int) error {
	_, err := db.conn.Exec("DELETE FROM messages WHERE id = $1", messageId)

	return err
}

func (db *PgForumRepository) scanMessages(query string, args ...any) ([]Message, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(
			&msg.Id,
			&msg.RoomId,
			&msg.RoomName,
			&msg.UserId,
			&msg.AuthorUsername,
			&msg.Body,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}

		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (db *PgForumRepository) MessagesByRoom(roomId int) ([]Message, error) {
	return db.scanMessages(
		"SELECT m.id, m.room_id, r.name, m.user_id, u.username, m.body, m.created_at FROM messages m "+
			"JOIN rooms r ON m.room_id = r.id "+
			"JOIN users u ON m.user_id = u.id "+
			"WHERE m.room_id = $1 ORDER BY m.created_at ASC",
		roomId,
	)
}

func (db *PgForumRepository) MessagesByAccount(userId int) ([]Message, error) {
	return db.scanMessages(
		"SELECT m.id, m.room_id, r.name, m.user_id, u.username, m.body, m.created_at FROM messages m "+
			"JOIN rooms r ON m.room_id = r.id "+
			"JOIN users u ON m.user_id = u.id "+
			"WHERE m.user_id = $1 ORDER BY m.created_at DESC",
		userId,
	)
}

func (db *PgForumRepository) MessagesByTopicQuery(query string) ([]Message, error) {
	return db.scanMessages(
		"SELECT m.id, m.room_id, r.name, m.user_id, u.username, m.body, m.created_at FROM messages m "+
			"JOIN rooms r ON m.room_id = r.id "+
			"JOIN topics t ON r.topic_id = t.id "+
			"JOIN users u ON m.user_id = u.id "+
			"WHERE t.name ILIKE '%' || $1 || '%' ORDER BY m.created_at DESC",
		escapeLike(query),
	)
}

func (db *PgForumRepository) RecentMessages(limit int) ([]Message, error) {
	query := "SELECT m.id, m.room_id, r.name, m.user_id, u.username, m.body, m.created_at FROM messages m " +
		"JOIN rooms r ON m.room_id = r.id " +
		"JOIN users u ON m.user_id = u.id " +
		"ORDER BY m.created_at DESC"

	if limit > 0 {
		return db.scanMessages(query+" LIMIT $1", limit)
	}

	return db.scanMessages(query)
}

func (db *PgForumRepository) SearchTopics(query string) ([]Topic, error) {
	return db.scanTopics(
		"SELECT t.id, t.name, COUNT(r.id) FROM topics t "+
			"LEFT JOIN rooms r ON r.topic_id = t.id "+
			"WHERE t.name ILIKE '%' || $1 || '%' "+
			"GROUP BY t.id, t.name ORDER BY t.name ASC",
		escapeLike(query),
	)
}

func (db *PgForumRepository) ListTopics(limit int) ([]Topic, error) {
	query := "SELECT t.id, t.name, COUNT(r.id) FROM topics t " +
		"LEFT JOIN rooms r ON r.topic_id = t.id " +
		"GROUP BY t.id, t.name ORDER BY t.name ASC"

	if limit > 0 {
		return db.scanTopics(query+" LIMIT $1", limit)
	}

	return db.scanTopics(query)
}

func (db *PgForumRepository) scanTopics(query string, args ...any) ([]Topic, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		var topic Topic
		if err := rows.Scan(&topic.Id, &topic.Name, &topic.RoomCount); err != nil {
			return nil, err
		}

		topics = append(topics, topic)
	}

	return topics, rows.Err()
}

func (db *PgForumRepository) ParticipantsByRoom(roomId int) ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT u.id, u.username FROM room_participants p "+
			"JOIN users u ON p.user_id = u.id "+
			"WHERE p.room_id = $1 ORDER BY u.username ASC",
		roomId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Id, &u.Username); err != nil {
			return nil, err
		}

		users = append(users, u)
	}

	return users, rows.Err()
}
