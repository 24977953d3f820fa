package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/npezzotti/go-forum/internal/database"
	"github.com/npezzotti/go-forum/internal/stats"
	"github.com/npezzotti/go-forum/internal/types"
	"github.com/teris-io/shortid"
)

// topicPreviewLimit caps the topic list shown alongside the room
// listing, the full list lives at /topics/.
const topicPreviewLimit = 5

func toUser(u database.User) types.User {
	return types.User{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTopic(t database.Topic) types.Topic {
	return types.Topic{
		Id:        t.Id,
		Name:      t.Name,
		RoomCount: t.RoomCount,
	}
}

func toRoom(r database.Room) types.Room {
	return types.Room{
		Id:           r.Id,
		ExternalId:   r.ExternalId,
		Name:         r.Name,
		Description:  r.Description,
		Topic:        types.Topic{Id: r.TopicId, Name: r.TopicName},
		HostId:       r.HostId,
		HostUsername: r.HostUsername,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toMessage(m database.Message) types.Message {
	return types.Message{
		Id:             m.Id,
		RoomId:         m.RoomId,
		RoomName:       m.RoomName,
		AuthorId:       m.UserId,
		AuthorUsername: m.AuthorUsername,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

func toRooms(dbRooms []database.Room) []types.Room {
	rooms := make([]types.Room, 0, len(dbRooms))
	for _, r := range dbRooms {
		rooms = append(rooms, toRoom(r))
	}
	return rooms
}

func toTopics(dbTopics []database.Topic) []types.Topic {
	topics := make([]types.Topic, 0, len(dbTopics))
	for _, t := range dbTopics {
		topics = append(topics, toTopic(t))
	}
	return topics
}

func toMessages(dbMessages []database.Message) []types.Message {
	messages := make([]types.Message, 0, len(dbMessages))
	for _, m := range dbMessages {
		messages = append(messages, toMessage(m))
	}
	return messages
}

func toUsers(dbUsers []database.User) []types.User {
	users := make([]types.User, 0, len(dbUsers))
	for _, u := range dbUsers {
		users = append(users, toUser(u))
	}
	return users
}

// forbidden writes the plain-text ownership warning shown to
// authenticated users acting on someone else's room or message.
func (s *ForumApp) forbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	fmt.Fprintln(w, message)
}

func (s *ForumApp) methodNotAllowed(w http.ResponseWriter) {
	errResp := NewMethodNotAllowedError()
	http.Error(w, errResp.Message, errResp.StatusCode)
}

func (s *ForumApp) internalError(w http.ResponseWriter, context string, err error) {
	s.log.Printf("%s: %v", context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

type notFoundPageData struct {
	CurrentUser *types.User
}

type homePageData struct {
	CurrentUser *types.User
	Query       string
	Rooms       []types.Room
	RoomCount   int
	Topics      []types.Topic
	Comments    []types.Message
}

func (s *ForumApp) home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	dbRooms, err := s.db.SearchRooms(query)
	if err != nil {
		s.internalError(w, "search rooms", err)
		return
	}

	dbTopics, err := s.db.ListTopics(topicPreviewLimit)
	if err != nil {
		s.internalError(w, "list topics", err)
		return
	}

	dbComments, err := s.db.MessagesByTopicQuery(query)
	if err != nil {
		s.internalError(w, "messages by topic", err)
		return
	}

	s.render(w, http.StatusOK, "home", homePageData{
		CurrentUser: s.currentUser(r),
		Query:       query,
		Rooms:       toRooms(dbRooms),
		RoomCount:   len(dbRooms),
		Topics:      toTopics(dbTopics),
		Comments:    toMessages(dbComments),
	})
}

type roomPageData struct {
	CurrentUser  *types.User
	Room         types.Room
	Messages     []types.Message
	Participants []types.User
}

func (s *ForumApp) roomPage(w http.ResponseWriter, r *http.Request) {
	roomId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	dbRoom, err := s.db.GetRoom(roomId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.notFound(w, r)
			return
		}
		s.internalError(w, "get room", err)
		return
	}

	dbMessages, err := s.db.MessagesByRoom(dbRoom.Id)
	if err != nil {
		s.internalError(w, "messages by room", err)
		return
	}

	dbParticipants, err := s.db.ParticipantsByRoom(dbRoom.Id)
	if err != nil {
		s.internalError(w, "participants by room", err)
		return
	}

	s.render(w, http.StatusOK, "room", roomPageData{
		CurrentUser:  s.currentUser(r),
		Room:         toRoom(dbRoom),
		Messages:     toMessages(dbMessages),
		Participants: toUsers(dbParticipants),
	})
}

func (s *ForumApp) postMessage(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	roomId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	dbRoom, err := s.db.GetRoom(roomId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.notFound(w, r)
			return
		}
		s.internalError(w, "get room", err)
		return
	}

	body := strings.TrimSpace(r.FormValue("body"))
	if body == "" {
		http.Redirect(w, r, fmt.Sprintf("/room/%d", dbRoom.Id), http.StatusSeeOther)
		return
	}

	msg, err := s.db.CreateMessage(database.CreateMessageParams{
		RoomId: dbRoom.Id,
		UserId: userId,
		Body:   body,
	})
	if err != nil {
		s.internalError(w, "create message", err)
		return
	}

	s.stats.Incr(stats.MessagesCreated)
	if s.feed != nil {
		s.feed.Publish(toMessage(msg))
	}

	http.Redirect(w, r, fmt.Sprintf("/room/%d", dbRoom.Id), http.StatusSeeOther)
}

type roomFormPageData struct {
	CurrentUser *types.User
	Room        types.Room
	Topics      []types.Topic
	Errors      []string
}

func (s *ForumApp) roomFormData(r *http.Request, room types.Room) roomFormPageData {
	data := roomFormPageData{
		CurrentUser: s.currentUser(r),
		Room:        room,
	}

	dbTopics, err := s.db.ListTopics(0)
	if err != nil {
		s.log.Printf("list topics: %v", err)
	} else {
		data.Topics = toTopics(dbTopics)
	}

	return data
}

func validateRoomForm(r *http.Request) (name, topicName, description string, errs []string) {
	name = strings.TrimSpace(r.FormValue("name"))
	topicName = strings.TrimSpace(r.FormValue("topic"))
	description = strings.TrimSpace(r.FormValue("description"))

	if name == "" {
		errs = append(errs, "Room name is required")
	}
	if topicName == "" {
		errs = append(errs, "Topic is required")
	}

	return name, topicName, description, errs
}

func (s *ForumApp) createRoom(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, "room_form", s.roomFormData(r, types.Room{}))
	case http.MethodPost:
		name, topicName, description, errs := validateRoomForm(r)
		if len(errs) > 0 {
			data := s.roomFormData(r, types.Room{
				Name:        name,
				Description: description,
				Topic:       types.Topic{Name: topicName},
			})
			data.Errors = errs
			s.render(w, http.StatusOK, "room_form", data)
			return
		}

		sid, err := shortid.Generate()
		if err != nil {
			s.internalError(w, "generate short id", err)
			return
		}

		_, err = s.db.CreateRoom(database.CreateRoomParams{
			Name:        name,
			Description: description,
			TopicName:   topicName,
			HostId:      userId,
			ExternalId:  sid,
		})
		if err != nil {
			s.internalError(w, "create room", err)
			return
		}

		s.stats.Incr(stats.RoomsCreated)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		s.methodNotAllowed(w)
	}
}

func (s *ForumApp) updateRoom(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	roomId, err := strconv.Atoi(r.PathValue("room_id"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	dbRoom, err := s.db.GetRoom(roomId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.notFound(w, r)
			return
		}
		s.internalError(w, "get room", err)
		return
	}

	if dbRoom.HostId != userId {
		s.forbidden(w, "You are not allowed to update this room!")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, "room_form", s.roomFormData(r, toRoom(dbRoom)))
	case http.MethodPost:
		name, topicName, description, errs := validateRoomForm(r)
		if len(errs) > 0 {
			data := s.roomFormData(r, types.Room{
				Id:          dbRoom.Id,
				Name:        name,
				Description: description,
				Topic:       types.Topic{Name: topicName},
			})
			data.Errors = errs
			s.render(w, http.StatusOK, "room_form", data)
			return
		}

		_, err := s.db.UpdateRoom(database.UpdateRoomParams{
			RoomId:      dbRoom.Id,
			Name:        name,
			Description: description,
			TopicName:   topicName,
		})
		if err != nil {
			s.internalError(w, "update room", err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		s.methodNotAllowed(w)
	}
}

type deletePageData struct {
	CurrentUser *types.User
	ObjectName  string
	CancelURL   string
}

func (s *ForumApp) deleteRoom(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	roomId, err := strconv.Atoi(r.PathValue("room_id"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	dbRoom, err := s.db.GetRoom(roomId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.notFound(w, r)
			return
		}
		s.internalError(w, "get room", err)
		return
	}

	// only the host may delete a room, same rule as updates
	if dbRoom.HostId != userId {
		s.forbidden(w, "You are not allowed to delete this room!")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, "delete", deletePageData{
			CurrentUser: s.currentUser(r),
			ObjectName:  dbRoom.Name,
			CancelURL:   fmt.Sprintf("/room/%d", dbRoom.Id),
		})
	case http.MethodPost:
		if err := s.db.DeleteRoom(dbRoom.Id); err != nil {
			s.internalError(w, "delete room", err)
			return
		}

		s.stats.Incr(stats.RoomsDeleted)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		s.methodNotAllowed(w)
	}
}

func (s *ForumApp) deleteComment(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	roomId, err := strconv.Atoi(r.PathValue("room_id"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	commentId, err := strconv.Atoi(r.PathValue("comment_id"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	dbMsg, err := s.db.GetMessage(commentId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.notFound(w, r)
			return
		}
		s.internalError(w, "get message", err)
		return
	}

	if dbMsg.UserId != userId {
		s.forbidden(w, "You are not allowed to delete this message!")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, "delete", deletePageData{
			CurrentUser: s.currentUser(r),
			ObjectName:  dbMsg.Body,
			CancelURL:   fmt.Sprintf("/room/%d", roomId),
		})
	case http.MethodPost:
		if err := s.db.DeleteMessage(dbMsg.Id); err != nil {
			s.internalError(w, "delete message", err)
			return
		}

		s.stats.Incr(stats.MessagesDeleted)
		http.Redirect(w, r, fmt.Sprintf("/room/%d", roomId), http.StatusSeeOther)
	default:
		s.methodNotAllowed(w)
	}
}

type profilePageData struct {
	CurrentUser *types.User
	Profile     types.User
	Rooms       []types.Room
	Messages    []types.Message
	Topics      []types.Topic
}

func (s *ForumApp) userProfile(w http.ResponseWriter, r *http.Request) {
	profileId, err := strconv.Atoi(r.PathValue("user_id"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	dbUser, err := s.db.GetAccountById(profileId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.notFound(w, r)
			return
		}
		s.internalError(w, "get account", err)
		return
	}

	dbRooms, err := s.db.RoomsByHost(dbUser.Id)
	if err != nil {
		s.internalError(w, "rooms by host", err)
		return
	}

	dbMessages, err := s.db.MessagesByAccount(dbUser.Id)
	if err != nil {
		s.internalError(w, "messages by account", err)
		return
	}

	dbTopics, err := s.db.ListTopics(0)
	if err != nil {
		s.internalError(w, "list topics", err)
		return
	}

	s.render(w, http.StatusOK, "profile", profilePageData{
		CurrentUser: s.currentUser(r),
		Profile:     toUser(dbUser),
		Rooms:       toRooms(dbRooms),
		Messages:    toMessages(dbMessages),
		Topics:      toTopics(dbTopics),
	})
}

type editProfilePageData struct {
	CurrentUser *types.User
	Profile     types.User
	Errors      []string
}

func (s *ForumApp) editProfile(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	dbUser, err := s.db.GetAccountById(userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.notFound(w, r)
			return
		}
		s.internalError(w, "get account", err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, "edit_profile", editProfilePageData{
			CurrentUser: s.currentUser(r),
			Profile:     toUser(dbUser),
		})
	case http.MethodPost:
		username := strings.ToLower(strings.TrimSpace(r.FormValue("username")))
		email := strings.TrimSpace(r.FormValue("email"))
		bio := strings.TrimSpace(r.FormValue("bio"))

		data := editProfilePageData{
			CurrentUser: s.currentUser(r),
			Profile: types.User{
				Id:       dbUser.Id,
				Username: username,
				Email:    email,
				Bio:      bio,
			},
		}

		if username == "" {
			data.Errors = append(data.Errors, "Username is required")
			s.render(w, http.StatusOK, "edit_profile", data)
			return
		}

		_, err := s.db.UpdateAccount(database.UpdateAccountParams{
			UserId:   dbUser.Id,
			Username: username,
			Email:    email,
			Bio:      bio,
		})
		if err != nil {
			if database.IsUniqueViolation(err) {
				data.Errors = append(data.Errors, "Username is already taken")
				s.render(w, http.StatusOK, "edit_profile", data)
				return
			}

			s.internalError(w, "update account", err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/profile/%d", dbUser.Id), http.StatusSeeOther)
	default:
		s.methodNotAllowed(w)
	}
}

type topicsPageData struct {
	CurrentUser *types.User
	Query       string
	Topics      []types.Topic
}

func (s *ForumApp) topicsPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	dbTopics, err := s.db.SearchTopics(query)
	if err != nil {
		s.internalError(w, "search topics", err)
		return
	}

	s.render(w, http.StatusOK, "topics", topicsPageData{
		CurrentUser: s.currentUser(r),
		Query:       query,
		Topics:      toTopics(dbTopics),
	})
}

type activityPageData struct {
	CurrentUser *types.User
	Messages    []types.Message
}

func (s *ForumApp) activityPage(w http.ResponseWriter, r *http.Request) {
	dbMessages, err := s.db.RecentMessages(0)
	if err != nil {
		s.internalError(w, "recent messages", err)
		return
	}

	s.render(w, http.StatusOK, "activity", activityPageData{
		CurrentUser: s.currentUser(r),
		Messages:    toMessages(dbMessages),
	})
}

func (s *ForumApp) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Printf("health check: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Write([]byte("OK"))
}
