package api

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/npezzotti/go-forum/internal/database"
	"github.com/npezzotti/go-forum/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testRoom = database.Room{
	Id:           1,
	ExternalId:   "abc123",
	Name:         "Gophers",
	Description:  "All things Go",
	TopicId:      1,
	TopicName:    "Programming",
	HostId:       1,
	HostUsername: "alice",
	CreatedAt:    time.Now().UTC(),
	UpdatedAt:    time.Now().UTC(),
}

func TestHome(t *testing.T) {
	tcases := []struct {
		name         string
		query        string
		rooms        []database.Room
		searchErr    error
		expectedCode int
	}{
		{
			name:         "renders room listing",
			query:        "",
			rooms:        []database.Room{testRoom},
			expectedCode: http.StatusOK,
		},
		{
			name:         "search is forwarded to the repository",
			query:        "go",
			rooms:        []database.Room{testRoom},
			expectedCode: http.StatusOK,
		},
		{
			name:         "repository error",
			query:        "",
			searchErr:    errors.New("connection refused"),
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockForumRepository{}
			defer mockRepo.AssertExpectations(t)

			mockRepo.On("SearchRooms", tc.query).Return(tc.rooms, tc.searchErr).Once()
			if tc.searchErr == nil {
				mockRepo.On("ListTopics", topicPreviewLimit).
					Return([]database.Topic{{Id: 1, Name: "Programming", RoomCount: 1}}, nil).Once()
				mockRepo.On("MessagesByTopicQuery", tc.query).
					Return([]database.Message{}, nil).Once()
			}

			app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/?q="+url.QueryEscape(tc.query), nil)
			app.home(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusOK {
				assert.Contains(t, rr.Body.String(), testRoom.Name)
			}
		})
	}
}

func TestRoomPage(t *testing.T) {
	tcases := []struct {
		name         string
		roomId       string
		mockSetup    func(mockRepo *database.MockForumRepository)
		expectedCode int
	}{
		{
			name:   "renders room with messages and participants",
			roomId: "1",
			mockSetup: func(mockRepo *database.MockForumRepository) {
				mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()
				mockRepo.On("MessagesByRoom", 1).Return([]database.Message{
					{Id: 1, RoomId: 1, UserId: 1, AuthorUsername: "alice", Body: "hello"},
				}, nil).Once()
				mockRepo.On("ParticipantsByRoom", 1).Return([]database.User{
					{Id: 1, Username: "alice"},
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "unknown room",
			roomId: "42",
			mockSetup: func(mockRepo *database.MockForumRepository) {
				mockRepo.On("GetRoom", 42).Return(database.Room{}, sql.ErrNoRows).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "non-numeric id",
			roomId:       "nope",
			mockSetup:    func(mockRepo *database.MockForumRepository) {},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockForumRepository{}
			defer mockRepo.AssertExpectations(t)
			tc.mockSetup(mockRepo)

			app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/room/"+tc.roomId, nil)
			req.SetPathValue("id", tc.roomId)
			app.roomPage(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusOK {
				assert.Contains(t, rr.Body.String(), testRoom.Name)
				assert.Contains(t, rr.Body.String(), "hello")
			}
		})
	}
}

func TestPostMessage(t *testing.T) {
	t.Run("creates message and redirects back to room", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)
		mockStats := &stats.MockStatsUpdater{}
		defer mockStats.AssertExpectations(t)

		mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()
		mockRepo.On("CreateMessage", database.CreateMessageParams{
			RoomId: 1,
			UserId: 2,
			Body:   "hello room",
		}).Return(database.Message{Id: 9, RoomId: 1, UserId: 2, Body: "hello room"}, nil).Once()
		mockStats.On("Incr", stats.MessagesCreated).Once()

		app := newTestApp(t, mockRepo, mockStats)

		form := url.Values{}
		form.Set("body", "hello room")
		req := newFormRequest(http.MethodPost, "/room/1", form)
		req.SetPathValue("id", "1")
		req = req.WithContext(WithUserId(req.Context(), 2))

		rr := httptest.NewRecorder()
		app.postMessage(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/room/1", rr.Header().Get("Location"))
	})

	t.Run("unauthenticated request is redirected to login", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		form := url.Values{}
		form.Set("body", "hello room")
		req := newFormRequest(http.MethodPost, "/room/1", form)
		req.SetPathValue("id", "1")

		rr := httptest.NewRecorder()
		app.postMessage(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login/", rr.Header().Get("Location"))
		mockRepo.AssertNotCalled(t, "CreateMessage", mock.Anything)
	})

	t.Run("blank message is ignored", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		form := url.Values{}
		form.Set("body", "   ")
		req := newFormRequest(http.MethodPost, "/room/1", form)
		req.SetPathValue("id", "1")
		req = req.WithContext(WithUserId(req.Context(), 2))

		rr := httptest.NewRecorder()
		app.postMessage(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/room/1", rr.Header().Get("Location"))
		mockRepo.AssertNotCalled(t, "CreateMessage", mock.Anything)
	})
}

func TestCreateRoom(t *testing.T) {
	t.Run("get renders form with topic suggestions", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("ListTopics", 0).Return([]database.Topic{{Id: 1, Name: "Programming"}}, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodGet, "/create_room/", nil)
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.createRoom(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Programming")
	})

	t.Run("post creates room for the session user", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)
		mockStats := &stats.MockStatsUpdater{}
		defer mockStats.AssertExpectations(t)

		mockRepo.On("CreateRoom", mock.MatchedBy(func(params database.CreateRoomParams) bool {
			return params.Name == "Gophers" &&
				params.TopicName == "Programming" &&
				params.HostId == 1 &&
				params.ExternalId != ""
		})).Return(testRoom, nil).Once()
		mockStats.On("Incr", stats.RoomsCreated).Once()

		app := newTestApp(t, mockRepo, mockStats)

		form := url.Values{}
		form.Set("name", "Gophers")
		form.Set("topic", "Programming")
		form.Set("description", "All things Go")
		req := newFormRequest(http.MethodPost, "/create_room/", form)
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.createRoom(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})

	t.Run("post without name re-renders the form", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("ListTopics", 0).Return([]database.Topic{}, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		form := url.Values{}
		form.Set("topic", "Programming")
		req := newFormRequest(http.MethodPost, "/create_room/", form)
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.createRoom(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Room name is required")
		mockRepo.AssertNotCalled(t, "CreateRoom", mock.Anything)
	})
}

func TestUpdateRoom(t *testing.T) {
	t.Run("host can update the room", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()
		mockRepo.On("UpdateRoom", database.UpdateRoomParams{
			RoomId:      1,
			Name:        "Gophers v2",
			Description: "Still Go",
			TopicName:   "Programming",
		}).Return(testRoom, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		form := url.Values{}
		form.Set("name", "Gophers v2")
		form.Set("topic", "Programming")
		form.Set("description", "Still Go")
		req := newFormRequest(http.MethodPost, "/update_room/1", form)
		req.SetPathValue("room_id", "1")
		req = req.WithContext(WithUserId(req.Context(), testRoom.HostId))

		rr := httptest.NewRecorder()
		app.updateRoom(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})

	t.Run("non-host is forbidden", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodGet, "/update_room/1", nil)
		req.SetPathValue("room_id", "1")
		req = req.WithContext(WithUserId(req.Context(), testRoom.HostId+1))

		rr := httptest.NewRecorder()
		app.updateRoom(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "You are not allowed to update this room!")
		mockRepo.AssertNotCalled(t, "UpdateRoom", mock.Anything)
	})

	t.Run("unknown room", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetRoom", 42).Return(database.Room{}, sql.ErrNoRows).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodGet, "/update_room/42", nil)
		req.SetPathValue("room_id", "42")
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.updateRoom(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteRoom(t *testing.T) {
	t.Run("get renders confirmation page", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodGet, "/delete_room/1", nil)
		req.SetPathValue("room_id", "1")
		req = req.WithContext(WithUserId(req.Context(), testRoom.HostId))

		rr := httptest.NewRecorder()
		app.deleteRoom(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), testRoom.Name)
		mockRepo.AssertNotCalled(t, "DeleteRoom", mock.Anything)
	})

	t.Run("post deletes the room", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)
		mockStats := &stats.MockStatsUpdater{}
		defer mockStats.AssertExpectations(t)

		mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()
		mockRepo.On("DeleteRoom", 1).Return(nil).Once()
		mockStats.On("Incr", stats.RoomsDeleted).Once()

		app := newTestApp(t, mockRepo, mockStats)

		req := httptest.NewRequest(http.MethodPost, "/delete_room/1", nil)
		req.SetPathValue("room_id", "1")
		req = req.WithContext(WithUserId(req.Context(), testRoom.HostId))

		rr := httptest.NewRecorder()
		app.deleteRoom(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})

	t.Run("non-host cannot delete someone else's room", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodPost, "/delete_room/1", nil)
		req.SetPathValue("room_id", "1")
		req = req.WithContext(WithUserId(req.Context(), testRoom.HostId+1))

		rr := httptest.NewRecorder()
		app.deleteRoom(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "You are not allowed to delete this room!")
		mockRepo.AssertNotCalled(t, "DeleteRoom", mock.Anything)
	})
}

func TestDeleteComment(t *testing.T) {
	msg := database.Message{Id: 7, RoomId: 1, UserId: 2, Body: "delete me"}

	t.Run("author deletes their message", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)
		mockStats := &stats.MockStatsUpdater{}
		defer mockStats.AssertExpectations(t)

		mockRepo.On("GetMessage", 7).Return(msg, nil).Once()
		mockRepo.On("DeleteMessage", 7).Return(nil).Once()
		mockStats.On("Incr", stats.MessagesDeleted).Once()

		app := newTestApp(t, mockRepo, mockStats)

		req := httptest.NewRequest(http.MethodPost, "/delete_comment/1/7", nil)
		req.SetPathValue("room_id", "1")
		req.SetPathValue("comment_id", "7")
		req = req.WithContext(WithUserId(req.Context(), msg.UserId))

		rr := httptest.NewRecorder()
		app.deleteComment(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/room/1", rr.Header().Get("Location"))
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetMessage", 7).Return(msg, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodPost, "/delete_comment/1/7", nil)
		req.SetPathValue("room_id", "1")
		req.SetPathValue("comment_id", "7")
		req = req.WithContext(WithUserId(req.Context(), msg.UserId+1))

		rr := httptest.NewRecorder()
		app.deleteComment(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "You are not allowed to delete this message!")
		mockRepo.AssertNotCalled(t, "DeleteMessage", mock.Anything)
	})

	t.Run("unknown message", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetMessage", 99).Return(database.Message{}, sql.ErrNoRows).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodGet, "/delete_comment/1/99", nil)
		req.SetPathValue("room_id", "1")
		req.SetPathValue("comment_id", "99")
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.deleteComment(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUserProfile(t *testing.T) {
	t.Run("renders profile with rooms and activity", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetAccountById", 1).Return(database.User{Id: 1, Username: "alice", Bio: "gopher"}, nil).Once()
		mockRepo.On("RoomsByHost", 1).Return([]database.Room{testRoom}, nil).Once()
		mockRepo.On("MessagesByAccount", 1).Return([]database.Message{
			{Id: 1, RoomId: 1, UserId: 1, Body: "first post"},
		}, nil).Once()
		mockRepo.On("ListTopics", 0).Return([]database.Topic{}, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodGet, "/profile/1", nil)
		req.SetPathValue("user_id", "1")
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.userProfile(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "alice")
		assert.Contains(t, rr.Body.String(), testRoom.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetAccountById", 42).Return(database.User{}, sql.ErrNoRows).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		req := httptest.NewRequest(http.MethodGet, "/profile/42", nil)
		req.SetPathValue("user_id", "42")
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.userProfile(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestEditProfile(t *testing.T) {
	user := database.User{Id: 1, Username: "alice", Email: "alice@example.com"}

	t.Run("post updates the session user", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetAccountById", 1).Return(user, nil).Once()
		mockRepo.On("UpdateAccount", database.UpdateAccountParams{
			UserId:   1,
			Username: "alice2",
			Email:    "alice@example.com",
			Bio:      "gopher",
		}).Return(database.User{Id: 1, Username: "alice2"}, nil).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		form := url.Values{}
		form.Set("username", "Alice2")
		form.Set("email", "alice@example.com")
		form.Set("bio", "gopher")
		req := newFormRequest(http.MethodPost, "/edit_profile/", form)
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.editProfile(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/profile/1", rr.Header().Get("Location"))
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockRepo := &database.MockForumRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("GetAccountById", 1).Return(user, nil).Once()
		mockRepo.On("UpdateAccount", mock.Anything).
			Return(database.User{}, &pq.Error{Code: "23505"}).Once()

		app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

		form := url.Values{}
		form.Set("username", "taken")
		req := newFormRequest(http.MethodPost, "/edit_profile/", form)
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.editProfile(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Username is already taken")
	})
}

func TestTopicsPage(t *testing.T) {
	mockRepo := &database.MockForumRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("SearchTopics", "pro").Return([]database.Topic{
		{Id: 1, Name: "Programming", RoomCount: 3},
	}, nil).Once()

	app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

	rr := httptest.NewRecorder()
	app.topicsPage(rr, httptest.NewRequest(http.MethodGet, "/topics/?q=pro", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Programming")
}

func TestActivityPage(t *testing.T) {
	mockRepo := &database.MockForumRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("RecentMessages", 0).Return([]database.Message{
		{Id: 1, RoomId: 1, RoomName: "Gophers", AuthorUsername: "alice", Body: "latest news"},
	}, nil).Once()

	app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

	rr := httptest.NewRecorder()
	app.activityPage(rr, httptest.NewRequest(http.MethodGet, "/activity/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "latest news")
}

func TestMethodNotAllowed(t *testing.T) {
	mockRepo := &database.MockForumRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetRoom", 1).Return(testRoom, nil).Once()

	app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

	t.Run("createRoom", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/create_room/", nil)
		req = req.WithContext(WithUserId(req.Context(), 1))

		rr := httptest.NewRecorder()
		app.createRoom(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.Contains(t, rr.Body.String(), "method not allowed")
	})

	t.Run("deleteRoom", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/delete_room/1", nil)
		req.SetPathValue("room_id", "1")
		req = req.WithContext(WithUserId(req.Context(), testRoom.HostId))

		rr := httptest.NewRecorder()
		app.deleteRoom(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.Contains(t, rr.Body.String(), "method not allowed")
	})
}

func TestHealthCheck(t *testing.T) {
	tcases := []struct {
		name         string
		pingErr      error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "healthy",
			pingErr:      nil,
			expectedCode: http.StatusOK,
			expectedBody: "OK",
		},
		{
			name:         "database unreachable",
			pingErr:      errors.New("connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockForumRepository{}
			defer mockRepo.AssertExpectations(t)

			mockRepo.On("Ping").Return(tc.pingErr).Once()

			app := newTestApp(t, mockRepo, &stats.MockStatsUpdater{})

			rr := httptest.NewRecorder()
			app.healthCheck(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}
