package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	handlers "miniblog/internal/handler"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"miniblog/internal/service"
)

const testCommentID = "b3e5d7f9-54a1-4c8b-9e2d-666666666666"

func TestCreateCommentHandler_Success(t *testing.T) {
	mockCommentService := new(MockCommentService)
	handler := newTestHandlers()
	handler.CommentService = mockCommentService

	mockCommentService.On("CreateComment", mock.Anything, repository.CreateCommentRequest{
		PostID:  testPostID,
		UserID:  aliceID,
		Content: "Nice post",
	}).Return(&models.Comment{
		CommentID: testCommentID,
		Content:   "Nice post",
		UserID:    aliceID,
		PostID:    testPostID,
	}, nil)

	body, _ := json.Marshal(map[string]string{"content": "Nice post"})
	req := httptest.NewRequest(http.MethodPost, "/posts/"+testPostID+"/comments/", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"id": testPostID})
	req = withIdentity(req, alice())
	rr := httptest.NewRecorder()

	handler.CreateComment(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, testCommentID, response["id"])
	// the author always comes from the token, not the payload
	assert.Equal(t, aliceID, response["userId"])

	mockCommentService.AssertExpectations(t)
}

func TestCreateCommentHandler_PostNotFound(t *testing.T) {
	mockCommentService := new(MockCommentService)
	handler := newTestHandlers()
	handler.CommentService = mockCommentService

	mockCommentService.On("CreateComment", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("пост с ID %s: %w", testPostID, repository.ErrNotFound))

	body, _ := json.Marshal(map[string]string{"content": "Orphan comment"})
	req := httptest.NewRequest(http.MethodPost, "/posts/"+testPostID+"/comments/", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"id": testPostID})
	req = withIdentity(req, alice())
	rr := httptest.NewRecorder()

	handler.CreateComment(rr, req)

	assertJSONError(t, rr, http.StatusNotFound, handlers.KindNotFound)
}

func TestCreateCommentHandler_EmptyContent(t *testing.T) {
	mockCommentService := new(MockCommentService)
	handler := newTestHandlers()
	handler.CommentService = mockCommentService

	body, _ := json.Marshal(map[string]string{"content": ""})
	req := httptest.NewRequest(http.MethodPost, "/posts/"+testPostID+"/comments/", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"id": testPostID})
	req = withIdentity(req, alice())
	rr := httptest.NewRecorder()

	handler.CreateComment(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, handlers.KindValidation)
	mockCommentService.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
}

func TestDeleteCommentHandler_NotOwner(t *testing.T) {
	mockCommentService := new(MockCommentService)
	handler := newTestHandlers()
	handler.CommentService = mockCommentService

	mockCommentService.On("DeleteComment", mock.Anything, testPostID, testCommentID, bobID).
		Return(service.ErrNotOwner)

	req := httptest.NewRequest(http.MethodDelete, "/posts/"+testPostID+"/comments/"+testCommentID+"/", nil)
	req = mux.SetURLVars(req, map[string]string{"id": testPostID, "commentId": testCommentID})
	req = withIdentity(req, &models.User{UserID: bobID, Username: "bob"})
	rr := httptest.NewRecorder()

	handler.DeleteComment(rr, req)

	assertJSONError(t, rr, http.StatusForbidden, handlers.KindForbidden)
}

func TestGetCommentsHandler_PostNotFound(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	handler := newTestHandlers()
	handler.PostRepo = mockPostRepo

	mockPostRepo.On("GetByID", mock.Anything, testPostID).
		Return(nil, fmt.Errorf("пост с ID %s: %w", testPostID, repository.ErrNotFound))

	req := httptest.NewRequest(http.MethodGet, "/posts/"+testPostID+"/comments/", nil)
	req = mux.SetURLVars(req, map[string]string{"id": testPostID})
	rr := httptest.NewRecorder()

	handler.GetComments(rr, req)

	assertJSONError(t, rr, http.StatusNotFound, handlers.KindNotFound)
}

func TestGetCommentsHandler_Paginated(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	mockCommentRepo := new(MockCommentRepository)
	handler := newTestHandlers()
	handler.PostRepo = mockPostRepo
	handler.CommentRepo = mockCommentRepo

	mockPostRepo.On("GetByID", mock.Anything, testPostID).
		Return(&models.Post{PostID: testPostID, UserID: aliceID}, nil)
	mockCommentRepo.On("ListByPostID", mock.Anything, testPostID, 10, 0).
		Return([]models.Comment{
			{CommentID: testCommentID, Content: "Nice post", UserID: aliceID, PostID: testPostID},
		}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts/"+testPostID+"/comments/", nil)
	req = mux.SetURLVars(req, map[string]string{"id": testPostID})
	rr := httptest.NewRecorder()

	handler.GetComments(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)

	items, ok := response["items"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, items, 1)
}
