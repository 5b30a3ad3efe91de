package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"chat_web/internal/middleware"
	"chat_web/internal/models"
	"chat_web/internal/utils"
)

func TestListMessages_RequiresValidToken(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)

	repo := &fakeMessageRepo{}
	repo.Create(&models.Message{ID: "m1", UserID: "u1", Username: "alice", Text: "hi", Timestamp: 1})
	repo.Create(&models.Message{ID: "m2", UserID: "u2", Username: "bob", Text: "yo", Timestamp: 2})

	router := gin.New()
	authorized := router.Group("/api", middleware.AuthMiddleware())
	authorized.GET("/messages", NewMessageHandler(repo).ListMessages)

	// 沒有 token → 401
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/messages", nil))
	req.Equal(http.StatusUnauthorized, w.Code)

	// 帶合法 token → 按時間降序返回消息
	token, err := utils.GenerateToken(1, "alice")
	req.NoError(err)

	w = httptest.NewRecorder()
	getReq := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	getReq.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, getReq)
	req.Equal(http.StatusOK, w.Code)

	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	req.Len(resp.Messages, 2)
	req.Equal("m2", resp.Messages[0].ID)
	req.Equal("m1", resp.Messages[1].ID)
}
