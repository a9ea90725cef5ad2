package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/response"
)

// mockBoardService is a mock implementation of service.BoardService
type mockBoardService struct {
	GetBoardFunc     func(ctx context.Context) (*dto.BoardResponse, error)
	RefreshBoardFunc func(ctx context.Context) (*dto.BoardResponse, error)
}

func (m *mockBoardService) GetBoard(ctx context.Context) (*dto.BoardResponse, error) {
	return m.GetBoardFunc(ctx)
}

func (m *mockBoardService) RefreshBoard(ctx context.Context) (*dto.BoardResponse, error) {
	return m.RefreshBoardFunc(ctx)
}

func setupBoardRouter(svc *mockBoardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBoardHandler(svc)
	r.GET("/board", h.GetBoard)
	r.POST("/board/refresh", h.RefreshBoard)
	return r
}

func TestGetBoard_ReturnsEnvelope(t *testing.T) {
	svc := &mockBoardService{
		GetBoardFunc: func(ctx context.Context) (*dto.BoardResponse, error) {
			return &dto.BoardResponse{
				Categories: []dto.CategoryResponse{
					{Name: "To Do", Position: 0},
					{Name: "Done", Position: 1},
				},
			}, nil
		},
	}
	r := setupBoardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.BoardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.Categories, 2)
	assert.Equal(t, "To Do", body.Data.Categories[0].Name)
}

func TestGetBoard_Unauthorized(t *testing.T) {
	svc := &mockBoardService{
		GetBoardFunc: func(ctx context.Context) (*dto.BoardResponse, error) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "User not authenticated", "")
		},
	}
	r := setupBoardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body struct {
		Success bool               `json:"success"`
		Error   response.ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, response.ErrCodeUnauthorized, body.Error.Code)
}

func TestRefreshBoard_BypassesCache(t *testing.T) {
	refreshed := false
	svc := &mockBoardService{
		RefreshBoardFunc: func(ctx context.Context) (*dto.BoardResponse, error) {
			refreshed = true
			return &dto.BoardResponse{}, nil
		},
	}
	r := setupBoardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/board/refresh", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, refreshed)
}
