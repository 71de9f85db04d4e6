package httpapi

import (
	"encoding/json"
	"time"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
}

type createTaskRequest struct {
	Title    string          `json:"title"`
	Type     string          `json:"type"`
	Body     json.RawMessage `json:"body"`
	Category uint            `json:"category"`
	Shared   *bool           `json:"shared"`
}

// updateTaskRequest is a partial patch: absent fields keep their stored
// values, and shared must distinguish an explicit false from absence.
type updateTaskRequest struct {
	Title    *string         `json:"title"`
	Type     *string         `json:"type"`
	Body     json.RawMessage `json:"body"`
	Category *uint           `json:"category"`
	Shared   *bool           `json:"shared"`
}

type taskResponse struct {
	ID        uint              `json:"id"`
	Title     string            `json:"title"`
	Type      string            `json:"type"`
	Body      json.RawMessage   `json:"body"`
	Shared    bool              `json:"shared"`
	Category  *categoryResponse `json:"category,omitempty"`
	Owner     *userResponse     `json:"owner,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type taskListResponse struct {
	Items      []taskResponse `json:"items"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	PageCount  int            `json:"pageCount"`
}
