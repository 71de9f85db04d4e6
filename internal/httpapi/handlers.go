// Package httpapi maps service outcomes onto the wire: echo routing, request
// decoding and the error-to-status translation.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"tasknest/internal/model"
	"tasknest/internal/query"
	"tasknest/internal/service"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, tasks *service.TaskService, categories *service.CategoryService, authSvc *service.AuthService, logger *log.Logger) {
	e.GET("/healthz", healthz())

	e.POST("/api/auth/register", register(authSvc, logger))
	e.POST("/api/auth/login", login(authSvc, logger))

	g := e.Group("/api", requireUser(authSvc))
	g.POST("/auth/logout", logout(authSvc, logger))

	g.GET("/tasks", listTasks(tasks, logger))
	g.POST("/tasks", createTask(tasks, logger))
	g.GET("/tasks/:id", getTask(tasks, logger))
	g.PUT("/tasks/:id", updateTask(tasks, logger))
	g.DELETE("/tasks/:id", deleteTask(tasks, logger))

	g.GET("/categories", listCategories(categories, logger))
	g.POST("/categories", createCategory(categories, logger))
	g.DELETE("/categories/:id", deleteCategory(categories, logger))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func register(authSvc *service.AuthService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req credentialsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "invalid body"})
		}
		user, err := authSvc.Register(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
	}
}

func login(authSvc *service.AuthService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req credentialsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "invalid body"})
		}
		token, user, err := authSvc.Login(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, loginResponse{
			Token: token,
			User:  userResponse{ID: user.ID, Username: user.Username},
		})
	}
}

func logout(authSvc *service.AuthService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := authSvc.Logout(c.Request().Context(), sessionID(c)); err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, msgResponse{Msg: "logged out"})
	}
}

func listTasks(tasks *service.TaskService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		params, err := query.ParseListParams(
			c.QueryParam("page"),
			c.QueryParam("limit"),
			c.QueryParam("sort"),
			c.QueryParam("filter"),
		)
		if err != nil {
			return writeError(c, logger, err)
		}
		page, err := tasks.List(c.Request().Context(), userID(c), params)
		if err != nil {
			return writeError(c, logger, err)
		}

		resp := taskListResponse{
			Items:      make([]taskResponse, 0, len(page.Items)),
			TotalCount: page.TotalCount,
			Page:       page.Page,
			Limit:      page.Limit,
			PageCount:  page.PageCount,
		}
		for i := range page.Items {
			item, err := newTaskResponse(&page.Items[i])
			if err != nil {
				return writeError(c, logger, err)
			}
			resp.Items = append(resp.Items, item)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func createTask(tasks *service.TaskService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createTaskRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "invalid body"})
		}
		input := service.TaskInput{
			Title:      req.Title,
			Type:       req.Type,
			Body:       req.Body,
			CategoryID: req.Category,
		}
		if req.Shared != nil {
			input.Shared = *req.Shared
		}
		task, err := tasks.Create(c.Request().Context(), userID(c), input)
		if err != nil {
			return writeError(c, logger, err)
		}
		return writeTask(c, logger, http.StatusCreated, task)
	}
}

func getTask(tasks *service.TaskService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := taskID(c)
		if err != nil {
			return writeError(c, logger, err)
		}
		task, err := tasks.Get(c.Request().Context(), userID(c), id)
		if err != nil {
			return writeError(c, logger, err)
		}
		return writeTask(c, logger, http.StatusOK, task)
	}
}

func updateTask(tasks *service.TaskService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := taskID(c)
		if err != nil {
			return writeError(c, logger, err)
		}
		var req updateTaskRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "invalid body"})
		}
		patch := service.TaskPatch{
			Title:      req.Title,
			Type:       req.Type,
			Body:       req.Body,
			CategoryID: req.Category,
			Shared:     req.Shared,
		}
		task, err := tasks.Update(c.Request().Context(), userID(c), id, patch)
		if err != nil {
			return writeError(c, logger, err)
		}
		return writeTask(c, logger, http.StatusOK, task)
	}
}

func deleteTask(tasks *service.TaskService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := taskID(c)
		if err != nil {
			return writeError(c, logger, err)
		}
		if err := tasks.Delete(c.Request().Context(), userID(c), id); err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, msgResponse{Msg: "task deleted"})
	}
}

func listCategories(categories *service.CategoryService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := categories.List(c.Request().Context(), userID(c))
		if err != nil {
			return writeError(c, logger, err)
		}
		resp := make([]categoryResponse, 0, len(list))
		for _, cat := range list {
			resp = append(resp, categoryResponse{ID: cat.ID, Name: cat.Name})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func createCategory(categories *service.CategoryService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req categoryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "invalid body"})
		}
		category, err := categories.Create(c.Request().Context(), userID(c), req.Name)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name})
	}
}

func deleteCategory(categories *service.CategoryService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Param("id")
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "invalid category id"})
		}
		if err := categories.Delete(c.Request().Context(), userID(c), uint(id)); err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, msgResponse{Msg: "category deleted"})
	}
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidTaskID
	}
	return uint(id), nil
}

var errInvalidTaskID = errors.New("invalid task id")

func newTaskResponse(task *model.Task) (taskResponse, error) {
	body, err := bodyJSON(task)
	if err != nil {
		return taskResponse{}, err
	}
	resp := taskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Type:      task.Type,
		Body:      body,
		Shared:    task.Shared,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if task.Category != nil {
		resp.Category = &categoryResponse{ID: task.Category.ID, Name: task.Category.Name}
	}
	if task.User != nil {
		resp.Owner = &userResponse{ID: task.User.ID, Username: task.User.Username}
	}
	return resp, nil
}

// bodyJSON renders the stored body in its wire form: a JSON string for text
// tasks, a JSON array for list tasks.
func bodyJSON(task *model.Task) (json.RawMessage, error) {
	body, err := task.DecodeBody()
	if err != nil {
		return nil, err
	}
	if task.Type == model.TypeList {
		return json.Marshal(body.List)
	}
	return json.Marshal(body.Text)
}

func writeTask(c echo.Context, logger *log.Logger, status int, task *model.Task) error {
	resp, err := newTaskResponse(task)
	if err != nil {
		return writeError(c, logger, err)
	}
	return c.JSON(status, resp)
}

// writeError translates a failure into a wire response. Caller-attributable
// failures carry their message; anything else is logged and reported
// generically.
func writeError(c echo.Context, logger *log.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, msgResponse{Msg: err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, msgResponse{Msg: err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, msgResponse{Msg: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, msgResponse{Msg: "invalid credentials"})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, query.ErrInvalidParam),
		errors.Is(err, query.ErrMalformedFilter),
		errors.Is(err, errInvalidTaskID):
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: err.Error()})
	default:
		logger.WithError(err).Error("request failed")
		return c.JSON(http.StatusInternalServerError, msgResponse{Msg: "internal server error"})
	}
}
