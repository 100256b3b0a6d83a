package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"tasktrack-api/domain"
)

// Register wires up all routes on the provided Echo instance.
func Register(e *echo.Echo, store TaskStore, logger *log.Logger) {
	e.GET("/", homePage)
	e.GET("/add_task", addTaskPage)
	e.GET("/edit_task/:id", editTaskPage(store))
	e.GET("/favicon.ico", favicon)
	e.GET("/healthz", healthz)

	e.GET("/tasks", listTasks(store, logger))
	e.GET("/tasks/:id", getTask(store, logger))
	e.POST("/tasks", createTask(store, logger))
	e.PUT("/tasks/:id", updateTask(store, logger))
	e.DELETE("/tasks/:id", deleteTask(store, logger))
}

func favicon(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// taskID parses the :id path parameter. The original route only matched
// numeric ids, so anything unparsable is indistinguishable from a missing
// task.
func taskID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func taskNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: "Task not found"})
}

// decodeTaskPayload reads a JSON task payload from the request body. An empty
// body decodes to the zero payload so validation reports the missing fields
// instead of a generic decode failure.
func decodeTaskPayload(body io.Reader) (domain.TaskPayload, error) {
	var p domain.TaskPayload
	dec := sonic.ConfigStd.NewDecoder(io.LimitReader(body, taskPayloadMaxSize))
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.TaskPayload{}, nil
		}
		return domain.TaskPayload{}, err
	}
	return p, nil
}

func listTasks(store TaskStore, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, logger, "GET /tasks")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		tasks, fetchErr := store.ListTasks(ctx)
		metrics.ObserveStore(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to list tasks"})
			return err
		}
		metrics.SetTasksReturned(len(tasks))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, tasks)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func getTask(store TaskStore, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, logger, "GET /tasks/:id")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		id, ok := taskID(c)
		if !ok {
			metrics.SetErrorStage("not_found")
			err = taskNotFound(c)
			return err
		}

		fetchStart := time.Now()
		task, fetchErr := store.GetTask(ctx, id)
		metrics.ObserveStore(time.Since(fetchStart))
		if errors.Is(fetchErr, domain.ErrTaskNotFound) {
			metrics.SetErrorStage("not_found")
			err = taskNotFound(c)
			return err
		}
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch task"})
			return err
		}
		err = c.JSON(http.StatusOK, task)
		return err
	}
}

func createTask(store TaskStore, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, logger, "POST /tasks")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		decodeStart := time.Now()
		payload, decodeErr := decodeTaskPayload(c.Request().Body)
		metrics.ObserveDecode(time.Since(decodeStart))
		if decodeErr != nil {
			metrics.SetErrorStage("decode")
			err = c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
			return err
		}

		if details := payload.Validate(false); len(details) > 0 {
			metrics.SetErrorStage("validate")
			err = c.JSON(http.StatusBadRequest, validationFailedResponse{Error: "Validation failed", Details: details})
			return err
		}

		task := domain.Task{
			Title:       domain.Sanitize(stringValue(payload.Title)),
			Description: domain.Sanitize(stringValue(payload.Description)),
			DueDate:     payload.DueDate(),
			IsDone:      payload.IsDone != nil && *payload.IsDone,
		}

		storeStart := time.Now()
		created, insertErr := store.InsertTask(ctx, task)
		metrics.ObserveStore(time.Since(storeStart))
		if insertErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(insertErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to create task"})
			return err
		}
		taskMutations.WithLabelValues("create").Inc()

		encodeStart := time.Now()
		err = c.JSON(http.StatusCreated, created)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func updateTask(store TaskStore, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, logger, "PUT /tasks/:id")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		id, ok := taskID(c)
		if !ok {
			metrics.SetErrorStage("not_found")
			err = taskNotFound(c)
			return err
		}

		// Existence check first: a missing task is reported before the
		// payload is inspected.
		if _, getErr := store.GetTask(ctx, id); getErr != nil {
			if errors.Is(getErr, domain.ErrTaskNotFound) {
				metrics.SetErrorStage("not_found")
				err = taskNotFound(c)
				return err
			}
			metrics.SetErrorStage("storage")
			c.Logger().Error(getErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to update task"})
			return err
		}

		decodeStart := time.Now()
		payload, decodeErr := decodeTaskPayload(c.Request().Body)
		metrics.ObserveDecode(time.Since(decodeStart))
		if decodeErr != nil {
			metrics.SetErrorStage("decode")
			err = c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
			return err
		}

		if details := payload.Validate(true); len(details) > 0 {
			metrics.SetErrorStage("validate")
			err = c.JSON(http.StatusBadRequest, validationFailedResponse{Error: "Validation failed", Details: details})
			return err
		}

		upd := domain.TaskUpdate{
			DueDate: payload.DueDate(),
			IsDone:  payload.IsDone,
		}
		if payload.Title != nil {
			title := domain.Sanitize(*payload.Title)
			upd.Title = &title
		}
		if payload.Description != nil {
			description := domain.Sanitize(*payload.Description)
			upd.Description = &description
		}

		storeStart := time.Now()
		updated, updateErr := store.UpdateTask(ctx, id, upd)
		metrics.ObserveStore(time.Since(storeStart))
		if errors.Is(updateErr, domain.ErrTaskNotFound) {
			metrics.SetErrorStage("not_found")
			err = taskNotFound(c)
			return err
		}
		if updateErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(updateErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to update task"})
			return err
		}
		taskMutations.WithLabelValues("update").Inc()

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, updated)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func deleteTask(store TaskStore, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, logger, "DELETE /tasks/:id")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		id, ok := taskID(c)
		if !ok {
			metrics.SetErrorStage("not_found")
			err = taskNotFound(c)
			return err
		}

		storeStart := time.Now()
		deleteErr := store.DeleteTask(ctx, id)
		metrics.ObserveStore(time.Since(storeStart))
		if errors.Is(deleteErr, domain.ErrTaskNotFound) {
			metrics.SetErrorStage("not_found")
			err = taskNotFound(c)
			return err
		}
		if deleteErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(deleteErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to delete task"})
			return err
		}
		taskMutations.WithLabelValues("delete").Inc()

		err = c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
		return err
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
