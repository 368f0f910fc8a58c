package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "taskdeck.com/taskdeck/internal/data_models"
	apperrors "taskdeck.com/taskdeck/internal/errors"
	middleware "taskdeck.com/taskdeck/internal/http/middlewares"
	"taskdeck.com/taskdeck/internal/http/validators"
	"taskdeck.com/taskdeck/internal/services"
)

// The dashboard shows this many recent tasks when no limit is given.
const defaultRecentLimit = 4

type Handler struct {
	identity   *services.IdentityService
	store      *services.StoreService
	categories *services.CategoryService
}

func NewHandler(
	identity *services.IdentityService,
	store *services.StoreService,
	categories *services.CategoryService,
) *Handler {
	return &Handler{
		identity:   identity,
		store:      store,
		categories: categories,
	}
}

func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	user, token, err := h.identity.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	user, token, err := h.identity.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.identity.Logout(c.Request().Context(), middleware.Token(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetProfile(c echo.Context) error {
	user, err := h.identity.Resolve(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	user, err := h.identity.UpdateProfile(c.Request().Context(), middleware.Token(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) ListReviews(c echo.Context) error {
	reviews, err := h.identity.ListReviews(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(reviews),
		"reviews": reviews,
	})
}

// ListTasks returns the caller's tasks. limit/offset page through storage
// order; status/priority/search narrow the returned page.
func (h *Handler) ListTasks(c echo.Context) error {
	limit := intQueryParam(c, "limit", 0)
	offset := intQueryParam(c, "offset", 0)

	tasks, err := h.store.GetTasksPage(c.Request().Context(), middleware.Token(c), limit, offset)
	if err != nil {
		return httpError(err)
	}

	filtered := services.Filter(tasks, services.Filters{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Search:   c.QueryParam("search"),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(filtered),
		"tasks": filtered,
	})
}

func (h *Handler) GetTaskStats(c echo.Context) error {
	tasks, err := h.store.GetTasks(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, services.Aggregate(tasks))
}

func (h *Handler) GetRecentTasks(c echo.Context) error {
	limit := intQueryParam(c, "limit", defaultRecentLimit)

	tasks, err := h.store.GetTasks(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return httpError(err)
	}

	recent := services.Recent(tasks, limit)
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(recent),
		"tasks": recent,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return httpError(apperrors.ErrTaskIDRequired)
	}

	task, err := h.store.GetTaskByID(c.Request().Context(), middleware.Token(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.store.CreateTask(c.Request().Context(), middleware.Token(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return httpError(apperrors.ErrTaskIDRequired)
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.store.UpdateTask(c.Request().Context(), middleware.Token(c), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return httpError(apperrors.ErrTaskIDRequired)
	}

	deleted, err := h.store.DeleteTask(c.Request().Context(), middleware.Token(c), id)
	if err != nil {
		return httpError(err)
	}
	if !deleted {
		return httpError(apperrors.ErrTaskNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteAllTasks(c echo.Context) error {
	if err := h.store.DeleteAllTasks(c.Request().Context(), middleware.Token(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.categories.ListCategories(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":      len(categories),
		"categories": categories,
	})
}

func (h *Handler) GetCategory(c echo.Context) error {
	category, err := h.categories.GetCategory(c.Request().Context(), middleware.Token(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	category, err := h.categories.CreateCategory(c.Request().Context(), middleware.Token(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	category, err := h.categories.UpdateCategory(c.Request().Context(), middleware.Token(c), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	if err := h.categories.DeleteCategory(c.Request().Context(), middleware.Token(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func httpError(err error) error {
	var ex *apperrors.Exception
	if errors.As(err, &ex) {
		return echo.NewHTTPError(ex.StatusCode, ex.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
