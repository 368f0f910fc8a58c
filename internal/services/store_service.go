package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskdeck.com/taskdeck/internal/constants"
	dto "taskdeck.com/taskdeck/internal/data_models"
	apperrors "taskdeck.com/taskdeck/internal/errors"
	model "taskdeck.com/taskdeck/internal/models"
	repository "taskdeck.com/taskdeck/internal/repositories"
)

// StoreService owns every task mutation. Each call resolves the session
// token before touching the repository, so ownership scoping and the
// created/updated timestamp invariants hold in one place.
//
// The read/write delays emulate network latency for local development
// against an in-memory database; both default to zero.
type StoreService struct {
	tasks      *repository.TaskRepository
	identity   *IdentityService
	readDelay  time.Duration
	writeDelay time.Duration
}

func NewStoreService(
	tasks *repository.TaskRepository,
	identity *IdentityService,
	readDelay time.Duration,
	writeDelay time.Duration,
) *StoreService {
	return &StoreService{
		tasks:      tasks,
		identity:   identity,
		readDelay:  readDelay,
		writeDelay: writeDelay,
	}
}

func (s *StoreService) GetTasks(ctx context.Context, token string) ([]model.Task, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	return s.tasks.ListByUser(ctx, user.ID)
}

func (s *StoreService) GetTasksPage(ctx context.Context, token string, limit, offset int) ([]model.Task, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}
	return s.tasks.ListPage(ctx, user.ID, limit, offset)
}

func (s *StoreService) GetTaskByID(ctx context.Context, token, id string) (*model.Task, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.sleep(ctx, s.readDelay); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *StoreService) CreateTask(ctx context.Context, token string, req dto.CreateTaskRequest) (*model.Task, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidation("title must not be empty")
	}

	status := req.Status
	if status == "" {
		status = constants.StatusPending
	}
	if !constants.ValidStatus(status) {
		return nil, apperrors.NewValidation("status must be one of pending, in-progress, completed")
	}

	priority := req.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}
	if !constants.ValidPriority(priority) {
		return nil, apperrors.NewValidation("priority must be one of low, medium, high")
	}

	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		Category:    req.Category,
		UserID:      user.ID,
	}
	if status == constants.StatusCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *StoreService) UpdateTask(ctx context.Context, token, id string, req dto.UpdateTaskRequest) (*model.Task, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	previousStatus := task.Status

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.NewValidation("title must not be empty")
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !constants.ValidStatus(*req.Status) {
			return nil, apperrors.NewValidation("status must be one of pending, in-progress, completed")
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !constants.ValidPriority(*req.Priority) {
			return nil, apperrors.NewValidation("priority must be one of low, medium, high")
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Category != nil {
		task.Category = *req.Category
	}

	// Entering completed stamps CompletedAt, leaving it clears the stamp.
	if task.Status == constants.StatusCompleted && previousStatus != constants.StatusCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}
	if task.Status != constants.StatusCompleted && previousStatus == constants.StatusCompleted {
		task.CompletedAt = nil
	}

	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *StoreService) DeleteTask(ctx context.Context, token, id string) (bool, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return false, err
	}
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return false, err
	}
	return s.tasks.Delete(ctx, user.ID, id)
}

func (s *StoreService) DeleteAllTasks(ctx context.Context, token string) error {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if err := s.sleep(ctx, s.writeDelay); err != nil {
		return err
	}
	return s.tasks.DeleteAllByUser(ctx, user.ID)
}

func (s *StoreService) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
