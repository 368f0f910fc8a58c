package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskdeck.com/taskdeck/internal/constants"
	dto "taskdeck.com/taskdeck/internal/data_models"
	apperrors "taskdeck.com/taskdeck/internal/errors"
	model "taskdeck.com/taskdeck/internal/models"
	repository "taskdeck.com/taskdeck/internal/repositories"
	"taskdeck.com/taskdeck/internal/sessions"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.User{}, &model.Task{}, &model.Category{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func setupServices(t *testing.T) (*IdentityService, *StoreService, *CategoryService) {
	db := setupTestDB(t)

	tokenStore := sessions.NewMemoryTokenStore(time.Hour)
	identity := NewIdentityService(repository.NewUserRepository(db), tokenStore, 4)
	store := NewStoreService(repository.NewTaskRepository(db), identity, 0, 0)
	categories := NewCategoryService(repository.NewCategoryRepository(db), identity)

	return identity, store, categories
}

func registerUser(t *testing.T, identity *IdentityService, email string) string {
	t.Helper()

	_, token, err := identity.Register(context.Background(), email, "pw123456", "Test User")
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return token
}

func TestIdentityService_RegisterAndResolve(t *testing.T) {
	identity, _, _ := setupServices(t)
	ctx := context.Background()

	user, token, err := identity.Register(ctx, "a@x.com", "pw123456", "A")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if user.ID == "" {
		t.Error("expected user ID to be set")
	}
	if token == "" {
		t.Error("expected a session token")
	}
	if len(user.PasswordHash) == 0 {
		t.Error("expected password to be hashed at registration")
	}

	resolved, err := identity.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("failed to resolve token: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("token resolved to user %s, want %s", resolved.ID, user.ID)
	}
}

func TestIdentityService_LoginIgnoresPassword(t *testing.T) {
	identity, _, _ := setupServices(t)
	ctx := context.Background()

	registered, _, err := identity.Register(ctx, "a@x.com", "pw123456", "A")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	// Any password logs into an existing account.
	user, token, err := identity.Login(ctx, "a@x.com", "anything")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login returned user %s, want %s", user.ID, registered.ID)
	}

	resolved, err := identity.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("failed to resolve login token: %v", err)
	}
	if resolved.ID != registered.ID {
		t.Errorf("login token resolved to user %s, want %s", resolved.ID, registered.ID)
	}
}

func TestIdentityService_LoginUnknownEmail(t *testing.T) {
	identity, _, _ := setupServices(t)

	_, _, err := identity.Login(context.Background(), "nobody@x.com", "pw123456")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIdentityService_DuplicateRegistration(t *testing.T) {
	identity, _, _ := setupServices(t)
	ctx := context.Background()

	registerUser(t, identity, "a@x.com")

	_, _, err := identity.Register(ctx, "a@x.com", "pw654321", "B")
	if !errors.Is(err, apperrors.ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestIdentityService_PasswordPolicy(t *testing.T) {
	identity, _, _ := setupServices(t)

	_, _, err := identity.Register(context.Background(), "a@x.com", "short", "A")
	if err == nil {
		t.Fatal("expected a validation error for a short password")
	}
	if apperrors.StatusCode(err) != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apperrors.StatusCode(err))
	}
}

func TestIdentityService_LogoutRevokesToken(t *testing.T) {
	identity, _, _ := setupServices(t)
	ctx := context.Background()

	token := registerUser(t, identity, "a@x.com")

	if err := identity.Logout(ctx, token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := identity.Resolve(ctx, token); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized after logout, got %v", err)
	}

	// Logout destroys the session only, not the account.
	if _, _, err := identity.Login(ctx, "a@x.com", "pw123456"); err != nil {
		t.Errorf("login after logout failed: %v", err)
	}
}

func TestIdentityService_UpdateProfile(t *testing.T) {
	identity, _, _ := setupServices(t)
	ctx := context.Background()

	token := registerUser(t, identity, "a@x.com")

	phone := "555-0100"
	bio := "I like lists"
	review := "Great app"
	user, err := identity.UpdateProfile(ctx, token, dto.UpdateProfileRequest{
		Phone:  &phone,
		Bio:    &bio,
		Review: &review,
	})
	if err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}
	if user.Phone != phone || user.Bio != bio || user.Review != review {
		t.Errorf("profile not merged: %+v", user)
	}
	if user.Email != "a@x.com" {
		t.Errorf("email changed unexpectedly: %s", user.Email)
	}

	resolved, err := identity.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("failed to resolve token: %v", err)
	}
	if resolved.Phone != phone {
		t.Error("profile update not persisted")
	}

	if _, err := identity.UpdateProfile(ctx, "bogus", dto.UpdateProfileRequest{}); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized with an invalid token, got %v", err)
	}
}

func TestIdentityService_ListReviews(t *testing.T) {
	identity, _, _ := setupServices(t)
	ctx := context.Background()

	tokenA := registerUser(t, identity, "a@x.com")
	registerUser(t, identity, "b@x.com")

	review := "Transformed how I plan my week"
	if _, err := identity.UpdateProfile(ctx, tokenA, dto.UpdateProfileRequest{Review: &review}); err != nil {
		t.Fatalf("failed to set review: %v", err)
	}

	reviews, err := identity.ListReviews(ctx)
	if err != nil {
		t.Fatalf("failed to list reviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	if reviews[0].Review != review {
		t.Errorf("unexpected review text: %s", reviews[0].Review)
	}
}

func TestStoreService_CreateAssignsUniqueIDs(t *testing.T) {
	identity, store, _ := setupServices(t)
	ctx := context.Background()

	token := registerUser(t, identity, "a@x.com")

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		task, err := store.CreateTask(ctx, token, dto.CreateTaskRequest{Title: "Task"})
		if err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
		if seen[task.ID] {
			t.Errorf("duplicate task id %s", task.ID)
		}
		seen[task.ID] = true

		if !task.CreatedAt.Equal(task.UpdatedAt) {
			t.Error("expected CreatedAt == UpdatedAt on creation")
		}
		if task.Status != constants.StatusPending {
			t.Errorf("expected default status pending, got %s", task.Status)
		}
		if task.Priority != constants.PriorityMedium {
			t.Errorf("expected default priority medium, got %s", task.Priority)
		}
	}
}

func TestStoreService_UpdatePreservesCreatedAt(t *testing.T) {
	identity, store, _ := setupServices(t)
	ctx := context.Background()

	token := registerUser(t, identity, "a@x.com")

	task, err := store.CreateTask(ctx, token, dto.CreateTaskRequest{Title: "Before"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	createdAt := task.CreatedAt
	previousUpdatedAt := task.UpdatedAt

	title := "After"
	updated, err := store.UpdateTask(ctx, token, task.ID, dto.UpdateTaskRequest{Title: &title})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if !updated.CreatedAt.Equal(createdAt) {
		t.Error("update must not change CreatedAt")
	}
	if updated.UpdatedAt.Before(previousUpdatedAt) {
		t.Error("update must not move UpdatedAt backwards")
	}
	if updated.Title != "After" {
		t.Errorf("title not merged, got %s", updated.Title)
	}
	if updated.Description != task.Description {
		t.Error("unset fields must survive a partial update")
	}
}

func TestStoreService_CompletedAtTransitions(t *testing.T) {
	identity, store, _ := setupServices(t)
	ctx := context.Background()

	token := registerUser(t, identity, "a@x.com")

	task, err := store.CreateTask(ctx, token, dto.CreateTaskRequest{Title: "Task"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if task.CompletedAt != nil {
		t.Error("new pending task must not carry CompletedAt")
	}

	completed := constants.StatusCompleted
	updated, err := store.UpdateTask(ctx, token, task.ID, dto.UpdateTaskRequest{Status: &completed})
	if err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completing a task must stamp CompletedAt")
	}

	pending := constants.StatusPending
	reopened, err := store.UpdateTask(ctx, token, task.ID, dto.UpdateTaskRequest{Status: &pending})
	if err != nil {
		t.Fatalf("failed to reopen task: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Error("reopening a task must clear CompletedAt")
	}
}

func TestStoreService_OwnershipScoping(t *testing.T) {
	identity, store, _ := setupServices(t)
	ctx := context.Background()

	tokenA := registerUser(t, identity, "a@x.com")
	tokenB := registerUser(t, identity, "b@x.com")

	for i := 0; i < 3; i++ {
		if _, err := store.CreateTask(ctx, tokenA, dto.CreateTaskRequest{Title: "A task"}); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
	}
	taskB, err := store.CreateTask(ctx, tokenB, dto.CreateTaskRequest{Title: "B task"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	tasksA, err := store.GetTasks(ctx, tokenA)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasksA) != 3 {
		t.Errorf("expected 3 tasks for A, got %d", len(tasksA))
	}

	// B's task is invisible to A.
	if _, err := store.GetTaskByID(ctx, tokenA, taskB.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound across owners, got %v", err)
	}

	if err := store.DeleteAllTasks(ctx, tokenA); err != nil {
		t.Fatalf("failed to delete all tasks: %v", err)
	}

	tasksA, _ = store.GetTasks(ctx, tokenA)
	if len(tasksA) != 0 {
		t.Errorf("expected 0 tasks for A after DeleteAllTasks, got %d", len(tasksA))
	}

	tasksB, _ := store.GetTasks(ctx, tokenB)
	if len(tasksB) != 1 {
		t.Errorf("DeleteAllTasks must not touch another user's tasks, B has %d", len(tasksB))
	}
}

func TestStoreService_DeleteTask(t *testing.T) {
	identity, store, _ := setupServices(t)
	ctx := context.Background()

	token := registerUser(t, identity, "a@x.com")

	task, err := store.CreateTask(ctx, token, dto.CreateTaskRequest{Title: "Task"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	deleted, err := store.DeleteTask(ctx, token, task.ID)
	if err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}
	if !deleted {
		t.Error("expected first delete to report a removal")
	}

	deleted, err = store.DeleteTask(ctx, token, task.ID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report no removal")
	}
}

func TestStoreService_RejectsInvalidTokens(t *testing.T) {
	identity, store, _ := setupServices(t)
	ctx := context.Background()

	registerUser(t, identity, "a@x.com")

	if _, err := store.GetTasks(ctx, "bogus"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := store.GetTasks(ctx, ""); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for a missing token, got %v", err)
	}
}

func TestStoreService_CreateValidation(t *testing.T) {
	identity, store, _ := setupServices(t)
	ctx := context.Background()

	token := registerUser(t, identity, "a@x.com")

	if _, err := store.CreateTask(ctx, token, dto.CreateTaskRequest{Title: "   "}); err == nil {
		t.Error("expected a validation error for a blank title")
	}
	if _, err := store.CreateTask(ctx, token, dto.CreateTaskRequest{Title: "Task", Status: "archived"}); err == nil {
		t.Error("expected a validation error for an unknown status")
	}
	if _, err := store.CreateTask(ctx, token, dto.CreateTaskRequest{Title: "Task", Priority: "urgent"}); err == nil {
		t.Error("expected a validation error for an unknown priority")
	}
}

func TestStoreService_Pagination(t *testing.T) {
	identity, store, _ := setupServices(t)
	ctx := context.Background()

	token := registerUser(t, identity, "a@x.com")

	for i := 0; i < 5; i++ {
		if _, err := store.CreateTask(ctx, token, dto.CreateTaskRequest{Title: "Task"}); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
	}

	page, err := store.GetTasksPage(ctx, token, 2, 0)
	if err != nil {
		t.Fatalf("failed to page tasks: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected a page of 2, got %d", len(page))
	}

	rest, err := store.GetTasksPage(ctx, token, 0, 4)
	if err != nil {
		t.Fatalf("failed to page tasks: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("expected 1 task after offset 4, got %d", len(rest))
	}
}

func TestCategoryService_CRUDAndOwnership(t *testing.T) {
	identity, _, categories := setupServices(t)
	ctx := context.Background()

	tokenA := registerUser(t, identity, "a@x.com")
	tokenB := registerUser(t, identity, "b@x.com")

	category, err := categories.CreateCategory(ctx, tokenA, dto.CategoryRequest{Name: "Work"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if _, err := categories.GetCategory(ctx, tokenB, category.ID); !errors.Is(err, apperrors.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound across owners, got %v", err)
	}

	name := "Deep Work"
	updated, err := categories.UpdateCategory(ctx, tokenA, category.ID, dto.UpdateCategoryRequest{Name: &name})
	if err != nil {
		t.Fatalf("failed to update category: %v", err)
	}
	if updated.Name != name {
		t.Errorf("category name not merged, got %s", updated.Name)
	}

	if err := categories.DeleteCategory(ctx, tokenA, category.ID); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}
	if err := categories.DeleteCategory(ctx, tokenA, category.ID); !errors.Is(err, apperrors.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound on second delete, got %v", err)
	}

	listed, err := categories.ListCategories(ctx, tokenA)
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected no categories left, got %d", len(listed))
	}
}
