package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "taskdeck.com/taskdeck/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":       user.Name,
			"phone":      user.Phone,
			"address":    user.Address,
			"bio":        user.Bio,
			"avatar":     user.Avatar,
			"review":     user.Review,
			"updated_at": user.UpdatedAt,
		}).Error
}

// ListReviews returns the public review slice of every user that wrote one.
func (r *UserRepository) ListReviews(ctx context.Context) ([]model.UserReview, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("review <> ''").
		Order("updated_at desc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]model.UserReview, 0, len(users))
	for _, u := range users {
		reviews = append(reviews, model.UserReview{
			Name:   u.Name,
			Avatar: u.Avatar,
			Review: u.Review,
		})
	}
	return reviews, nil
}
