package service

import (
	"context"
	"strings"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserService serves the local mirror of identity provider accounts
type UserService struct {
	db *gorm.DB
}

var _ IUserService = (*UserService)(nil)

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, dbError("get user", err)
	}
	return &user, nil
}

func (s *UserService) All(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := s.db.WithContext(ctx).Order("nickname ASC").Find(&users).Error; err != nil {
		return nil, dbError("list users", err)
	}
	return users, nil
}

// FromQuery matches users whose nickname contains q, ignoring case
func (s *UserService) FromQuery(ctx context.Context, q string) ([]model.User, error) {
	users := []model.User{}
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	if err := s.db.WithContext(ctx).
		Where("LOWER(nickname) LIKE ?", pattern).
		Order("nickname ASC").
		Find(&users).Error; err != nil {
		return nil, dbError("search users", err)
	}
	return users, nil
}

func (s *UserService) UpdateMetadata(ctx context.Context, callerID, userID string, metadata model.JSONMap) (*model.User, error) {
	if userID != callerID {
		return nil, ErrForbidden
	}
	user, err := s.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = model.JSONMap{}
	}
	if err := s.db.WithContext(ctx).Model(user).Update("metadata", metadata).Error; err != nil {
		return nil, dbError("update metadata", err)
	}
	user.Metadata = metadata
	return user, nil
}

// Upsert records the account behind a validated token. Profile fields are
// refreshed only when the token carries them.
func (s *UserService) Upsert(ctx context.Context, claims *types.TokenClaims) error {
	user := model.User{
		ID:       claims.UserID,
		Nickname: claims.Nickname,
		Picture:  claims.Picture,
		Metadata: model.JSONMap{},
	}

	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}
	if claims.Nickname != "" {
		conflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nickname", "picture", "updated_at"}),
		}
	}

	if err := s.db.WithContext(ctx).Clauses(conflict).Create(&user).Error; err != nil {
		return dbError("upsert user", err)
	}
	return nil
}
