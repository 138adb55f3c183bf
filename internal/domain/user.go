package domain

import (
	"context"
	"errors"

	"github.com/mealfeed/backend/internal/model"
	"github.com/mealfeed/backend/internal/repository"
	"github.com/mealfeed/backend/pkg/errorx"
	"github.com/mealfeed/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type UserDomain interface {
	GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	id := req.ID
	if id == "" {
		id = xcontext.RequestUserID(ctx)
	}

	user, err := d.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUserResponse(model.ConvertUser(user))
	return &resp, nil
}
