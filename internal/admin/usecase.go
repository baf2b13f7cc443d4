package admin

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/admin/dto"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UseCase interface {
	Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error)
	Stats(ctx context.Context) (*dto.Stats, error)
}
