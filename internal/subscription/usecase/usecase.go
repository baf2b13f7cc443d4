package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/subscription"
	"github.com/fekuna/omnipos-storefront/internal/subscription/dto"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const defaultSource = "website"

var validate = validator.New()

type subscriptionUseCase struct {
	repo   subscription.Repository
	logger logger.ZapLogger
}

func NewSubscriptionUseCase(repo subscription.Repository, log logger.ZapLogger) subscription.UseCase {
	return &subscriptionUseCase{repo: repo, logger: log}
}

// normalizeEmail lowercases so that the unique index catches case variants.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apperror.Invalid("email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", apperror.Invalid("email must be a valid email")
	}
	return email, nil
}

func (uc *subscriptionUseCase) Subscribe(ctx context.Context, input *dto.SubscribeInput) (*dto.Result, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = defaultSource
	}
	var name *string
	if n := strings.TrimSpace(input.Name); n != "" {
		name = &n
	}

	created, err := uc.repo.CreateSubscriber(ctx, &model.Subscriber{
		Email:        email,
		Name:         name,
		Source:       source,
		IsActive:     true,
		SubscribedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create subscriber: %w", err)
	}
	if !created {
		return &dto.Result{Success: true, Message: "Already subscribed"}, nil
	}

	uc.logger.Info("new subscriber", zap.String("source", source))
	return &dto.Result{Success: true, Message: "Successfully subscribed!"}, nil
}

func (uc *subscriptionUseCase) NotifyDrop(ctx context.Context, dropID int64, input *dto.DropNotifyInput) (*dto.Result, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	exists, err := uc.repo.DropExists(ctx, dropID)
	if err != nil {
		return nil, fmt.Errorf("check drop: %w", err)
	}
	if !exists {
		return nil, apperror.NotFound("Drop not found")
	}

	created, err := uc.repo.CreateDropNotification(ctx, email, dropID)
	if err != nil {
		return nil, fmt.Errorf("create drop notification: %w", err)
	}
	if !created {
		return &dto.Result{Success: true, Message: "Already registered"}, nil
	}
	return &dto.Result{Success: true, Message: "You will be notified when this drop launches"}, nil
}

func (uc *subscriptionUseCase) NotifyStock(ctx context.Context, input *dto.StockNotifyInput) (*dto.Result, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if input.VariantID <= 0 {
		return nil, apperror.Invalid("variant_id is required")
	}

	exists, err := uc.repo.VariantExists(ctx, input.VariantID)
	if err != nil {
		return nil, fmt.Errorf("check variant: %w", err)
	}
	if !exists {
		return nil, apperror.NotFound("Variant not found")
	}

	created, err := uc.repo.CreateStockNotification(ctx, email, input.VariantID)
	if err != nil {
		return nil, fmt.Errorf("create stock notification: %w", err)
	}
	if !created {
		return &dto.Result{Success: true, Message: "Already registered"}, nil
	}
	return &dto.Result{Success: true, Message: "You will be notified when back in stock"}, nil
}

func (uc *subscriptionUseCase) ListSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	return uc.repo.FindActive(ctx)
}
