package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/admin"
	"github.com/fekuna/omnipos-storefront/internal/admin/dto"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/subscription"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type adminUseCase struct {
	products    product.Repository
	orders      order.Repository
	subscribers subscription.Repository
	operators   *auth.OperatorStore
	tokens      *auth.TokenIssuer
	logger      logger.ZapLogger
}

func NewAdminUseCase(
	products product.Repository,
	orders order.Repository,
	subscribers subscription.Repository,
	operators *auth.OperatorStore,
	tokens *auth.TokenIssuer,
	log logger.ZapLogger,
) admin.UseCase {
	return &adminUseCase{
		products:    products,
		orders:      orders,
		subscribers: subscribers,
		operators:   operators,
		tokens:      tokens,
		logger:      log,
	}
}

func (uc *adminUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	if err := uc.operators.Verify(input.Username, input.Password); err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			uc.logger.Warn("admin login refused", zap.String("username", input.Username))
			return nil, admin.ErrInvalidCredentials
		}
		return nil, err
	}

	token, expires, err := uc.tokens.Issue(input.Username)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("admin login", zap.String("username", input.Username))
	return &dto.LoginResult{Token: token, ExpiresAt: expires}, nil
}

// Stats runs the independent dashboard counts concurrently.
func (uc *adminUseCase) Stats(ctx context.Context) (*dto.Stats, error) {
	var stats dto.Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.products.Count(ctx)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		stats.Products = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.orders.Count(ctx)
		if err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		stats.Orders = n
		return nil
	})
	g.Go(func() error {
		total, err := uc.orders.SumRevenue(ctx, model.PaymentStatusPaid)
		if err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		stats.Revenue = total
		return nil
	})
	g.Go(func() error {
		n, err := uc.subscribers.Count(ctx)
		if err != nil {
			return fmt.Errorf("count subscribers: %w", err)
		}
		stats.Subscribers = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
