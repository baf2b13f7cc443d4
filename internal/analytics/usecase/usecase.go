package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/analytics"
	"github.com/fekuna/omnipos-storefront/internal/analytics/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

const anonymousSession = "anonymous"

type analyticsUseCase struct {
	repo      analytics.Repository
	publisher broker.Publisher
	topic     string
	logger    logger.ZapLogger
}

func NewAnalyticsUseCase(repo analytics.Repository, publisher broker.Publisher, topic string, log logger.ZapLogger) analytics.UseCase {
	if publisher == nil {
		publisher = broker.Noop{}
	}
	return &analyticsUseCase{
		repo:      repo,
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

func (uc *analyticsUseCase) Track(ctx context.Context, input *dto.TrackInput) error {
	eventType := strings.TrimSpace(input.EventType)
	if eventType == "" {
		return apperror.Invalid("event_type is required")
	}

	data := "{}"
	if raw := bytes.TrimSpace(input.Data); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if !json.Valid(raw) {
			return apperror.Invalid("data must be valid JSON")
		}
		data = string(raw)
	}

	session := strings.TrimSpace(input.SessionID)
	if session == "" {
		session = anonymousSession
	}

	event := &model.AnalyticsEvent{
		EventType:  eventType,
		ProductID:  input.ProductID,
		VariantID:  input.VariantID,
		DropID:     input.DropID,
		RegionCode: analytics.RegionForCountry(input.Country),
		SessionID:  session,
		DataJSON:   data,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("store analytics event: %w", err)
	}

	msg, err := broker.NewEvent("analytics."+eventType, event)
	if err != nil {
		uc.logger.Warn("failed to build analytics event", zap.Error(err))
		return nil
	}
	if err := uc.publisher.Publish(ctx, uc.topic, session, msg); err != nil {
		uc.logger.Warn("failed to publish analytics event", zap.String("event_type", eventType), zap.Error(err))
	}
	return nil
}
