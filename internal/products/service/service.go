package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freshtracker/internal/freshdate"
	"freshtracker/internal/products"

	"github.com/prometheus/client_golang/prometheus"
)

type Repository interface {
	Insert(ctx context.Context, np products.NewProduct) (products.Product, error)
	GetOne(ctx context.Context, id int64) (products.Product, error)
	GetAll(ctx context.Context) ([]products.Product, error)
	Update(ctx context.Context, id int64, changes products.ChangeSet) error
	SoftDelete(ctx context.Context, id int64) error
}

type Publisher interface {
	Publish(ctx context.Context, event products.ProductEvent) error
}

// Metrics are the lifecycle counters the service bumps on successful writes.
type Metrics struct {
	Created prometheus.Counter
	Updated prometheus.Counter
	Deleted prometheus.Counter
}

type Service struct {
	repo      Repository
	publisher Publisher
	logger    *slog.Logger
	limits    products.Limits
	defaults  products.Defaults
	metrics   Metrics
	now       func() time.Time
}

func New(repo Repository, publisher Publisher, logger *slog.Logger, limits products.Limits, defaults products.Defaults, metrics Metrics) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		limits:    limits,
		defaults:  defaults,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the body, normalizes the expiry date and inserts the
// record. Field validation and date normalization are independent checks:
// when both fail, the date problem is appended to the accumulated field
// errors so neither masks the other.
func (s *Service) Create(ctx context.Context, body products.RawBody) (products.Product, error) {
	fieldErrs := products.ValidateFields(body, products.ModeCreate, s.limits)
	expiryDate, dateErr := freshdate.Normalize(body.String("expiry_date"), s.now())

	if len(fieldErrs) > 0 {
		if dateErr != nil {
			fieldErrs = append(fieldErrs, products.ErrDateNotParseable.Error())
		}
		return products.Product{}, &products.ValidationError{Messages: fieldErrs}
	}
	if dateErr != nil {
		return products.Product{}, products.ErrDateNotParseable
	}

	weight, _ := products.ParseWeight(body)

	np := products.NewProduct{
		Name:          body.String("name"),
		Weight:        weight.InexactFloat64(),
		ExpiryDate:    expiryDate,
		Type:          s.defaults.Type,
		ThresholdDays: s.defaults.ThresholdDays,
	}
	if body.Has("type") {
		np.Type = body.String("type")
	}
	if body.Has("threshold_days") {
		np.ThresholdDays, _ = products.ParseThreshold(body, s.limits)
	}

	p, err := s.repo.Insert(ctx, np)
	if err != nil {
		return products.Product{}, fmt.Errorf("repo insert: %w", err)
	}
	p.Status = products.Classify(p.DaysRemaining, p.ThresholdDays)

	s.publishEvent(ctx, products.EventCreated, p)
	s.metrics.Created.Inc()
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (products.Product, error) {
	p, err := s.repo.GetOne(ctx, id)
	if err != nil {
		return products.Product{}, fmt.Errorf("repo get: %w", err)
	}
	p.Status = products.Classify(p.DaysRemaining, p.ThresholdDays)
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]products.Product, error) {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo list: %w", err)
	}
	for i := range list {
		list[i].Status = products.Classify(list[i].DaysRemaining, list[i].ThresholdDays)
	}
	return list, nil
}

// Update applies a partial update: only fields present in the body are
// validated and written. A body with no recognized fields is rejected before
// any write happens.
func (s *Service) Update(ctx context.Context, id int64, body products.RawBody) (products.Product, error) {
	if _, err := s.repo.GetOne(ctx, id); err != nil {
		return products.Product{}, fmt.Errorf("repo get: %w", err)
	}

	fieldErrs := products.ValidateFields(body, products.ModeUpdate, s.limits)

	var expiryDate string
	var dateErr error
	if body.Has("expiry_date") {
		expiryDate, dateErr = freshdate.Normalize(body.String("expiry_date"), s.now())
	}

	if len(fieldErrs) > 0 {
		if dateErr != nil {
			fieldErrs = append(fieldErrs, products.ErrDateNotParseable.Error())
		}
		return products.Product{}, &products.ValidationError{Messages: fieldErrs}
	}
	if dateErr != nil {
		return products.Product{}, products.ErrDateNotParseable
	}

	var changes products.ChangeSet
	if body.Has("name") {
		changes.Set(products.FieldName, body.String("name"))
	}
	if body.Has("weight") {
		weight, _ := products.ParseWeight(body)
		changes.Set(products.FieldWeight, weight.InexactFloat64())
	}
	if body.Has("expiry_date") {
		changes.Set(products.FieldExpiryDate, expiryDate)
	}
	if body.Has("type") {
		changes.Set(products.FieldType, body.String("type"))
	}
	if body.Has("threshold_days") {
		days, _ := products.ParseThreshold(body, s.limits)
		changes.Set(products.FieldThresholdDays, days)
	}

	if changes.Empty() {
		return products.Product{}, products.ErrNoFieldsToUpdate
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		return products.Product{}, fmt.Errorf("repo update: %w", err)
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return products.Product{}, err
	}

	s.publishEvent(ctx, products.EventUpdated, p)
	s.metrics.Updated.Inc()
	return p, nil
}

// SoftDelete marks the product deleted. Deleting an already-deleted product
// reports not found.
func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("repo soft delete: %w", err)
	}

	s.publishEvent(ctx, products.EventDeleted, products.Product{ID: id})
	s.metrics.Deleted.Inc()
	return nil
}

// publishEvent sends a lifecycle event. A broker failure is logged and never
// surfaced: the write already happened.
func (s *Service) publishEvent(ctx context.Context, eventType string, p products.Product) {
	event := products.ProductEvent{
		EventType:  eventType,
		ProductID:  p.ID,
		Name:       p.Name,
		ExpiryDate: p.ExpiryDate,
		Status:     p.Status,
		Timestamp:  s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish event failed",
			"event_type", eventType,
			"product_id", p.ID,
			"error", err,
		)
	}
}
