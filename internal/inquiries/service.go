// Package inquiries stores contact-form submissions: the durable half of the
// lead-capture flow. The service is the primary store for inquiries; the
// client holds only transient snapshots for rendering.
package inquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errMissingDatabase   = errors.New("database handle is required")
	errMissingIDProvider = errors.New("id provider is required")
	noOpLogger           = zap.NewNop()
)

// ServiceError carries an operation code alongside the underlying cause.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

// Code returns the machine-readable operation code.
func (e *ServiceError) Code() string {
	return e.code
}

const (
	opServiceNew = "inquiries.service.new"
	opCreate     = "inquiries.create"
	opList       = "inquiries.list"
)

func newServiceError(operation, reason string, cause error) error {
	return &ServiceError{code: fmt.Sprintf("%s.%s", operation, reason), err: cause}
}

// IDProvider issues the public reference attached to each stored inquiry.
type IDProvider interface {
	NewID() (string, error)
}

// ServiceConfig describes the dependencies for the inquiry store.
type ServiceConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider IDProvider
	Logger     *zap.Logger
}

// Service persists and lists inquiries.
type Service struct {
	db         *gorm.DB
	clock      func() time.Time
	idProvider IDProvider
	logger     *zap.Logger
}

// NewService constructs the inquiry store.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, newServiceError(opServiceNew, "missing_database", errMissingDatabase)
	}
	if cfg.IDProvider == nil {
		return nil, newServiceError(opServiceNew, "missing_id_provider", errMissingIDProvider)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}
	return &Service{
		db:         cfg.Database,
		clock:      clock,
		idProvider: cfg.IDProvider,
		logger:     logger,
	}, nil
}

// Create validates and stores one inquiry, returning the persisted record
// with its server-assigned id, reference and creation timestamp.
func (s *Service) Create(ctx context.Context, input NewInquiry) (Inquiry, error) {
	if err := input.Validate(); err != nil {
		return Inquiry{}, newServiceError(opCreate, "invalid_input", err)
	}

	reference, err := s.idProvider.NewID()
	if err != nil {
		s.logger.Error("inquiry reference generation failed", zap.Error(err))
		return Inquiry{}, newServiceError(opCreate, "reference_failed", err)
	}

	record := Inquiry{
		Reference: reference,
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     strings.TrimSpace(input.Phone),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: s.clock().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logger.Error("inquiry insert failed", zap.Error(err))
		return Inquiry{}, newServiceError(opCreate, "insert_failed", err)
	}

	s.logger.Info("inquiry stored",
		zap.Int64("id", record.ID),
		zap.String("reference", record.Reference))
	return record, nil
}

// List returns every stored inquiry, newest first.
func (s *Service) List(ctx context.Context) ([]Inquiry, error) {
	var records []Inquiry
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		s.logger.Error("inquiry list failed", zap.Error(err))
		return nil, newServiceError(opList, "select_failed", err)
	}
	return records, nil
}
