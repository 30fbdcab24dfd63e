package service

import (
	"campusportal/internal/repository"

	"go.uber.org/zap"
)

// RetentionService expires remembered identities
type RetentionService struct {
	slots         repository.SlotRepository
	retentionDays int
	logger        *zap.Logger
}

// NewRetentionService creates a new retention service
func NewRetentionService(slots repository.SlotRepository, retentionDays int, logger *zap.Logger) *RetentionService {
	return &RetentionService{
		slots:         slots,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupExpired removes slots older than the retention period
func (s *RetentionService) CleanupExpired() error {
	s.logger.Info("Starting cleanup of remembered identities", zap.Int("retention_days", s.retentionDays))

	err := s.slots.CleanExpired(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup remembered identities", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
