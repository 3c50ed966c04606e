package service

import (
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Service handles business logic. Every operation takes the acting user's ID
// as an explicit parameter; nothing is read from ambient request state.
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService initializes a new service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log}
}
