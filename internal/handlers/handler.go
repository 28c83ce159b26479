// Package handlers serves the HTML pages of the inventory.
package handlers

import (
	"asset-tracker/internal/inventory"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db  *gorm.DB
	svc *inventory.Service
	log *zap.Logger
}

func New(db *gorm.DB, svc *inventory.Service, log *zap.Logger) *Handler {
	return &Handler{db: db, svc: svc, log: log}
}
