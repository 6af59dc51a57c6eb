package repository

import (
	"go-pos-kasir/internal/model"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(entry *model.AuditLog) error
	CreateTx(tx *gorm.DB, entry *model.AuditLog) error
	FindAll() ([]model.AuditLog, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db}
}

func (r *auditLogRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

// CreateTx menerima tx agar entry audit ikut rollback bersama sale dan stok
func (r *auditLogRepo) CreateTx(tx *gorm.DB, entry *model.AuditLog) error {
	return tx.Create(entry).Error
}

func (r *auditLogRepo) FindAll() ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.Preload("User").Order("created_at DESC").Find(&entries).Error
	return entries, err
}
