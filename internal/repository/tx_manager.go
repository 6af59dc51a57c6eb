package repository

import "gorm.io/gorm"

// TxManager menjalankan callback di dalam satu transaksi database. Semua
// write di dalam callback commit bersama atau rollback bersama.
type TxManager interface {
	Transaction(fn func(tx *gorm.DB) error) error
}

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db}
}

func (m *txManager) Transaction(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}
