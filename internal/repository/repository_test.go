package repository

import (
	"context"
	"testing"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/migration"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// :memory: 는 연결마다 별도 DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(migration.Models()...))
	return db
}

func newPendingPayment(tranID string) *domain.Payment {
	return &domain.Payment{
		TransactionID:     tranID,
		Amount:            domain.MoneyFromUnits(25000),
		CourseID:          7,
		UserID:            "user-1",
		UserName:          "Rahim",
		UserEmail:         "rahim@example.com",
		UserMobile:        "01700000000",
		IsInstallment:     true,
		InstallmentPlan:   "2x",
		InstallmentNumber: 1,
		TotalInstallments: 2,
		OriginalAmount:    domain.MoneyFromUnits(50000),
		TotalPayable:      domain.MoneyFromUnits(47500),
	}
}

func ctx() context.Context {
	return context.Background()
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
