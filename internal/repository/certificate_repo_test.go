package repository

import (
	"errors"
	"testing"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCertificateRepository(t *testing.T) {
	repo := NewCertificateRepository(setupTestDB(t))

	app := &domain.CertificateApplication{UserID: "user-1", CourseID: 7, PaymentID: 1, Status: domain.CertificateStatusIssued}
	require.NoError(t, repo.Create(ctx(), app))
	assert.Equal(t, domain.CertificateStatusApplied, app.Status)

	t.Run("진행 중 신청 조회", func(t *testing.T) {
		open, err := repo.FindOpen(ctx(), "user-1", 7)
		require.NoError(t, err)
		assert.Equal(t, app.ID, open.ID)

		_, err = repo.FindOpen(ctx(), "user-1", 8)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("조건부 전이", func(t *testing.T) {
		ok, err := repo.Transition(ctx(), app.ID, domain.CertificateStatusApplied, domain.CertificateStatusApproved,
			map[string]interface{}{"approved_at": testNow, "reviewed_by": "admin-1"})
		require.NoError(t, err)
		assert.True(t, ok)

		// 이미 approved 라서 applied 조건이 맞지 않음
		ok, err = repo.Transition(ctx(), app.ID, domain.CertificateStatusApplied, domain.CertificateStatusRejected, nil)
		require.NoError(t, err)
		assert.False(t, ok)

		found, _ := repo.FindByID(ctx(), app.ID)
		assert.Equal(t, domain.CertificateStatusApproved, found.Status)
		assert.Equal(t, "admin-1", found.ReviewedBy)
	})

	t.Run("허용되지 않은 전이", func(t *testing.T) {
		_, err := repo.Transition(ctx(), app.ID, domain.CertificateStatusIssued, domain.CertificateStatusApproved, nil)
		assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)
	})

	t.Run("반려 건은 진행 중 신청에서 제외", func(t *testing.T) {
		ok, err := repo.Transition(ctx(), app.ID, domain.CertificateStatusApproved, domain.CertificateStatusRejected,
			map[string]interface{}{"reject_reason": "incomplete"})
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.FindOpen(ctx(), "user-1", 7)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

		list, total, err := repo.List(ctx(), &domain.CertificateListRequest{Status: "rejected", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "incomplete", list[0].RejectReason)
	})
}

func TestCertificateRepository_OneOpenApplication(t *testing.T) {
	repo := NewCertificateRepository(setupTestDB(t))

	first := &domain.CertificateApplication{UserID: "user-1", CourseID: 7, PaymentID: 1}
	require.NoError(t, repo.Create(ctx(), first))

	// FindOpen 을 통과한 두 번째 요청도 DB 에서 막힌다
	err := repo.Create(ctx(), &domain.CertificateApplication{UserID: "user-1", CourseID: 7, PaymentID: 1})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 다른 강의는 별도
	require.NoError(t, repo.Create(ctx(), &domain.CertificateApplication{UserID: "user-1", CourseID: 8, PaymentID: 2}))

	ok, err := repo.Transition(ctx(), first.ID, domain.CertificateStatusApplied, domain.CertificateStatusRejected,
		map[string]interface{}{"reject_reason": "incomplete"})
	require.NoError(t, err)
	require.True(t, ok)

	rejected, err := repo.FindByID(ctx(), first.ID)
	require.NoError(t, err)
	assert.Nil(t, rejected.OpenKey)

	// 반려 후 재신청 가능, 반려 건은 여러 개 남을 수 있다
	again := &domain.CertificateApplication{UserID: "user-1", CourseID: 7, PaymentID: 1}
	require.NoError(t, repo.Create(ctx(), again))
	ok, err = repo.Transition(ctx(), again.ID, domain.CertificateStatusApplied, domain.CertificateStatusRejected, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, repo.Create(ctx(), &domain.CertificateApplication{UserID: "user-1", CourseID: 7, PaymentID: 1}))
}

func TestGatewayEventRepository(t *testing.T) {
	repo := NewGatewayEventRepository(setupTestDB(t))

	for _, outcome := range []domain.GatewayEventOutcome{domain.OutcomeProcessed, domain.OutcomeDuplicate} {
		require.NoError(t, repo.Create(ctx(), &domain.GatewayEvent{
			TransactionID: "TXN-1",
			EventType:     domain.GatewayEventIPN,
			GatewayStatus: "VALID",
			Outcome:       outcome,
			Payload:       []byte(`{"status":"VALID"}`),
			ReceivedAt:    testNow,
		}))
	}

	events, err := repo.ListByTransactionID(ctx(), "TXN-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.OutcomeProcessed, events[0].Outcome)
	assert.Equal(t, domain.OutcomeDuplicate, events[1].Outcome)
	assert.JSONEq(t, `{"status":"VALID"}`, string(events[1].Payload))
}

func TestCouponRepository(t *testing.T) {
	repo := NewCouponRepository(setupTestDB(t))

	c := &domain.Coupon{Code: "WELCOME10", DiscountType: domain.DiscountTypePercent, IsActive: true}
	require.NoError(t, repo.Create(ctx(), c))

	found, err := repo.FindByCode(ctx(), "WELCOME10")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	found.IsActive = false
	require.NoError(t, repo.Update(ctx(), found))
	again, _ := repo.FindByID(ctx(), c.ID)
	assert.False(t, again.IsActive)

	list, total, err := repo.List(ctx(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx(), c.ID))
	_, err = repo.FindByCode(ctx(), "WELCOME10")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
