package service

import (
	"context"
	"errors"
	"strings"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/pricing"
	"github.com/codecraft/institute-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrPlanNameTaken 같은 이름의 활성 플랜 존재
var ErrPlanNameTaken = errors.New("installment plan name already in use")

// InstallmentPlanService 분할 납부 플랜 관리 서비스
type InstallmentPlanService interface {
	ListActive(ctx context.Context) ([]*domain.InstallmentPlan, error)
	ListAll(ctx context.Context) ([]*domain.InstallmentPlan, error)
	Create(ctx context.Context, req *domain.CreateInstallmentPlanRequest) (*domain.InstallmentPlan, error)
	Update(ctx context.Context, id uint64, req *domain.UpdateInstallmentPlanRequest) (*domain.InstallmentPlan, error)
	Delete(ctx context.Context, id uint64) error
}

type installmentPlanService struct {
	repo repository.InstallmentPlanRepository
}

// NewInstallmentPlanService 생성자
func NewInstallmentPlanService(repo repository.InstallmentPlanRepository) InstallmentPlanService {
	return &installmentPlanService{repo: repo}
}

func (s *installmentPlanService) ListActive(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	return s.repo.ListActive(ctx)
}

func (s *installmentPlanService) ListAll(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	return s.repo.ListAll(ctx)
}

func (s *installmentPlanService) Create(ctx context.Context, req *domain.CreateInstallmentPlanRequest) (*domain.InstallmentPlan, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, &pricing.ValidationError{Field: "name", Message: "must not be empty"}
	}

	_, err := s.repo.FindActiveByName(ctx, name)
	if err == nil {
		return nil, ErrPlanNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plan := &domain.InstallmentPlan{
		Name:            name,
		Title:           req.Title,
		Installments:    req.Installments,
		DiscountPercent: req.DiscountPercent,
		IsActive:        true,
	}
	if req.FirstInstallmentPercent != nil {
		plan.FirstInstallmentPercent = decimal.NewNullDecimal(*req.FirstInstallmentPercent)
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := pricing.ValidatePlan(plan); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *installmentPlanService) Update(ctx context.Context, id uint64, req *domain.UpdateInstallmentPlanRequest) (*domain.InstallmentPlan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		plan.Title = *req.Title
	}
	if req.Installments != nil {
		plan.Installments = *req.Installments
	}
	if req.DiscountPercent != nil {
		plan.DiscountPercent = *req.DiscountPercent
	}
	if req.FirstInstallmentPercent != nil {
		plan.FirstInstallmentPercent = decimal.NewNullDecimal(*req.FirstInstallmentPercent)
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := pricing.ValidatePlan(plan); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *installmentPlanService) Delete(ctx context.Context, id uint64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPlanNotFound
	}
	return err
}
