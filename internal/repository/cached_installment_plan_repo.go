package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// PlanCacheConfig 플랜 캐시 설정
type PlanCacheConfig struct {
	TTL       time.Duration // 기본 5분
	KeyPrefix string
}

// DefaultPlanCacheConfig 기본 캐시 설정
func DefaultPlanCacheConfig() *PlanCacheConfig {
	return &PlanCacheConfig{
		TTL:       5 * time.Minute,
		KeyPrefix: "institute:plan:",
	}
}

// CachedInstallmentPlanRepository 활성 플랜 조회에 Redis 캐시를 적용한 저장소
type CachedInstallmentPlanRepository struct {
	repo   InstallmentPlanRepository
	redis  *redis.Client
	config *PlanCacheConfig
}

// NewCachedInstallmentPlanRepository 캐시 적용 플랜 저장소 생성. redis 가 nil 이면 원본을 그대로 반환
func NewCachedInstallmentPlanRepository(repo InstallmentPlanRepository, redisClient *redis.Client, config *PlanCacheConfig) InstallmentPlanRepository {
	if redisClient == nil {
		return repo
	}
	if config == nil {
		config = DefaultPlanCacheConfig()
	}
	return &CachedInstallmentPlanRepository{
		repo:   repo,
		redis:  redisClient,
		config: config,
	}
}

func (r *CachedInstallmentPlanRepository) keyActiveList() string {
	return r.config.KeyPrefix + "active"
}

func (r *CachedInstallmentPlanRepository) keyActiveByName(name string) string {
	return fmt.Sprintf("%sname:%s", r.config.KeyPrefix, name)
}

// Invalidate 모든 플랜 캐시 삭제
func (r *CachedInstallmentPlanRepository) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.redis.Scan(ctx, cursor, r.config.KeyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.redis.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (r *CachedInstallmentPlanRepository) invalidate(ctx context.Context) {
	if err := r.Invalidate(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("installment plan cache invalidation failed")
	}
}

func (r *CachedInstallmentPlanRepository) Create(ctx context.Context, plan *domain.InstallmentPlan) error {
	if err := r.repo.Create(ctx, plan); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedInstallmentPlanRepository) Update(ctx context.Context, plan *domain.InstallmentPlan) error {
	if err := r.repo.Update(ctx, plan); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedInstallmentPlanRepository) Delete(ctx context.Context, id uint64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// FindByID 관리자 조회는 캐시하지 않음
func (r *CachedInstallmentPlanRepository) FindByID(ctx context.Context, id uint64) (*domain.InstallmentPlan, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *CachedInstallmentPlanRepository) ListAll(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	return r.repo.ListAll(ctx)
}

func (r *CachedInstallmentPlanRepository) FindActiveByName(ctx context.Context, name string) (*domain.InstallmentPlan, error) {
	key := r.keyActiveByName(name)

	var plan domain.InstallmentPlan
	if r.get(ctx, key, &plan) {
		return &plan, nil
	}

	found, err := r.repo.FindActiveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, found)
	return found, nil
}

func (r *CachedInstallmentPlanRepository) ListActive(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	key := r.keyActiveList()

	var plans []*domain.InstallmentPlan
	if r.get(ctx, key, &plans) {
		return plans, nil
	}

	plans, err := r.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, plans)
	return plans, nil
}

// get 캐시 조회. Redis 장애나 역직렬화 실패는 캐시 미스로 처리
func (r *CachedInstallmentPlanRepository) get(ctx context.Context, key string, out interface{}) bool {
	data, err := r.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (r *CachedInstallmentPlanRepository) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, key, data, r.config.TTL).Err(); err != nil {
		logger.GetLogger().Debug().Err(err).Str("key", key).Msg("installment plan cache write failed")
	}
}
