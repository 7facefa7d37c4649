package scheduler

import (
	"context"
	"time"

	"github.com/codecraft/institute-backend/internal/middleware"
	"github.com/codecraft/institute-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// StaleSweeper 오래된 pending 결제 정리 대상
type StaleSweeper interface {
	ExpireStale(ctx context.Context, olderThan time.Duration, batchSize int) (int, error)
}

// Config 스케줄러 설정
type Config struct {
	SweepEnabled  bool
	SweepSchedule string // 초 단위 포함 cron 식
	StaleAfter    time.Duration
	BatchSize     int
	JobTimeout    time.Duration
}

// Scheduler 주기 작업 관리자
type Scheduler struct {
	cron       *cron.Cron
	sweeper    StaleSweeper
	dbInUse    func() int
	config     Config
	sweepEntry cron.EntryID
	statsEntry cron.EntryID
	registered bool
}

// New 생성자. dbInUse 가 nil 이면 커넥션 게이지 작업을 등록하지 않는다
func New(sweeper StaleSweeper, dbInUse func() int, config Config) *Scheduler {
	if config.JobTimeout <= 0 {
		config.JobTimeout = time.Minute
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		sweeper: sweeper,
		dbInUse: dbInUse,
		config:  config,
	}
}

// Register 작업 등록
func (s *Scheduler) Register() error {
	if s.registered {
		return nil
	}

	if s.config.SweepEnabled && s.sweeper != nil {
		id, err := s.cron.AddFunc(s.config.SweepSchedule, s.SweepStale)
		if err != nil {
			return err
		}
		s.sweepEntry = id
	}

	if s.dbInUse != nil {
		id, err := s.cron.AddFunc("*/15 * * * * *", s.recordDBStats)
		if err != nil {
			return err
		}
		s.statsEntry = id
	}

	s.registered = true
	return nil
}

// Start 작업 등록 후 실행
func (s *Scheduler) Start() error {
	if err := s.Register(); err != nil {
		return err
	}
	s.cron.Start()
	logger.GetLogger().Info().
		Bool("sweep", s.sweepEntry != 0).
		Str("schedule", s.config.SweepSchedule).
		Msg("scheduler started")
	return nil
}

// Stop 실행 중인 작업이 끝날 때까지 대기
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.GetLogger().Info().Msg("scheduler stopped")
}

// Entries 등록된 작업 수
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// SweepStale 한 번의 정리 실행
func (s *Scheduler) SweepStale() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	log := logger.GetLogger()
	started := time.Now()
	n, err := s.sweeper.ExpireStale(ctx, s.config.StaleAfter, s.config.BatchSize)
	if err != nil {
		log.Error().Err(err).Msg("stale payment sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int("expired", n).Dur("took", time.Since(started)).Msg("stale payments expired")
	}
}

func (s *Scheduler) recordDBStats() {
	middleware.SetDBConnectionsInUse(s.dbInUse())
}
