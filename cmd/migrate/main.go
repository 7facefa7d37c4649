package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/codecraft/institute-backend/internal/config"
	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/migration"
	"github.com/codecraft/institute-backend/internal/repository"
	pkglogger "github.com/codecraft/institute-backend/pkg/logger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	courseTitle := flag.String("course-title", "", "register a course with this title after migrating")
	courseFee := flag.String("course-fee", "", "course fee in BDT, e.g. 50000.00")
	courseStart := flag.String("course-start", "", "course start date (YYYY-MM-DD)")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	config.LoadDotEnv(".", env)
	pkglogger.InitStructured("local")
	log := pkglogger.GetLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	started := time.Now()
	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Dur("took", time.Since(started)).Int("tables", len(migration.Models())).Msg("migration completed")

	if *courseTitle == "" {
		return
	}

	// 강의 등록 (강의 관리 화면이 없는 환경용)
	fee, err := domain.ParseMoney(*courseFee)
	if err != nil || fee <= 0 {
		log.Fatal().Str("course_fee", *courseFee).Msg("course-fee must be a positive amount")
	}
	course := &domain.Course{Title: *courseTitle, Fee: fee, IsActive: true}
	if *courseStart != "" {
		start, err := time.Parse("2006-01-02", *courseStart)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid course-start")
		}
		course.StartDate = start
	}

	if err := repository.NewCourseRepository(db).Create(context.Background(), course); err != nil {
		log.Fatal().Err(err).Msg("failed to create course")
	}
	log.Info().Uint64("course_id", course.ID).Str("fee", course.Fee.String()).Msg("course registered")
}
