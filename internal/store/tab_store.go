package store

import (
	"sync"

	"github.com/google/uuid"

	"haksa-portal/backend/internal/model"
)

// TabStore 탭 범위 응시 메타 저장소
// 브라우저 탭 하나가 키 하나를 가지며, 제출이 끝나면 항목을 지운다.
// 프로세스 메모리에만 존재하므로 서버 재시작 시 사라진다 — 진행분 복원은
// ExamCache 쪽이 담당하고 이 저장소는 탭 식별만 맡는다
type TabStore struct {
	mu   sync.RWMutex
	tabs map[string]model.AttemptMeta
}

// NewTabStore TabStore 생성
func NewTabStore() *TabStore {
	return &TabStore{tabs: make(map[string]model.AttemptMeta)}
}

// Open 새 탭 키를 발급하고 응시 메타를 연결
func (s *TabStore) Open(meta model.AttemptMeta) string {
	tabID := uuid.NewString()
	s.mu.Lock()
	s.tabs[tabID] = meta
	s.mu.Unlock()
	return tabID
}

// Get 탭 키로 응시 메타 조회
func (s *TabStore) Get(tabID string) (model.AttemptMeta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.tabs[tabID]
	return meta, ok
}

// Close 탭 항목 삭제 (제출 완료 또는 탭 종료)
func (s *TabStore) Close(tabID string) {
	s.mu.Lock()
	delete(s.tabs, tabID)
	s.mu.Unlock()
}
