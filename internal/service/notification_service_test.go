package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNotification_PollingUpdatesBadge(t *testing.T) {
	f := newFakeBackend()
	f.mu.Lock()
	f.unread = 3
	f.mu.Unlock()

	svc := NewNotificationService(f, 20*time.Millisecond, zap.NewNop())
	svc.StartPolling(10, "tok")
	defer svc.StopPolling(10)

	// 시작 직후 1회 갱신
	deadline := time.Now().Add(time.Second)
	for svc.Badge(10) != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("배지 3 기대, 실제 %d", svc.Badge(10))
		}
		time.Sleep(5 * time.Millisecond)
	}

	// 서버 값이 바뀌면 다음 주기에 반영
	f.mu.Lock()
	f.unread = 7
	f.mu.Unlock()

	deadline = time.Now().Add(time.Second)
	for svc.Badge(10) != 7 {
		if time.Now().After(deadline) {
			t.Fatalf("배지 7 기대, 실제 %d", svc.Badge(10))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotification_StopPollingCancels(t *testing.T) {
	f := newFakeBackend()
	svc := NewNotificationService(f, 10*time.Millisecond, zap.NewNop())

	svc.StartPolling(10, "tok")
	time.Sleep(30 * time.Millisecond)
	svc.StopPolling(10)

	stopped := f.callCount("unread")
	time.Sleep(50 * time.Millisecond)
	if f.callCount("unread") != stopped {
		t.Error("중단 후에는 폴링이 멈춰야 함")
	}

	// 중단 후 배지는 0
	if svc.Badge(10) != 0 {
		t.Errorf("중단 후 배지 0 기대, 실제 %d", svc.Badge(10))
	}
}

func TestNotification_DuplicateStartIgnored(t *testing.T) {
	f := newFakeBackend()
	svc := NewNotificationService(f, time.Hour, zap.NewNop())
	defer svc.StopPolling(10)

	svc.StartPolling(10, "tok")
	svc.StartPolling(10, "tok")

	time.Sleep(30 * time.Millisecond)
	if got := f.callCount("unread"); got != 1 {
		t.Errorf("중복 시작은 무시되어야 함, 호출 %d회", got)
	}
}

func TestNotification_RefreshImmediate(t *testing.T) {
	f := newFakeBackend()
	f.mu.Lock()
	f.unread = 5
	f.mu.Unlock()

	svc := NewNotificationService(f, time.Hour, zap.NewNop())
	count, err := svc.Refresh(context.Background(), 10, "tok")
	if err != nil {
		t.Fatalf("Refresh 실패: %v", err)
	}
	if count != 5 {
		t.Errorf("배지 5 기대, 실제 %d", count)
	}
}
