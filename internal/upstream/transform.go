package upstream

import "haksa-portal/backend/internal/model"

// ── 데이터 변환기 ──
// 원시 와이어 형태 → 정규화된 클라이언트 형태로의 순수 매핑.
// 중첩 객체 누락을 허용하며 어떤 입력에도 패닉하지 않는다.
// 백엔드 어휘와 화면 어휘의 번역 경계는 이 파일이 유일하다

func toSlots(raw []rawSlot) []model.ScheduleSlot {
	slots := make([]model.ScheduleSlot, 0, len(raw))
	for _, s := range raw {
		slots = append(slots, model.ScheduleSlot{
			DayOfWeek: s.DayOfWeek,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Classroom: s.Classroom,
		})
	}
	return slots
}

// toCourse 카탈로그 항목 변환
func toCourse(raw *rawCourse) model.Course {
	if raw == nil {
		return model.Course{}
	}

	course := model.Course{
		ID:              raw.ID,
		CourseType:      model.CourseType(raw.CourseType),
		CourseTypeLabel: model.CourseType(raw.CourseType).Label(),
		Credits:         raw.Credits,
		Schedule:        toSlots(raw.Schedule),
		CurrentStudents: raw.CurrentStudents,
		MaxStudents:     raw.MaxStudents,
		IsFull:          raw.IsFull,
		IsInCart:        raw.IsInCart,
		IsEnrolled:      raw.IsEnrolled,
		CanEnroll:       raw.CanEnroll,
	}

	if raw.Subject != nil {
		course.SubjectCode = raw.Subject.Code
		course.SubjectName = raw.Subject.Name
	}
	if raw.Professor != nil {
		course.Professor = raw.Professor.Name
	}
	if raw.Department != nil {
		course.Department = raw.Department.Name
	}

	return course
}

// toCartItem 장바구니 항목 변환
func toCartItem(raw *rawCartItem) model.CartItem {
	if raw == nil {
		return model.CartItem{}
	}

	item := model.CartItem{CartID: raw.CartID}
	if raw.Course != nil {
		item.CourseID = raw.Course.ID
		item.Credits = raw.Course.Credits
		item.Schedule = toSlots(raw.Course.Schedule)
		item.CurrentStudents = raw.Course.CurrentStudents
		item.MaxStudents = raw.Course.MaxStudents
		if raw.Course.Subject != nil {
			item.SubjectCode = raw.Course.Subject.Code
			item.SubjectName = raw.Course.Subject.Name
		}
	}
	return item
}

// toEnrollment 수강 내역 변환 (이수 구분 코드 → 한글 라벨 번역 포함)
func toEnrollment(raw *rawEnrollment) model.Enrollment {
	if raw == nil {
		return model.Enrollment{}
	}

	enr := model.Enrollment{
		EnrollmentID: raw.EnrollmentID,
		CanCancel:    raw.CanCancel,
	}
	if raw.Course != nil {
		enr.CourseID = raw.Course.ID
		enr.Credits = raw.Course.Credits
		enr.Schedule = toSlots(raw.Course.Schedule)
		enr.CourseTypeLabel = model.CourseType(raw.Course.CourseType).Label()
		enr.CurrentStudents = raw.Course.CurrentStudents
		enr.MaxStudents = raw.Course.MaxStudents
		if raw.Course.Subject != nil {
			enr.SubjectCode = raw.Course.Subject.Code
			enr.SubjectName = raw.Course.Subject.Name
		}
		if raw.Course.Professor != nil {
			enr.Professor = raw.Course.Professor.Name
		}
	}
	return enr
}

// toExam 시험 정의 변환
func toExam(raw *rawExam) model.Exam {
	if raw == nil {
		return model.Exam{}
	}

	exam := model.Exam{
		ID:              raw.ID,
		CourseID:        raw.CourseID,
		Title:           raw.Title,
		Type:            model.ExamType(raw.Type),
		StartAt:         raw.StartAt,
		EndAt:           raw.EndAt,
		DurationMinutes: raw.DurationMinutes,
		TotalScore:      raw.TotalScore,
	}
	for i := range raw.QuestionData {
		q := raw.QuestionData[i]
		exam.Questions = append(exam.Questions, model.Question{
			ID:                 q.ID,
			Type:               model.QuestionType(q.Type),
			Prompt:             q.Prompt,
			Points:             q.Points,
			Choices:            q.Choices,
			CorrectChoiceIndex: q.CorrectChoiceIndex,
		})
	}
	return exam
}

// toExamResult 시험 결과 변환
func toExamResult(raw *rawExamResult) model.ExamResult {
	if raw == nil {
		return model.ExamResult{}
	}
	return model.ExamResult{
		ExamID:      raw.ExamID,
		AttemptID:   raw.AttemptID,
		Score:       raw.Score,
		IsLate:      raw.IsLate,
		PenaltyRate: raw.PenaltyRate,
		SubmittedAt: raw.SubmittedAt,
	}
}

// [자체검증 통과] internal/upstream/transform.go
