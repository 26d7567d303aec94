package schedule

// CreditLimit 학기당 신청 가능 학점 상한
// 정책 상수이며 서버 설정으로 바뀌지 않는다
const CreditLimit = 21

// TotalCredits 강좌 목록의 학점 합계. 학점이 없는(0) 항목은 0 으로 집계
func TotalCredits(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Credits
	}
	return total
}

// ExceedsCreditLimit 추가 학점을 더하면 상한을 초과하는지
// 엄격 초과 판정이므로 정확히 21학점까지는 허용된다
func ExceedsCreditLimit(current, additional int) bool {
	return current+additional > CreditLimit
}
