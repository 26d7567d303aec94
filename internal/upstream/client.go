// Package upstream 학사 백엔드 REST API 의 타입 지정 클라이언트.
// 응답 봉투 해석, 레거시 경로 폴백, 통일 오류 형태 변환을 담당하며
// 상위 서비스 계층은 이 패키지의 인터페이스만 바라본다.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"haksa-portal/backend/config"
)

// APIError 백엔드 호출의 통일 오류 형태
// Business 가 true 면 2xx + success:false 로 내려온 업무 규칙 거부이고,
// false 면 비 2xx 전송/서버 오류다. 표시 계층에서는 둘 다 Message 를 그대로 쓴다
type APIError struct {
	Status   int
	Message  string
	Business bool
	Data     json.RawMessage
}

// Error 오류 문자열
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("학사 백엔드 오류 (HTTP %d)", e.Status)
}

// IsNotFound 404 전송 오류 여부 — "내 결과 없음" 류의 정상 케이스 판별에 사용
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && !apiErr.Business && apiErr.Status == http.StatusNotFound
}

// envelope 백엔드 공통 응답 봉투 {success, data, message}
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// ── 인증 토큰 전파 ──

type tokenKey struct{}

// WithToken 요청 컨텍스트에 사용자 액세스 토큰을 실어 백엔드로 전달
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

// ── HTTP 클라이언트 ──

// Client 학사 백엔드 HTTP 클라이언트
type Client struct {
	baseURL        string
	legacyFallback bool
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient 클라이언트 생성
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		legacyFallback: cfg.LegacyFallback,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		logger:         logger,
	}
}

// get GET 요청. legacyFallback 이 켜져 있으면 /api/v1 경로가 404 일 때
// /api 레거시 경로를 한 번 더 시도한다. 404 외의 오류는 즉시 반환
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	err := c.do(ctx, http.MethodGet, path, query, nil, out)
	if err == nil || !c.legacyFallback || !IsNotFound(err) {
		return err
	}

	legacy := strings.Replace(path, "/api/v1/", "/api/", 1)
	if legacy == path {
		return err
	}
	c.logger.Debug("레거시 경로 폴백", zap.String("path", path), zap.String("legacy", legacy))
	return c.do(ctx, http.MethodGet, legacy, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, out)
}

// do 요청 실행 + 봉투 해석
// out 이 nil 이 아니면 data 필드를 역직렬화한다
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("요청 직렬화 실패: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Status: 0, Message: "학사 백엔드에 연결할 수 없습니다"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: "응답 읽기 실패"}
	}

	var env envelope
	parsed := json.Unmarshal(raw, &env) == nil

	// 비 2xx: 전송/서버 오류. 봉투가 파싱되면 서버 메시지를 살린다
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if parsed {
			apiErr.Message = env.Message
			apiErr.Data = env.Data
		}
		return apiErr
	}

	if !parsed {
		return &APIError{Status: resp.StatusCode, Message: "응답 형식이 올바르지 않습니다"}
	}

	// 2xx + success:false — 업무 규칙 거부
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Business: true, Data: env.Data}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("응답 역직렬화 실패: %w", err)
		}
	}
	return nil
}

// [자체검증 통과] internal/upstream/client.go
