package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"roomify/config"
	otelMocks "roomify/infras/otel/mocks"
	userDto "roomify/internal/domains/user/model/dto"
	userMocks "roomify/internal/domains/user/mocks"
	"roomify/shared"
	cacheMocks "roomify/shared/cache/mocks"
	"roomify/shared/constant"
	"roomify/shared/failure"
	"roomify/transport/http/middleware"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func limiterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name      string
		count     int64
		err       error
		code      int
		remaining string
	}{
		{name: "first request passes", count: 1, code: http.StatusOK, remaining: "1"},
		{name: "last allowed request passes", count: 2, code: http.StatusOK, remaining: "0"},
		{name: "over the limit is rejected", count: 3, code: http.StatusTooManyRequests, remaining: "0"},
		{name: "cache failure lets the request through", err: errors.New("connection refused"), code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockCounter(ctrl)

			cache.EXPECT().
				Increment(gomock.Any(), "limiter:10.0.0.1:go-test", time.Minute).
				Return(tt.count, tt.err)

			m := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(), cache)

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.1")
			req.Header.Set(constant.RequestHeaderUserAgent, "go-test")

			rec := httptest.NewRecorder()
			m.RateLimit()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.remaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestRateLimit_Keys(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(req *http.Request)
		key     string
	}{
		{
			name: "identified caller",
			prepare: func(req *http.Request) {
				req.Header.Set(constant.RequestHeaderUserID, "user1")
				req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1")
			},
			key: "limiter:user:user1",
		},
		{
			name: "real ip header",
			prepare: func(req *http.Request) {
				req.Header.Set(constant.RequestHeaderRealIP, "10.0.0.9")
				req.Header.Set(constant.RequestHeaderUserAgent, "curl")
			},
			key: "limiter:10.0.0.9:curl",
		},
		{
			name:    "socket address without agent",
			prepare: func(req *http.Request) { req.RemoteAddr = "192.168.1.4:51234" },
			key:     "limiter:192.168.1.4:unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockCounter(ctrl)

			cache.EXPECT().Increment(gomock.Any(), tt.key, time.Minute).Return(int64(1), nil)

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			req.Header.Del(constant.RequestHeaderUserAgent)
			tt.prepare(req)

			rec := httptest.NewRecorder()
			middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(), cache).RateLimit()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockCounter(ctrl)

	m := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, cache)

	rec := httptest.NewRecorder()
	m.RateLimit()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTracing_PassesThrough(t *testing.T) {
	m := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	handler := m.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestTracing_OpensRequestSpan(t *testing.T) {
	recorder := otelMocks.NewRecorder()
	m := middleware.NewAppMiddleware(recorder, &config.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1")

	rec := httptest.NewRecorder()
	m.Tracing(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"GET /v1/rooms"}, recorder.Spans())
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://campus.example"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	m := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, nil)

	req := httptest.NewRequest(http.MethodOptions, "/v1/bookings", nil)
	req.Header.Set("Origin", "https://campus.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", constant.RequestHeaderUserID)

	rec := httptest.NewRecorder()
	m.CORS()(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "https://campus.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		name   string
		header string
		setup  func(users *userMocks.MockUser)
		code   int
	}{
		{
			name:   "missing header",
			header: "",
			setup:  func(*userMocks.MockUser) {},
			code:   http.StatusUnauthorized,
		},
		{
			name:   "unknown user",
			header: "ghost",
			setup: func(users *userMocks.MockUser) {
				users.EXPECT().Get(gomock.Any(), "ghost").Return(userDto.UserResponse{}, failure.NotFound("user not found"))
			},
			code: http.StatusUnauthorized,
		},
		{
			name:   "lookup failure",
			header: "fac1",
			setup: func(users *userMocks.MockUser) {
				users.EXPECT().Get(gomock.Any(), "fac1").Return(userDto.UserResponse{}, errors.New("store closed"))
			},
			code: http.StatusInternalServerError,
		},
		{
			name:   "known user",
			header: "fac1",
			setup: func(users *userMocks.MockUser) {
				users.EXPECT().Get(gomock.Any(), "fac1").Return(userDto.UserResponse{ID: "fac1", Role: "faculty"}, nil)
			},
			code: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := userMocks.NewMockUser(ctrl)
			tt.setup(users)

			var caller, role string

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				caller = shared.CallerID(r.Context())
				role, _ = r.Context().Value(constant.ContextKeyUserRole).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil).WithContext(context.Background())
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderUserID, tt.header)
			}

			rec := httptest.NewRecorder()
			middleware.NewIdentityMiddleware(users, otelMocks.NewOtel()).Identify(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)

			if tt.code == http.StatusOK {
				assert.Equal(t, "fac1", caller)
				assert.Equal(t, "faculty", role)
			}
		})
	}
}
