// Package httpapi は HRMS Lite の REST API を chi で公開します。
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/hello"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
)

const maxBodyBytes = 1 << 20

// Deps はルーターが利用するユースケースと周辺機能です。
type Deps struct {
	Greeter    hello.Greeter
	Directory  directory.UseCase
	Attendance attendance.UseCase
	Payroll    payroll.UseCase

	// RecentLimit は /attendance/all で limit が省略された場合の件数です。0 ならユースケースの既定値です。
	RecentLimit int

	// Ready は /readyz で呼ばれます。nil なら常に準備完了とみなします。
	Ready   func(ctx context.Context) error
	Metrics http.Handler

	Logger   *slog.Logger
	Observer Observer
}

// NewRouter は全エンドポイントを登録した http.Handler を返します。
func NewRouter(deps Deps) http.Handler {
	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(AccessLog(deps.Logger, deps.Observer))
	router.Use(middleware.Recoverer)
	router.Use(BodyLimit(maxBodyBytes))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		message, err := deps.Greeter.SayHello(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, r, map[string]string{"message": message})
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	newDirectoryHandler(deps.Directory).RegisterRoutes(router)
	newAttendanceHandler(deps.Attendance, deps.RecentLimit).RegisterRoutes(router)
	newPayrollHandler(deps.Payroll, deps.Directory).RegisterRoutes(router)

	return router
}
