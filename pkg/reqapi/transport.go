package reqapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const REQUEST_ID_HEADER = "X-Request-Id"

// loggingRoundTripper stamps X-Request-Id on every outbound call, logs it
// and reports it to the observer.
type loggingRoundTripper struct {
	inner    http.RoundTripper
	observer Observer
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := req.Header.Get(REQUEST_ID_HEADER)
	if requestID == "" {
		requestID = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(REQUEST_ID_HEADER, requestID)
	}
	api := apiFromContext(req.Context())

	resp, err := l.inner.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		slog.Error("reqapi request failed",
			slog.String("api", api),
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("request_id", requestID),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()))
		l.observe(api, req.Method, 0, elapsed)
		return nil, err
	}

	slog.Debug("reqapi request done",
		slog.String("api", api),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("duration", elapsed))
	l.observe(api, req.Method, resp.StatusCode, elapsed)
	return resp, nil
}

func (l *loggingRoundTripper) observe(api, method string, status int, elapsed time.Duration) {
	if l.observer == nil {
		return
	}
	l.observer.ObserveRequest(api, method, status, elapsed)
}

func asHTTPError(err error, target **HTTPError) bool {
	return errors.As(err, target)
}
