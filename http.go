package main

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

type loggerTransport struct {
	transport http.RoundTripper
	logger    *log.Logger
}

func (l *loggerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	l.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
	)

	startTime := time.Now()
	resp, err := l.transport.RoundTrip(req)
	if err != nil {
		l.logger.Error("HTTP Request failed", "error", err, "url", req.URL.String())
		return nil, err
	}

	l.logger.Debug("HTTP Response",
		"status", resp.Status,
		"duration", time.Since(startTime),
		"url", req.URL.String(),
		"method", req.Method,
	)

	return resp, nil
}

// newLoggingTransport wraps transport so requests and responses are logged at debug level.
func newLoggingTransport(transport http.RoundTripper, logger *log.Logger) http.RoundTripper {
	return &loggerTransport{transport: transport, logger: logger}
}
