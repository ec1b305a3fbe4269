package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/chronoparse/internal/observability"
	"github.com/hrygo/chronoparse/plugin/datetime"
	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// RecognizeRequest is the body of POST /api/v1/recognize.
type RecognizeRequest struct {
	Query   string `json:"query"`
	Culture string `json:"culture"`
	// Reference is RFC 3339 or a local "2006-01-02 15:04:05" value read in
	// Timezone. Empty means now.
	Reference string `json:"reference"`
	Timezone  string `json:"timezone"`
	// Fallback defaults to true.
	Fallback *bool `json:"fallback"`
}

type RecognizeResponse struct {
	Query     string                   `json:"query"`
	Culture   string                   `json:"culture"`
	Reference string                   `json:"reference"`
	Results   []recognizer.ModelResult `json:"results"`
}

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type CulturesResponse struct {
	Default   string   `json:"default"`
	Supported []string `json:"supported"`
}

// Recognize extracts and resolves the temporal expressions of a query.
// POST /api/v1/recognize
func (s *APIV1Service) Recognize(c echo.Context) error {
	var req RecognizeRequest
	if err := c.Bind(&req); err != nil {
		return newHTTPError(http.StatusBadRequest, recognizer.ErrCodeInvalidArgument, "invalid request body")
	}
	if len(req.Query) > s.Profile.MaxQueryLength {
		return newHTTPError(http.StatusBadRequest, recognizer.ErrCodeInvalidArgument,
			fmt.Sprintf("query is %d bytes, the limit is %d", len(req.Query), s.Profile.MaxQueryLength))
	}

	loc := s.location
	if req.Timezone != "" {
		var err error
		if loc, err = dateutil.LoadLocation(req.Timezone); err != nil {
			return newHTTPError(http.StatusBadRequest, recognizer.ErrCodeInvalidArgument, err.Error())
		}
	}
	ref, err := dateutil.ParseReference(req.Reference, loc)
	if err != nil {
		return newHTTPError(http.StatusBadRequest, recognizer.ErrCodeInvalidArgument, err.Error())
	}
	if ref.IsZero() {
		ref = s.now().In(loc)
	}

	fallback := req.Fallback == nil || *req.Fallback
	cultureCode := req.Culture
	if cultureCode == "" {
		cultureCode = s.Recognizer.TargetCulture()
	}

	rc := observability.NewRequestContext(slog.Default(), datetime.ModelTypeDateTime, cultureCode)
	c.Response().Header().Set(echo.HeaderXRequestID, rc.RequestID)
	c.SetRequest(c.Request().WithContext(observability.WithRequestContext(c.Request().Context(), rc)))
	rc.WithFields(slog.String("remote_ip", c.RealIP())).Debug("recognize request received",
		slog.Int(observability.LogFieldQueryLen, len(req.Query)))

	results, err := s.Recognizer.RecognizeContext(c.Request().Context(), req.Query, cultureCode, ref, fallback)
	if err != nil {
		code := recognizer.CodeOf(err, recognizer.ErrCodeModelConstruction)
		status := http.StatusInternalServerError
		switch code {
		case recognizer.ErrCodeModelNotFound:
			status = http.StatusNotFound
		case recognizer.ErrCodeInvalidArgument, recognizer.ErrCodeInvalidOptions:
			status = http.StatusBadRequest
		}
		if status == http.StatusInternalServerError {
			rc.Error("recognize failed", err)
		} else {
			rc.Warn("recognize rejected", slog.String(observability.LogFieldErrorCode, string(code)))
		}
		return newHTTPError(status, code, err.Error())
	}
	if results == nil {
		results = []recognizer.ModelResult{}
	}
	rc.Info("recognize request served",
		slog.Int(observability.LogFieldEntities, len(results)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()),
	)

	return c.JSON(http.StatusOK, RecognizeResponse{
		Query:     req.Query,
		Culture:   cultureCode,
		Reference: ref.Format(time.RFC3339),
		Results:   results,
	})
}

func newHTTPError(status int, code recognizer.ErrorCode, msg string) *echo.HTTPError {
	return echo.NewHTTPError(status, ErrorResponse{Code: string(code), Error: msg})
}

// ListCultures returns the cultures the recognizer serves.
// GET /api/v1/cultures
func (s *APIV1Service) ListCultures(c echo.Context) error {
	return c.JSON(http.StatusOK, CulturesResponse{
		Default:   s.Recognizer.TargetCulture(),
		Supported: culture.Supported(),
	})
}
