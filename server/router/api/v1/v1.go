package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/chronoparse/internal/profile"
	"github.com/hrygo/chronoparse/plugin/datetime"
)

type APIV1Service struct {
	Profile    *profile.Profile
	Recognizer *datetime.Recognizer

	// location reads reference instants that carry no offset.
	location *time.Location
	// now is the clock used when a request has no reference.
	now func() time.Time
}

func NewAPIV1Service(profile *profile.Profile, recognizer *datetime.Recognizer) (*APIV1Service, error) {
	loc, err := profile.Location()
	if err != nil {
		return nil, err
	}
	return &APIV1Service{
		Profile:    profile,
		Recognizer: recognizer,
		location:   loc,
		now:        time.Now,
	}, nil
}

// RegisterRoutes registers the JSON API with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo, middlewares ...echo.MiddlewareFunc) {
	corsHandler := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(_ string) (bool, error) {
			return true, nil
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	})
	group := echoServer.Group("/api/v1", append([]echo.MiddlewareFunc{corsHandler}, middlewares...)...)

	group.POST("/recognize", s.Recognize)
	group.GET("/cultures", s.ListCultures)
	group.GET("/metrics", s.GetMetricsOverview)
	group.DELETE("/metrics", s.ResetMetrics)
}
