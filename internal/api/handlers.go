package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"rostering/internal/model"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Rosterer model.Rosterer
	Log      *logrus.Logger
}

func NewHandler(rosterer model.Rosterer, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Rosterer: rosterer, Log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	v1.Use(h.RequestIDMiddleware(), h.RequestLogMiddleware())
	v1.POST("/solve", h.Solve)
}

// RequestIDMiddleware tags every request with an id for log correlation.
func (h *Handler) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogMiddleware writes one structured line per handled request.
func (h *Handler) RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.Log.WithFields(logrus.Fields{
			"requestId": c.GetString("requestID"),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"elapsedMs": float64(time.Since(start).Microseconds()) / 1000.0,
		}).Info("request handled")
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SolveResponse is the wire form of a solve result. Schedule and objective
// are omitted when no feasible schedule was found.
type SolveResponse struct {
	Feasible   bool          `json:"feasible"`
	Schedule   [][]string    `json:"schedule,omitempty"`
	Objective  *int64        `json:"objective,omitempty"`
	Stats      ResponseStats `json:"stats"`
	Violations []string      `json:"violations"`
}

type ResponseStats struct {
	Status     string  `json:"status"`
	Objective  int64   `json:"objective"`
	WallTimeMS float64 `json:"wallTimeMs"`
	Branches   int64   `json:"branches"`
	Conflicts  int64   `json:"conflicts"`
}

// Solve handles one rostering request. Malformed input is a 400; an
// infeasible instance is a normal 200 with feasible=false.
func (h *Handler) Solve(c *gin.Context) {
	var raw model.RawInstance
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := raw.ToRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Rosterer.Solve(request)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(result.Violations) > 0 {
		// A solver-feasible schedule that fails independent validation means
		// the constraint encoding itself is broken. Surface it loudly.
		h.Log.WithFields(logrus.Fields{
			"requestId":  c.GetString("requestID"),
			"violations": len(result.Violations),
		}).Error("feasible schedule failed independent validation")
	}

	c.JSON(http.StatusOK, toResponse(result))
}

func toResponse(result model.SolveResult) SolveResponse {
	response := SolveResponse{
		Feasible:  result.Feasible,
		Objective: result.Objective,
		Stats: ResponseStats{
			Status:     result.Stats.Status,
			Objective:  result.Stats.Objective,
			WallTimeMS: float64(result.Stats.WallTime.Microseconds()) / 1000.0,
			Branches:   result.Stats.Branches,
			Conflicts:  result.Stats.Conflicts,
		},
		Violations: lo.Map(result.Violations, func(violation model.Violation, _ int) string {
			return violation.String()
		}),
	}

	if result.Schedule != nil {
		response.Schedule = lo.Map(result.Schedule.Rows(), func(row []model.Shift, _ int) []string {
			return lo.Map(row, func(shift model.Shift, _ int) string { return string(shift) })
		})
	}
	return response
}
