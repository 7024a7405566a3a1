package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusq/survey-backend/internal/config"
	"github.com/campusq/survey-backend/internal/middleware"
	"github.com/campusq/survey-backend/internal/service"
	ws "github.com/campusq/survey-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live survey results to admin dashboards.
type WSHandler struct {
	rdb          *redis.Client
	statsService *service.StatisticsService
	log          zerolog.Logger
	upgrader     websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, statsService *service.StatisticsService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:          rdb,
		statsService: statsService,
		log:          log.With().Str("component", "ws_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
	}
}

// SurveyResultsStream godoc
// WS /ws/v1/admin/surveys/:survey_id/results
// Upgrades to WebSocket and pushes updated statistics whenever a submission
// lands, via the survey's Redis PubSub channel.
func (h *WSHandler) SurveyResultsStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid survey ID"})
		return
	}

	// Ownership check before the upgrade, while HTTP errors still work.
	owner := ownerFilter(claims)
	if _, err := h.statsService.GetSurveyStatistics(c.Request.Context(), surveyID, owner); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to view this survey"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("admin_id", claims.UserID).
		Str("survey_id", surveyID.String()).
		Logger()

	wsLog.Info().Msg("Dashboard connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.CacheKey.SurveyResultsChannel(surveyID.String()))
	defer sub.Close()

	// Initial snapshot so the dashboard renders immediately.
	h.pushStats(ctx, conn, surveyID, owner, wsLog)

	// Reader: handles ping/refresh and detects disconnects.
	requests := make(chan ws.RequestEnvelope)
	go func() {
		defer close(requests)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			requests <- msg
		}
	}()

	events := sub.Channel()
	for {
		select {
		case msg, ok := <-requests:
			if !ok {
				return
			}
			switch msg.Action {
			case ws.ActionPing:
				ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			case ws.ActionRefresh:
				h.pushStats(ctx, conn, surveyID, owner, wsLog)
			default:
				ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}

		case redisMsg, ok := <-events:
			if !ok {
				return
			}
			var event service.SubmissionEvent
			if err := json.Unmarshal([]byte(redisMsg.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("Bad submission event payload")
				continue
			}
			ws.WriteTyped(conn, ws.SubmissionNotice{
				Event:       ws.EventSubmission,
				SurveyID:    event.SurveyID.String(),
				SubmittedAt: event.SubmittedAt.Format(time.RFC3339),
			})
			h.pushStats(ctx, conn, surveyID, owner, wsLog)
		}
	}
}

// pushStats sends a full statistics payload over the connection.
func (h *WSHandler) pushStats(ctx context.Context, conn *websocket.Conn, surveyID uuid.UUID, ownerID int, wsLog zerolog.Logger) {
	stats, err := h.statsService.GetSurveyStatistics(ctx, surveyID, ownerID)
	if err != nil {
		wsLog.Error().Err(err).Msg("Stats refresh failed")
		ws.WriteError(conn, "failed to compute statistics")
		return
	}
	ws.WriteTyped(conn, ws.StatsResponse{Event: ws.EventStats, Stats: stats})
}
