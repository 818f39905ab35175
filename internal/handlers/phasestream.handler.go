package handlers

import (
	"context"
	"sync"

	"civic/internal/logger"
	. "civic/internal/models"
	"civic/internal/services"

	"github.com/gofiber/websocket/v2"
)

// PhaseStream serves the live lookup channel. Each connection owns one
// resolver session: every query frame supersedes the previous
// sequence, and every FetchState transition goes back as a JSON frame.
type PhaseStream struct {
	resolver *services.ResolverService
	log      logger.Logger
}

type phaseRequest struct {
	Query      string `json:"query"`
	ForceFresh bool   `json:"force_fresh"`
}

type phaseFrame struct {
	Query            string       `json:"query"`
	Phase            FetchPhase   `json:"phase"`
	Error            string       `json:"error,omitempty"`
	DataStatus       DataStatus   `json:"data_status,omitempty"`
	FormattedAddress string       `json:"formatted_address,omitempty"`
	Attempt          int          `json:"attempt,omitempty"`
	Officials        []Politician `json:"officials,omitempty"`
}

func NewPhaseStream(resolver *services.ResolverService) *PhaseStream {
	return &PhaseStream{
		resolver: resolver,
		log:      logger.New("phaseStream"),
	}
}

func (ps *PhaseStream) Handle(conn *websocket.Conn) {
	log := ps.log.Function("Handle")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := ps.resolver.NewSession()

	// Concurrent sequences finish out of order; one writer lock keeps
	// frames whole.
	var writeMu sync.Mutex
	var streams sync.WaitGroup
	defer streams.Wait()

	for {
		var req phaseRequest
		if err := conn.ReadJSON(&req); err != nil {
			log.Debug("connection closed", "error", err)
			return
		}

		res := sess.Resolve(ctx, req.Query, services.ResolveOptions{
			Enabled:   true,
			SkipCache: req.ForceFresh,
		})

		streams.Add(1)
		go func(query string, res *services.Resolution) {
			defer streams.Done()
			for state := range res.Updates() {
				writeMu.Lock()
				err := conn.WriteJSON(phaseFrame{
					Query:            query,
					Phase:            state.Phase,
					Error:            state.Error,
					DataStatus:       state.DataStatus,
					FormattedAddress: state.FormattedAddress,
					Attempt:          state.Attempt,
					Officials:        state.Data,
				})
				writeMu.Unlock()
				if err != nil {
					cancel()
					return
				}
			}
		}(req.Query, res)
	}
}
