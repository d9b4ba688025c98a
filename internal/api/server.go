// Package api provides the read-only HTTP API for observing a running
// session. All endpoints are GET; the core exposes no mutation surface
// over the wire.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"chancellor/internal/engine"
	"chancellor/internal/persistence"
)

// Server serves session state over HTTP.
type Server struct {
	Session *engine.Session
	DB      *persistence.DB
	Port    int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/parliament", s.handleParliament)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Session.State
	writeJSON(w, map[string]any{
		"session":       s.Session.ID,
		"turn":          st.Turn,
		"fiscal_year":   st.Fiscal.YearCounter,
		"over":          st.Over,
		"over_reason":   st.OverReason,
		"growth":        st.Economy.AnnualGrowth,
		"inflation":     st.Economy.Inflation,
		"unemployment":  st.Economy.Unemployment,
		"gdp":           fmt.Sprintf("£%sbn", humanize.CommafWithDigits(st.Economy.GDPNominal, 0)),
		"deficit":       fmt.Sprintf("£%sbn", humanize.CommafWithDigits(st.Fiscal.Deficit, 1)),
		"debt":          fmt.Sprintf("£%sbn", humanize.CommafWithDigits(st.Fiscal.DebtNominal, 0)),
		"debt_pct_gdp":  st.Fiscal.DebtPctGDP,
		"headroom":      fmt.Sprintf("£%sbn", humanize.CommafWithDigits(st.Fiscal.Headroom, 1)),
		"policy_rate":   st.Market.PolicyRate,
		"yield_10y":     st.Market.Yield10,
		"currency":      st.Market.CurrencyIndex,
		"panic":         st.Market.Panic,
		"rating":        st.Politics.Rating,
		"approval":      st.Politics.Approval,
		"backbench":     st.Politics.Backbench,
		"pm_trust":      st.Politics.PMTrust,
		"credibility":   st.Politics.Credibility,
		"compliant":     st.Politics.Compliance.Compliant,
		"interventions": len(st.Politics.Pending),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if snaps, err := s.DB.Snapshots(s.Session.ID); err == nil {
			writeJSON(w, snaps)
			return
		}
	}
	writeJSON(w, s.Session.State.History)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if s.DB == nil {
		writeJSON(w, s.Session.TurnEvents)
		return
	}
	events, err := s.DB.RecentEvents(s.Session.ID, limit)
	if err != nil {
		http.Error(w, "events unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, events)
}

func (s *Server) handleParliament(w http.ResponseWriter, r *http.Request) {
	support, oppose, undecided := tally(s.Session)
	writeJSON(w, map[string]any{
		"support":   support,
		"oppose":    oppose,
		"undecided": undecided,
		"blocs":     s.Session.OppositionBlocs(),
	})
}

func tally(ss *engine.Session) (support, oppose, undecided int) {
	for _, st := range ss.Stances {
		switch st {
		case "support":
			support++
		case "oppose":
			oppose++
		default:
			undecided++
		}
	}
	return
}
