package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bobmcallan/ratiolens/internal/clients/eodhd"
	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/interfaces"
)

// handleHealth returns service liveness and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
		"version": common.GetVersion(),
	})
}

// handleVersion returns the build identity.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
	})
}

// analyzeRequest is the POST /api/analyze request body.
type analyzeRequest struct {
	Ticker       string   `json:"ticker"`
	Peers        []string `json:"peers,omitempty"`
	Index        string   `json:"index,omitempty"`
	Years        int      `json:"years,omitempty"`
	ForceRefresh bool     `json:"force_refresh,omitempty"`
	WriteFiles   bool     `json:"write_files,omitempty"`
	Formats      []string `json:"formats,omitempty"`
}

// handleAnalyze runs the full pipeline for the requested ticker and returns
// the report. With write_files set, the report and charts are also rendered
// to the configured output directory.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := s.app.AnalysisService.Analyze(r.Context(), interfaces.AnalyzeRequest{
		Ticker:       req.Ticker,
		Peers:        req.Peers,
		Index:        req.Index,
		Years:        req.Years,
		ForceRefresh: req.ForceRefresh,
	})
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	if req.WriteFiles {
		files, err := s.app.ReportService.WriteReport(r.Context(), report, interfaces.ReportOptions{
			Formats:     req.Formats,
			WriteCharts: true,
		})
		if err != nil {
			s.logger.Warn().Str("ticker", report.Ticker).Err(err).Msg("Report files not written")
		} else {
			s.logger.Info().Str("ticker", report.Ticker).Int("files", len(files)).Msg("Report files written")
		}
	} else if s.app.Storage != nil {
		if err := s.app.Storage.ReportStorage().SaveReport(r.Context(), report); err != nil {
			s.logger.Warn().Str("ticker", report.Ticker).Err(err).Msg("Failed to store report")
		}
	}

	writeJSON(w, http.StatusOK, report)
}

// writeAnalyzeError maps pipeline failures to HTTP status codes.
func (s *Server) writeAnalyzeError(w http.ResponseWriter, err error) {
	var apiErr *eodhd.APIError
	switch {
	case common.IsDataUnavailable(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &apiErr) && apiErr.IsNotFound():
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// handleReportGet returns the most recently stored report for a ticker.
func (s *Server) handleReportGet(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	report, err := s.app.Storage.ReportStorage().GetReport(r.Context(), ticker)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}
