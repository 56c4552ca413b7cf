package ui

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clauseforge/adapters/excel"
	"clauseforge/adapters/markdown"
	"clauseforge/app"
	"clauseforge/domain/core"
	apperrors "clauseforge/internal/errors"
)

// generateRequest is the JSON body shared by the generation endpoints
type generateRequest struct {
	ContractType  string                 `json:"contract_type"`
	ContractTypes []string               `json:"contract_types"` // package generation
	Format        string                 `json:"format"`
	ProjectID     string                 `json:"project_id"`
	ProjectName   string                 `json:"project_name"`
	ExecutionDate string                 `json:"execution_date"` // YYYY-MM-DD, optional
	Data          map[string]interface{} `json:"data"`
}

func (req *generateRequest) toServiceRequest() (app.GenerateRequest, error) {
	out := app.GenerateRequest{
		ContractType: req.ContractType,
		ProjectID:    req.ProjectID,
		ProjectName:  req.ProjectName,
		Data:         core.NewDataBag(req.Data),
		Format:       req.Format,
	}
	if req.ExecutionDate != "" {
		t, err := time.Parse("2006-01-02", req.ExecutionDate)
		if err != nil {
			return out, apperrors.InvalidInput(fmt.Sprintf("invalid execution_date %q", req.ExecutionDate))
		}
		out.ExecutionDate = &t
	}
	return out, nil
}

func (a *App) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "decode", apperrors.InvalidInput("invalid JSON body"))
		return
	}
	if req.ContractType == "" {
		writeError(w, "decode", apperrors.InvalidInput("contract_type is required"))
		return
	}

	svcReq, err := req.toServiceRequest()
	if err != nil {
		writeError(w, "decode", err)
		return
	}

	result, err := a.deps.Generation.Generate(r.Context(), svcReq)
	if err != nil {
		writeError(w, "generate", err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("X-Clause-Count", fmt.Sprintf("%d", result.ClauseCount))
	if len(result.MissingVariables) > 0 {
		names, _ := json.Marshal(result.MissingVariables)
		w.Header().Set("X-Missing-Variables", string(names))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Content)
}

// packageItemResponse is the per-document outcome in a package generation
type packageItemResponse struct {
	ContractType     string   `json:"contract_type"`
	Filename         string   `json:"filename,omitempty"`
	ClauseCount      int      `json:"clause_count,omitempty"`
	MissingVariables []string `json:"missing_variables,omitempty"`
	Content          string   `json:"content,omitempty"` // base64
	Error            string   `json:"error,omitempty"`
	ErrorCode        string   `json:"error_code,omitempty"`
}

func (a *App) handleGeneratePackage(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "decode", apperrors.InvalidInput("invalid JSON body"))
		return
	}
	if len(req.ContractTypes) == 0 {
		writeError(w, "decode", apperrors.InvalidInput("contract_types is required"))
		return
	}

	svcReq, err := req.toServiceRequest()
	if err != nil {
		writeError(w, "decode", err)
		return
	}

	items := a.deps.Generation.GeneratePackage(r.Context(), req.ContractTypes, svcReq)
	resp := make([]packageItemResponse, 0, len(items))
	for _, item := range items {
		out := packageItemResponse{ContractType: item.ContractType}
		if item.Err != nil {
			out.Error = item.Err.Error()
			out.ErrorCode = errorCode(item.Err)
		} else {
			out.Filename = item.Result.Filename
			out.ClauseCount = item.Result.ClauseCount
			out.MissingVariables = item.Result.MissingVariables
			out.Content = base64.StdEncoding.EncodeToString(item.Result.Content)
		}
		resp = append(resp, out)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "decode", apperrors.InvalidInput("invalid JSON body"))
		return
	}
	result, err := a.deps.Preview.Preview(r.Context(), req.ContractType, core.NewDataBag(req.Data))
	if err != nil {
		writeError(w, "preview", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleReadiness(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "decode", apperrors.InvalidInput("invalid JSON body"))
		return
	}
	result, err := a.deps.Preview.CheckReadiness(r.Context(), req.ContractType, core.NewDataBag(req.Data))
	if err != nil {
		writeError(w, "readiness", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleIngest accepts a raw markdown body; the contract type comes from
// the query string so the payload stays the unmodified source document.
func (a *App) handleIngest(w http.ResponseWriter, r *http.Request) {
	contractType := r.URL.Query().Get("contract_type")
	if contractType == "" {
		writeError(w, "decode", apperrors.InvalidInput("contract_type query parameter is required"))
		return
	}
	src, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "decode", apperrors.InvalidInput("failed to read request body"))
		return
	}

	blocks, err := markdown.Parse(src)
	if err != nil {
		writeError(w, "parse", apperrors.InvalidInput("source document could not be decoded"))
		return
	}
	result, err := a.deps.Ingestion.Ingest(r.Context(), contractType, blocks)
	if err != nil {
		writeError(w, "ingest", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleVariableReport(w http.ResponseWriter, r *http.Request) {
	contractType := chi.URLParam(r, "contractType")

	rows, err := a.deps.Report.VariableRequirements(r.Context(), contractType, nil)
	if err != nil {
		writeError(w, "report", err)
		return
	}

	if r.URL.Query().Get("format") != "xlsx" {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	reportRows := make([]excel.ReportRow, len(rows))
	for i, row := range rows {
		reportRows[i] = excel.ReportRow{Variable: row.Variable, UsedBy: row.UsedBy, Satisfied: row.Satisfied}
	}
	content, err := excel.WriteVariableReport(contractType, reportRows)
	if err != nil {
		writeError(w, "report", apperrors.Wrap(err, "failed to build variable report"))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", contractType+"_variables.xlsx"))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}
