package reports

import (
	"context"
	"encoding/json"
	"io"

	"traffic-analytics/internal/models"
)

// DocumentRenderer writes the report document of one job.
//
//go:generate mockgen -source=document_renderer.go -destination=./mocks/document_renderer_mock.go -package=mocks
type DocumentRenderer interface {
	Render(ctx context.Context, job *models.ReportJob, analysis *models.ReportAnalysis, w io.Writer) error
}

type jsonDocumentRenderer struct{}

// NewJSONDocumentRenderer renders the job and its analysis as one indented JSON document.
func NewJSONDocumentRenderer() DocumentRenderer {
	return &jsonDocumentRenderer{}
}

type reportDocument struct {
	Job      *models.ReportJob      `json:"job"`
	Analysis *models.ReportAnalysis `json:"analysis"`
}

func (r *jsonDocumentRenderer) Render(ctx context.Context, job *models.ReportJob, analysis *models.ReportAnalysis, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reportDocument{Job: job, Analysis: analysis})
}
