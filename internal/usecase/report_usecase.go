package usecase

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hiresphere/api/internal/repository"
)

// ReportUsecase renders HR exports. The xlsx format is what recruiting teams
// actually circulate.
type ReportUsecase struct {
	interviews *repository.InterviewRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportUsecase(interviews *repository.InterviewRepository, logger *zap.Logger) *ReportUsecase {
	return &ReportUsecase{interviews: interviews, logger: logger, now: time.Now}
}

var reportHeaders = []string{
	"Candidate", "Email", "Position", "Topic", "Status",
	"Knowledge", "Communication", "Confidence", "Completed At",
}

// ExportInterviews builds a spreadsheet of every interview for one HR user,
// one row per interview, and returns the encoded file.
func (uc *ReportUsecase) ExportInterviews(hrID string) ([]byte, string, error) {
	interviews, err := uc.interviews.ListByHR(hrID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Interviews"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	for row := range interviews {
		iv := &interviews[row]
		values := []any{
			iv.CandidateName,
			iv.CandidateEmail,
			iv.Position,
			iv.Topic,
			iv.AnalysisStatus,
			scoreCell(iv.KnowledgeScore),
			scoreCell(iv.CommunicationScore),
			scoreCell(iv.ConfidenceScore),
			timeCell(iv.CompletedAt),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("interviews-%s.xlsx", uc.now().Format("2006-01-02"))
	uc.logger.Info("interview report exported",
		zap.String("hr_id", hrID), zap.Int("rows", len(interviews)))
	return buf.Bytes(), name, nil
}

func scoreCell(score *float64) any {
	if score == nil {
		return ""
	}
	return *score
}

func timeCell(t *time.Time) any {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
