package service

import (
	"codeverse_backend/internal/model"
	"codeverse_backend/internal/util"
	"context"
	"encoding/csv"
	"io"
	"strconv"
)

var exportHeader = []string{
	"Roll No", "Username", "Email",
	"Phase 1 Score", "Phase 2 Score", "Phase 3 Score",
	"Total Score", "Last Activity",
}

type ExportService struct {
	Participants *ParticipantService
}

func NewExportService(participants *ParticipantService) *ExportService {
	return &ExportService{Participants: participants}
}

// WriteCSV writes one row per participant. Absent phase scores stay blank.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	participants, err := s.Participants.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for i := range participants {
		if err := cw.Write(exportRow(&participants[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(p *model.Participant) []string {
	return []string{
		p.RollNo,
		p.Name,
		p.Email,
		scoreCell(p.Phase1Score),
		scoreCell(p.Phase2Score),
		scoreCell(p.Phase3Score),
		strconv.Itoa(p.Total()),
		p.LastActivity().Format(util.TimeFormat),
	}
}

func scoreCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
