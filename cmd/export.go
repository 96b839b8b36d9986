package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lshigami/vocabtest/config"
	"github.com/lshigami/vocabtest/database"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/repository"
	"github.com/lshigami/vocabtest/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type classExport struct {
	TeacherID   uint                           `json:"teacher_id"`
	ClassID     uint                           `json:"class_id"`
	CategoryID  uint                           `json:"category_id"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Students    []dto.StudentSessionSummaryDTO `json:"students"`
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a class summary for one category as JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.Uint("teacher-id", 0, "Owning teacher ID (required)")
	f.Uint("class-id", 0, "Class ID (required)")
	f.Uint("category-id", 0, "Category ID (required)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")

	_ = cmd.MarkFlagRequired("teacher-id")
	_ = cmd.MarkFlagRequired("class-id")
	_ = cmd.MarkFlagRequired("category-id")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	teacherID, _ := f.GetUint("teacher-id")
	classID, _ := f.GetUint("class-id")
	categoryID, _ := f.GetUint("category-id")
	if teacherID == 0 || classID == 0 || categoryID == 0 {
		return errors.New("--teacher-id, --class-id and --category-id must be positive")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close(db)

	export, err := buildClassExport(cfg, db, teacherID, classID, categoryID)
	if err != nil {
		return err
	}

	outPath, _ := f.GetString("output")
	if err := writeExport(cmd.OutOrStdout(), outPath, export); err != nil {
		return err
	}
	log.Info().Uint("classID", classID).Uint("categoryID", categoryID).Int("students", len(export.Students)).Msg("Class summary exported")
	return nil
}

// writeExport encodes export to outPath, or to stdout when outPath is empty or "-".
func writeExport(stdout io.Writer, outPath string, export *classExport) error {
	if outPath == "" || outPath == "-" {
		return encodeExport(stdout, export)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := encodeExport(file, export); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

func encodeExport(w io.Writer, export *classExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func buildClassExport(cfg *config.Config, db *gorm.DB, teacherID, classID, categoryID uint) (*classExport, error) {
	results := service.NewResultsService(
		repository.NewStudentRepository(db),
		repository.NewClassroomRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewTestSessionRepository(db),
		repository.NewResultRepository(db),
		service.NewScoreService(),
		service.NewMediaResolver(cfg),
	)
	rows, err := results.SummarizeClass(teacherID, classID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("summarize class %d: %w", classID, err)
	}
	return &classExport{
		TeacherID:   teacherID,
		ClassID:     classID,
		CategoryID:  categoryID,
		GeneratedAt: time.Now().UTC(),
		Students:    rows,
	}, nil
}
