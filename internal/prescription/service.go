package prescription

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hibaa8/SmartMeds/internal/llm"
	"github.com/hibaa8/SmartMeds/internal/vision"
)

// ScanArchiver stores a copy of the uploaded image in object storage.
// Archival is best-effort and never blocks the scan.
type ScanArchiver interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Service sequences the intake pipeline: extraction, structuring,
// validation, interaction analysis, persistence.
type Service struct {
	repo      Repository
	ocr       vision.Client
	generator llm.Generator
	archive   ScanArchiver // optional, may be nil
}

func NewService(repo Repository, ocr vision.Client, generator llm.Generator, archive ScanArchiver) *Service {
	return &Service{
		repo:      repo,
		ocr:       ocr,
		generator: generator,
		archive:   archive,
	}
}

// Scan runs image → OCR → structuring and returns the suggestion for
// the user to review. Nothing is persisted here.
//
// The image passes through a temp file that is removed on every exit
// path, extraction failure included.
func (s *Service) Scan(ctx context.Context, userID string, image io.Reader, filename string) (*llm.MedicationRecord, error) {
	tmpFile, err := os.CreateTemp("", "prescription-*"+filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	written, err := io.Copy(tmpFile, image)
	if err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write uploaded image: %w", err)
	}
	if written == 0 {
		tmpFile.Close()
		return nil, fmt.Errorf("empty image upload")
	}
	if err := tmpFile.Close(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return nil, err
	}

	s.archiveScan(ctx, userID, filename, data)

	text, err := s.ocr.ExtractText(ctx, data)
	if err != nil {
		return nil, err
	}

	log.Printf("SCAN_EXTRACTED user=%s text_length=%d", userID, len(text))

	record, err := llm.ParseMedication(ctx, s.generator, text)
	if err != nil {
		return nil, err
	}

	log.Printf("SCAN_STRUCTURED user=%s medication=%s", userID, record.Name)
	return record, nil
}

// Submit validates the fields, analyzes interactions against the
// user's existing prescriptions, and persists the record. A failed
// analysis falls back to a placeholder and the write still proceeds.
func (s *Service) Submit(ctx context.Context, userID string, fields SubmitFields) (*Prescription, error) {
	candidate, err := ValidateFields(fields)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading existing prescriptions: %w", err)
	}

	names := make([]string, 0, len(existing))
	for _, p := range existing {
		names = append(names, p.Name)
	}

	analysis := llm.AnalyzeInteractions(ctx, s.generator, candidate.Name, names)

	p := &Prescription{
		UserID:    userID,
		Name:      candidate.Name,
		Dosage:    candidate.Dosage,
		Frequency: candidate.Frequency,
		Quantity:  candidate.Quantity,
		Days:      candidate.Days,
		Refills:   candidate.Refills,
		LastTaken: candidate.LastTaken,
		Analysis:  analysis,
	}

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("saving prescription: %w", err)
	}

	log.Printf("SUBMIT_DONE user=%s prescription=%s medication=%s", userID, id, p.Name)
	return p, nil
}

// List returns the user's prescriptions, newest-created first.
func (s *Service) List(ctx context.Context, userID string) ([]Prescription, error) {
	return s.repo.FindByUser(ctx, userID)
}

// Delete removes a prescription only when it belongs to the caller.
func (s *Service) Delete(ctx context.Context, id, userID string) (bool, error) {
	return s.repo.DeleteByID(ctx, id, userID)
}

func (s *Service) archiveScan(ctx context.Context, userID, filename string, data []byte) {
	if s.archive == nil {
		return
	}

	key := fmt.Sprintf("scans/%s/%d%s", userID, time.Now().UnixNano(), filepath.Ext(filename))
	if _, err := s.archive.Upload(ctx, key, bytes.NewReader(data), "image/jpeg"); err != nil {
		log.Printf("SCAN_ARCHIVE_FAILED user=%s err=%v", userID, err)
	}
}
