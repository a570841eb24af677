package service

import (
	"math"
	"time"

	"github.com/noah-isme/html2url/internal/dto"
	"github.com/noah-isme/html2url/internal/models"
)

type statsStore interface {
	List() ([]models.Artifact, error)
}

// StatsConfig carries the limits echoed in the stats payload.
type StatsConfig struct {
	MaxFileAge       time.Duration
	MaxContentLength int64
	APIKeyRequired   bool
	PDFEnabled       bool
}

// StatsService derives the stats surface entirely from the store listing.
type StatsService struct {
	store statsStore
	cfg   StatsConfig
}

// NewStatsService constructs the service.
func NewStatsService(store statsStore, cfg StatsConfig) *StatsService {
	return &StatsService{store: store, cfg: cfg}
}

// Snapshot enumerates the store and aggregates per-file and total figures.
func (s *StatsService) Snapshot(now time.Time) (*dto.StatsResponse, error) {
	artifacts, err := s.store.List()
	if err != nil {
		return nil, err
	}

	resp := &dto.StatsResponse{
		MaxAgeHours:    s.cfg.MaxFileAge.Hours(),
		MaxFileSizeMB:  float64(s.cfg.MaxContentLength) / 1024 / 1024,
		APIKeyRequired: s.cfg.APIKeyRequired,
		PDFEnabled:     s.cfg.PDFEnabled,
		Files:          make([]dto.FileStat, 0, len(artifacts)),
	}

	var totalSize int64
	for _, artifact := range artifacts {
		age := artifact.Age(now)
		remaining := s.cfg.MaxFileAge - age
		if remaining < 0 {
			remaining = 0
		}
		totalSize += artifact.SizeBytes

		switch artifact.Kind {
		case models.KindHTML:
			resp.HTMLFiles++
		case models.KindPDF:
			resp.PDFFiles++
		}

		resp.Files = append(resp.Files, dto.FileStat{
			Filename:       artifact.Name,
			Type:           string(artifact.Kind),
			SizeKB:         round2(float64(artifact.SizeBytes) / 1024),
			AgeHours:       round2(age.Hours()),
			RemainingHours: round2(remaining.Hours()),
		})
	}

	resp.TotalFiles = len(artifacts)
	resp.TotalSizeMB = round2(float64(totalSize) / 1024 / 1024)
	return resp, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
