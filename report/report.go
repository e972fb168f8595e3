// Package report writes per-metric score documents as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/botirk38/embedscore/types"
)

// Document is the JSON layout of one metric's scores over a corpus pair.
type Document struct {
	Name string `json:"name"`
	// Scores holds one entry per sentence pair in corpus order; skipped pairs are null
	Scores []*float64        `json:"scores"`
	System float64           `json:"system"`
	CI95   float64           `json:"ci95"`
	StdDev float64           `json:"stddev"`
	Params map[string]string `json:"params,omitempty"`
}

// NewDocument builds the document for a report.
func NewDocument(r types.Report, params map[string]string) Document {
	return Document{
		Name:   r.Metric,
		Scores: sentenceScores(r.Scores),
		System: r.Summary.Mean,
		CI95:   r.Summary.CI95,
		StdDev: r.Summary.StdDev,
		Params: params,
	}
}

func sentenceScores(scores []types.SentenceScore) []*float64 {
	out := make([]*float64, len(scores))
	for i, s := range scores {
		if s.Skipped {
			continue
		}
		v := s.Score
		out[i] = &v
	}
	return out
}

// Path returns the file a report for metric is written to inside dir.
func Path(dir, metric string) string {
	return filepath.Join(dir, metric+".json")
}

// Write stores r as <dir>/<metric>.json, creating dir when needed, and
// returns the written path.
func Write(dir string, r types.Report, params map[string]string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(NewDocument(r, params), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path := Path(dir, r.Metric)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Read loads a document written by Write.
func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read report: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	return doc, nil
}
