// Package storage provides file-based JSON persistence for the raw-data
// cache and generated reports.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/models"
)

// FileStore provides file-based JSON storage with atomic writes.
type FileStore struct {
	basePath string
	logger   *common.Logger
}

// subdirectories defines the directory layout under basePath.
var subdirectories = []string{"entities", "reports"}

// NewFileStore creates a new FileStore and ensures all subdirectories exist.
func NewFileStore(logger *common.Logger, basePath string) (*FileStore, error) {
	fs := &FileStore{
		basePath: basePath,
		logger:   logger,
	}

	for _, sub := range subdirectories {
		dir := filepath.Join(fs.basePath, sub)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	logger.Debug().Str("path", basePath).Msg("FileStore opened")
	return fs, nil
}

// sanitizeKey makes a key safe for use as a filename.
// Replaces /, \, : with _ and collapses ".." to "_" to prevent path
// traversal. Single dots are preserved (common in tickers like BHP.AU).
func (fs *FileStore) sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

// filePath returns the full path for a key in a subdirectory.
func (fs *FileStore) filePath(sub, key string) string {
	return filepath.Join(fs.basePath, sub, fs.sanitizeKey(key)+".json")
}

// readJSON reads and unmarshals a JSON file.
func (fs *FileStore) readJSON(sub, key string, dest interface{}) error {
	path := fs.filePath(sub, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("'%s' not found", key)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("'%s' is empty", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON marshals data to indented JSON and writes it atomically: write
// to a temp file in the same directory, then rename.
func (fs *FileStore) writeJSON(sub, key string, data interface{}) error {
	target := fs.filePath(sub, key)
	dir := filepath.Dir(target)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// listKeys returns all keys in a subdirectory.
func (fs *FileStore) listKeys(sub string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(fs.basePath, sub))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", sub, err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".tmp-") {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	return keys, nil
}

// entityKey builds the cache key for a ticker and period range.
func entityKey(ticker, rangeKey string) string {
	return fmt.Sprintf("%s_%s", ticker, rangeKey)
}

// GetEntity returns the cached raw entity data for (ticker, rangeKey).
func (fs *FileStore) GetEntity(ctx context.Context, ticker, rangeKey string) (*models.Entity, error) {
	var entity models.Entity
	if err := fs.readJSON("entities", entityKey(ticker, rangeKey), &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// SaveEntity stores raw entity data under (ticker, rangeKey). Absent
// statement values serialize as null.
func (fs *FileStore) SaveEntity(ctx context.Context, entity *models.Entity, rangeKey string) error {
	if entity == nil || entity.Ticker == "" {
		return fmt.Errorf("entity must have a ticker")
	}
	return fs.writeJSON("entities", entityKey(entity.Ticker, rangeKey), entity)
}

// DeleteEntity removes a cache entry.
func (fs *FileStore) DeleteEntity(ctx context.Context, ticker, rangeKey string) error {
	os.Remove(fs.filePath("entities", entityKey(ticker, rangeKey)))
	return nil
}

// ListEntities returns all cached entity keys.
func (fs *FileStore) ListEntities(ctx context.Context) ([]string, error) {
	return fs.listKeys("entities")
}

// SaveReport stores a generated analysis report keyed by ticker.
func (fs *FileStore) SaveReport(ctx context.Context, report *models.AnalysisReport) error {
	if report == nil || report.Ticker == "" {
		return fmt.Errorf("report must have a ticker")
	}
	return fs.writeJSON("reports", report.Ticker, report)
}

// GetReport returns the stored report for a ticker.
func (fs *FileStore) GetReport(ctx context.Context, ticker string) (*models.AnalysisReport, error) {
	var report models.AnalysisReport
	if err := fs.readJSON("reports", ticker, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
