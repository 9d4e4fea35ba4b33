package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"traffic-analytics/internal/shared/filestorages"
)

var (
	ErrReportFileAlreadyExists = errors.New("report file already exists")
	ErrReportFileNotFound      = errors.New("report file not found")
)

// ReportBlobStore keeps rendered report documents. Uploads never overwrite: a second
// upload for the same job and month fails with ErrReportFileAlreadyExists.
//
//go:generate mockgen -source=report_blob_store.go -destination=./mocks/report_blob_store_mock.go -package=mocks
type ReportBlobStore interface {
	// Upload stores the document and returns its path, reports/{year}/{month}/traffic_report_{jobId}.pdf.
	Upload(ctx context.Context, jobID int64, at time.Time, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

type reportBlobStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewReportBlobStore(fileStorage filestorages.FileStorage) ReportBlobStore {
	return &reportBlobStore{fileStorage: fileStorage, dir: "reports"}
}

func (s *reportBlobStore) Upload(ctx context.Context, jobID int64, at time.Time, r io.Reader) (string, error) {
	key := s.getKey(jobID, at)
	_, err := s.fileStorage.Put(ctx, key, r, filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return "", ErrReportFileAlreadyExists
		}
		return "", fmt.Errorf("failed to put report file: %w", err)
	}
	return key, nil
}

func (s *reportBlobStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	readCloser, err := s.fileStorage.Get(ctx, path)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrReportFileNotFound
		}
		return nil, fmt.Errorf("failed to get report file: %w", err)
	}
	return readCloser, nil
}

func (s *reportBlobStore) Delete(ctx context.Context, path string) error {
	if err := s.fileStorage.Delete(ctx, path); err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return ErrReportFileNotFound
		}
		return fmt.Errorf("failed to delete report file: %w", err)
	}
	return nil
}

func (s *reportBlobStore) getKey(jobID int64, at time.Time) string {
	utc := at.UTC()
	return fmt.Sprintf("%s/%04d/%02d/traffic_report_%d.pdf", s.dir, utc.Year(), int(utc.Month()), jobID)
}
