package service

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
	"github.com/maximiza-sistemas/edu-backend/pkg/storage"
)

// ── upload errors ──

var (
	ErrNoFile              = apperrors.BadRequest("Nenhum arquivo enviado")
	ErrUnsupportedFileType = apperrors.BadRequest("Tipo de arquivo não suportado")
	ErrFileTooLarge        = apperrors.BadRequest("Arquivo excede o tamanho máximo permitido")
)

// FileStore is the storage backend for uploads.
type FileStore interface {
	FileRemover
	Save(kind storage.Kind, field, originalName string, r io.Reader) (*storage.StoredFile, error)
	List(kind storage.Kind) ([]storage.FileInfo, error)
	MaxSize() int64
}

// UploadFile is one file received in a multipart request.
type UploadFile struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadService stores PDFs and images for books.
type UploadService interface {
	Upload(ctx context.Context, kind storage.Kind, file *UploadFile) (*dto.UploadResponse, error)
}

type uploadService struct {
	files  FileStore
	logger *zap.Logger
}

// NewUploadService creates an UploadService.
func NewUploadService(files FileStore, logger *zap.Logger) UploadService {
	return &uploadService{files: files, logger: logger}
}

func (s *uploadService) Upload(_ context.Context, kind storage.Kind, file *UploadFile) (*dto.UploadResponse, error) {
	if file == nil || file.Content == nil {
		return nil, ErrNoFile
	}
	if !kind.Accepts(file.ContentType) {
		return nil, ErrUnsupportedFileType
	}
	if max := s.files.MaxSize(); max > 0 && file.Size > max {
		return nil, ErrFileTooLarge
	}

	stored, err := s.files.Save(kind, file.Field, file.Filename, file.Content)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, ErrFileTooLarge
		}
		s.logger.Error("failed to store upload", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}

	s.logger.Info("file uploaded",
		zap.String("kind", string(kind)),
		zap.String("filename", stored.Filename),
		zap.Int64("size", stored.Size),
	)

	resp := &dto.UploadResponse{
		Filename:     stored.Filename,
		OriginalName: stored.OriginalName,
		Size:         stored.Size,
	}
	if kind == storage.KindPDF {
		resp.Message = "PDF enviado com sucesso"
		resp.PdfURL = stored.URL
	} else {
		resp.Message = "Imagem enviada com sucesso"
		resp.ImageURL = stored.URL
	}
	return resp, nil
}
