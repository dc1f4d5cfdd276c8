package logics

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"register-server/internal/apperrors"
	"register-server/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentService uploads letter scans to S3 and hands out presigned
// download links.
type AttachmentService struct {
	s3Client      *s3.Client
	presignClient *s3.PresignClient
	bucketName    string
	db            *gorm.DB
}

// NewAttachmentService returns a new instance of AttachmentService.
func NewAttachmentService(s3Client *s3.Client, bucketName string, db *gorm.DB) *AttachmentService {
	var presignClient *s3.PresignClient
	if s3Client != nil {
		presignClient = s3.NewPresignClient(s3Client)
	}
	return &AttachmentService{
		s3Client:      s3Client,
		presignClient: presignClient,
		bucketName:    bucketName,
		db:            db,
	}
}

func (as *AttachmentService) objectKey(inwardID string, attachmentID uuid.UUID) string {
	return fmt.Sprintf("attachments/%s/%s", inwardID, attachmentID.String())
}

// Upload stores a letter scan under the given inward entry and records it.
func (as *AttachmentService) Upload(ctx context.Context, inwardID string, file multipart.File, header *multipart.FileHeader) (*models.Attachment, error) {
	if as.s3Client == nil {
		return nil, apperrors.New(apperrors.ErrInternal, "attachment storage is not configured")
	}
	defer file.Close()

	var entry models.Inward
	if err := as.db.WithContext(ctx).Select("id").First(&entry, "id = ?", inwardID).Error; err != nil {
		return nil, storageErr(err, "inward entry not found")
	}

	attachmentID := uuid.New()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != "" {
		ext = ext[1:]
	}

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(as.bucketName),
		Key:         aws.String(as.objectKey(inwardID, attachmentID)),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
		ACL:         s3types.ObjectCannedACLPrivate,
	}
	if _, err := as.s3Client.PutObject(ctx, putInput); err != nil {
		return nil, apperrors.Wrap(err, "failed to upload attachment")
	}

	attachment := models.Attachment{
		ID:            attachmentID,
		InwardID:      inwardID,
		FileName:      header.Filename,
		FileExtension: ext,
		ContentType:   header.Header.Get("Content-Type"),
	}
	if err := as.db.WithContext(ctx).Create(&attachment).Error; err != nil {
		return nil, storageErr(err, "failed to record attachment")
	}

	return &attachment, nil
}

// DownloadLink returns a presigned URL for an attachment, valid for 15 minutes.
func (as *AttachmentService) DownloadLink(ctx context.Context, inwardID string, attachmentID uuid.UUID) (string, error) {
	if as.presignClient == nil {
		return "", apperrors.New(apperrors.ErrInternal, "attachment storage is not configured")
	}

	var attachment models.Attachment
	if err := as.db.WithContext(ctx).First(&attachment, "id = ? AND inward_id = ?", attachmentID, inwardID).Error; err != nil {
		return "", storageErr(err, "attachment not found")
	}

	getInput := &s3.GetObjectInput{
		Bucket: aws.String(as.bucketName),
		Key:    aws.String(as.objectKey(inwardID, attachmentID)),
	}
	presigned, err := as.presignClient.PresignGetObject(ctx, getInput, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to generate download link")
	}
	return presigned.URL, nil
}

// List returns all attachments recorded for an inward entry.
func (as *AttachmentService) List(ctx context.Context, inwardID string) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := as.db.WithContext(ctx).Where("inward_id = ?", inwardID).Find(&attachments).Error; err != nil {
		return nil, storageErr(err, "failed to list attachments")
	}
	return attachments, nil
}

// Delete removes an attachment from S3 and drops its record.
func (as *AttachmentService) Delete(ctx context.Context, inwardID string, attachmentID uuid.UUID) error {
	if as.s3Client == nil {
		return apperrors.New(apperrors.ErrInternal, "attachment storage is not configured")
	}

	var attachment models.Attachment
	if err := as.db.WithContext(ctx).First(&attachment, "id = ? AND inward_id = ?", attachmentID, inwardID).Error; err != nil {
		return storageErr(err, "attachment not found")
	}

	deleteInput := &s3.DeleteObjectInput{
		Bucket: aws.String(as.bucketName),
		Key:    aws.String(as.objectKey(inwardID, attachmentID)),
	}
	if _, err := as.s3Client.DeleteObject(ctx, deleteInput); err != nil {
		return apperrors.Wrap(err, "failed to delete attachment object")
	}

	if err := as.db.WithContext(ctx).Delete(&attachment).Error; err != nil {
		return storageErr(err, "failed to delete attachment record")
	}
	return nil
}
