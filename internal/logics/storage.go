package logics

import (
	"context"
	"time"

	"register-server/configs"
	"register-server/internal/apperrors"

	"gorm.io/gorm"
)

// storageCtx bounds a storage call. Operations that outlive the bound are
// surfaced to the caller as STORAGE_UNAVAILABLE rather than hanging the
// request.
func storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	secs := configs.Configs.Register.StorageTimeoutSeconds
	if secs <= 0 {
		secs = 5
	}
	return context.WithTimeout(ctx, time.Duration(secs)*time.Second)
}

// storageErr classifies a storage failure. Record-not-found is the caller's
// NOT_FOUND; everything else is treated as transient infrastructure failure
// and safe to retry.
func storageErr(err error, message string) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewAppError(apperrors.ErrNotFound, message, err)
	}
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return err
	}
	return apperrors.NewAppError(apperrors.ErrStorageUnavailable, message, err)
}
