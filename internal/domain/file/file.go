package file

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

var (
	ErrNotFound      = httperr.ErrNotFound("file_not_found", "File not found.")
	ErrNotOwner      = httperr.ErrForbidden("not_owner", "Only the owner can share this file.")
	ErrNoAccess      = httperr.ErrForbidden("access_denied", "You do not have access to this file.")
	ErrAlreadyShared = httperr.ErrConflict("already_shared", "The file is already shared with this user.")
	ErrShareWithSelf = httperr.ErrValidation("cannot_share_with_self", "You already own this file.")
)

// Share appends targetID to the file's sharedWith set.
func Share(f *models.File, requesterID, targetID string) error {
	if f.OwnerID != requesterID {
		return ErrNotOwner
	}
	if targetID == f.OwnerID {
		return ErrShareWithSelf
	}
	if slices.Contains(f.SharedWith, targetID) {
		return ErrAlreadyShared
	}
	f.SharedWith = append(f.SharedWith, targetID)
	return nil
}

type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, f *models.File) error
	Get(ctx context.Context, id string) (*models.File, error)
	GetByKey(ctx context.Context, key string) (*models.File, error)
	// AddShare returns ErrAlreadyShared when userID is already present.
	AddShare(ctx context.Context, fileID, userID string) error
	ListAccessible(ctx context.Context, userID string, category string) ([]models.File, error)
}
