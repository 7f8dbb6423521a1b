package auth

import (
	"github.com/google/uuid"

	apperrors "blogapp/internal/errors"
)

// Owned is implemented by resources that record the user who created them.
type Owned interface {
	OwnerID() uuid.UUID
}

// Authorize allows a write only when userID owns resource. It has no side
// effects and trusts only the verified session identity passed in.
func Authorize(resource Owned, userID uuid.UUID) error {
	if userID == uuid.Nil || resource.OwnerID() != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

// AuthorizeSelf allows account changes only on the caller's own account.
func AuthorizeSelf(targetID, userID uuid.UUID) error {
	if userID == uuid.Nil || targetID != userID {
		return apperrors.ErrForbidden
	}
	return nil
}
