package impl

import (
	domainerrors "agromart/internal/domain/errors"

	"github.com/pkg/errors"
)

// translateRepoError maps a repository sentinel onto the domain error shown to clients.
func translateRepoError(err, sentinel error, domainErr *domainerrors.BaseError, message string) error {
	if errors.Is(err, sentinel) {
		return errors.Wrap(domainErr, message)
	}

	return errors.Wrap(err, message)
}
