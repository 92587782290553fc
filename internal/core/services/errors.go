package services

import (
	"errors"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
