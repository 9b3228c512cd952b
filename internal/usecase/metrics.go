package usecase

import (
	"errors"

	"Sternentyp/internal/domain/models"
	"Sternentyp/internal/domain/repository"
)

// errorKind maps a domain error onto its metrics label.
func errorKind(err error) string {
	var inputErr *models.InputError
	if errors.As(err, &inputErr) {
		return "input"
	}
	var collErr *models.CollaboratorError
	if errors.As(err, &collErr) {
		return "collaborator"
	}
	var invErr *models.InvariantError
	if errors.As(err, &invErr) {
		return "invariant"
	}
	return "internal"
}

func recordError(m repository.Metrics, err error) {
	if m != nil && err != nil {
		m.RecordError(errorKind(err))
	}
}
