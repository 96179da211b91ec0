package driving

import (
	"context"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// ConfigurationService validates equipment configurations against the
// authored compatibility rules and option groups.
type ConfigurationService interface {
	// ValidateConfiguration checks a candidate selection of options
	// against a base model. Rule violations are returned as data inside
	// the result; domain.ErrUnknownProduct is returned when baseID does
	// not reference an existing model.
	ValidateConfiguration(ctx context.Context, baseID string, selectedOptionIDs []string) (*domain.ValidationResult, error)

	// GetAvailableOptions returns every option relevant to the given
	// model with its compatibility status, dependencies, conflicts, and
	// group memberships. Returns domain.ErrUnknownProduct when modelID
	// does not reference an existing model.
	GetAvailableOptions(ctx context.Context, modelID string) ([]domain.OptionInfo, error)
}
