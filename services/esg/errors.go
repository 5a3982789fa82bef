package esg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/services"
)

// translateRepoError maps storage errors onto domain errors. resource names
// the entity addressed by the failing call, e.g. "Company".
func translateRepoError(resource string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	if errors.Is(err, repositories.ErrNotFound) {
		return services.NewNotFoundError(resource)
	}

	if ce, ok := repositories.AsConstraintError(err); ok {
		fields := make(map[string]string, len(ce.Fields))
		msg := fmt.Sprintf(msgUniqueTogether, strings.Join(ce.Fields, ", "))
		if ce.Kind == repositories.ConstraintForeignKey {
			msg = "Referenced object does not exist."
		}
		for _, f := range ce.Fields {
			fields[f] = msg
		}
		return services.NewValidationError(fields)
	}

	return services.WrapInternal(fmt.Sprintf("%s storage failure", strings.ToLower(resource)), err)
}
