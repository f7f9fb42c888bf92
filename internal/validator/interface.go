package validator

import (
	"context"
	"mdvalidate/pkg/domain"
)

//go:generate mockgen -package mockvalidator -source=interface.go -destination=mock/mockvalidator.go *
type Validator interface {
	Validate(ctx context.Context, root string) (domain.Report, error)
}
