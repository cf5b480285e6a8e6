package ports

import (
	"context"

	"github.com/launchpath/lp-gateway/internal/domain/model"
)

// ApplicationRepository reads program application records.
type ApplicationRepository interface {
	GetByID(ctx context.Context, id string) (model.Application, error)
}
