package usecase

import (
	"context"

	"github.com/NKTechDev/wma-backend/internal/ledger/core/domain"
	"github.com/NKTechDev/wma-backend/internal/ledger/core/ports"
)

type ListLedgerUseCase struct {
	store ports.LedgerStorePort
}

func NewListLedgerUseCase(store ports.LedgerStorePort) *ListLedgerUseCase {
	return &ListLedgerUseCase{store: store}
}

// Execute returns the full ledger as stored, insertion order.
func (uc *ListLedgerUseCase) Execute(ctx context.Context) ([]domain.LedgerRecord, error) {
	return uc.store.ListAll(ctx)
}
