package seeding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	seedmocks "github.com/vfg2006/transaction-report-api/infrastructure/integrator/seedsource/mocks"
	"github.com/vfg2006/transaction-report-api/infrastructure/repository/memory"
	"github.com/vfg2006/transaction-report-api/infrastructure/repository/mocks"
	"github.com/vfg2006/transaction-report-api/internal/domain"
	"github.com/vfg2006/transaction-report-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestService_Seed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := seedmocks.NewMockClient(ctrl)
	mockRepo := mocks.NewMockTransactionRepository(ctrl)
	service := NewService(mockSource, mockRepo)

	dataset := []*domain.Transaction{
		{ID: "1", Title: "a", DateOfSale: "2021-11-27T20:29:54+05:30"},
		{ID: "2", Title: "b", DateOfSale: "2021-10-27T20:29:54+05:30"},
	}

	tests := []struct {
		name      string
		setup     func()
		wantCount int
		wantErr   error
		wantCode  string
	}{
		{
			name: "substitui a base com o dataset",
			setup: func() {
				mockSource.EXPECT().FetchTransactions(gomock.Any()).Return(dataset, nil)
				mockRepo.EXPECT().ReplaceAll(gomock.Any(), dataset).Return(2, nil)
			},
			wantCount: 2,
		},
		{
			name: "falha na busca não toca na base",
			setup: func() {
				mockSource.EXPECT().FetchTransactions(gomock.Any()).Return(nil, errors.New("dial tcp: timeout"))
			},
			wantErr:  ErrUpstreamFetch,
			wantCode: apiErrors.ErrExternalService,
		},
		{
			name: "falha ao gravar",
			setup: func() {
				mockSource.EXPECT().FetchTransactions(gomock.Any()).Return(dataset, nil)
				mockRepo.EXPECT().ReplaceAll(gomock.Any(), dataset).Return(0, errors.New("tx aborted"))
			},
			wantErr:  ErrStoreUnavailable,
			wantCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			count, err := service.Seed(context.Background())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var seedErr *SeedError
				require.ErrorAs(t, err, &seedErr)
				assert.Equal(t, tt.wantCode, seedErr.Code)
				assert.Zero(t, count)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestService_SeedIfEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := seedmocks.NewMockClient(ctrl)
	repo := memory.NewTransactionRepository()
	service := NewService(mockSource, repo)
	ctx := context.Background()

	mockSource.EXPECT().
		FetchTransactions(gomock.Any()).
		Return([]*domain.Transaction{{Title: "first", DateOfSale: "2022-01-01"}}, nil).
		Times(1)

	count, err := service.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// segunda chamada encontra a base populada e não busca de novo
	count, err = service.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestService_SeedFailureKeepsPreviousData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := seedmocks.NewMockClient(ctrl)
	repo := memory.NewTransactionRepository()
	ctx := context.Background()

	_, err := repo.ReplaceAll(ctx, []*domain.Transaction{{ID: "old", DateOfSale: "2022-01-01"}})
	require.NoError(t, err)

	mockSource.EXPECT().FetchTransactions(gomock.Any()).Return(nil, errors.New("503"))

	_, err = NewService(mockSource, repo).Seed(ctx)
	require.ErrorIs(t, err, ErrUpstreamFetch)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
