package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
)

func TestStore_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Parts().Create(ctx, &entity.Part{PartNumber: "A-1", Available: 3}))

	boom := errors.New("boom")
	err := s.Run(ctx, func(parts repository.PartRepository, _ repository.SalesLogRepository, _ repository.SettingsRepository) error {
		p, err := parts.GetForUpdate(ctx, "A-1")
		require.NoError(t, err)
		p.Available = 0
		require.NoError(t, parts.Update(ctx, p))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Parts().GetByPartNumber(ctx, "A-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Available)
}

func TestStore_CreateDuplicado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Parts().Create(ctx, &entity.Part{PartNumber: "A-1"}))
	assert.ErrorIs(t, s.Parts().Create(ctx, &entity.Part{PartNumber: "A-1"}), domain.ErrDuplicate)

	inserted, err := s.Parts().CreateIfAbsent(ctx, &entity.Part{PartNumber: "A-1", Available: 9})
	require.NoError(t, err)
	assert.False(t, inserted)
	got, _ := s.Parts().GetByPartNumber(ctx, "A-1")
	assert.Equal(t, 0, got.Available)
}

func TestStore_EsperaRespetaContexto(t *testing.T) {
	s := memory.NewStore()
	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.Run(context.Background(), func(repository.PartRepository, repository.SalesLogRepository, repository.SettingsRepository) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.Run(ctx, func(repository.PartRepository, repository.SalesLogRepository, repository.SettingsRepository) error {
		t.Fatal("no debería ejecutarse")
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPartRepo_SearchFiltrosYOrden(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	parts := s.Parts()
	for _, p := range []entity.Part{
		{PartNumber: "ZX-900", ApplicableModels: "Corolla 2010", CarMake: "Toyota", Status: entity.PartStatusInStock},
		{PartNumber: "ab-100", ApplicableModels: "Civic", CarMake: "Honda", Status: entity.PartStatusOutOfStock},
		{PartNumber: "AB-200", ApplicableModels: "COROLLA 2015", CarMake: "Toyota", Status: entity.PartStatusInStock},
	} {
		p := p
		require.NoError(t, parts.Create(ctx, &p))
	}

	got, err := parts.Search(ctx, repository.PartFilter{ApplicableModels: "corolla"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AB-200", got[0].PartNumber)
	assert.Equal(t, "ZX-900", got[1].PartNumber)

	got, err = parts.Search(ctx, repository.PartFilter{PartNumber: "AB", CarMake: "Honda"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ab-100", got[0].PartNumber)

	got, err = parts.Search(ctx, repository.PartFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ab-100", got[0].PartNumber, "orden por bytes: mayúsculas primero")
}

func TestSalesLog_MasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	log := s.SalesLog()
	for _, pn := range []string{"A", "B", "A"} {
		require.NoError(t, log.Create(ctx, &entity.SalesLogEntry{PartNumber: pn, Qty: 1}))
	}
	all, err := log.List(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].ID)

	onlyA, err := log.List(ctx, "A", 10, 0)
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	assert.Equal(t, int64(3), onlyA[0].ID)
	assert.Equal(t, int64(1), onlyA[1].ID)
}

func TestSettings_CopiaIndependiente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	got, err := s.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	in := &entity.Settings{PartTypes: []string{"Motor"}}
	require.NoError(t, s.Settings().Upsert(ctx, in))
	in.PartTypes[0] = "mutado"

	got, err = s.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Motor"}, got.PartTypes)
}
