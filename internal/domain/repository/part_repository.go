package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// PartFilter filtros opcionales y conjuntivos para buscar partes.
// PartNumber y ApplicableModels: subcadena sin distinguir mayúsculas; el resto: igualdad exacta.
type PartFilter struct {
	PartNumber       string
	ApplicableModels string
	Status           string
	PartType         string
	PartSubtype      string
	CarMake          string
	Manufacturer     string
}

// PartRepository define el puerto de persistencia para Part (DIP).
// Las lecturas ...ForUpdate bloquean la fila hasta el fin de la transacción.
type PartRepository interface {
	// Create inserta la parte; domain.ErrDuplicate si el número de parte ya existe.
	Create(ctx context.Context, part *entity.Part) error
	// CreateIfAbsent inserta solo si no existe; devuelve true si insertó.
	CreateIfAbsent(ctx context.Context, part *entity.Part) (bool, error)
	GetByPartNumber(ctx context.Context, partNumber string) (*entity.Part, error)
	GetForUpdate(ctx context.Context, partNumber string) (*entity.Part, error)
	// ListForUpdate bloquea y devuelve todas las partes ordenadas por número de parte.
	ListForUpdate(ctx context.Context) ([]*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
	// Search ordena por número de parte ascendente.
	Search(ctx context.Context, filter PartFilter, limit, offset int) ([]*entity.Part, error)
}
