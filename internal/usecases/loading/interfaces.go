package loading

import (
	"context"

	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

// SnapshotProvider define a interface para obter o snapshot atual dos dados
type SnapshotProvider interface {
	// LatestSnapshot devolve o último snapshot carregado com sucesso (nil se nunca carregado)
	LatestSnapshot() *domain.Dataset
}

// DatasetLoader é a interface completa do carregador de dados
type DatasetLoader interface {
	SnapshotProvider

	// Load recarrega as três tabelas dos arquivos de entrada e publica um
	// snapshot novo. Em caso de erro o snapshot anterior é preservado
	Load(ctx context.Context) (*domain.Dataset, error)
}
