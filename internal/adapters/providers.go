package adapters

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/trebuchet-org/treb-multichain/internal/adapters/abi"
	"github.com/trebuchet-org/treb-multichain/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-multichain/internal/adapters/contracts"
	"github.com/trebuchet-org/treb-multichain/internal/adapters/interactive"
	"github.com/trebuchet-org/treb-multichain/internal/adapters/local"
	"github.com/trebuchet-org/treb-multichain/internal/adapters/progress"
	"github.com/trebuchet-org/treb-multichain/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/treb-multichain/internal/adapters/sygma"
	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// Backend bundles the ports that differ between the local devnet and a
// live bridge environment
type Backend struct {
	Registry usecase.DomainRegistry
	Chains   usecase.ChainIDResolver
	Gateway  usecase.AdapterGateway
	Status   usecase.TransferStatusProvider
}

// ProvideBackend picks the in-process devnet for the local environment and
// the bridge services plus RPC otherwise
func ProvideBackend(cfg *config.RuntimeConfig, log *slog.Logger) (*Backend, error) {
	if cfg.Multichain.Environment == domain.EnvironmentLocal {
		dev, err := local.NewDevnet(cfg, log)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Registry: dev,
			Chains:   dev.Resolver(),
			Gateway:  dev,
			Status:   dev,
		}, nil
	}

	gateway, err := blockchain.NewAdapterGateway(cfg, log)
	if err != nil {
		return nil, err
	}
	client := sygma.NewClient(cfg, log)
	return &Backend{
		Registry: sygma.NewRegistry(client),
		Chains:   blockchain.NewChecker(log),
		Gateway:  gateway,
		Status:   sygma.NewStatusProvider(client),
	}, nil
}

// BackendSet exposes the environment dependent ports
var BackendSet = wire.NewSet(
	ProvideBackend,
	wire.FieldsOf(new(*Backend), "Registry", "Chains", "Gateway", "Status"),
)

// ABISet provides argument encoding
var ABISet = wire.NewSet(
	abi.NewArgumentMapper,
	wire.Bind(new(usecase.ArgumentMapper), new(*abi.ArgumentMapper)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	contracts.NewIndexer,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Indexer)),

	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentJournal), new(*deployments.FileRepository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ArtifactSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BackendSet,
	ABISet,
	FSSet,
	InteractiveSet,
)
