package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/treb-multichain/internal/app"
	"github.com/trebuchet-org/treb-multichain/internal/cli/render"
	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// deployFlags are shared by deploy and deploy-bytecode
type deployFlags struct {
	argsFile        string
	networks        []string
	constructorArgs string
	salt            string
	unique          bool
	gasLimit        uint64
	txGasLimit      uint64
	nonce           int64
	dryRun          bool
	wait            bool
	pick            bool
}

func (f *deployFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.argsFile, "args", "", "YAML or JSON file mapping networks to constructor args and init calls")
	cmd.Flags().StringSliceVar(&f.networks, "networks", nil, "Destination networks (defaults to deployment_networks)")
	cmd.Flags().StringVar(&f.constructorArgs, "constructor-args", "", "Constructor args for every network as a YAML list, e.g. '[42, \"name\"]'")
	cmd.Flags().StringVar(&f.salt, "salt", "", "32 byte hex salt (random when omitted)")
	cmd.Flags().BoolVar(&f.unique, "unique", false, "Derive a different address on every chain")
	cmd.Flags().Uint64Var(&f.gasLimit, "gas-limit", 0, "Gas limit of remote executions (estimated when zero)")
	cmd.Flags().Uint64Var(&f.txGasLimit, "tx-gas-limit", 0, "Gas limit of the deploy transaction (estimated when zero)")
	cmd.Flags().Int64Var(&f.nonce, "nonce", -1, "Nonce of the deploy transaction")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Quote fees and predict addresses without sending")
	cmd.Flags().BoolVar(&f.wait, "wait", false, "Wait for every remote execution after submitting")
	cmd.Flags().BoolVar(&f.pick, "select-networks", false, "Pick the destinations interactively from --networks or deployment_networks")
}

// networkArgs builds the per network arguments from --args, or from the
// destination list and --constructor-args
func (f *deployFlags) networkArgs(a *app.App) (domain.NetworkArgs, error) {
	if f.argsFile != "" {
		if len(f.networks) > 0 || f.constructorArgs != "" {
			return nil, fmt.Errorf("--args cannot be combined with --networks or --constructor-args")
		}
		data, err := os.ReadFile(f.argsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.argsFile, err)
		}
		args, err := domain.ParseNetworkArgs(data)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("%s lists no networks", f.argsFile)
		}
		return args, nil
	}

	networks := f.networks
	if len(networks) == 0 {
		networks = a.Config.Multichain.DeploymentNetworks
	}
	if len(networks) == 0 {
		return nil, fmt.Errorf("no destination networks, use --networks, --args or deployment_networks in multichain.toml")
	}
	if f.pick {
		if a.Config.NonInteractive || a.Config.JSON {
			return nil, fmt.Errorf("--select-networks cannot be used with --non-interactive or --json")
		}
		items := make([]networkItem, len(networks))
		for i, name := range networks {
			items[i] = networkItem{name: strings.TrimSpace(name)}
			if n, ok := a.Config.Multichain.Networks[items[i].name]; ok && n.ChainID != 0 {
				items[i].detail = fmt.Sprintf("(chain %d)", n.ChainID)
			}
		}
		picked, err := selectNetworks(items, "Select destination networks")
		if err != nil {
			return nil, err
		}
		networks = picked
	}

	var shared []domain.Value
	if f.constructorArgs != "" {
		values, err := parseValueList(f.constructorArgs)
		if err != nil {
			return nil, fmt.Errorf("invalid --constructor-args: %w", err)
		}
		shared = values
	}

	out := make(domain.NetworkArgs, len(networks))
	for i, name := range networks {
		out[i] = domain.NetworkArgument{Network: strings.TrimSpace(name), ConstructorArgs: shared}
	}
	return out, nil
}

func (f *deployFlags) options() (domain.DeployOptions, error) {
	opts := domain.DeployOptions{
		IsUniquePerChain: f.unique,
		GasLimit:         f.gasLimit,
		DryRun:           f.dryRun,
		TxOptions:        domain.TxOptions{GasLimit: f.txGasLimit},
	}
	if f.salt != "" {
		salt, err := fortify.ParseSalt(f.salt)
		if err != nil {
			return opts, err
		}
		opts.Salt = &salt
	}
	if f.nonce >= 0 {
		nonce := uint64(f.nonce)
		opts.TxOptions.Nonce = &nonce
	}
	return opts, nil
}

// parseValueList reads a YAML flow sequence into values
func parseValueList(s string) ([]domain.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil {
		return nil, err
	}
	v, err := domain.ValueFromNode(&node)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(domain.ArrayValue)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %s", v)
	}
	return arr.Elems, nil
}

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var flags deployFlags

	cmd := &cobra.Command{
		Use:   "deploy <contract>",
		Short: "Deploy a compiled contract to several networks",
		Long: `Deploy a contract from the Foundry or Hardhat artifacts of the project.

One transaction is sent on the origin network. The contract is created there
right away and the bridge carries it to every other destination.`,
		Example: `  # Deploy Counter to the configured deployment networks
  treb-multichain deploy Counter --constructor-args '[42]'

  # Per network constructor arguments and init calls
  treb-multichain deploy Greeter --args greeter.yaml --salt 0x01...

  # Quote fees only
  treb-multichain deploy Counter --networks sepolia,holesky --dry-run

  # Choose a subset of deployment_networks
  treb-multichain deploy Counter --select-networks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, &flags, func(a *app.App, networkArgs domain.NetworkArgs, opts domain.DeployOptions) (*domain.DeployResult, error) {
				return a.Deploy.Deploy(cmd.Context(), usecase.DeployMultichainParams{
					ContractName: args[0],
					NetworkArgs:  networkArgs,
					Options:      opts,
				})
			})
		},
	}
	flags.register(cmd)

	return cmd
}

// NewDeployBytecodeCmd creates the deploy-bytecode command
func NewDeployBytecodeCmd() *cobra.Command {
	var (
		flags        deployFlags
		bytecode     string
		bytecodeFile string
		abiFile      string
		label        string
	)

	cmd := &cobra.Command{
		Use:   "deploy-bytecode",
		Short: "Deploy raw init code with its ABI",
		Example: `  treb-multichain deploy-bytecode --bytecode-file Counter.bin --abi Counter.abi --constructor-args '[1]'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readBytecode(bytecode, bytecodeFile)
			if err != nil {
				return err
			}
			abiJSON := "[]"
			if abiFile != "" {
				data, err := os.ReadFile(abiFile)
				if err != nil {
					return fmt.Errorf("failed to read ABI: %w", err)
				}
				abiJSON = string(data)
			}
			return runDeploy(cmd, &flags, func(a *app.App, networkArgs domain.NetworkArgs, opts domain.DeployOptions) (*domain.DeployResult, error) {
				return a.Deploy.DeployBytecode(cmd.Context(), usecase.DeployBytecodeParams{
					Bytecode:    code,
					ABI:         abiJSON,
					NetworkArgs: networkArgs,
					Options:     opts,
					Contract:    label,
				})
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&bytecode, "bytecode", "", "Hex encoded init code")
	cmd.Flags().StringVar(&bytecodeFile, "bytecode-file", "", "File holding hex encoded init code")
	cmd.Flags().StringVar(&abiFile, "abi", "", "ABI JSON file (needed for constructor args and init calls)")
	cmd.Flags().StringVar(&label, "label", "", "Name recorded in the deployment journal")

	return cmd
}

func readBytecode(inline, file string) ([]byte, error) {
	switch {
	case inline != "" && file != "":
		return nil, fmt.Errorf("use either --bytecode or --bytecode-file")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read bytecode: %w", err)
		}
		inline = strings.TrimSpace(string(data))
	case inline == "":
		return nil, fmt.Errorf("--bytecode or --bytecode-file is required")
	}
	if !strings.HasPrefix(inline, "0x") && !strings.HasPrefix(inline, "0X") {
		inline = "0x" + inline
	}
	code, err := hexutil.Decode(inline)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return code, nil
}

type deployFunc func(a *app.App, networkArgs domain.NetworkArgs, opts domain.DeployOptions) (*domain.DeployResult, error)

func runDeploy(cmd *cobra.Command, flags *deployFlags, deploy deployFunc) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	networkArgs, err := flags.networkArgs(a)
	if err != nil {
		return err
	}
	opts, err := flags.options()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := a.Deploy.Initialize(ctx); err != nil {
		stopProgress(a)
		return err
	}
	domains, err := a.Deploy.Domains()
	if err != nil {
		return err
	}

	result, err := deploy(a, networkArgs, opts)
	stopProgress(a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !flags.wait || result.DryRun {
		if a.Config.JSON {
			return render.RenderJSON(out, render.NewDeployOutput(result, domains))
		}
		return render.NewDeployRenderer(out, domains).RenderDeploy(result)
	}

	if a.Config.JSON {
		infos, statusErr := a.Deploy.GetDeploymentInfo(ctx, result.TransactionHash, result.DomainIDs)
		stopProgress(a)
		output := render.NewDeployOutput(result, domains)
		status := render.NewStatusOutput(result.TransactionHash, infos, statusErr)
		output.Status = &status
		if err := render.RenderJSON(out, output); err != nil {
			return err
		}
		return statusError(statusErr)
	}

	if err := render.NewDeployRenderer(out, domains).RenderDeploy(result); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return waitAndRender(cmd, a, domains, result.TransactionHash, result.DomainIDs)
}

// waitAndRender polls the bridge for every domain and renders the outcome
func waitAndRender(cmd *cobra.Command, a *app.App, domains []domain.Domain, txHash common.Hash, domainIDs []uint8) error {
	infos, statusErr := a.Deploy.GetDeploymentInfo(cmd.Context(), txHash, domainIDs)
	stopProgress(a)

	out := cmd.OutOrStdout()
	if a.Config.JSON {
		if err := render.RenderJSON(out, render.NewStatusOutput(txHash, infos, statusErr)); err != nil {
			return err
		}
	} else if err := render.NewDeployRenderer(out, domains).RenderStatus(txHash, infos, statusErr); err != nil {
		return err
	}
	return statusError(statusErr)
}

func statusError(err error) error {
	if err == nil {
		return nil
	}
	if render.IsTransferFailure(err) {
		return fmt.Errorf("deployment failed: %w", err)
	}
	return fmt.Errorf("deployment not executed on every network: %w", err)
}
