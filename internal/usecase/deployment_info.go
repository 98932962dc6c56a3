package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// GetDeploymentInfo polls the bridge status service for every domain of a
// deployment until each transfer is executed or failed, or ctx is done.
// Domains are polled concurrently; resolved domains are returned in input
// order together with the joined errors of the others.
func (uc *DeployMultichain) GetDeploymentInfo(ctx context.Context, txHash common.Hash, domainIDs []uint8) ([]domain.DeploymentInfo, error) {
	st, err := uc.initialized()
	if err != nil {
		return nil, err
	}

	var record *domain.DeploymentRecord
	if uc.journal != nil {
		record, err = uc.journal.Get(ctx, txHash)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn("failed to read deployment journal", "tx", txHash.Hex(), "error", err)
		}
	}
	if len(domainIDs) == 0 && record != nil {
		domainIDs = record.DomainIDs
	}
	if len(domainIDs) == 0 {
		return nil, fmt.Errorf("no domain ids for %s", txHash.Hex())
	}

	var addresses map[uint8]common.Address
	if record != nil {
		addresses = record.PredictedAddresses
	} else {
		addresses = uc.addressesFromReceipt(ctx, st, txHash, domainIDs)
	}

	localDomain := st.adapter.DomainID
	if record != nil && record.Adapter != st.adapter.Address {
		if info, err := uc.gateway.AdapterInfo(ctx, record.Adapter); err == nil {
			localDomain = info.DomainID
		}
	}

	infos := make([]*domain.DeploymentInfo, len(domainIDs))
	errs := make([]error, len(domainIDs))

	remote := 0
	for _, id := range domainIDs {
		if id != localDomain {
			remote++
		}
	}
	var (
		mu       sync.Mutex
		resolved int
	)
	report := func(info domain.DeploymentInfo, err error) {
		mu.Lock()
		defer mu.Unlock()
		resolved++
		msg := fmt.Sprintf("%s executed", info.Network)
		if err != nil {
			msg = fmt.Sprintf("%s failed", info.Network)
		}
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "poll", Current: resolved, Total: remote, Message: msg, Spinner: resolved < remote})
	}
	if remote > 0 {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "poll", Total: remote, Message: fmt.Sprintf("Waiting for bridge execution on %d domain(s)", remote), Spinner: true})
	}

	var g errgroup.Group
	for i, id := range domainIDs {
		g.Go(func() error {
			base := uc.baseInfo(st, addresses, txHash, id)
			if id == localDomain {
				infos[i] = &base
				return nil
			}
			infos[i], errs[i] = uc.pollDomain(ctx, base)
			report(base, errs[i])
			return errs[i]
		})
	}

	out := make([]domain.DeploymentInfo, 0, len(domainIDs))
	waitErr := g.Wait()
	for _, info := range infos {
		if info != nil {
			out = append(out, *info)
		}
	}
	if waitErr != nil {
		return out, errors.Join(errs...)
	}
	return out, nil
}

func (uc *DeployMultichain) baseInfo(st *orchestratorState, addresses map[uint8]common.Address, txHash common.Hash, id uint8) domain.DeploymentInfo {
	info := domain.DeploymentInfo{
		Network:         fmt.Sprintf("domain-%d", id),
		DomainID:        id,
		TransactionHash: txHash,
	}
	if d, ok := st.byID[id]; ok {
		info.Network = d.Name
	}
	info.ContractAddress = addresses[id]
	return info
}

// addressesFromReceipt derives the deployed addresses of a transaction that
// is not in the journal from the fortified salt in its adapter events.
// Failures leave the addresses unset.
func (uc *DeployMultichain) addressesFromReceipt(ctx context.Context, st *orchestratorState, txHash common.Hash, domainIDs []uint8) map[uint8]common.Address {
	receipt, err := uc.gateway.DeployReceipt(ctx, txHash, st.adapter.Address)
	if err != nil {
		uc.log.Warn("failed to load deploy receipt", "tx", txHash.Hex(), "error", err)
		return nil
	}

	var (
		salt    fortify.Salt
		found   bool
		created common.Address
	)
	for _, ev := range receipt.Events {
		if ev.Type == domain.EventDeployed {
			created = ev.NewContract
		}
		if !found && (ev.Type == domain.EventDeployed || ev.Type == domain.EventDeployRequested) {
			salt, found = ev.FortifiedSalt, true
		}
	}
	if !found {
		uc.log.Warn("no deploy events in receipt", "tx", txHash.Hex())
		return nil
	}

	out := make(map[uint8]common.Address, len(domainIDs))
	for _, id := range domainIDs {
		if id == st.adapter.DomainID && created != (common.Address{}) {
			out[id] = created
			continue
		}
		d, ok := st.byID[id]
		if !ok {
			continue
		}
		addr, err := fortify.ComputeAddressForChain(st.adapter.Factory, st.adapter.Address, salt, new(big.Int).SetUint64(d.ChainID))
		if err != nil {
			uc.log.Warn("failed to compute address", "domain", id, "error", err)
			continue
		}
		out[id] = addr
	}
	return out
}

func (uc *DeployMultichain) pollDomain(ctx context.Context, info domain.DeploymentInfo) (*domain.DeploymentInfo, error) {
	env := uc.cfg.Multichain.Environment
	interval := uc.cfg.Multichain.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	log := uc.log.With("network", info.Network, "domain", info.DomainID)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		transfer, err := uc.status.TransferStatus(ctx, env, info.TransactionHash, info.DomainID)
		switch {
		case err != nil:
			log.Debug("status lookup failed, retrying", "error", err)
		case transfer.Status == domain.TransferExecuted:
			info.ExplorerURL = transfer.ExplorerURL
			if info.ExplorerURL == "" {
				info.ExplorerURL = uc.status.ExplorerURL(env, info.TransactionHash)
			}
			if transfer.ExecutionTxHash != (common.Hash{}) {
				info.TransactionHash = transfer.ExecutionTxHash
			}
			log.Info("remote deployment executed", "address", info.ContractAddress.Hex())
			return &info, nil
		case transfer.Status == domain.TransferFailed:
			url := transfer.ExplorerURL
			if url == "" {
				url = uc.status.ExplorerURL(env, info.TransactionHash)
			}
			return nil, &domain.TransferFailedError{DomainID: info.DomainID, Network: info.Network, ExplorerURL: url}
		default:
			log.Debug("transfer pending", "status", transfer.Status)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s (domain %d): %w", info.Network, info.DomainID, ctx.Err())
		case <-ticker.C:
		}
	}
}
