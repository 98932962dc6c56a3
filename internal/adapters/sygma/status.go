package sygma

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// transferResponse is one indexer record
type transferResponse struct {
	Status       string `json:"status"`
	FromDomainID uint8  `json:"fromDomainId"`
	ToDomainID   uint8  `json:"toDomainId"`
	Timestamp    string `json:"timestamp"`
	Deposit      *struct {
		TxHash string `json:"txHash"`
	} `json:"deposit"`
	Execution *struct {
		TxHash string `json:"txHash"`
	} `json:"execution"`
}

// transferList accepts both a bare record and a list of records
type transferList []transferResponse

func (l *transferList) UnmarshalJSON(data []byte) error {
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "{") {
		var one transferResponse
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = transferList{one}
		return nil
	}
	var many []transferResponse
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// StatusProvider reads transfer status from the bridge indexer
type StatusProvider struct {
	client *Client
}

var _ usecase.TransferStatusProvider = (*StatusProvider)(nil)

// NewStatusProvider creates a new indexer backed status provider
func NewStatusProvider(client *Client) *StatusProvider {
	return &StatusProvider{client: client}
}

// TransferStatus returns the transfer of txHash towards domainID
func (p *StatusProvider) TransferStatus(ctx context.Context, env domain.Environment, txHash common.Hash, domainID uint8) (*domain.Transfer, error) {
	eps, err := p.client.endpoints(env)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/transfers/txHash/%s", strings.TrimRight(eps.Indexer, "/"), txHash.Hex())

	var records transferList
	if err := p.client.getJSON(ctx, url, &records); err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ToDomainID != domainID {
			continue
		}
		status, err := parseStatus(rec.Status)
		if err != nil {
			return nil, err
		}
		transfer := &domain.Transfer{
			Status:        status,
			FromDomainID:  rec.FromDomainID,
			ToDomainID:    rec.ToDomainID,
			DepositTxHash: txHash,
			ExplorerURL:   explorerURL(eps.Explorer, txHash),
		}
		if rec.Execution != nil && rec.Execution.TxHash != "" {
			transfer.ExecutionTxHash = common.HexToHash(rec.Execution.TxHash)
		}
		if ts, err := time.Parse(time.RFC3339, rec.Timestamp); err == nil {
			transfer.UpdatedAt = ts
		}
		return transfer, nil
	}
	return nil, fmt.Errorf("transfer %s to domain %d: %w", txHash.Hex(), domainID, domain.ErrNotFound)
}

// ExplorerURL links the bridge explorer page of txHash
func (p *StatusProvider) ExplorerURL(env domain.Environment, txHash common.Hash) string {
	eps, err := p.client.endpoints(env)
	if err != nil {
		return ""
	}
	return explorerURL(eps.Explorer, txHash)
}

func explorerURL(base string, txHash common.Hash) string {
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/transfer/%s", strings.TrimRight(base, "/"), txHash.Hex())
}

func parseStatus(s string) (domain.TransferStatus, error) {
	switch status := domain.TransferStatus(strings.ToLower(s)); status {
	case domain.TransferPending, domain.TransferExecuted, domain.TransferFailed:
		return status, nil
	}
	return "", fmt.Errorf("unknown transfer status %q", s)
}
