package abi

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/trebuchet-org/treb-multichain/internal/adapters/abi/bindings"
	"github.com/trebuchet-org/treb-multichain/internal/crosschain"
	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// EventDecoder decodes deploy adapter logs and reverts using the generated
// bindings
type EventDecoder struct {
	adapter *bindings.CrosschainDeployAdapter
}

// NewEventDecoder creates a new event decoder
func NewEventDecoder() *EventDecoder {
	return &EventDecoder{adapter: bindings.NewCrosschainDeployAdapter()}
}

// DecodeReceipt returns the adapter events of a receipt in log order. Logs
// emitted by other contracts are skipped.
func (d *EventDecoder) DecodeReceipt(receipt *types.Receipt, adapter common.Address) []domain.AdapterEvent {
	var events []domain.AdapterEvent
	for _, log := range receipt.Logs {
		if log.Address != adapter {
			continue
		}
		event, err := d.DecodeLog(log)
		if err != nil {
			continue
		}
		events = append(events, *event)
	}
	return events
}

// DecodeLog decodes a single adapter log
func (d *EventDecoder) DecodeLog(log *types.Log) (*domain.AdapterEvent, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("no topics in log")
	}

	if requested, err := d.adapter.UnpackDeployRequestedEvent(log); err == nil {
		return &domain.AdapterEvent{
			Type:          domain.EventDeployRequested,
			Sender:        requested.Sender,
			FortifiedSalt: fortify.Salt(requested.FortifiedSalt),
			DomainID:      requested.DestinationDomainID,
		}, nil
	}

	if deployed, err := d.adapter.UnpackDeployedEvent(log); err == nil {
		return &domain.AdapterEvent{
			Type:          domain.EventDeployed,
			FortifiedSalt: fortify.Salt(deployed.FortifiedSalt),
			NewContract:   deployed.NewContract,
		}, nil
	}

	return nil, fmt.Errorf("unknown event %s", log.Topics[0].Hex())
}

// DecodeRevert maps adapter revert data to its sentinel error. Unknown
// selectors return nil.
func (d *EventDecoder) DecodeRevert(data []byte) error {
	decoded, err := d.adapter.UnpackError(data)
	if err != nil {
		return nil
	}
	switch decoded.(type) {
	case *bindings.CrosschainDeployAdapterExcessFee:
		return crosschain.ErrExcessFee
	case *bindings.CrosschainDeployAdapterInsufficientFee:
		return crosschain.ErrInsufficientFee
	case *bindings.CrosschainDeployAdapterInvalidHandler:
		return crosschain.ErrInvalidHandler
	case *bindings.CrosschainDeployAdapterInvalidLength:
		return crosschain.ErrInvalidLength
	case *bindings.CrosschainDeployAdapterInvalidOrigin:
		return crosschain.ErrInvalidOrigin
	}
	return nil
}

// RevertError wraps a decoded revert so callers can match the sentinel
// while the message keeps the node's reason.
type RevertError struct {
	Reason   string
	Sentinel error
}

func (e *RevertError) Error() string {
	if e.Sentinel == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Sentinel)
}

func (e *RevertError) Unwrap() error { return e.Sentinel }

// WrapRevert inspects err for revert data and attaches the matching
// adapter error.
func (d *EventDecoder) WrapRevert(err error) error {
	var dataErr interface {
		error
		ErrorData() interface{}
	}
	if !errors.As(err, &dataErr) {
		return err
	}
	var data []byte
	switch v := dataErr.ErrorData().(type) {
	case string:
		data = common.FromHex(v)
	case []byte:
		data = v
	}
	if sentinel := d.DecodeRevert(data); sentinel != nil {
		return &RevertError{Reason: err.Error(), Sentinel: sentinel}
	}
	return err
}
