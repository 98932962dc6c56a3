package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for multichain deployments
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNotInitialized is returned when a use case is called before Initialize
	ErrNotInitialized = errors.New("orchestrator not initialized")

	// ErrUnknownNetwork is returned when a network is not part of the domain registry
	ErrUnknownNetwork = errors.New("unavailable network")

	// ErrNetworkNotRouted is returned when a configured network has no bridge route
	ErrNetworkNotRouted = errors.New("network not routed")

	// ErrMissingNetworkConfig is returned when deployment networks lack configuration
	ErrMissingNetworkConfig = errors.New("missing network configuration")

	// ErrMissingConstructorArgs is returned when the ABI declares constructor inputs but none were given
	ErrMissingConstructorArgs = errors.New("missing constructor arguments")

	// ErrUnexpectedConstructorArgs is returned when arguments are given for a contract without constructor inputs
	ErrUnexpectedConstructorArgs = errors.New("unexpected constructor arguments")

	// ErrArgumentCount is returned when the number of arguments does not match the ABI
	ErrArgumentCount = errors.New("wrong number of arguments")

	// ErrArgumentType is returned when a value does not fit its ABI type
	ErrArgumentType = errors.New("argument type mismatch")

	// ErrInitMethodNotFound is returned when the init method is absent from the ABI
	ErrInitMethodNotFound = errors.New("init method not found in ABI")

	// ErrTransferFailed is returned when the bridge reports a failed transfer
	ErrTransferFailed = errors.New("transfer failed")

	// ErrFeeMismatch is returned when the fee vector does not line up with the destinations
	ErrFeeMismatch = errors.New("fee vector mismatch")

	// ErrInvalidEnvironment is returned for unknown environment names
	ErrInvalidEnvironment = errors.New("invalid environment")

	// ErrCancelled is returned when the user declines a funded transaction
	ErrCancelled = errors.New("cancelled by user")
)

// UnknownNetworksError lists networkArgs keys absent from the domain registry.
type UnknownNetworksError struct {
	Networks    []string
	Suggestions map[string][]string
}

func (e *UnknownNetworksError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Unavailable Networks in networkArgs: %s", JoinAnd(e.Networks))
	for _, name := range e.Networks {
		if s := e.Suggestions[name]; len(s) > 0 {
			fmt.Fprintf(&b, "\n  %s: did you mean %s?", name, JoinOr(s))
		}
	}
	return b.String()
}

func (e *UnknownNetworksError) Unwrap() error { return ErrUnknownNetwork }

// NetworkRef names a network together with its chain id.
type NetworkRef struct {
	Name    string
	ChainID uint64
}

func (n NetworkRef) String() string {
	return fmt.Sprintf("%s(%d)", n.Name, n.ChainID)
}

// UnroutedNetworksError lists deployment networks the bridge cannot reach
// in the configured environment.
type UnroutedNetworksError struct {
	Environment Environment
	Networks    []NetworkRef
}

func (e *UnroutedNetworksError) Error() string {
	names := make([]string, len(e.Networks))
	for i, n := range e.Networks {
		names[i] = n.String()
	}
	return fmt.Sprintf("Unavailable Networks in Deployment: the following networks from deploymentNetworks are not routed for the '%s' environment: %s", e.Environment, JoinAnd(names))
}

func (e *UnroutedNetworksError) Unwrap() error { return ErrNetworkNotRouted }

// MissingNetworksError lists deployment networks without a network entry.
type MissingNetworksError struct {
	Networks []string
}

func (e *MissingNetworksError) Error() string {
	return fmt.Sprintf("Missing Configuration for Deployment Networks: %s", JoinAnd(e.Networks))
}

func (e *MissingNetworksError) Unwrap() error { return ErrMissingNetworkConfig }

// ArgumentError locates an argument that failed validation.
type ArgumentError struct {
	Network string
	Method  string // empty for the constructor
	Index   int    // negative when the error concerns the whole list
	Param   string
	Err     error
}

func (e *ArgumentError) Error() string {
	target := "constructor"
	if e.Method != "" {
		target = e.Method
	}
	if e.Network != "" {
		target = e.Network + ": " + target
	}
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", target, e.Err)
	}
	param := e.Param
	if param == "" {
		param = fmt.Sprintf("#%d", e.Index)
	}
	return fmt.Sprintf("%s argument %s: %v", target, param, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// InitMethodNotFoundError names the missing init method.
type InitMethodNotFoundError struct {
	Method string
}

func (e *InitMethodNotFoundError) Error() string {
	return fmt.Sprintf("InitMethod %s not found in ABI", e.Method)
}

func (e *InitMethodNotFoundError) Unwrap() error { return ErrInitMethodNotFound }

// TransferFailedError is raised when the bridge reports a failed message.
type TransferFailedError struct {
	DomainID    uint8
	Network     string
	ExplorerURL string
}

func (e *TransferFailedError) Error() string {
	return fmt.Sprintf("bridge transfer to %s (domain %d) failed, see %s", e.Network, e.DomainID, e.ExplorerURL)
}

func (e *TransferFailedError) Unwrap() error { return ErrTransferFailed }

// JoinAnd joins items as "a, b and c".
func JoinAnd(items []string) string {
	return joinLast(items, " and ")
}

// JoinOr joins items as "a, b or c".
func JoinOr(items []string) string {
	return joinLast(items, " or ")
}

func joinLast(items []string, last string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + last + items[len(items)-1]
}
