package crosschain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

const (
	localDomain  uint8 = 10
	remoteDomain uint8 = 20
	otherDomain  uint8 = 30
)

var (
	deployer  = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	stranger  = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	rawSalt   = fortify.Salt(common.HexToHash("0xcafe00000000000000000000000000000000000000000000000000000000cafe"))
	initCode  = hexutil.MustDecode("0x6080604052348015600f57600080fd5b50")
	ctorArg   = common.LeftPadBytes(big.NewInt(42).Bytes(), 32)
	setNameV1 = hexutil.MustDecode("0xc47f0027000000000000000000000000000000000000000000000000000000000000002000000000000000000000000000000000000000000000000000000000000000045065706500000000000000000000000000000000000000000000000000000000")
)

func testLayout() Layout {
	layout := DefaultLayout()
	layout.ResourceID = common.HexToHash("0x000000000000000000000000000000000000000000000000000000000000cafe")
	return layout
}

func newTestChain(domainID uint8, chainID int64) *Chain {
	return NewChain(domainID, big.NewInt(chainID), testLayout())
}

func deployParams(domains ...uint8) DeployParams {
	n := len(domains)
	p := DeployParams{
		InitCode:             initCode,
		GasLimit:             uint256.NewInt(2_000_000),
		Salt:                 rawSalt,
		ConstructorArgs:      make([][]byte, n),
		InitDatas:            make([][]byte, n),
		DestinationDomainIDs: domains,
	}
	for i := range domains {
		p.ConstructorArgs[i] = ctorArg
		p.InitDatas[i] = []byte{}
	}
	return p
}

func sum(fees []*uint256.Int) *uint256.Int {
	total := new(uint256.Int)
	for _, f := range fees {
		total.Add(total, f)
	}
	return total
}

func quoted(t *testing.T, c *Chain, p DeployParams) DeployParams {
	t.Helper()
	fees, err := c.CalculateDeployFee(deployer, p)
	require.NoError(t, err)
	p.Fees = fees
	return p
}

func adapterEvents(c *Chain, r *Receipt) []Event {
	var out []Event
	for _, log := range r.Logs {
		if log.Address == c.Adapter.Address() {
			out = append(out, log.Event)
		}
	}
	return out
}

func TestDeployAdapter_Accessors(t *testing.T) {
	c := newTestChain(localDomain, 31337)
	layout := testLayout()

	assert.Equal(t, layout.Factory, c.Adapter.Factory())
	assert.Equal(t, layout.Bridge, c.Adapter.Bridge())
	assert.Equal(t, layout.ResourceID, c.Adapter.ResourceID())
	assert.Equal(t, localDomain, c.Adapter.DomainID())
}

func TestDeployAdapter_InvalidLength(t *testing.T) {
	c := newTestChain(localDomain, 31337)
	base := quoted(t, c, deployParams(remoteDomain, otherDomain))

	tests := []struct {
		name   string
		mutate func(p *DeployParams)
	}{
		{"constructor args", func(p *DeployParams) { p.ConstructorArgs = p.ConstructorArgs[:1] }},
		{"init datas", func(p *DeployParams) { p.InitDatas = p.InitDatas[:1] }},
		{"destination domains", func(p *DeployParams) { p.DestinationDomainIDs = p.DestinationDomainIDs[:1] }},
		{"fees", func(p *DeployParams) { p.Fees = p.Fees[:1] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			_, err := c.Deploy(deployer, sum(base.Fees), p)
			assert.ErrorIs(t, err, ErrInvalidLength)
		})
	}

	t.Run("calculateDeployFee", func(t *testing.T) {
		p := deployParams(remoteDomain, otherDomain)
		p.InitDatas = p.InitDatas[:1]
		_, err := c.CalculateDeployFee(deployer, p)
		assert.ErrorIs(t, err, ErrInvalidLength)
	})
}

func TestDeployAdapter_FeeMustMatchExactly(t *testing.T) {
	c := newTestChain(localDomain, 31337)
	p := quoted(t, c, deployParams(remoteDomain, otherDomain))
	total := sum(p.Fees)

	_, err := c.Deploy(deployer, new(uint256.Int).SubUint64(total, 1), p)
	assert.ErrorIs(t, err, ErrInsufficientFee)

	_, err = c.Deploy(deployer, new(uint256.Int).AddUint64(total, 1), p)
	assert.ErrorIs(t, err, ErrExcessFee)

	_, err = c.Deploy(deployer, total, p)
	require.NoError(t, err)
	assert.Equal(t, total, c.Ledger.Account(c.Bridge.Address()).Balance)
}

func TestDeployAdapter_CalculateDeployFee(t *testing.T) {
	c := newTestChain(localDomain, 31337)
	flat := testLayout().FlatFee
	feeFor := func(d uint8) *uint256.Int {
		return new(uint256.Int).Div(flat, uint256.NewInt(uint64(d)))
	}

	for _, domains := range [][]uint8{
		{localDomain, remoteDomain, otherDomain},
		{remoteDomain, localDomain, otherDomain},
		{remoteDomain, otherDomain, localDomain},
	} {
		fees, err := c.CalculateDeployFee(deployer, deployParams(domains...))
		require.NoError(t, err)
		require.Len(t, fees, len(domains))
		for i, d := range domains {
			if d == localDomain {
				assert.True(t, fees[i].IsZero(), "local fee at %d", i)
			} else {
				assert.Equal(t, feeFor(d), fees[i])
			}
		}
	}
}

func TestDeployAdapter_DispatchOrder(t *testing.T) {
	for k, domains := range [][]uint8{
		{localDomain, remoteDomain, otherDomain},
		{remoteDomain, localDomain, otherDomain},
		{remoteDomain, otherDomain, localDomain},
	} {
		c := newTestChain(localDomain, 31337)
		p := quoted(t, c, deployParams(domains...))
		assert.True(t, p.Fees[k].IsZero())

		receipt, err := c.Deploy(deployer, sum(p.Fees), p)
		require.NoError(t, err)

		events := adapterEvents(c, receipt)
		require.Len(t, events, 3)
		salt := c.Adapter.Fortify(deployer, rawSalt, false)
		for i, ev := range events {
			if i == k {
				deployed, ok := ev.(Deployed)
				require.True(t, ok, "expected Deployed at %d", i)
				want, err := c.Adapter.ComputeContractAddressForChain(deployer, rawSalt, false, c.Ledger.ChainID())
				require.NoError(t, err)
				assert.Equal(t, want, deployed.NewContract)
				assert.Equal(t, salt, deployed.FortifiedSalt)
				continue
			}
			requested, ok := ev.(DeployRequested)
			require.True(t, ok, "expected DeployRequested at %d", i)
			assert.Equal(t, DeployRequested{Sender: deployer, FortifiedSalt: salt, DestinationDomainID: domains[i]}, requested)
		}
	}
}

func TestDeployAdapter_LocalOnlyRunsInitCall(t *testing.T) {
	c := newTestChain(localDomain, 31337)
	p := deployParams(localDomain)
	p.InitDatas[0] = setNameV1
	p.Fees = []*uint256.Int{new(uint256.Int)}

	receipt, err := c.Deploy(deployer, nil, p)
	require.NoError(t, err)

	events := adapterEvents(c, receipt)
	require.Len(t, events, 1)
	deployed := events[0].(Deployed)

	acc := c.Ledger.Account(deployed.NewContract)
	require.NotNil(t, acc)
	assert.Equal(t, append(append([]byte{}, initCode...), ctorArg...), acc.Code)
	assert.Equal(t, [][]byte{setNameV1}, acc.Calls)
}

func TestDeployAdapter_LocalFeeMustBeZero(t *testing.T) {
	c := newTestChain(localDomain, 31337)
	p := deployParams(localDomain)
	p.Fees = []*uint256.Int{uint256.NewInt(1)}

	_, err := c.Deploy(deployer, uint256.NewInt(1), p)
	assert.ErrorIs(t, err, ErrExcessFee)
}

func TestDeployAdapter_DepositPayload(t *testing.T) {
	c := newTestChain(localDomain, 31337)
	p := quoted(t, c, deployParams(remoteDomain))
	p.InitDatas[0] = setNameV1

	receipt, err := c.Deploy(deployer, sum(p.Fees), p)
	require.NoError(t, err)

	var deposit *Deposit
	for _, log := range receipt.Logs {
		if d, ok := log.Event.(Deposit); ok {
			deposit = &d
		}
	}
	require.NotNil(t, deposit)
	assert.Equal(t, remoteDomain, deposit.DestinationDomainID)
	assert.Equal(t, testLayout().ResourceID, deposit.ResourceID)
	assert.Equal(t, c.Adapter.Address(), deposit.User)
	assert.Equal(t, p.Fees[0], deposit.Fee)

	salt := c.Adapter.Fortify(deployer, rawSalt, false)
	fullCode := append(append([]byte{}, initCode...), ctorArg...)
	call := adapterABI.PackExecute(common.Address{}, fullCode, setNameV1, salt)

	gas := uint256.NewInt(2_000_000).Bytes32()
	want := append([]byte{}, gas[:]...)
	want = append(want, 0x00, 0x04)
	want = append(want, call[:4]...)
	want = append(want, 0x14)
	want = append(want, c.Adapter.Address().Bytes()...)
	want = append(want, 0x14)
	want = append(want, c.Adapter.Address().Bytes()...)
	want = append(want, call[36:]...)
	assert.Equal(t, want, deposit.Data)

	decoded, err := DecodeDepositData(deposit.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000), decoded.GasLimit.Uint64())
	assert.Equal(t, c.Adapter.Address(), decoded.Contract)
	assert.Equal(t, c.Adapter.Address(), decoded.Depositor)
}

func TestDeployAdapter_FailedDeployRevertsEverything(t *testing.T) {
	c := newTestChain(localDomain, 31337)
	p := quoted(t, c, deployParams(remoteDomain, localDomain))
	_, err := c.Deploy(deployer, sum(p.Fees), p)
	require.NoError(t, err)
	paid := c.Ledger.Account(c.Bridge.Address()).Balance

	// The local address is now occupied, so the same request fails after
	// the remote deposit already went through.
	_, err = c.Deploy(deployer, sum(p.Fees), p)
	assert.ErrorIs(t, err, ErrFailedContractCreation)
	assert.Equal(t, paid, c.Ledger.Account(c.Bridge.Address()).Balance)
}

func TestDeployAdapter_Execute(t *testing.T) {
	c := newTestChain(remoteDomain, 11155111)
	layout := testLayout()
	salt := c.Adapter.Fortify(deployer, rawSalt, false)

	execute := func(caller, origin common.Address, initData []byte) (*Receipt, error) {
		return c.Ledger.Transact(caller, c.Adapter.Address(), nil, func(tx *Tx, msg Msg) error {
			return c.Adapter.Execute(tx, msg, origin, initCode, initData, salt)
		})
	}

	t.Run("rejects callers other than the bridge handler", func(t *testing.T) {
		for _, caller := range []common.Address{stranger, deployer, layout.Bridge} {
			_, err := execute(caller, c.Adapter.Address(), nil)
			assert.ErrorIs(t, err, ErrInvalidHandler)
		}
	})

	t.Run("rejects forged origins", func(t *testing.T) {
		_, err := execute(layout.Handler, stranger, nil)
		assert.ErrorIs(t, err, ErrInvalidOrigin)
	})

	t.Run("deploys to the computed address", func(t *testing.T) {
		receipt, err := execute(layout.Handler, c.Adapter.Address(), setNameV1)
		require.NoError(t, err)

		events := adapterEvents(c, receipt)
		require.Len(t, events, 1)
		want, err := c.Adapter.ComputeContractAddressForChain(deployer, rawSalt, false, c.Ledger.ChainID())
		require.NoError(t, err)
		assert.Equal(t, Deployed{FortifiedSalt: salt, NewContract: want}, events[0])
		assert.Equal(t, [][]byte{setNameV1}, c.Ledger.Account(want).Calls)
	})

	t.Run("redelivery hits the occupied address", func(t *testing.T) {
		_, err := execute(layout.Handler, c.Adapter.Address(), nil)
		assert.ErrorIs(t, err, ErrFailedContractCreation)
	})
}

func TestDeployAdapter_CrossChainRoundTrip(t *testing.T) {
	origin := newTestChain(localDomain, 31337)
	dest := newTestChain(remoteDomain, 11155111)
	relayer := common.HexToAddress("0x000000000000000000000000000000000000beef")

	for i, unique := range []bool{false, true} {
		p := deployParams(localDomain, remoteDomain)
		p.IsUniquePerChain = unique
		p.Salt = fortify.Salt(common.BigToHash(big.NewInt(int64(i + 1))))
		p = quoted(t, origin, p)

		receipt, err := origin.Deploy(deployer, sum(p.Fees), p)
		require.NoError(t, err)

		proposals := origin.ProposalsFrom(receipt)[remoteDomain]
		require.Len(t, proposals, 1)

		execReceipt, err := dest.ExecuteProposal(relayer, proposals[0])
		require.NoError(t, err)

		var deployed *Deployed
		var executed bool
		for _, log := range execReceipt.Logs {
			switch ev := log.Event.(type) {
			case Deployed:
				deployed = &ev
			case ProposalExecution:
				executed = true
			}
		}
		require.True(t, executed)
		require.NotNil(t, deployed)

		localAddr, err := origin.Adapter.ComputeContractAddressForChain(deployer, p.Salt, unique, origin.Ledger.ChainID())
		require.NoError(t, err)
		remoteAddr, err := origin.Adapter.ComputeContractAddressForChain(deployer, p.Salt, unique, dest.Ledger.ChainID())
		require.NoError(t, err)
		assert.Equal(t, remoteAddr, deployed.NewContract)
		if unique {
			assert.NotEqual(t, localAddr, remoteAddr)
		} else {
			assert.Equal(t, localAddr, remoteAddr)
		}

		_, err = dest.ExecuteProposal(relayer, proposals[0])
		assert.ErrorIs(t, err, ErrNonceUsed)
	}
}

func TestDeployAdapter_FailedHandlerExecution(t *testing.T) {
	origin := newTestChain(localDomain, 31337)
	dest := newTestChain(remoteDomain, 11155111)
	relayer := common.HexToAddress("0x000000000000000000000000000000000000beef")

	p := quoted(t, origin, deployParams(remoteDomain))
	receipt, err := origin.Deploy(deployer, sum(p.Fees), p)
	require.NoError(t, err)
	proposal := origin.ProposalsFrom(receipt)[remoteDomain][0]

	// Occupy the target first so the delivered execute call reverts.
	salt := origin.Adapter.Fortify(deployer, rawSalt, false)
	_, err = dest.Ledger.Transact(testLayout().Handler, dest.Adapter.Address(), nil, func(tx *Tx, msg Msg) error {
		return dest.Adapter.Execute(tx, msg, dest.Adapter.Address(), initCode, nil, salt)
	})
	require.NoError(t, err)

	execReceipt, err := dest.ExecuteProposal(relayer, proposal)
	require.NoError(t, err)
	require.Len(t, execReceipt.Logs, 1)
	failed, ok := execReceipt.Logs[0].Event.(FailedHandlerExecution)
	require.True(t, ok)
	assert.Equal(t, localDomain, failed.OriginDomainID)
	assert.Contains(t, failed.Reason, ErrFailedContractCreation.Error())
}
