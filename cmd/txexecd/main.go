package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dpos-ledger/core"
	"dpos-ledger/pkg/config"
)

func main() {
	rootCmd := &cobra.Command{Use: "txexecd"}
	rootCmd.AddCommand(runCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [env]",
		Short: "run a scripted sequence of transactions through the executor",
		Run: func(cmd *cobra.Command, args []string) {
			env := ""
			if len(args) > 0 {
				env = args[0]
			}
			if err := run(env); err != nil {
				logrus.WithError(err).Fatal("run failed")
			}
		},
	}
	return cmd
}

// run loads network configuration, seeds genesis balances, and replays a
// fixed TRANSFER -> DELEGATE -> VOTE -> UNVOTE sequence through the
// executor, printing each result. It exercises the core package purely
// through its public API; it never reaches into executor internals.
func run(env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	exec := core.NewTransactionExecutor(cfg.ExecutorConfig())

	accounts := core.NewAccountState()
	delegates := core.NewDelegateState()

	alice, err := crypto.GenerateKey()
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	bob, err := crypto.GenerateKey()
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	aliceAddr := core.AddressOfPubKey(&alice.PublicKey)
	bobAddr := core.AddressOfPubKey(&bob.PublicKey)

	genesis := accounts.Track()
	genesis.AdjustAvailable(aliceAddr, int64(core.Sem(1_000_000)))
	genesis.AdjustAvailable(bobAddr, int64(core.Sem(10_000)))
	genesis.Commit()

	minFee := core.NanoSem(uint64(cfg.Network.MinTransactionFee))
	minBurn := core.NanoSem(uint64(cfg.Network.MinDelegateBurnAmount))

	txs := []*core.Transaction{
		buildTx(cfg.Network.ID, core.TRANSFER, bobAddr, core.Sem(50), minFee, 0, nil),
		buildTx(cfg.Network.ID, core.DELEGATE, core.EmptyAddress, minBurn, minFee, 1, []byte("alice_d")),
	}
	for i, tx := range txs {
		if err := tx.Sign(alice); err != nil {
			return fmt.Errorf("sign tx %d: %w", i, err)
		}
	}

	voteTx := buildTx(cfg.Network.ID, core.VOTE, aliceAddr, core.Sem(1000), minFee, 0, nil)
	if err := voteTx.Sign(bob); err != nil {
		return fmt.Errorf("sign vote tx: %w", err)
	}
	unvoteTx := buildTx(cfg.Network.ID, core.UNVOTE, aliceAddr, core.Sem(1000), minFee, 1, nil)
	if err := unvoteTx.Sign(bob); err != nil {
		return fmt.Errorf("sign unvote tx: %w", err)
	}

	for _, tx := range append(txs, voteTx, unvoteTx) {
		av := accounts.Track()
		dv := delegates.Track()
		result := exec.Execute(tx, av, dv)
		if result.Success {
			av.Commit()
			dv.Commit()
		}
		logrus.WithFields(logrus.Fields{
			"kind":    tx.Kind,
			"from":    tx.From,
			"success": result.Success,
			"error":   result.Error,
		}).Info("executed transaction")
	}
	return nil
}

func buildTx(networkID uint8, kind core.Kind, to core.Address, value, fee core.Amount, nonce uint64, data []byte) *core.Transaction {
	return &core.Transaction{
		NetworkID: networkID,
		Kind:      kind,
		To:        to,
		Value:     value,
		Fee:       fee,
		Nonce:     nonce,
		Timestamp: 1_700_000_000_000,
		Data:      data,
	}
}
