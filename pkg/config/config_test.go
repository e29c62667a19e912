package config

import "testing"

func TestExecutorConfigConversion(t *testing.T) {
	var c Config
	c.Network.ID = 7
	c.Network.MinTransactionFee = 1_000_000
	c.Network.MinDelegateBurnAmount = 1_000_000_000_000

	ec := c.ExecutorConfig()
	if ec.NetworkID != 7 {
		t.Fatalf("NetworkID = %d, want 7", ec.NetworkID)
	}
	if uint64(ec.MinTransactionFee) != 1_000_000 {
		t.Fatalf("MinTransactionFee = %v, want 1000000", ec.MinTransactionFee)
	}
	if uint64(ec.MinDelegateBurnAmount) != 1_000_000_000_000 {
		t.Fatalf("MinDelegateBurnAmount = %v, want 1000000000000", ec.MinDelegateBurnAmount)
	}
}
