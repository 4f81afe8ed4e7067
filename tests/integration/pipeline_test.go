package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/tests/testutil"
)

func TestPipeline_BasicDepositsAndWithdrawals(t *testing.T) {
	input := testutil.CSV(
		"deposit, 1, 1, 1.0",
		"deposit, 2, 2, 2.0",
		"deposit, 1, 3, 2.0",
		"withdrawal, 1, 4, 1.5",
		"withdrawal, 2, 5, 3.0",
	)

	output, stats := testutil.RunPipeline(t, input, 4, domain.DefaultDisputePolicy())

	assert.Equal(t, 2, stats.Clients)
	assert.Equal(t, 5, stats.RecordsRead)
	assert.Equal(t, 4, stats.Applied)
	assert.Equal(t, 1, stats.Rejected) // client 2 overdraws

	rows := testutil.SnapshotRows(t, output)
	assert.Equal(t, "1,1.5000,0.0000,1.5000,false", rows["1"])
	assert.Equal(t, "2,2.0000,0.0000,2.0000,false", rows["2"])
}

func TestPipeline_DisputeResolveRoundTrip(t *testing.T) {
	input := testutil.CSV(
		"deposit, 1, 1, 10.0",
		"deposit, 1, 2, 5.0",
		"dispute, 1, 1,",
		"resolve, 1, 1,",
		"chargeback, 1, 1,", // no-op: already resolved
	)

	output, stats := testutil.RunPipeline(t, input, 1, domain.DefaultDisputePolicy())

	assert.Equal(t, 4, stats.Applied)
	assert.Equal(t, 1, stats.Rejected)

	rows := testutil.SnapshotRows(t, output)
	assert.Equal(t, "1,15.0000,0.0000,15.0000,false", rows["1"])
}

func TestPipeline_ChargebackLocksAccount(t *testing.T) {
	input := testutil.CSV(
		"deposit, 2, 1, 10.0",
		"dispute, 2, 1,",
		"chargeback, 2, 1,",
		"deposit, 2, 2, 100.0", // rejected: locked
	)

	output, _ := testutil.RunPipeline(t, input, 1, domain.DefaultDisputePolicy())

	rows := testutil.SnapshotRows(t, output)
	assert.Equal(t, "2,0.0000,0.0000,0.0000,true", rows["2"])
}

func TestPipeline_MalformedRowsAreSkipped(t *testing.T) {
	input := testutil.CSV(
		"deposit, 1, 1, 10.0",
		"garbage row that is not a transaction, x, y",
		"deposit, 1, 2, not-a-number",
		"withdrawal, 1, 3, 4.0",
	)

	output, stats := testutil.RunPipeline(t, input, 1, domain.DefaultDisputePolicy())

	assert.Equal(t, 2, stats.RecordsRead)
	assert.Equal(t, 2, stats.RecordsRejected)

	rows := testutil.SnapshotRows(t, output)
	assert.Equal(t, "1,6.0000,0.0000,6.0000,false", rows["1"])
}

func TestPipeline_FourDecimalPrecision(t *testing.T) {
	input := testutil.CSV(
		"deposit, 1, 1, 98765.4321",
		"withdrawal, 1, 2, 0.0001",
	)

	output, _ := testutil.RunPipeline(t, input, 1, domain.DefaultDisputePolicy())

	rows := testutil.SnapshotRows(t, output)
	assert.Equal(t, "1,98765.4320,0.0000,98765.4320,false", rows["1"])
}

func TestPipeline_LockedAcceptsDisputesPolicy(t *testing.T) {
	input := testutil.CSV(
		"deposit, 1, 1, 10.0",
		"deposit, 1, 2, 5.0",
		"dispute, 1, 1,",
		"dispute, 1, 2,",
		"chargeback, 1, 1,",
		"resolve, 1, 2,",
	)

	policy := domain.DisputePolicy{LockedAcceptsDisputes: true, WithdrawalDisputes: true}
	output, _ := testutil.RunPipeline(t, input, 1, policy)
	rows := testutil.SnapshotRows(t, output)
	assert.Equal(t, "1,5.0000,0.0000,5.0000,true", rows["1"])

	// default policy: the trailing resolve is rejected
	output, stats := testutil.RunPipeline(t, input, 1, domain.DefaultDisputePolicy())
	rows = testutil.SnapshotRows(t, output)
	assert.Equal(t, "1,0.0000,5.0000,5.0000,true", rows["1"])
	assert.Equal(t, 1, stats.Rejected)
}

func TestPipeline_DeterministicAcrossWorkerCounts(t *testing.T) {
	input := testutil.CSV(
		"deposit, 1, 1, 10.0",
		"deposit, 2, 2, 20.0",
		"deposit, 3, 3, 30.0",
		"deposit, 4, 4, 40.0",
		"withdrawal, 2, 5, 5.0",
		"dispute, 3, 3,",
		"chargeback, 3, 3,",
		"dispute, 1, 1,",
		"resolve, 1, 1,",
	)

	baseline, _ := testutil.RunPipeline(t, input, 1, domain.DefaultDisputePolicy())
	require.NotEmpty(t, baseline)

	for _, workers := range []int{2, 4, 16} {
		for run := 0; run < 5; run++ {
			output, _ := testutil.RunPipeline(t, input, workers, domain.DefaultDisputePolicy())
			require.Equal(t, baseline, output, "workers=%d run=%d", workers, run)
		}
	}
}
