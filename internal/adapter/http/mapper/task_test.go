package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktime/internal/core/domain"
)

func TestToTaskItem_DerivesStatusAndDuration(t *testing.T) {
	now := time.Unix(5000, 0).UTC()
	invoiceID := uint64(3)
	balance := 0.0
	deletedAt := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	end := int64(1600)

	item := ToTaskItem(domain.TaskRow{
		PublicID:   "task-1",
		ClientName: "Acme Corp",
		InvoiceID:  &invoiceID,
		Balance:    &balance,
		TimeLog:    domain.TimeLog{{Start: 1000, End: &end}, {Start: 4000}},
		IsDeleted:  true,
		DeletedAt:  &deletedAt,
		CreatedAt:  deletedAt,
	}, now)

	assert.Equal(t, "paid", item.Status)
	assert.Equal(t, int64(600+1000), item.Duration)
	require.NotNil(t, item.DeletedAt)
	assert.Equal(t, "2026-01-02T00:00:00Z", *item.DeletedAt)
}

func TestToTaskDetail_NilTimeLogBecomesEmpty(t *testing.T) {
	detail := ToTaskDetail(domain.Task{PublicID: "task-2"}, time.Now())

	require.NotNil(t, detail.TimeLog)
	assert.Empty(t, detail.TimeLog)
	assert.Zero(t, detail.Duration)
}

func TestToTaskItems_EmptyRowsGiveEmptySlice(t *testing.T) {
	items := ToTaskItems(nil, time.Now())

	require.NotNil(t, items)
	assert.Empty(t, items)
}
