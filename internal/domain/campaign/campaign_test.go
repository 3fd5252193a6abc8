package campaign

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaign(t *testing.T) {
	actor := uuid.New()

	t.Run("valid campaign", func(t *testing.T) {
		c, err := NewCampaign("Q3 Agencies", "Quick question", "Hi {{name}}", actor)
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, c.Status)
		assert.Zero(t, c.SentCount)
		assert.Nil(t, c.SentAt)
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewCampaign("", "s", "b", actor)
		assert.Error(t, err)
	})
}

func TestCampaignCanSend(t *testing.T) {
	actor := uuid.New()
	c, err := NewCampaign("Q3", "s", "b", actor)
	require.NoError(t, err)

	assert.True(t, c.CanSend(), "draft is sendable")

	require.NoError(t, c.RecordBatchSent(1, 0, actor))
	assert.True(t, c.CanSend(), "active is sendable")

	require.NoError(t, c.Pause(actor))
	assert.False(t, c.CanSend(), "paused is not sendable")

	require.NoError(t, c.Resume(actor))
	require.NoError(t, c.Complete(actor))
	assert.False(t, c.CanSend(), "completed is not sendable")
}

func TestCampaignRecordBatchSent(t *testing.T) {
	actor := uuid.New()

	t.Run("first send activates and stamps sent_at", func(t *testing.T) {
		c, err := NewCampaign("Q3", "s", "b", actor)
		require.NoError(t, err)
		c.ClearDomainEvents()

		require.NoError(t, c.RecordBatchSent(3, 1, actor))
		assert.Equal(t, 3, c.SentCount)
		assert.Equal(t, StatusActive, c.Status)
		require.NotNil(t, c.SentAt)

		events := c.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*CampaignBatchSentEvent)
		require.True(t, ok)
		assert.Equal(t, 3, evt.Sent)
		assert.Equal(t, 1, evt.Failed)
	})

	t.Run("sent_at is not overwritten on later sends", func(t *testing.T) {
		c, err := NewCampaign("Q3", "s", "b", actor)
		require.NoError(t, err)

		require.NoError(t, c.RecordBatchSent(2, 0, actor))
		first := *c.SentAt

		require.NoError(t, c.RecordBatchSent(5, 0, actor))
		assert.Equal(t, 7, c.SentCount)
		assert.Equal(t, first, *c.SentAt)
	})

	t.Run("batch with no deliveries does not stamp sent_at", func(t *testing.T) {
		c, err := NewCampaign("Q3", "s", "b", actor)
		require.NoError(t, err)

		require.NoError(t, c.RecordBatchSent(0, 4, actor))
		assert.Equal(t, 0, c.SentCount)
		assert.Equal(t, StatusActive, c.Status)
		assert.Nil(t, c.SentAt)
	})

	t.Run("rejected when not sendable", func(t *testing.T) {
		c, err := NewCampaign("Q3", "s", "b", actor)
		require.NoError(t, err)
		require.NoError(t, c.RecordBatchSent(1, 0, actor))
		require.NoError(t, c.Pause(actor))

		err = c.RecordBatchSent(1, 0, actor)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Draft or Active")
	})
}

func TestCampaignComputeStats(t *testing.T) {
	actor := uuid.New()

	t.Run("zero sends yields zero rates", func(t *testing.T) {
		c, err := NewCampaign("Q3", "s", "b", actor)
		require.NoError(t, err)

		s := c.ComputeStats()
		assert.Zero(t, s.OpenRate)
		assert.Zero(t, s.ReplyRate)
		assert.Zero(t, s.ConversionRate)
	})

	t.Run("rates derived from counters", func(t *testing.T) {
		c, err := NewCampaign("Q3", "s", "b", actor)
		require.NoError(t, err)
		require.NoError(t, c.RecordBatchSent(10, 0, actor))
		c.RecordOpen()
		c.RecordOpen()
		c.RecordReply()
		c.RecordConversion()

		s := c.ComputeStats()
		assert.Equal(t, 10, s.Sent)
		assert.InDelta(t, 0.2, s.OpenRate, 1e-9)
		assert.InDelta(t, 0.1, s.ReplyRate, 1e-9)
		assert.InDelta(t, 0.1, s.ConversionRate, 1e-9)
	})
}

func TestCampaignUpdate(t *testing.T) {
	actor := uuid.New()

	c, err := NewCampaign("Q3", "s", "b", actor)
	require.NoError(t, err)
	require.NoError(t, c.Update("Q3 v2", "new subject", "new body", actor))
	assert.Equal(t, "Q3 v2", c.Name)

	require.NoError(t, c.Complete(actor))
	assert.Error(t, c.Update("Q3 v3", "s", "b", actor))
}
