package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestFeedAllocationUnsetLineReadsZero(t *testing.T) {
	feed := NewFeedAllocation()
	for hour := 1; hour <= HoursPerShift; hour++ {
		assert.Zero(t, feed.Tonnage(Line1, hour))
		assert.Equal(t, FeedComposition{}, feed.Composition(Line2, hour))
	}
	assert.Zero(t, feed.TotalTonnage(Line1))
}

func TestSetTonnageForwardFills(t *testing.T) {
	feed := NewFeedAllocation()
	require.NoError(t, feed.SetTonnage(Line1, 5, 120))

	for hour := 1; hour <= 4; hour++ {
		assert.Zero(t, feed.Tonnage(Line1, hour), "hour %d", hour)
	}
	for hour := 5; hour <= 12; hour++ {
		assert.Equal(t, 120.0, feed.Tonnage(Line1, hour), "hour %d", hour)
	}
	assert.Zero(t, feed.Tonnage(Line2, 6))

	require.NoError(t, feed.SetTonnage(Line1, 8, 90))
	assert.Equal(t, 120.0, feed.Tonnage(Line1, 7))
	assert.Equal(t, 90.0, feed.Tonnage(Line1, 12))

	require.NoError(t, feed.SetTonnage(Line1, 6, 100))
	assert.Equal(t, 120.0, feed.Tonnage(Line1, 5))
	assert.Equal(t, 100.0, feed.Tonnage(Line1, 8), "a write at 6 replaces the later write at 8")
	assert.Equal(t, 120.0+7*100, feed.TotalTonnage(Line1))
}

func TestSetTonnageRejectsInvalidInput(t *testing.T) {
	feed := NewFeedAllocation()
	assert.Error(t, feed.SetTonnage(Line1, 0, 10))
	assert.Error(t, feed.SetTonnage(Line1, 13, 10))
	assert.Error(t, feed.SetTonnage("LINE_9", 1, 10))
	err := feed.SetTonnage(Line1, 1, -5)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSetFeedComponentPropagatesWholeTuple(t *testing.T) {
	feed := NewFeedAllocation()
	require.NoError(t, feed.SetFeedComponent(Line1, 3, 0, FeedComponentUpdate{SourceType: strPtr("stockpile_north"), Percent: floatPtr(60)}))
	require.NoError(t, feed.SetFeedComponent(Line1, 3, 1, FeedComponentUpdate{SourceType: strPtr("stockpile_south"), Percent: floatPtr(40)}))

	assert.Equal(t, FeedComposition{}, feed.Composition(Line1, 2))
	for hour := 3; hour <= 12; hour++ {
		comp := feed.Composition(Line1, hour)
		assert.Equal(t, 60.0, comp[0].Percent)
		assert.Equal(t, "stockpile_south", comp[1].SourceType)
	}

	require.NoError(t, feed.SetFeedComponent(Line1, 7, 0, FeedComponentUpdate{Percent: floatPtr(50)}))
	assert.Equal(t, 60.0, feed.Composition(Line1, 6)[0].Percent)
	assert.Equal(t, 50.0, feed.Composition(Line1, 7)[0].Percent)
	assert.Equal(t, 40.0, feed.Composition(Line1, 12)[1].Percent)
}

func TestSetFeedComponentRejectsSumAbove100(t *testing.T) {
	feed := NewFeedAllocation()
	require.NoError(t, feed.SetFeedComponent(Line1, 1, 0, FeedComponentUpdate{SourceType: strPtr("a"), Percent: floatPtr(70)}))
	require.NoError(t, feed.SetFeedComponent(Line1, 1, 1, FeedComponentUpdate{SourceType: strPtr("b"), Percent: floatPtr(30)}))

	err := feed.SetFeedComponent(Line1, 1, 1, FeedComponentUpdate{Percent: floatPtr(31)})
	require.Error(t, err)
	assert.Equal(t, 30.0, feed.Composition(Line1, 1)[1].Percent, "rejected update leaves state unchanged")

	err = feed.SetFeedComponent(Line1, 4, 0, FeedComponentUpdate{Percent: floatPtr(80)})
	require.Error(t, err)
	assert.Equal(t, 70.0, feed.Composition(Line1, 4)[0].Percent)
}

func TestSetFeedComponentFirstAt100ClearsSecond(t *testing.T) {
	feed := NewFeedAllocation()
	require.NoError(t, feed.SetFeedComponent(Line2, 2, 0, FeedComponentUpdate{SourceType: strPtr("a"), Percent: floatPtr(50)}))
	require.NoError(t, feed.SetFeedComponent(Line2, 2, 1, FeedComponentUpdate{SourceType: strPtr("b"), Percent: floatPtr(50)}))

	require.NoError(t, feed.SetFeedComponent(Line2, 2, 0, FeedComponentUpdate{Percent: floatPtr(100)}))
	comp := feed.Composition(Line2, 2)
	assert.Equal(t, 100.0, comp[0].Percent)
	assert.True(t, comp[1].Empty())

	err := feed.SetFeedComponent(Line2, 2, 1, FeedComponentUpdate{Percent: floatPtr(10)})
	require.Error(t, err)

	err = feed.SetFeedComponent(Line2, 2, 1, FeedComponentUpdate{SourceType: strPtr("b")})
	require.Error(t, err)
	assert.True(t, feed.Composition(Line2, 2)[1].Empty())
	assert.True(t, feed.Composition(Line2, 5)[1].Empty())
}

func TestSecondComponentRequiresPartialFirst(t *testing.T) {
	feed := NewFeedAllocation()
	err := feed.SetFeedComponent(Line1, 1, 1, FeedComponentUpdate{SourceType: strPtr("b"), Percent: floatPtr(20)})
	require.Error(t, err)
	err = feed.SetFeedComponent(Line1, 1, 1, FeedComponentUpdate{SourceType: strPtr("b")})
	require.Error(t, err)
	assert.Equal(t, FeedComposition{}, feed.Composition(Line1, 1))
}

func TestFeedPairInvariantHoldsForAnySequence(t *testing.T) {
	feed := NewFeedAllocation()
	values := []float64{0, 10, 35, 50, 65, 90, 100}
	for _, p1 := range values {
		for _, p2 := range values {
			_ = feed.SetFeedComponent(Line1, 1, 0, FeedComponentUpdate{Percent: floatPtr(p1)})
			_ = feed.SetFeedComponent(Line1, 1, 1, FeedComponentUpdate{Percent: floatPtr(p2)})
			comp := feed.Composition(Line1, 1)
			assert.LessOrEqual(t, comp.Sum(), 100.0)
			if comp[0].Percent == 100 {
				assert.Zero(t, comp[1].Percent)
			}
		}
	}
}

func TestTonnageAndCompositionAreIndependent(t *testing.T) {
	feed := NewFeedAllocation()
	require.NoError(t, feed.SetTonnage(Line1, 2, 150))
	require.NoError(t, feed.SetFeedComponent(Line1, 4, 0, FeedComponentUpdate{SourceType: strPtr("a"), Percent: floatPtr(100)}))
	require.NoError(t, feed.SetTonnage(Line1, 6, 80))

	assert.Equal(t, 100.0, feed.Composition(Line1, 6)[0].Percent)
	assert.Equal(t, 150.0, feed.Tonnage(Line1, 4))
	assert.Equal(t, 80.0, feed.Tonnage(Line1, 9))
}

func TestFeedAllocationJSONRoundTrip(t *testing.T) {
	feed := NewFeedAllocation()
	require.NoError(t, feed.SetTonnage(Line1, 3, 110))
	require.NoError(t, feed.SetFeedComponent(Line2, 5, 0, FeedComponentUpdate{SourceType: strPtr("a"), Percent: floatPtr(40)}))

	raw, err := json.Marshal(feed)
	require.NoError(t, err)

	restored := NewFeedAllocation()
	require.NoError(t, json.Unmarshal(raw, restored))
	assert.Equal(t, 110.0, restored.Tonnage(Line1, 12))
	assert.Equal(t, 40.0, restored.Composition(Line2, 9)[0].Percent)

	clone := feed.Clone()
	require.NoError(t, clone.SetTonnage(Line1, 1, 5))
	assert.Zero(t, feed.Tonnage(Line1, 1))
}

func TestSlotsUseShiftHourLabels(t *testing.T) {
	feed := NewFeedAllocation()
	day := feed.Slots(Line1, RotationDay1)
	require.Len(t, day, HoursPerShift)
	assert.Equal(t, "07:00", day[0].Label)
	assert.Equal(t, "18:00", day[11].Label)

	night := feed.Slots(Line1, RotationNight2)
	assert.Equal(t, "19:00", night[0].Label)
	assert.Equal(t, "00:00", night[5].Label)
	assert.Equal(t, "06:00", night[11].Label)
}
