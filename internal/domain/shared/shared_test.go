package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(1895, time.December, 28)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1895-12-28"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestDate_UnmarshalRejectsBadInput(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"28.12.1895"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`18951228`), &d))
}

func TestDate_NullLeavesPointerNil(t *testing.T) {
	var body struct {
		Birthday *Date `json:"birthday"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"birthday":null}`), &body))
	assert.Nil(t, body.Birthday)
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2024, time.March, 5, 23, 59, 0, 0, time.Local))
	assert.Equal(t, "2024-03-05", d.String())
}

func TestIDSet_AddRemove(t *testing.T) {
	s := NewIDSet()

	assert.True(t, s.Add(3))
	assert.False(t, s.Add(3))
	assert.True(t, s.Contains(3))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Remove(3))
	assert.False(t, s.Remove(3))
	assert.Equal(t, 0, s.Len())
}

func TestIDSet_IntersectAndSorted(t *testing.T) {
	a := NewIDSet(5, 1, 3, 7)
	b := NewIDSet(7, 3, 9)

	assert.Equal(t, []int64{3, 7}, a.Intersect(b).Sorted())
	assert.Empty(t, a.Intersect(NewIDSet()).Sorted())
}

func TestIDSet_CloneIsIndependent(t *testing.T) {
	s := NewIDSet(1, 2)
	c := s.Clone()
	c.Add(3)

	assert.False(t, s.Contains(3))

	var nilSet IDSet
	assert.NotNil(t, nilSet.Clone())
}

func TestIDSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewIDSet(9, 2, 4))
	require.NoError(t, err)
	assert.Equal(t, `[2,4,9]`, string(data))

	var nilSet IDSet
	data, err = json.Marshal(nilSet)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	var decoded IDSet
	require.NoError(t, json.Unmarshal([]byte(`[4,4,1]`), &decoded))
	assert.Equal(t, []int64{1, 4}, decoded.Sorted())
}

func TestErrorKinds(t *testing.T) {
	v := NewValidationError("name", "name must not be blank")
	n := NewNotFoundError("film", 42)

	assert.True(t, IsValidation(v))
	assert.False(t, IsNotFound(v))
	assert.True(t, IsNotFound(n))
	assert.Equal(t, "film with id 42 not found", n.Error())

	wrapped := fmt.Errorf("failed to add like: %w", n)
	assert.True(t, IsNotFound(wrapped))

	var target *NotFoundError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, int64(42), target.ID)
}
