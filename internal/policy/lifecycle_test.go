package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_LatchesOnFirstTerminal(t *testing.T) {
	l := &Lifecycle{Terminal: "SOLVED"}
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	at := l.Apply("PENDING", "PENDING", nil, t1)
	assert.Nil(t, at)

	at = l.Apply("PENDING", "SOLVED", at, t1)
	require.NotNil(t, at)
	assert.Equal(t, t1, *at)

	// reopening keeps the first resolution time
	at = l.Apply("SOLVED", "IN_PROGRESS", at, t2)
	require.NotNil(t, at)
	assert.Equal(t, t1, *at)

	at = l.Apply("IN_PROGRESS", "SOLVED", at, t3)
	require.NotNil(t, at)
	assert.Equal(t, t1, *at)
}

func TestLifecycle_Idempotent(t *testing.T) {
	l := &Lifecycle{Terminal: "RETURNED"}
	now := time.Now().UTC()

	first := l.Apply("IN_USE", "RETURNED", nil, now)
	second := l.Apply("RETURNED", "RETURNED", first, now.Add(time.Minute))
	assert.Equal(t, first, second)
}

func TestLifecycle_Nil(t *testing.T) {
	var l *Lifecycle
	assert.Nil(t, l.Apply("", "", nil, time.Now()))
}
