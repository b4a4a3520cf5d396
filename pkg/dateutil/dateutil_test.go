package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_IsOnOrBeforeDay(t *testing.T) {
	ref := time.Date(2024, 3, 9, 8, 0, 0, 0, time.Local)

	require.True(t, IsOnOrBeforeDay(time.Date(2024, 3, 9, 23, 0, 0, 0, time.Local), ref))
	require.True(t, IsOnOrBeforeDay(time.Date(2024, 3, 8, 0, 0, 0, 0, time.Local), ref))
	require.False(t, IsOnOrBeforeDay(time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), ref))
}

func Test_DaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 9, 20, 0, 0, 0, time.Local)
	b := time.Date(2024, 3, 12, 1, 0, 0, 0, time.Local)

	require.Equal(t, 3, DaysBetween(a, b))
	require.Equal(t, 3, DaysBetween(b, a))
	require.Equal(t, 0, DaysBetween(a, a.Add(2*time.Hour)))
}

func Test_NextDay(t *testing.T) {
	now := time.Date(2024, 3, 9, 20, 30, 0, 0, time.Local)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), NextDay(now))
}
