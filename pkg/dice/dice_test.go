package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		notation string
		count    int
		size     int
		modifier int
	}{
		{"1d20", 1, 20, 0},
		{"2d6+3", 2, 6, 3},
		{"1d4-1", 1, 4, -1},
		{"10d8+12", 10, 8, 12},
		{"1d20 + 5", 1, 20, 5}, // spaces are tolerated
	}

	for _, tc := range tests {
		count, size, modifier, err := Parse(tc.notation)
		require.NoError(t, err, tc.notation)
		assert.Equal(t, tc.count, count, tc.notation)
		assert.Equal(t, tc.size, size, tc.notation)
		assert.Equal(t, tc.modifier, modifier, tc.notation)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, notation := range []string{"", "d20", "2d", "1x20", "0d6", "1d0", "-1d6", "1d6+"} {
		_, _, _, err := Parse(notation)
		assert.Error(t, err, notation)
	}
}

func TestNew_BoundsAndTotal(t *testing.T) {
	for i := 0; i < 100; i++ {
		roll, err := New("2d6+3")
		require.NoError(t, err)
		require.Len(t, roll.Rolls, 2)

		sum := 0
		for _, r := range roll.Rolls {
			assert.GreaterOrEqual(t, r, 1)
			assert.LessOrEqual(t, r, 6)
			sum += r
		}
		assert.Equal(t, sum+3, roll.Total)
	}
}

func TestNew_InvalidNotation(t *testing.T) {
	_, err := New("banana")
	assert.Error(t, err)
}

func TestRollString(t *testing.T) {
	tests := []struct {
		roll Roll
		want string
	}{
		{Roll{Rolls: []int{4, 2}, Modifier: 3, Total: 9}, "Rolled [4 2] (sum: 6) + 3 = 9"},
		{Roll{Rolls: []int{17}, Modifier: 0, Total: 17}, "Rolled 17 = 17"},
		{Roll{Rolls: []int{3}, Modifier: -1, Total: 2}, "Rolled 3 - 1 = 2"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.roll.String())
	}
}
