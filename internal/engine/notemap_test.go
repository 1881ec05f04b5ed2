package engine

import (
	"testing"

	"github.com/leandrodaf/midikbd/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperCanonicalRows(t *testing.T) {
	m, err := NewMapper(MustLayout(CanonicalRows), 36)
	require.NoError(t, err)

	cases := map[int]int{
		10: 36, // 1
		21: 47, // =
		24: 48, // q
		35: 59, // ]
		38: 60, // a
		48: 70, // '
		51: 71, // z
		61: 81, // /
	}
	for keycode, want := range cases {
		note, res := m.Note(keycode)
		assert.Equal(t, Mapped, res, "keycode %d", keycode)
		assert.Equal(t, want, note, "keycode %d", keycode)
	}
	assert.Equal(t, 81, m.Highest())
	assert.Equal(t, 46, MustLayout(CanonicalRows).Keys())
}

func TestMapperDeadKeys(t *testing.T) {
	m, err := NewMapper(MustLayout(CanonicalRows), 36)
	require.NoError(t, err)

	for _, keycode := range []int{0, 9, 22, 23, 36, 37, 49, 50, 62, 105, 255} {
		_, res := m.Note(keycode)
		assert.Equal(t, Unmapped, res, "keycode %d", keycode)
	}
}

func TestMapperOutOfRange(t *testing.T) {
	m, err := NewMapper(MustLayout(CanonicalRows), 120)
	require.NoError(t, err)

	note, res := m.Note(17)
	assert.Equal(t, Mapped, res)
	assert.Equal(t, 127, note)

	note, res = m.Note(20)
	assert.Equal(t, OutOfRange, res)
	assert.Equal(t, 130, note)
}

func TestNewMapperRejectsRoot(t *testing.T) {
	for _, root := range []int{-1, 128} {
		_, err := NewMapper(MustLayout(CanonicalRows), root)
		assert.ErrorIs(t, err, contracts.ErrInvalidOption, "root %d", root)
	}
	_, err := NewMapper(MustLayout(CanonicalRows), 127)
	assert.NoError(t, err)
}

func TestNewLayoutValidation(t *testing.T) {
	tests := []struct {
		name string
		rows []contracts.KeyRange
	}{
		{"empty", nil},
		{"negative", []contracts.KeyRange{{First: -1, Last: 3}}},
		{"inverted", []contracts.KeyRange{{First: 10, Last: 5}}},
		{"overlapping", []contracts.KeyRange{{First: 10, Last: 20}, {First: 20, Last: 30}}},
		{"descending", []contracts.KeyRange{{First: 30, Last: 40}, {First: 10, Last: 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout(tt.rows)
			assert.ErrorIs(t, err, contracts.ErrInvalidLayout)
		})
	}
}

func TestLayoutAdjacentRowsHaveNoGap(t *testing.T) {
	l, err := NewLayout([]contracts.KeyRange{{First: 0, Last: 3}, {First: 4, Last: 5}, {First: 10, Last: 10}})
	require.NoError(t, err)

	off, ok := l.Offset(4)
	require.True(t, ok)
	assert.Equal(t, 4, off)

	off, ok = l.Offset(10)
	require.True(t, ok)
	assert.Equal(t, 6, off)

	assert.Equal(t, []contracts.KeyRange{{First: 0, Last: 3}, {First: 4, Last: 5}, {First: 10, Last: 10}}, l.Rows())
}
