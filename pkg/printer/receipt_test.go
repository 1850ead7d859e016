package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Rp 0"},
		{"500", "Rp 500"},
		{"1000", "Rp 1.000"},
		{"120000", "Rp 120.000"},
		{"1234567.60", "Rp 1.234.568"},
		{"-15000", "-Rp 15.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rupiah(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestReceipt_Columns(t *testing.T) {
	r := NewReceipt(20)
	r.Columns("Table", "Rp 1.000")
	r.Columns("A very long item name here", "Rp 5")

	out := r.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{esc, '@'}))
	assert.Contains(t, string(out), "Table       Rp 1.000\n")
	assert.Contains(t, string(out), "A very long ite Rp 5\n")
}

func TestReceipt_LineTruncatesToWidth(t *testing.T) {
	r := NewReceipt(8)
	r.Line("0123456789")
	assert.Contains(t, string(r.Bytes()), "01234567\n")
	assert.NotContains(t, string(r.Bytes()), "89")
}

func TestNew(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)

	_, err = New(Config{Type: "network"})
	assert.Error(t, err)

	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)

	p, err = New(Config{Type: "network", Address: "127.0.0.1:9100"})
	require.NoError(t, err)
	assert.Equal(t, "network", p.Kind())
}
