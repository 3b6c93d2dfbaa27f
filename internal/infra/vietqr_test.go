package infra

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadStructure(t *testing.T) {
	v := NewVietQR("970436", "0123456789", "Garage Desk")
	p := v.Payload(decimal.NewFromInt(195000), "Repair 51H12345")

	assert.True(t, strings.HasPrefix(p, "000201"), "payload format indicator")
	assert.Contains(t, p, "010212", "dynamic point-of-initiation")
	assert.Contains(t, p, "0010A000000727", "NAPAS GUID")
	assert.Contains(t, p, "970436")
	assert.Contains(t, p, "0123456789")
	assert.Contains(t, p, "QRIBFTTA")
	assert.Contains(t, p, "5303704", "VND currency")
	assert.Contains(t, p, "5406195000", "amount field")
	assert.Contains(t, p, "5802VN")
	assert.Contains(t, p, "Repair 51H12345")
}

func TestPayloadCRC(t *testing.T) {
	v := NewVietQR("970436", "0123456789", "Garage Desk")
	p := v.Payload(decimal.NewFromInt(50000), "")

	require.GreaterOrEqual(t, len(p), 8)
	idx := strings.LastIndex(p, "6304")
	require.Equal(t, len(p)-8, idx, "CRC field is last")

	body := p[:idx+4]
	assert.Equal(t, fmt.Sprintf("%04X", crc16(body)), p[idx+4:])
}

func TestPayloadRoundsAmount(t *testing.T) {
	v := NewVietQR("970436", "0123456789", "Garage Desk")
	p := v.Payload(decimal.RequireFromString("100000.49"), "")
	assert.Contains(t, p, "5406100000")
	assert.NotContains(t, p, "100000.49")
}

func TestPayloadOmitsNoteWhenEmpty(t *testing.T) {
	v := NewVietQR("970436", "0123456789", "Garage Desk")
	// Country code runs straight into the CRC, no additional-data field.
	assert.Contains(t, v.Payload(decimal.NewFromInt(1000), ""), "5802VN6304")
}

func TestCRC16KnownVector(t *testing.T) {
	// CRC-16/CCITT-FALSE check value for "123456789".
	assert.Equal(t, uint16(0x29B1), crc16("123456789"))
}

func TestPNGProducesImage(t *testing.T) {
	v := NewVietQR("970436", "0123456789", "Garage Desk")
	png, err := v.PNG(decimal.NewFromInt(1000), "note", 128)
	require.NoError(t, err)
	assert.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
