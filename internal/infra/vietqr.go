package infra

// vietqr.go — VietQR payment code generation.
// Builds an EMVCo merchant-presented QR payload for NAPAS inter-bank transfer
// (QRIBFTTA: transfer to account) and renders it as a PNG via go-qrcode.
// Bank BIN and destination account come from configuration.

import (
	"fmt"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	napasGUID      = "A000000727"
	serviceIBFTTA  = "QRIBFTTA"
	currencyVND    = "704"
	countryVietnam = "VN"
)

// VietQR holds the static destination-account parameters.
type VietQR struct {
	BankCode      string // NAPAS bank BIN, e.g. 970436
	AccountNumber string
	AccountName   string
}

func NewVietQR(bankCode, accountNumber, accountName string) *VietQR {
	return &VietQR{BankCode: bankCode, AccountNumber: accountNumber, AccountName: accountName}
}

// tlv renders one EMVCo tag-length-value field. Lengths are two digits; every
// value in a VietQR payload is well under 100 bytes.
func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// Payload builds the full EMVCo string for a dynamic QR carrying the given
// amount (VND, whole units) and transfer note.
func (v *VietQR) Payload(amount decimal.Decimal, note string) string {
	beneficiary := tlv("00", v.BankCode) + tlv("01", v.AccountNumber)
	merchantAccount := tlv("00", napasGUID) + tlv("01", beneficiary) + tlv("02", serviceIBFTTA)

	p := tlv("00", "01") + // payload format indicator
		tlv("01", "12") + // dynamic QR (one-time payment)
		tlv("38", merchantAccount) +
		tlv("53", currencyVND) +
		tlv("54", amount.Round(0).String()) +
		tlv("58", countryVietnam)
	if note != "" {
		p += tlv("62", tlv("08", note))
	}

	// CRC covers everything up to and including its own tag+length.
	p += "6304"
	return p + fmt.Sprintf("%04X", crc16(p))
}

// PNG encodes the payload for amount/note as a QR PNG of the given size.
func (v *VietQR) PNG(amount decimal.Decimal, note string, size int) ([]byte, error) {
	return qrcode.Encode(v.Payload(amount, note), qrcode.Medium, size)
}

// crc16 implements CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) as required
// by the EMVCo QR spec.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
