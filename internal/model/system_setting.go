package model

import "time"

// Well-known setting keys.
const (
	SettingShopName    = "shop_name"
	SettingShopAddress = "shop_address"
	SettingShopPhone   = "shop_phone"
)

// SystemSetting is a key/value row for shop-level configuration that admins
// can change at runtime (printed on invoices).
type SystemSetting struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
