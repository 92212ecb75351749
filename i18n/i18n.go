// Package i18n holds the UI string table. Keys and languages are closed
// enumerations and the table covers every pair, so Translate never misses.
package i18n

import "strings"

// Language is a supported UI language.
type Language string

const (
	English    Language = "en"
	Lao        Language = "lo"
	Thai       Language = "th"
	Vietnamese Language = "vi"
)

// DefaultLanguage is used when no language has been chosen.
const DefaultLanguage = English

// Languages lists every supported language.
var Languages = []Language{English, Lao, Thai, Vietnamese}

// ParseLanguage maps a language code to a Language, case-insensitively.
func ParseLanguage(code string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case English:
		return English, true
	case Lao:
		return Lao, true
	case Thai:
		return Thai, true
	case Vietnamese:
		return Vietnamese, true
	}
	return "", false
}

// Key identifies a UI string.
type Key int

const (
	KeyMenu Key = iota
	KeyDashboard
	KeyIntegrations
	KeyInventory
	KeyReservations
	KeyReviews
	KeyTracking
	KeyPOS
	KeyKitchen
	KeyLogin
	KeyAnalytics
	KeyOurMenu
	KeyTable
	KeyCart
	KeyAdd
	KeyAdded
	KeyPlaceOrder
	KeyAvailable
	KeyLimited
	KeyOutOfStock
	KeyPopular
	KeyPending
	KeyReceived
	KeyPreparing
	KeyInKitchen
	KeyReady
	KeyServed
	KeySearch
	KeyFilters
	KeyClearAll
	KeySave
	KeyCancel
	KeyConfirm

	keyCount
)

type entry struct {
	name           string
	en, lo, th, vi string
}

func (e entry) in(lang Language) string {
	switch lang {
	case Lao:
		return e.lo
	case Thai:
		return e.th
	case Vietnamese:
		return e.vi
	case English:
		return e.en
	default:
		return e.name
	}
}

var table = [keyCount]entry{
	KeyMenu:         {"menu", "Menu", "ເມນູ", "เมนู", "Thực đơn"},
	KeyDashboard:    {"dashboard", "Dashboard", "ແດັດບອດ", "แดชบอร์ด", "Bảng điều khiển"},
	KeyIntegrations: {"integrations", "Integrations", "ການເຊື່ອມຕໍ່", "การเชื่อมต่อ", "Tích hợp"},
	KeyInventory:    {"inventory", "Inventory", "ສິນຄ້າ", "สินค้าคงคลัง", "Kho hàng"},
	KeyReservations: {"reservations", "Reservations", "ການຈອງ", "การจอง", "Đặt bàn"},
	KeyReviews:      {"reviews", "Reviews", "ການທົບທວນ", "รีวิว", "Đánh giá"},
	KeyTracking:     {"tracking", "Order Tracking", "ຕິດຕາມຄໍາສັ່ງ", "ติดตามคำสั่ง", "Theo dõi đơn hàng"},
	KeyPOS:          {"pos", "POS", "ຈຸດຂາຍ", "จุดขาย", "Điểm bán hàng"},
	KeyKitchen:      {"kitchen", "Kitchen", "ຄົວ", "ครัว", "Bếp"},
	KeyLogin:        {"login", "Sign in", "ເຂົ້າສູ່ລະບົບ", "เข้าสู่ระบบ", "Đăng nhập"},
	KeyAnalytics:    {"analytics", "Analytics", "ການວິເຄາະ", "การวิเคราะห์", "Phân tích"},
	KeyOurMenu:      {"ourMenu", "Our Menu", "ເມນູຂອງພວກເຮົາ", "เมนูของเรา", "Thực đơn của chúng tôi"},
	KeyTable:        {"table", "Table", "ໂຕະ", "โต๊ะ", "Bàn"},
	KeyCart:         {"cart", "Cart", "ກະຕ່າ", "ตะกร้า", "Giỏ hàng"},
	KeyAdd:          {"add", "Add", "ເພີ່ມ", "เพิ่ม", "Thêm"},
	KeyAdded:        {"added", "Added", "ເພີ່ມແລ້ວ", "เพิ่มแล้ว", "Đã thêm"},
	KeyPlaceOrder:   {"placeOrder", "Place Order", "ສັ່ງອາຫານ", "สั่งอาหาร", "Đặt hàng"},
	KeyAvailable:    {"available", "Available", "ມີຢູ່", "มีอยู่", "Có sẵn"},
	KeyLimited:      {"limited", "Limited", "ຈໍາກັດ", "จำกัด", "Hạn chế"},
	KeyOutOfStock:   {"outOfStock", "Out of Stock", "ໝົດສິນຄ້າ", "หมดสต็อก", "Hết hàng"},
	KeyPopular:      {"popular", "Popular", "ນິຍົມ", "ยอดนิยม", "Phổ biến"},
	KeyPending:      {"pending", "Pending", "ລໍຖ້າ", "รอดำเนินการ", "Đang chờ"},
	KeyReceived:     {"received", "Received", "ຮັບແລ້ວ", "รับแล้ว", "Đã nhận"},
	KeyPreparing:    {"preparing", "Preparing", "ກໍາລັງກະກຽມ", "กำลังเตรียม", "Đang chuẩn bị"},
	KeyInKitchen:    {"in_kitchen", "In Kitchen", "ໃນຄົວ", "ในครัว", "Trong bếp"},
	KeyReady:        {"ready", "Ready", "ພ້ອມແລ້ວ", "พร้อมแล้ว", "Sẵn sàng"},
	KeyServed:       {"served", "Served", "ໄດ້ຮັບໃຊ້", "เสิร์ฟแล้ว", "Đã phục vụ"},
	KeySearch:       {"search", "Search", "ຄົ້ນຫາ", "ค้นหา", "Tìm kiếm"},
	KeyFilters:      {"filters", "Filters", "ຕົວກອງ", "ตัวกรอง", "Bộ lọc"},
	KeyClearAll:     {"clearAll", "Clear all", "ລຶບທັງໝົດ", "ล้างทั้งหมด", "Xóa tất cả"},
	KeySave:         {"save", "Save", "ບັນທຶກ", "บันทึก", "Lưu"},
	KeyCancel:       {"cancel", "Cancel", "ຍົກເລີກ", "ยกเลิก", "Hủy"},
	KeyConfirm:      {"confirm", "Confirm", "ຢືນຢັນ", "ยืนยัน", "Xác nhận"},
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, keyCount)
	for k := Key(0); k < keyCount; k++ {
		m[table[k].name] = k
	}
	return m
}()

// String returns the key's wire name, e.g. "placeOrder".
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return ""
	}
	return table[k].name
}

// Keys returns every key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// ParseKey looks up a key by its wire name.
func ParseKey(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// Translate returns the string for key in lang. Unknown languages and
// missing strings return the key's wire name; an out of range key returns "".
func Translate(key Key, lang Language) string {
	if key < 0 || key >= keyCount {
		return ""
	}
	if s := table[key].in(lang); s != "" {
		return s
	}
	return table[key].name
}

// TranslateString translates a raw key name, returning it unchanged when
// it is not registered.
func TranslateString(name string, lang Language) string {
	k, ok := ParseKey(name)
	if !ok {
		return name
	}
	return Translate(k, lang)
}

// Table returns every key's string in lang, keyed by wire name.
func Table(lang Language) map[string]string {
	out := make(map[string]string, keyCount)
	for k := Key(0); k < keyCount; k++ {
		out[table[k].name] = Translate(k, lang)
	}
	return out
}
