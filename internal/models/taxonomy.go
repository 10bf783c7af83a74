package models

// Category is the top-level ledger classification. Values are the labels the
// ledger files have always stored.
type Category string

const (
	CategoryFood          Category = "飲食"
	CategoryClothing      Category = "衣著"
	CategoryDaily         Category = "日常"
	CategoryTransport     Category = "交通"
	CategoryEducation     Category = "教育"
	CategoryEntertainment Category = "娛樂"
	CategoryMedical       Category = "醫療"
	CategoryIncome        Category = "收入"
	CategoryOther         Category = "其他"
)

// Categories lists the fixed category set in display order.
var Categories = []Category{
	CategoryFood, CategoryClothing, CategoryDaily, CategoryTransport,
	CategoryEducation, CategoryEntertainment, CategoryMedical,
	CategoryIncome,
	CategoryOther,
}

// Subcategories suggests subcategories for each category. It is a UI hint;
// imported rows may carry any subcategory text.
var Subcategories = map[Category][]string{
	CategoryFood:     {"早餐", "午餐", "晚餐", "零食飲料", "食材原料"},
	CategoryClothing: {"服飾鞋包"},
	CategoryDaily: {
		"水費", "電費", "房租", "電話費",
		"日用消耗", "居家百貨", "美妝保養", "電子數位",
		"保險", "股票", "稅務",
	},
	CategoryTransport:     {"加油", "保養維修", "停車費", "過路費", "公共交通", "叫車"},
	CategoryEducation:     {"學雜費", "文具用品"},
	CategoryEntertainment: {"旅遊", "聚會娛樂", "運動健身", "人情世故"},
	CategoryMedical:       {"醫藥費", "藥品"},
	CategoryIncome:        {"薪資", "獎金"},
	CategoryOther:         {"其他"},
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// SubcategoriesFor returns the suggested subcategories for c, falling back to
// the Other list for unknown categories.
func SubcategoriesFor(c Category) []string {
	if subs, ok := Subcategories[c]; ok {
		return subs
	}
	return Subcategories[CategoryOther]
}

// PaymentMethod is how a transaction was paid.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "現金"
	PaymentCard       PaymentMethod = "魔法小卡"
	PaymentBigBrother PaymentMethod = "大哥"
)

// PaymentMethods lists the fixed payment methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentBigBrother}

// IsValid reports whether p is one of the fixed payment methods.
func (p PaymentMethod) IsValid() bool {
	for _, known := range PaymentMethods {
		if p == known {
			return true
		}
	}
	return false
}

// DefaultCurrency is the base currency, used when a record or imported row
// carries no currency.
const DefaultCurrency = "TWD"

// OtherCurrency is the catch-all currency option.
const OtherCurrency = "其他"

// Currencies lists the selectable currency codes.
var Currencies = []string{DefaultCurrency, "USD", "JPY", "EUR", OtherCurrency}

// IsKnownCurrency reports whether code is a selectable currency.
func IsKnownCurrency(code string) bool {
	for _, known := range Currencies {
		if code == known {
			return true
		}
	}
	return false
}

// EntryKind says whether a new transaction's amount is income or expense.
type EntryKind string

const (
	EntryKindExpense EntryKind = "expense"
	EntryKindIncome  EntryKind = "income"
)

// AssetStatus is the service state of a fixed asset.
type AssetStatus string

const (
	AssetStatusInService AssetStatus = "服役中"
	AssetStatusRetired   AssetStatus = "已除役"
)

// AssetStatuses lists the asset states in display order.
var AssetStatuses = []AssetStatus{AssetStatusInService, AssetStatusRetired}

// IsValid reports whether s is a known asset status.
func (s AssetStatus) IsValid() bool {
	return s == AssetStatusInService || s == AssetStatusRetired
}

// weekdayLabels is indexed by time.Weekday (Sunday first).
var weekdayLabels = [7]string{"日", "一", "二", "三", "四", "五", "六"}

// WeekdayLabels lists the weekday labels Monday first, as shown to users.
var WeekdayLabels = []string{"一", "二", "三", "四", "五", "六", "日"}

// WeekdayLabel returns the weekday label for d, or "" for an unset date.
func WeekdayLabel(d Date) string {
	if d.IsZero() {
		return ""
	}
	return weekdayLabels[d.Weekday()]
}
