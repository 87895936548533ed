package resolve

import "github.com/pil1/IngridProduction-sub001/internal/domain"

// aliasEntry maps a canonical name to the shorthand forms people type.
// Keys and values are stored pre-normalized (lowercase, alphanumeric).
type aliasEntry struct {
	canonical string
	aliases   []string
}

// categoryAliases covers the common expense-category shorthands.
var categoryAliases = []aliasEntry{
	{"technology", []string{"tech", "it", "software", "saas", "computing"}},
	{"travel", []string{"trip", "flight", "flights", "airfare", "hotel", "lodging"}},
	{"meals and entertainment", []string{"meals", "food", "dining", "restaurant", "entertainment"}},
	{"office supplies", []string{"supplies", "stationery", "office"}},
	{"utilities", []string{"utility", "power", "electricity", "hydro", "water", "internet"}},
	{"professional services", []string{"consulting", "legal", "accounting", "professional"}},
	{"marketing", []string{"advertising", "ads", "promo", "promotion"}},
	{"telecommunications", []string{"telecom", "phone", "mobile", "cellular"}},
	{"vehicle", []string{"fuel", "gas", "gasoline", "parking", "mileage", "auto"}},
	{"insurance", []string{"premium", "coverage"}},
}

// vendorAliases covers tickers and common abbreviations of large vendors.
var vendorAliases = []aliasEntry{
	{"microsoft", []string{"msft", "ms", "azure", "msft azure"}},
	{"amazon", []string{"amzn", "aws", "amazon web services"}},
	{"google", []string{"goog", "googl", "gcp", "alphabet"}},
	{"apple", []string{"aapl"}},
	{"international business machines", []string{"ibm"}},
	{"federal express", []string{"fedex"}},
	{"united parcel service", []string{"ups"}},
	{"salesforce", []string{"crm", "sfdc"}},
	{"adobe", []string{"adbe"}},
	{"oracle", []string{"orcl"}},
}

// aliasTable returns the static table for a resolver kind.
func aliasTable(kind domain.EntityKind) []aliasEntry {
	if kind == domain.EntityKindVendor {
		return vendorAliases
	}
	return categoryAliases
}
