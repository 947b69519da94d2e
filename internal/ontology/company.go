package ontology

import "strings"

// companySuffixes are legal-entity suffixes stripped before canonical lookup.
var companySuffixes = []string{
	", Inc.", " Inc.", " Inc",
	", LLC", " LLC",
	", Ltd.", " Ltd.", " Ltd",
	", Corp.", " Corp.", " Corp", " Corporation",
	" Company", " Co.", " Co",
	", L.P.", " L.P.", " LP",
	" PLC", " plc",
	" AG", " GmbH",
	" S.A.", " SA",
	" N.V.", " NV",
	" Pty Ltd", " Pvt Ltd", " Private Limited", " Limited",
}

// companyCanonical maps lowercase variants to canonical company names.
var companyCanonical = map[string]string{
	// Tech giants
	"google": "Google", "google inc": "Google",
	"alphabet": "Alphabet", "alphabet inc": "Alphabet",
	"meta": "Meta", "meta platforms": "Meta", "facebook": "Meta", "facebook inc": "Meta",
	"microsoft": "Microsoft", "microsoft corp": "Microsoft", "microsoft corporation": "Microsoft",
	"amazon": "Amazon", "amazon.com": "Amazon",
	"amazon web services": "AWS", "aws": "AWS",
	"apple": "Apple", "apple inc": "Apple",
	"netflix": "Netflix", "netflix inc": "Netflix",
	// Cloud / enterprise
	"salesforce": "Salesforce", "salesforce.com": "Salesforce",
	"oracle": "Oracle", "oracle corporation": "Oracle",
	"ibm": "IBM", "international business machines": "IBM",
	"vmware": "VMware", "vmware inc": "VMware",
	// Social media
	"twitter": "X", "x corp": "X",
	"linkedin": "LinkedIn", "linkedin corporation": "LinkedIn",
	"snap": "Snap", "snap inc": "Snap", "snapchat": "Snap",
	"tiktok": "TikTok", "bytedance": "ByteDance",
	// Fintech
	"stripe": "Stripe", "stripe inc": "Stripe",
	"paypal": "PayPal", "paypal holdings": "PayPal",
	"square": "Block", "block inc": "Block",
	// Rideshare
	"uber": "Uber", "uber technologies": "Uber",
	"lyft": "Lyft", "lyft inc": "Lyft",
	// E-commerce
	"shopify": "Shopify", "shopify inc": "Shopify",
	"ebay": "eBay", "ebay inc": "eBay",
	// Hardware
	"nvidia": "NVIDIA", "nvidia corporation": "NVIDIA",
	"intel": "Intel", "intel corporation": "Intel",
	"amd": "AMD", "advanced micro devices": "AMD",
	"qualcomm": "Qualcomm",
	// Consulting
	"deloitte": "Deloitte",
	"pwc":      "PwC", "pricewaterhousecoopers": "PwC",
	"kpmg":          "KPMG",
	"ernst & young": "EY", "ey": "EY",
	"accenture": "Accenture",
	"mckinsey":  "McKinsey", "mckinsey & company": "McKinsey",
	"boston consulting group": "BCG", "bcg": "BCG",
	"bain": "Bain & Company", "bain & company": "Bain & Company",
}

// NormalizeCompany maps a raw company name to its canonical form, preventing
// duplicates like "Google Inc." vs "Google".
func NormalizeCompany(name string) string {
	if name == "" {
		return name
	}

	normalized := strings.TrimSpace(name)
	for _, suffix := range companySuffixes {
		if strings.HasSuffix(normalized, suffix) ||
			strings.HasSuffix(strings.ToLower(normalized), strings.ToLower(suffix)) {
			normalized = strings.TrimSpace(normalized[:len(normalized)-len(suffix)])
			break
		}
	}

	if canonical, ok := companyCanonical[strings.ToLower(strings.TrimSpace(normalized))]; ok {
		return canonical
	}

	return strings.Join(strings.Fields(normalized), " ")
}

// CompanyAliases lists known aliases of a canonical company name.
func CompanyAliases(canonical string) []string {
	var aliases []string
	for alias, c := range companyCanonical {
		if c == canonical && alias != strings.ToLower(canonical) {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}

// KnownCompany reports whether the name (suffix-stripped) has a canonical entry.
func KnownCompany(name string) bool {
	normalized := strings.TrimSpace(name)
	for _, suffix := range companySuffixes {
		if strings.HasSuffix(strings.ToLower(normalized), strings.ToLower(suffix)) {
			normalized = strings.TrimSpace(normalized[:len(normalized)-len(suffix)])
			break
		}
	}
	_, ok := companyCanonical[strings.ToLower(normalized)]
	return ok
}
