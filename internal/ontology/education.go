package ontology

import "strings"

// Degree levels recognized by NormalizeDegree.
const (
	DegreeLevelAssociate = "associate"
	DegreeLevelBachelor  = "bachelor"
	DegreeLevelMaster    = "master"
	DegreeLevelPhD       = "phd"
	DegreeLevelUnknown   = "unknown"
)

var universityCanonical = map[string]string{
	// Ivy League
	"harvard": "Harvard University", "harvard university": "Harvard University",
	"yale": "Yale University", "yale university": "Yale University",
	"princeton": "Princeton University", "princeton university": "Princeton University",
	"columbia": "Columbia University", "columbia university": "Columbia University",
	"upenn": "University of Pennsylvania", "penn": "University of Pennsylvania",
	"university of pennsylvania": "University of Pennsylvania",
	"brown":                      "Brown University", "brown university": "Brown University",
	"dartmouth": "Dartmouth College", "dartmouth college": "Dartmouth College",
	"cornell": "Cornell University", "cornell university": "Cornell University",
	// Tech schools
	"mit": "Massachusetts Institute of Technology",
	"massachusetts institute of technology": "Massachusetts Institute of Technology",
	"stanford":                              "Stanford University", "stanford university": "Stanford University",
	"caltech":                            "California Institute of Technology",
	"california institute of technology": "California Institute of Technology",
	"cmu":                                "Carnegie Mellon University", "carnegie mellon": "Carnegie Mellon University",
	"carnegie mellon university": "Carnegie Mellon University",
	"georgia tech":               "Georgia Institute of Technology",
	"georgia institute of technology": "Georgia Institute of Technology",
	// UC system
	"berkeley": "University of California, Berkeley", "uc berkeley": "University of California, Berkeley",
	"ucb":                               "University of California, Berkeley",
	"university of california berkeley": "University of California, Berkeley",
	"university of california, berkeley": "University of California, Berkeley",
	"ucla":           "University of California, Los Angeles",
	"uc los angeles": "University of California, Los Angeles",
	"university of california los angeles":  "University of California, Los Angeles",
	"university of california, los angeles": "University of California, Los Angeles",
	"ucsd": "University of California, San Diego", "uc san diego": "University of California, San Diego",
	"uci": "University of California, Irvine", "uc irvine": "University of California, Irvine",
	"ucdavis": "University of California, Davis", "uc davis": "University of California, Davis",
	// Big Ten
	"umich": "University of Michigan", "university of michigan": "University of Michigan",
	"michigan": "University of Michigan",
	"uiuc":     "University of Illinois Urbana-Champaign",
	"university of illinois": "University of Illinois Urbana-Champaign",
	"illinois":               "University of Illinois Urbana-Champaign",
	"purdue":                 "Purdue University", "purdue university": "Purdue University",
	"wisconsin": "University of Wisconsin-Madison", "uw madison": "University of Wisconsin-Madison",
	"university of wisconsin": "University of Wisconsin-Madison",
	// Other US
	"nyu": "New York University", "new york university": "New York University",
	"duke": "Duke University", "duke university": "Duke University",
	"northwestern": "Northwestern University", "northwestern university": "Northwestern University",
	"uw": "University of Washington", "university of washington": "University of Washington",
	"ut austin": "University of Texas at Austin", "university of texas": "University of Texas at Austin",
	"university of texas at austin": "University of Texas at Austin",
	"usc":                           "University of Southern California",
	"university of southern california": "University of Southern California",
	// International
	"oxford": "University of Oxford", "university of oxford": "University of Oxford",
	"cambridge": "University of Cambridge", "university of cambridge": "University of Cambridge",
	"imperial": "Imperial College London", "imperial college": "Imperial College London",
	"imperial college london": "Imperial College London",
	"eth zurich":              "ETH Zurich", "eth": "ETH Zurich",
	"iit": "Indian Institute of Technology",
	"indian institute of technology": "Indian Institute of Technology",
	"nus":                            "National University of Singapore",
	"national university of singapore": "National University of Singapore",
	"tsinghua":                         "Tsinghua University", "tsinghua university": "Tsinghua University",
	"peking": "Peking University", "peking university": "Peking University",
	"tokyo": "University of Tokyo", "university of tokyo": "University of Tokyo",
}

type degreeEntry struct {
	canonical string
	level     string
}

var degreeCanonical = map[string]degreeEntry{
	// Bachelor's
	"bs": {"Bachelor of Science", DegreeLevelBachelor}, "b.s.": {"Bachelor of Science", DegreeLevelBachelor},
	"b.s": {"Bachelor of Science", DegreeLevelBachelor}, "bsc": {"Bachelor of Science", DegreeLevelBachelor},
	"b.sc.": {"Bachelor of Science", DegreeLevelBachelor}, "b.sc": {"Bachelor of Science", DegreeLevelBachelor},
	"bachelor of science": {"Bachelor of Science", DegreeLevelBachelor},
	"ba":                  {"Bachelor of Arts", DegreeLevelBachelor}, "b.a.": {"Bachelor of Arts", DegreeLevelBachelor},
	"b.a":              {"Bachelor of Arts", DegreeLevelBachelor},
	"bachelor of arts": {"Bachelor of Arts", DegreeLevelBachelor},
	"bba":              {"Bachelor of Business Administration", DegreeLevelBachelor},
	"b.b.a.":           {"Bachelor of Business Administration", DegreeLevelBachelor},
	"bachelor of business administration": {"Bachelor of Business Administration", DegreeLevelBachelor},
	"beng": {"Bachelor of Engineering", DegreeLevelBachelor}, "b.eng.": {"Bachelor of Engineering", DegreeLevelBachelor},
	"b.eng":                   {"Bachelor of Engineering", DegreeLevelBachelor},
	"bachelor of engineering": {"Bachelor of Engineering", DegreeLevelBachelor},
	"btech":                   {"Bachelor of Technology", DegreeLevelBachelor}, "b.tech.": {"Bachelor of Technology", DegreeLevelBachelor},
	"b.tech":                 {"Bachelor of Technology", DegreeLevelBachelor},
	"bachelor of technology": {"Bachelor of Technology", DegreeLevelBachelor},
	"bfa":                    {"Bachelor of Fine Arts", DegreeLevelBachelor}, "b.f.a.": {"Bachelor of Fine Arts", DegreeLevelBachelor},
	"bachelor of fine arts": {"Bachelor of Fine Arts", DegreeLevelBachelor},
	"bachelor's":            {"Bachelor's Degree", DegreeLevelBachelor}, "bachelors": {"Bachelor's Degree", DegreeLevelBachelor},
	"bachelor": {"Bachelor's Degree", DegreeLevelBachelor}, "undergraduate": {"Bachelor's Degree", DegreeLevelBachelor},
	// Master's
	"ms": {"Master of Science", DegreeLevelMaster}, "m.s.": {"Master of Science", DegreeLevelMaster},
	"m.s": {"Master of Science", DegreeLevelMaster}, "msc": {"Master of Science", DegreeLevelMaster},
	"m.sc.": {"Master of Science", DegreeLevelMaster}, "m.sc": {"Master of Science", DegreeLevelMaster},
	"master of science": {"Master of Science", DegreeLevelMaster},
	"ma":                {"Master of Arts", DegreeLevelMaster}, "m.a.": {"Master of Arts", DegreeLevelMaster},
	"m.a":            {"Master of Arts", DegreeLevelMaster},
	"master of arts": {"Master of Arts", DegreeLevelMaster},
	"mba":            {"Master of Business Administration", DegreeLevelMaster},
	"m.b.a.":         {"Master of Business Administration", DegreeLevelMaster},
	"master of business administration": {"Master of Business Administration", DegreeLevelMaster},
	"meng": {"Master of Engineering", DegreeLevelMaster}, "m.eng.": {"Master of Engineering", DegreeLevelMaster},
	"m.eng":                 {"Master of Engineering", DegreeLevelMaster},
	"master of engineering": {"Master of Engineering", DegreeLevelMaster},
	"mtech":                 {"Master of Technology", DegreeLevelMaster}, "m.tech.": {"Master of Technology", DegreeLevelMaster},
	"m.tech":               {"Master of Technology", DegreeLevelMaster},
	"master of technology": {"Master of Technology", DegreeLevelMaster},
	"mfa":                  {"Master of Fine Arts", DegreeLevelMaster}, "m.f.a.": {"Master of Fine Arts", DegreeLevelMaster},
	"master of fine arts":        {"Master of Fine Arts", DegreeLevelMaster},
	"mcs":                        {"Master of Computer Science", DegreeLevelMaster},
	"master of computer science": {"Master of Computer Science", DegreeLevelMaster},
	"master's":                   {"Master's Degree", DegreeLevelMaster}, "masters": {"Master's Degree", DegreeLevelMaster},
	"master": {"Master's Degree", DegreeLevelMaster}, "graduate": {"Master's Degree", DegreeLevelMaster},
	// Doctoral
	"phd": {"Doctor of Philosophy", DegreeLevelPhD}, "ph.d.": {"Doctor of Philosophy", DegreeLevelPhD},
	"ph.d": {"Doctor of Philosophy", DegreeLevelPhD}, "doctorate": {"Doctor of Philosophy", DegreeLevelPhD},
	"doctoral": {"Doctor of Philosophy", DegreeLevelPhD}, "doctor of philosophy": {"Doctor of Philosophy", DegreeLevelPhD},
	"dba": {"Doctor of Business Administration", DegreeLevelPhD}, "d.b.a.": {"Doctor of Business Administration", DegreeLevelPhD},
	"doctor of business administration": {"Doctor of Business Administration", DegreeLevelPhD},
	"md":                                {"Doctor of Medicine", DegreeLevelPhD}, "m.d.": {"Doctor of Medicine", DegreeLevelPhD},
	"doctor of medicine": {"Doctor of Medicine", DegreeLevelPhD},
	"jd":                 {"Juris Doctor", DegreeLevelPhD}, "j.d.": {"Juris Doctor", DegreeLevelPhD},
	"juris doctor": {"Juris Doctor", DegreeLevelPhD},
	// Associate
	"aa": {"Associate of Arts", DegreeLevelAssociate}, "a.a.": {"Associate of Arts", DegreeLevelAssociate},
	"associate of arts": {"Associate of Arts", DegreeLevelAssociate},
	"as":                {"Associate of Science", DegreeLevelAssociate}, "a.s.": {"Associate of Science", DegreeLevelAssociate},
	"associate of science": {"Associate of Science", DegreeLevelAssociate},
	"associate":            {"Associate's Degree", DegreeLevelAssociate}, "associate's": {"Associate's Degree", DegreeLevelAssociate},
	"associates": {"Associate's Degree", DegreeLevelAssociate},
}

// NormalizeUniversity maps a raw university name to its canonical form.
func NormalizeUniversity(name string) string {
	if name == "" {
		return name
	}
	if canonical, ok := universityCanonical[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeDegree maps a raw degree name to (canonical, level). Unmapped
// degrees keep their cleaned name with a keyword-inferred level.
func NormalizeDegree(name string) (canonical, level string) {
	if name == "" {
		return name, DegreeLevelUnknown
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if entry, ok := degreeCanonical[key]; ok {
		return entry.canonical, entry.level
	}

	level = DegreeLevelUnknown
	switch {
	case containsAny(key, "bachelor", "undergraduate", "bs", "ba"):
		level = DegreeLevelBachelor
	case containsAny(key, "master", "graduate", "ms", "ma", "mba"):
		level = DegreeLevelMaster
	case containsAny(key, "doctor", "phd", "ph.d", "doctoral"):
		level = DegreeLevelPhD
	case containsAny(key, "associate"):
		level = DegreeLevelAssociate
	}

	return strings.Join(strings.Fields(name), " "), level
}

// UniversityAliases lists known aliases of a canonical university name.
func UniversityAliases(canonical string) []string {
	var aliases []string
	for alias, c := range universityCanonical {
		if c == canonical && alias != strings.ToLower(canonical) {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}

// DegreeLevel returns the level of a canonical degree name, or "".
func DegreeLevel(canonical string) string {
	for _, entry := range degreeCanonical {
		if entry.canonical == canonical {
			return entry.level
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
