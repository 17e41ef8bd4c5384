package singular

// uncountable words are their own singular.
var uncountable = map[string]bool{
	"aircraft":    true,
	"data":        true,
	"deer":        true,
	"equipment":   true,
	"feedback":    true,
	"fish":        true,
	"hardware":    true,
	"information": true,
	"metadata":    true,
	"moose":       true,
	"music":       true,
	"news":        true,
	"offspring":   true,
	"series":      true,
	"sheep":       true,
	"software":    true,
	"species":     true,
}

var irregular = map[string]string{
	"aliases":     "alias",
	"alumni":      "alumnus",
	"analyses":    "analysis",
	"atlases":     "atlas",
	"axes":        "axis",
	"bacteria":    "bacterium",
	"biases":      "bias",
	"cacti":       "cactus",
	"caches":      "cache",
	"calves":      "calf",
	"canvases":    "canvas",
	"children":    "child",
	"cliches":     "cliche",
	"crises":      "crisis",
	"criteria":    "criterion",
	"diagnoses":   "diagnosis",
	"dice":        "die",
	"echoes":      "echo",
	"elves":       "elf",
	"feet":        "foot",
	"fungi":       "fungus",
	"geese":       "goose",
	"halves":      "half",
	"headaches":   "headache",
	"heroes":      "hero",
	"hypotheses":  "hypothesis",
	"indices":     "index",
	"knives":      "knife",
	"leaves":      "leaf",
	"lice":        "louse",
	"lives":       "life",
	"loaves":      "loaf",
	"men":         "man",
	"menus":       "menu",
	"mice":        "mouse",
	"niches":      "niche",
	"oases":       "oasis",
	"oxen":        "ox",
	"parentheses": "parenthesis",
	"people":      "person",
	"phenomena":   "phenomenon",
	"potatoes":    "potato",
	"quizzes":     "quiz",
	"radii":       "radius",
	"selves":      "self",
	"shelves":     "shelf",
	"stimuli":     "stimulus",
	"syllabi":     "syllabus",
	"teeth":       "tooth",
	"theses":      "thesis",
	"thieves":     "thief",
	"tomatoes":    "tomato",
	"vertices":    "vertex",
	"vortices":    "vortex",
	"wives":       "wife",
	"wolves":      "wolf",
	"women":       "woman",
}

// ieExceptions are -ies plurals of nouns ending in -ie.
var ieExceptions = map[string]bool{
	"aunties":     true,
	"beanies":     true,
	"birdies":     true,
	"bogies":      true,
	"brownies":    true,
	"calories":    true,
	"collies":     true,
	"cookies":     true,
	"cowries":     true,
	"dies":        true,
	"eyries":      true,
	"freebies":    true,
	"genies":      true,
	"goalies":     true,
	"hoodies":     true,
	"lies":        true,
	"lingeries":   true,
	"magpies":     true,
	"movies":      true,
	"newbies":     true,
	"pies":        true,
	"pixies":      true,
	"prairies":    true,
	"reveries":    true,
	"rookies":     true,
	"selfies":     true,
	"smoothies":   true,
	"sorties":     true,
	"stymies":     true,
	"talkies":     true,
	"ties":        true,
	"toughies":    true,
	"veggies":     true,
	"walkies":     true,
	"yuppies":     true,
	"zombies":     true,
	"boogies":     true,
	"hippies":     true,
	"kiddies":     true,
	"nighties":    true,
	"quickies":    true,
	"sweeties":    true,
	"budgies":     true,
	"groupies":    true,
	"junkies":     true,
	"oldies":      true,
	"techies":     true,
	"cabbies":     true,
	"baddies":     true,
	"goodies":     true,
	"hotties":     true,
	"indies":      true,
	"stogies":     true,
	"coolies":     true,
	"mounties":    true,
	"sheenies":    true,
	"floozies":    true,
	"pinkies":     true,
	"rotisseries": true,
}

type suffixRule struct {
	suffix string
	repl   string
}

// latin rules, longest suffix first.
var latin = []suffixRule{
	{"ndices", "ndix"},
	{"trices", "trix"},
	{"yses", "ysis"},
	{"eaux", "eau"},
	{"ae", "a"},
}

// singularEndings mark words that are already singular.
var singularEndings = []string{"ss", "us", "is"}

// regular rules, longest suffix first.
var regular = []suffixRule{
	{"sses", "ss"},
	{"shes", "sh"},
	{"ches", "ch"},
	{"zzes", "zz"},
	{"ies", "y"},
	{"xes", "x"},
	{"s", ""},
}
