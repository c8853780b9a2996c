package matching

import "strings"

// Controlled vocabularies offered by the report forms.
var (
	Categories = []string{
		"Electronics",
		"Personal Items",
		"Bags & Accessories",
		"Books & Stationery",
		"Clothing",
		"Sports Equipment",
		"Other",
	}

	Colors = []string{
		"Black", "White", "Blue", "Red", "Green", "Yellow", "Grey", "Brown",
		"Pink", "Multi-color", "Other",
	}

	Locations = []string{
		"Main Entrance",
		"IT Building",
		"Library",
		"Old Main Cafeteria",
		"Green Cafeteria",
		"Faculty of Applied Science",
		"Faculty of Communication and Business Studies",
		"Faculty of Siddha Medicine",
		"Play Ground",
		"Sport Complex",
		"Girls Hostel - New Saraswathi",
		"Girls Hostel - Old Saraswathi",
		"Girls Hostel - Marbel",
		"Boys Hostel",
		"Other",
	}
)

// Sentinels a lost-item reporter may pick instead of a real value.
const (
	ColorUnknown    = "Don't Remember"
	LocationUnknown = "Not Sure"
)

// unknownColors and unknownLocations are normalised sentinel spellings.
var unknownColors = map[string]bool{
	"don't remember": true,
	"dont remember":  true,
	"unknown":        true,
	"not sure":       true,
}

var unknownLocations = map[string]bool{
	"not sure": true,
	"unknown":  true,
	"":         true,
}

// colorGroups maps a normalised color to its similarity group.
var colorGroups = map[string]string{
	"black":      "dark",
	"dark grey":  "dark",
	"dark gray":  "dark",
	"charcoal":   "dark",
	"navy":       "dark",
	"blue":       "blue",
	"dark blue":  "blue",
	"light blue": "blue",
	"grey":       "grey",
	"gray":       "grey",
	"silver":     "grey",
	"white":      "light",
	"cream":      "light",
	"beige":      "light",
	"off-white":  "light",
	"red":        "warm",
	"maroon":     "warm",
	"dark red":   "warm",
	"pink":       "warm",
	"brown":      "earth",
	"tan":        "earth",
	"khaki":      "earth",
	"green":      "green",
	"dark green": "green",
	"olive":      "green",
	"yellow":     "yellow",
	"gold":       "yellow",
	"orange":     "yellow",
}

// zoneLocations groups normalised campus locations into zones.
var zoneLocations = map[string][]string{
	"academic": {
		"main entrance",
		"it building",
		"library",
		"faculty of applied science",
		"faculty of communication and business studies",
		"faculty of siddha medicine",
	},
	"dining": {
		"old main cafeteria",
		"green cafeteria",
	},
	"recreation": {
		"play ground",
		"sport complex",
	},
	"residential": {
		"girls hostel - new saraswathi",
		"girls hostel - old saraswathi",
		"girls hostel - marbel",
		"boys hostel",
	},
}

// adjacentLocations lists physically neighbouring locations. Each pair is
// listed once; lookups check both orders.
var adjacentLocations = [][2]string{
	{"library", "it building"},
	{"library", "old main cafeteria"},
	{"main entrance", "old main cafeteria"},
	{"it building", "green cafeteria"},
	{"green cafeteria", "faculty of applied science"},
	{"play ground", "sport complex"},
	{"boys hostel", "sport complex"},
	{"girls hostel - marbel", "play ground"},
	{"girls hostel - new saraswathi", "girls hostel - old saraswathi"},
}

// synonymGroups maps description keywords to a shared group so that
// "mobile" in one report counts as "phone" in another.
var synonymGroups = map[string]string{
	"phone":      "phone",
	"mobile":     "phone",
	"smartphone": "phone",
	"iphone":     "phone",
	"cellphone":  "phone",
	"laptop":     "laptop",
	"notebook":   "laptop",
	"macbook":    "laptop",
	"backpack":   "bag",
	"rucksack":   "bag",
	"handbag":    "bag",
	"satchel":    "bag",
	"wallet":     "wallet",
	"purse":      "wallet",
	"billfold":   "wallet",
	"bottle":     "bottle",
	"flask":      "bottle",
	"tumbler":    "bottle",
	"headphones": "audio",
	"earphones":  "audio",
	"earbuds":    "audio",
	"airpods":    "audio",
	"headset":    "audio",
	"charger":    "charger",
	"adapter":    "charger",
	"cable":      "charger",
	"case":       "cover",
	"cover":      "cover",
	"pouch":      "cover",
	"sleeve":     "cover",
	"scratch":    "damage",
	"scratched":  "damage",
	"scratches":  "damage",
	"dent":       "damage",
	"dented":     "damage",
	"crack":      "damage",
	"cracked":    "damage",
	"damaged":    "damage",
	"keys":       "keys",
	"keychain":   "keys",
	"keyring":    "keys",
	"glasses":    "glasses",
	"spectacles": "glasses",
	"sunglasses": "glasses",
	"jacket":     "jacket",
	"hoodie":     "jacket",
	"sweater":    "jacket",
	"coat":       "jacket",
	"watch":      "watch",
	"smartwatch": "watch",
	"sticker":    "marking",
	"stickers":   "marking",
	"decal":      "marking",
	"logo":       "marking",
	"calculator": "calculator",
	"textbook":   "book",
	"book":       "book",
}

// stopwords are dropped before keyword comparison.
var stopwords = wordSet(`
	the a an and or but in on at to for of with by is was are were has have had
	this that these those from there their it its my your very some been also
	about item which when where while near into just like than then
`)

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
