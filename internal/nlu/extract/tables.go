// internal/nlu/extract/tables.go
package extract

// locationGazetteer maps lowercase aliases to canonical city names.
// Lookup picks the longest alias present in the utterance.
var locationGazetteer = map[string]string{
	// Texas
	"lubbock":         "Lubbock",
	"houston":         "Houston",
	"dallas":          "Dallas",
	"austin":          "Austin",
	"san antonio":     "San Antonio",
	"fort worth":      "Fort Worth",
	"el paso":         "El Paso",
	"arlington":       "Arlington",
	"corpus christi":  "Corpus Christi",
	"plano":           "Plano",
	"irving":          "Irving",
	"garland":         "Garland",
	"laredo":          "Laredo",
	"amarillo":        "Amarillo",
	"waco":            "Waco",
	"midland":         "Midland",
	"abilene":         "Abilene",
	"round rock":      "Round Rock",
	"college station": "College Station",
	"tyler":           "Tyler",
	"denton":          "Denton",
	"sugar land":      "Sugar Land",
	"new braunfels":   "New Braunfels",
	"the woodlands":   "The Woodlands",

	// major US cities and common aliases
	"new york":      "New York",
	"new york city": "New York",
	"nyc":           "New York",
	"los angeles":   "Los Angeles",
	"la":            "Los Angeles",
	"chicago":       "Chicago",
	"boston":        "Boston",
	"miami":         "Miami",
	"seattle":       "Seattle",
	"denver":        "Denver",
	"atlanta":       "Atlanta",
	"philadelphia":  "Philadelphia",
	"philly":        "Philadelphia",
	"phoenix":       "Phoenix",
	"san diego":     "San Diego",
	"san francisco": "San Francisco",
	"san jose":      "San Jose",
	"columbus":      "Columbus",
	"charlotte":     "Charlotte",
	"indianapolis":  "Indianapolis",
	"nashville":     "Nashville",
	"detroit":       "Detroit",
	"portland":      "Portland",
	"memphis":       "Memphis",
	"oklahoma city": "Oklahoma City",
	"las vegas":     "Las Vegas",
	"baltimore":     "Baltimore",
	"milwaukee":     "Milwaukee",
	"albuquerque":   "Albuquerque",
	"sacramento":    "Sacramento",
	"kansas city":   "Kansas City",
	"minneapolis":   "Minneapolis",
	"cleveland":     "Cleveland",
	"tulsa":         "Tulsa",
	"wichita":       "Wichita",
}

// procedureRule maps trigger phrases to a canonical procedure name.
// Rules are checked in order; a message can match several rules.
type procedureRule struct {
	phrases   []string
	canonical string
}

var procedureRules = []procedureRule{
	{[]string{"ecg", "ekg", "electrocardiogram"}, "ECG"},
	{[]string{"mri", "magnetic resonance imaging", "magnetic resonance"}, "MRI"},
	{[]string{"ct scan", "cat scan", "computed tomography"}, "CT scan"},
	{[]string{"x-ray", "xray", "radiograph"}, "X-ray"},
	{[]string{"blood test", "blood tests", "blood work", "lab work", "laboratory"}, "Blood tests"},
	{[]string{"ultrasound", "sonogram", "sonography"}, "Ultrasound"},
	{[]string{"physical exam", "physical examination", "checkup"}, "Physical examination"},
	{[]string{"stress test", "cardiac stress"}, "Stress test"},
	{[]string{"colonoscopy", "colon screening"}, "Colonoscopy"},
	{[]string{"mammogram", "mammography", "breast exam"}, "Mammography"},
	{[]string{"endoscopy", "scope"}, "Endoscopy"},
	{[]string{"bone density", "dexa scan"}, "Bone density scan"},
	{[]string{"allergy test", "allergy testing"}, "Allergy testing"},
	{[]string{"sleep study", "sleep test"}, "Sleep study"},
}

// carrierRule maps trigger phrases to a canonical insurance carrier name.
type carrierRule struct {
	phrases   []string
	canonical string
}

var carrierRules = []carrierRule{
	{[]string{"aetna"}, "Aetna"},
	{[]string{"blue cross blue shield", "blue cross", "blue shield", "bcbs"}, "Blue Cross Blue Shield"},
	{[]string{"cigna"}, "Cigna"},
	{[]string{"unitedhealthcare", "unitedhealth", "united health", "united"}, "UnitedHealth"},
	{[]string{"humana"}, "Humana"},
	{[]string{"kaiser"}, "Kaiser"},
	{[]string{"medicare"}, "Medicare"},
	{[]string{"medicaid"}, "Medicaid"},
	{[]string{"anthem"}, "Anthem"},
}

// symptomPhrases is the closed list of recognized symptom mentions.
var symptomPhrases = []string{
	"chest pain",
	"heart pain",
	"headache",
	"back pain",
	"stomach pain",
	"abdominal pain",
	"joint pain",
	"muscle pain",
	"shortness of breath",
	"difficulty breathing",
	"dizziness",
	"nausea",
	"vomiting",
	"fever",
	"cough",
	"sore throat",
	"fatigue",
	"weakness",
}
