package quiz

// Country is one selectable answer: a display name and its ISO 3166-1 alpha-2
// code (which also keys the flag asset).
type Country struct {
	Name string
	Code string
}

var EuropeanCountries = []Country{
	{"Albania", "AL"}, {"Andorra", "AD"}, {"Austria", "AT"}, {"Belarus", "BY"},
	{"Belgium", "BE"}, {"Bosnia and Herzegovina", "BA"}, {"Bulgaria", "BG"},
	{"Croatia", "HR"}, {"Cyprus", "CY"}, {"Czechia", "CZ"}, {"Denmark", "DK"},
	{"Estonia", "EE"}, {"Finland", "FI"}, {"France", "FR"}, {"Germany", "DE"},
	{"Greece", "GR"}, {"Hungary", "HU"}, {"Iceland", "IS"}, {"Ireland", "IE"},
	{"Italy", "IT"}, {"Latvia", "LV"}, {"Liechtenstein", "LI"}, {"Lithuania", "LT"},
	{"Luxembourg", "LU"}, {"Malta", "MT"}, {"Moldova", "MD"}, {"Monaco", "MC"},
	{"Montenegro", "ME"}, {"Netherlands", "NL"}, {"North Macedonia", "MK"},
	{"Norway", "NO"}, {"Poland", "PL"}, {"Portugal", "PT"}, {"Romania", "RO"},
	{"San Marino", "SM"}, {"Serbia", "RS"}, {"Slovakia", "SK"}, {"Slovenia", "SI"},
	{"Spain", "ES"}, {"Sweden", "SE"}, {"Switzerland", "CH"}, {"Ukraine", "UA"},
	{"United Kingdom", "GB"},
}

var AsianCountries = []Country{
	{"Afghanistan", "AF"}, {"Armenia", "AM"}, {"Azerbaijan", "AZ"}, {"Bangladesh", "BD"},
	{"Bhutan", "BT"}, {"Cambodia", "KH"}, {"China", "CN"}, {"Georgia", "GE"},
	{"India", "IN"}, {"Indonesia", "ID"}, {"Iran", "IR"}, {"Iraq", "IQ"},
	{"Israel", "IL"}, {"Japan", "JP"}, {"Jordan", "JO"}, {"Kazakhstan", "KZ"},
	{"Kuwait", "KW"}, {"Kyrgyzstan", "KG"}, {"Laos", "LA"}, {"Lebanon", "LB"},
	{"Malaysia", "MY"}, {"Mongolia", "MN"}, {"Myanmar", "MM"}, {"Nepal", "NP"},
	{"North Korea", "KP"}, {"Oman", "OM"}, {"Pakistan", "PK"}, {"Philippines", "PH"},
	{"Qatar", "QA"}, {"Saudi Arabia", "SA"}, {"Singapore", "SG"}, {"South Korea", "KR"},
	{"Sri Lanka", "LK"}, {"Syria", "SY"}, {"Taiwan", "TW"}, {"Tajikistan", "TJ"},
	{"Thailand", "TH"}, {"Turkey", "TR"}, {"Turkmenistan", "TM"},
	{"United Arab Emirates", "AE"}, {"Uzbekistan", "UZ"}, {"Vietnam", "VN"},
	{"Yemen", "YE"},
}

var AfricanCountries = []Country{
	{"Algeria", "DZ"}, {"Angola", "AO"}, {"Benin", "BJ"}, {"Botswana", "BW"},
	{"Burkina Faso", "BF"}, {"Cameroon", "CM"}, {"Chad", "TD"},
	{"Democratic Republic of the Congo", "CD"}, {"Egypt", "EG"}, {"Ethiopia", "ET"},
	{"Gabon", "GA"}, {"Ghana", "GH"}, {"Guinea", "GN"}, {"Ivory Coast", "CI"},
	{"Kenya", "KE"}, {"Libya", "LY"}, {"Madagascar", "MG"}, {"Malawi", "MW"},
	{"Mali", "ML"}, {"Mauritania", "MR"}, {"Morocco", "MA"}, {"Mozambique", "MZ"},
	{"Namibia", "NA"}, {"Niger", "NE"}, {"Nigeria", "NG"}, {"Rwanda", "RW"},
	{"Senegal", "SN"}, {"Sierra Leone", "SL"}, {"Somalia", "SO"},
	{"South Africa", "ZA"}, {"South Sudan", "SS"}, {"Sudan", "SD"},
	{"Tanzania", "TZ"}, {"Togo", "TG"}, {"Tunisia", "TN"}, {"Uganda", "UG"},
	{"Zambia", "ZM"}, {"Zimbabwe", "ZW"},
}

var AmericanCountries = []Country{
	{"Argentina", "AR"}, {"Belize", "BZ"}, {"Bolivia", "BO"}, {"Brazil", "BR"},
	{"Canada", "CA"}, {"Chile", "CL"}, {"Colombia", "CO"}, {"Costa Rica", "CR"},
	{"Ecuador", "EC"}, {"El Salvador", "SV"}, {"Guatemala", "GT"}, {"Guyana", "GY"},
	{"Honduras", "HN"}, {"Mexico", "MX"}, {"Nicaragua", "NI"}, {"Panama", "PA"},
	{"Paraguay", "PY"}, {"Peru", "PE"}, {"Suriname", "SR"},
	{"United States", "US"}, {"Uruguay", "UY"}, {"Venezuela", "VE"},
}

var OceaniaCountries = []Country{
	{"Australia", "AU"}, {"Fiji", "FJ"}, {"Kiribati", "KI"},
	{"Marshall Islands", "MH"}, {"Micronesia", "FM"}, {"Nauru", "NR"},
	{"New Zealand", "NZ"}, {"Palau", "PW"}, {"Papua New Guinea", "PG"},
	{"Samoa", "WS"}, {"Solomon Islands", "SB"}, {"Tonga", "TO"},
	{"Tuvalu", "TV"}, {"Vanuatu", "VU"},
}

var CaribbeanCountries = []Country{
	{"Antigua and Barbuda", "AG"}, {"Bahamas", "BS"}, {"Barbados", "BB"},
	{"Cuba", "CU"}, {"Dominica", "DM"}, {"Dominican Republic", "DO"},
	{"Grenada", "GD"}, {"Haiti", "HT"}, {"Jamaica", "JM"},
	{"Saint Kitts and Nevis", "KN"}, {"Saint Lucia", "LC"},
	{"Saint Vincent and the Grenadines", "VC"}, {"Trinidad and Tobago", "TT"},
}

var PopulousCountries = []Country{
	{"Bangladesh", "BD"}, {"Brazil", "BR"}, {"China", "CN"},
	{"Democratic Republic of the Congo", "CD"}, {"Egypt", "EG"},
	{"Ethiopia", "ET"}, {"India", "IN"}, {"Indonesia", "ID"}, {"Iran", "IR"},
	{"Japan", "JP"}, {"Mexico", "MX"}, {"Nigeria", "NG"}, {"Pakistan", "PK"},
	{"Philippines", "PH"}, {"Russia", "RU"}, {"Turkey", "TR"},
	{"United States", "US"}, {"Vietnam", "VN"},
}

// AllWorldCountries is the Sunday world-mix pool.
var AllWorldCountries = concat(
	EuropeanCountries,
	AsianCountries,
	AfricanCountries,
	AmericanCountries,
	OceaniaCountries,
	CaribbeanCountries,
)

func concat(pools ...[]Country) []Country {
	var all []Country
	for _, p := range pools {
		all = append(all, p...)
	}
	return all
}
