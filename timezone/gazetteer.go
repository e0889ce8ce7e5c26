package timezone

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// City is one gazetteer entry.
type City struct {
	Name    string
	Country string // ISO 3166-1 alpha-2
	Lat     float64
	Lon     float64
	Zone    string
	Aliases []string
}

// Country is one gazetteer country. Zone is empty when the country spans
// several zones and a city is needed to pick one.
type Country struct {
	Code    string
	Name    string
	Zone    string
	Aliases []string
}

// Cities are listed in priority order: when a bare city name matches several
// entries the first one wins.
var cities = []City{
	// China and neighbours
	{Name: "Beijing", Country: "CN", Lat: 39.90, Lon: 116.41, Zone: "Asia/Shanghai", Aliases: []string{"peking", "北京"}},
	{Name: "Shanghai", Country: "CN", Lat: 31.23, Lon: 121.47, Zone: "Asia/Shanghai", Aliases: []string{"上海"}},
	{Name: "Guangzhou", Country: "CN", Lat: 23.13, Lon: 113.26, Zone: "Asia/Shanghai", Aliases: []string{"canton", "广州"}},
	{Name: "Shenzhen", Country: "CN", Lat: 22.54, Lon: 114.06, Zone: "Asia/Shanghai", Aliases: []string{"深圳"}},
	{Name: "Chengdu", Country: "CN", Lat: 30.57, Lon: 104.07, Zone: "Asia/Shanghai", Aliases: []string{"成都"}},
	{Name: "Chongqing", Country: "CN", Lat: 29.56, Lon: 106.55, Zone: "Asia/Shanghai", Aliases: []string{"重庆"}},
	{Name: "Wuhan", Country: "CN", Lat: 30.59, Lon: 114.31, Zone: "Asia/Shanghai", Aliases: []string{"武汉"}},
	{Name: "Xi'an", Country: "CN", Lat: 34.34, Lon: 108.94, Zone: "Asia/Shanghai", Aliases: []string{"xian", "西安"}},
	{Name: "Hangzhou", Country: "CN", Lat: 30.27, Lon: 120.16, Zone: "Asia/Shanghai", Aliases: []string{"杭州"}},
	{Name: "Nanjing", Country: "CN", Lat: 32.06, Lon: 118.80, Zone: "Asia/Shanghai", Aliases: []string{"南京"}},
	{Name: "Tianjin", Country: "CN", Lat: 39.34, Lon: 117.36, Zone: "Asia/Shanghai", Aliases: []string{"天津"}},
	{Name: "Harbin", Country: "CN", Lat: 45.80, Lon: 126.53, Zone: "Asia/Shanghai", Aliases: []string{"哈尔滨"}},
	{Name: "Kunming", Country: "CN", Lat: 25.04, Lon: 102.71, Zone: "Asia/Shanghai", Aliases: []string{"昆明"}},
	{Name: "Urumqi", Country: "CN", Lat: 43.83, Lon: 87.62, Zone: "Asia/Shanghai", Aliases: []string{"乌鲁木齐"}},
	{Name: "Hong Kong", Country: "HK", Lat: 22.32, Lon: 114.17, Zone: "Asia/Hong_Kong", Aliases: []string{"hongkong", "香港"}},
	{Name: "Macau", Country: "MO", Lat: 22.20, Lon: 113.54, Zone: "Asia/Macau", Aliases: []string{"macao", "澳门"}},
	{Name: "Taipei", Country: "TW", Lat: 25.03, Lon: 121.57, Zone: "Asia/Taipei", Aliases: []string{"台北"}},
	{Name: "Kaohsiung", Country: "TW", Lat: 22.63, Lon: 120.30, Zone: "Asia/Taipei"},
	{Name: "Tokyo", Country: "JP", Lat: 35.68, Lon: 139.69, Zone: "Asia/Tokyo"},
	{Name: "Osaka", Country: "JP", Lat: 34.69, Lon: 135.50, Zone: "Asia/Tokyo"},
	{Name: "Seoul", Country: "KR", Lat: 37.57, Lon: 126.98, Zone: "Asia/Seoul"},
	{Name: "Busan", Country: "KR", Lat: 35.18, Lon: 129.08, Zone: "Asia/Seoul"},
	{Name: "Pyongyang", Country: "KP", Lat: 39.04, Lon: 125.76, Zone: "Asia/Pyongyang"},
	{Name: "Ulaanbaatar", Country: "MN", Lat: 47.89, Lon: 106.91, Zone: "Asia/Ulaanbaatar", Aliases: []string{"ulan bator"}},
	{Name: "Hovd", Country: "MN", Lat: 48.01, Lon: 91.64, Zone: "Asia/Hovd"},

	// Southeast and South Asia
	{Name: "Singapore", Country: "SG", Lat: 1.35, Lon: 103.82, Zone: "Asia/Singapore"},
	{Name: "Kuala Lumpur", Country: "MY", Lat: 3.14, Lon: 101.69, Zone: "Asia/Kuala_Lumpur"},
	{Name: "Bangkok", Country: "TH", Lat: 13.76, Lon: 100.50, Zone: "Asia/Bangkok"},
	{Name: "Hanoi", Country: "VN", Lat: 21.03, Lon: 105.85, Zone: "Asia/Ho_Chi_Minh"},
	{Name: "Ho Chi Minh City", Country: "VN", Lat: 10.82, Lon: 106.63, Zone: "Asia/Ho_Chi_Minh", Aliases: []string{"saigon", "ho chi minh"}},
	{Name: "Manila", Country: "PH", Lat: 14.60, Lon: 120.98, Zone: "Asia/Manila"},
	{Name: "Jakarta", Country: "ID", Lat: -6.21, Lon: 106.85, Zone: "Asia/Jakarta"},
	{Name: "Surabaya", Country: "ID", Lat: -7.25, Lon: 112.75, Zone: "Asia/Jakarta"},
	{Name: "Denpasar", Country: "ID", Lat: -8.65, Lon: 115.22, Zone: "Asia/Makassar", Aliases: []string{"bali"}},
	{Name: "Makassar", Country: "ID", Lat: -5.15, Lon: 119.43, Zone: "Asia/Makassar"},
	{Name: "Jayapura", Country: "ID", Lat: -2.53, Lon: 140.72, Zone: "Asia/Jayapura"},
	{Name: "Phnom Penh", Country: "KH", Lat: 11.56, Lon: 104.93, Zone: "Asia/Phnom_Penh"},
	{Name: "Vientiane", Country: "LA", Lat: 17.98, Lon: 102.63, Zone: "Asia/Vientiane"},
	{Name: "Yangon", Country: "MM", Lat: 16.87, Lon: 96.20, Zone: "Asia/Yangon", Aliases: []string{"rangoon"}},
	{Name: "Delhi", Country: "IN", Lat: 28.70, Lon: 77.10, Zone: "Asia/Kolkata", Aliases: []string{"new delhi"}},
	{Name: "Mumbai", Country: "IN", Lat: 19.08, Lon: 72.88, Zone: "Asia/Kolkata", Aliases: []string{"bombay"}},
	{Name: "Bangalore", Country: "IN", Lat: 12.97, Lon: 77.59, Zone: "Asia/Kolkata", Aliases: []string{"bengaluru"}},
	{Name: "Kolkata", Country: "IN", Lat: 22.57, Lon: 88.36, Zone: "Asia/Kolkata", Aliases: []string{"calcutta"}},
	{Name: "Chennai", Country: "IN", Lat: 13.08, Lon: 80.27, Zone: "Asia/Kolkata", Aliases: []string{"madras"}},
	{Name: "Karachi", Country: "PK", Lat: 24.86, Lon: 67.01, Zone: "Asia/Karachi"},
	{Name: "Lahore", Country: "PK", Lat: 31.55, Lon: 74.34, Zone: "Asia/Karachi"},
	{Name: "Dhaka", Country: "BD", Lat: 23.81, Lon: 90.41, Zone: "Asia/Dhaka"},
	{Name: "Kathmandu", Country: "NP", Lat: 27.72, Lon: 85.32, Zone: "Asia/Kathmandu"},
	{Name: "Colombo", Country: "LK", Lat: 6.93, Lon: 79.86, Zone: "Asia/Colombo"},

	// Central Asia and Middle East
	{Name: "Almaty", Country: "KZ", Lat: 43.24, Lon: 76.89, Zone: "Asia/Almaty"},
	{Name: "Astana", Country: "KZ", Lat: 51.17, Lon: 71.45, Zone: "Asia/Almaty", Aliases: []string{"nur-sultan"}},
	{Name: "Aktobe", Country: "KZ", Lat: 50.28, Lon: 57.17, Zone: "Asia/Aqtobe"},
	{Name: "Tashkent", Country: "UZ", Lat: 41.30, Lon: 69.24, Zone: "Asia/Tashkent"},
	{Name: "Kabul", Country: "AF", Lat: 34.56, Lon: 69.21, Zone: "Asia/Kabul"},
	{Name: "Tehran", Country: "IR", Lat: 35.69, Lon: 51.39, Zone: "Asia/Tehran"},
	{Name: "Dubai", Country: "AE", Lat: 25.20, Lon: 55.27, Zone: "Asia/Dubai"},
	{Name: "Abu Dhabi", Country: "AE", Lat: 24.45, Lon: 54.38, Zone: "Asia/Dubai"},
	{Name: "Doha", Country: "QA", Lat: 25.29, Lon: 51.53, Zone: "Asia/Qatar"},
	{Name: "Riyadh", Country: "SA", Lat: 24.71, Lon: 46.68, Zone: "Asia/Riyadh"},
	{Name: "Baghdad", Country: "IQ", Lat: 33.31, Lon: 44.36, Zone: "Asia/Baghdad"},
	{Name: "Jerusalem", Country: "IL", Lat: 31.77, Lon: 35.22, Zone: "Asia/Jerusalem"},
	{Name: "Tel Aviv", Country: "IL", Lat: 32.09, Lon: 34.78, Zone: "Asia/Jerusalem"},
	{Name: "Beirut", Country: "LB", Lat: 33.89, Lon: 35.50, Zone: "Asia/Beirut"},
	{Name: "Amman", Country: "JO", Lat: 31.95, Lon: 35.93, Zone: "Asia/Amman"},
	{Name: "Istanbul", Country: "TR", Lat: 41.01, Lon: 28.98, Zone: "Europe/Istanbul"},
	{Name: "Ankara", Country: "TR", Lat: 39.93, Lon: 32.86, Zone: "Europe/Istanbul"},

	// Europe
	{Name: "London", Country: "GB", Lat: 51.51, Lon: -0.13, Zone: "Europe/London"},
	{Name: "Manchester", Country: "GB", Lat: 53.48, Lon: -2.24, Zone: "Europe/London"},
	{Name: "Edinburgh", Country: "GB", Lat: 55.95, Lon: -3.19, Zone: "Europe/London"},
	{Name: "Dublin", Country: "IE", Lat: 53.35, Lon: -6.26, Zone: "Europe/Dublin"},
	{Name: "Paris", Country: "FR", Lat: 48.86, Lon: 2.35, Zone: "Europe/Paris"},
	{Name: "Lyon", Country: "FR", Lat: 45.76, Lon: 4.84, Zone: "Europe/Paris"},
	{Name: "Marseille", Country: "FR", Lat: 43.30, Lon: 5.37, Zone: "Europe/Paris"},
	{Name: "Berlin", Country: "DE", Lat: 52.52, Lon: 13.40, Zone: "Europe/Berlin"},
	{Name: "Munich", Country: "DE", Lat: 48.14, Lon: 11.58, Zone: "Europe/Berlin", Aliases: []string{"munchen"}},
	{Name: "Hamburg", Country: "DE", Lat: 53.55, Lon: 9.99, Zone: "Europe/Berlin"},
	{Name: "Frankfurt", Country: "DE", Lat: 50.11, Lon: 8.68, Zone: "Europe/Berlin"},
	{Name: "Amsterdam", Country: "NL", Lat: 52.37, Lon: 4.90, Zone: "Europe/Amsterdam"},
	{Name: "Brussels", Country: "BE", Lat: 50.85, Lon: 4.35, Zone: "Europe/Brussels", Aliases: []string{"bruxelles"}},
	{Name: "Luxembourg", Country: "LU", Lat: 49.61, Lon: 6.13, Zone: "Europe/Luxembourg"},
	{Name: "Zurich", Country: "CH", Lat: 47.38, Lon: 8.54, Zone: "Europe/Zurich"},
	{Name: "Geneva", Country: "CH", Lat: 46.20, Lon: 6.14, Zone: "Europe/Zurich", Aliases: []string{"geneve"}},
	{Name: "Vienna", Country: "AT", Lat: 48.21, Lon: 16.37, Zone: "Europe/Vienna", Aliases: []string{"wien"}},
	{Name: "Madrid", Country: "ES", Lat: 40.42, Lon: -3.70, Zone: "Europe/Madrid"},
	{Name: "Barcelona", Country: "ES", Lat: 41.39, Lon: 2.17, Zone: "Europe/Madrid"},
	{Name: "Las Palmas", Country: "ES", Lat: 28.12, Lon: -15.44, Zone: "Atlantic/Canary"},
	{Name: "Lisbon", Country: "PT", Lat: 38.72, Lon: -9.14, Zone: "Europe/Lisbon", Aliases: []string{"lisboa"}},
	{Name: "Porto", Country: "PT", Lat: 41.16, Lon: -8.63, Zone: "Europe/Lisbon"},
	{Name: "Rome", Country: "IT", Lat: 41.90, Lon: 12.50, Zone: "Europe/Rome", Aliases: []string{"roma"}},
	{Name: "Milan", Country: "IT", Lat: 45.46, Lon: 9.19, Zone: "Europe/Rome", Aliases: []string{"milano"}},
	{Name: "Athens", Country: "GR", Lat: 37.98, Lon: 23.73, Zone: "Europe/Athens"},
	{Name: "Stockholm", Country: "SE", Lat: 59.33, Lon: 18.07, Zone: "Europe/Stockholm"},
	{Name: "Oslo", Country: "NO", Lat: 59.91, Lon: 10.75, Zone: "Europe/Oslo"},
	{Name: "Copenhagen", Country: "DK", Lat: 55.68, Lon: 12.57, Zone: "Europe/Copenhagen"},
	{Name: "Helsinki", Country: "FI", Lat: 60.17, Lon: 24.94, Zone: "Europe/Helsinki"},
	{Name: "Reykjavik", Country: "IS", Lat: 64.15, Lon: -21.94, Zone: "Atlantic/Reykjavik"},
	{Name: "Warsaw", Country: "PL", Lat: 52.23, Lon: 21.01, Zone: "Europe/Warsaw"},
	{Name: "Prague", Country: "CZ", Lat: 50.08, Lon: 14.44, Zone: "Europe/Prague"},
	{Name: "Budapest", Country: "HU", Lat: 47.50, Lon: 19.04, Zone: "Europe/Budapest"},
	{Name: "Bucharest", Country: "RO", Lat: 44.43, Lon: 26.10, Zone: "Europe/Bucharest"},
	{Name: "Sofia", Country: "BG", Lat: 42.70, Lon: 23.32, Zone: "Europe/Sofia"},
	{Name: "Belgrade", Country: "RS", Lat: 44.79, Lon: 20.45, Zone: "Europe/Belgrade"},
	{Name: "Zagreb", Country: "HR", Lat: 45.81, Lon: 15.98, Zone: "Europe/Zagreb"},
	{Name: "Kyiv", Country: "UA", Lat: 50.45, Lon: 30.52, Zone: "Europe/Kyiv", Aliases: []string{"kiev"}},
	{Name: "Minsk", Country: "BY", Lat: 53.90, Lon: 27.56, Zone: "Europe/Minsk"},
	{Name: "Vilnius", Country: "LT", Lat: 54.69, Lon: 25.28, Zone: "Europe/Vilnius"},
	{Name: "Riga", Country: "LV", Lat: 56.95, Lon: 24.11, Zone: "Europe/Riga"},
	{Name: "Tallinn", Country: "EE", Lat: 59.44, Lon: 24.75, Zone: "Europe/Tallinn"},

	// Russia
	{Name: "Moscow", Country: "RU", Lat: 55.76, Lon: 37.62, Zone: "Europe/Moscow", Aliases: []string{"moskva"}},
	{Name: "Saint Petersburg", Country: "RU", Lat: 59.93, Lon: 30.34, Zone: "Europe/Moscow", Aliases: []string{"st petersburg", "petersburg"}},
	{Name: "Kaliningrad", Country: "RU", Lat: 54.71, Lon: 20.45, Zone: "Europe/Kaliningrad"},
	{Name: "Samara", Country: "RU", Lat: 53.20, Lon: 50.15, Zone: "Europe/Samara"},
	{Name: "Yekaterinburg", Country: "RU", Lat: 56.84, Lon: 60.61, Zone: "Asia/Yekaterinburg"},
	{Name: "Omsk", Country: "RU", Lat: 54.99, Lon: 73.37, Zone: "Asia/Omsk"},
	{Name: "Novosibirsk", Country: "RU", Lat: 55.01, Lon: 82.94, Zone: "Asia/Novosibirsk"},
	{Name: "Krasnoyarsk", Country: "RU", Lat: 56.01, Lon: 92.85, Zone: "Asia/Krasnoyarsk"},
	{Name: "Irkutsk", Country: "RU", Lat: 52.29, Lon: 104.28, Zone: "Asia/Irkutsk"},
	{Name: "Yakutsk", Country: "RU", Lat: 62.03, Lon: 129.73, Zone: "Asia/Yakutsk"},
	{Name: "Vladivostok", Country: "RU", Lat: 43.12, Lon: 131.89, Zone: "Asia/Vladivostok"},
	{Name: "Magadan", Country: "RU", Lat: 59.56, Lon: 150.80, Zone: "Asia/Magadan"},
	{Name: "Petropavlovsk-Kamchatsky", Country: "RU", Lat: 53.04, Lon: 158.65, Zone: "Asia/Kamchatka"},

	// Africa
	{Name: "Cairo", Country: "EG", Lat: 30.04, Lon: 31.24, Zone: "Africa/Cairo"},
	{Name: "Casablanca", Country: "MA", Lat: 33.57, Lon: -7.59, Zone: "Africa/Casablanca"},
	{Name: "Algiers", Country: "DZ", Lat: 36.75, Lon: 3.06, Zone: "Africa/Algiers"},
	{Name: "Tunis", Country: "TN", Lat: 36.81, Lon: 10.18, Zone: "Africa/Tunis"},
	{Name: "Lagos", Country: "NG", Lat: 6.52, Lon: 3.38, Zone: "Africa/Lagos"},
	{Name: "Accra", Country: "GH", Lat: 5.60, Lon: -0.19, Zone: "Africa/Accra"},
	{Name: "Dakar", Country: "SN", Lat: 14.72, Lon: -17.47, Zone: "Africa/Dakar"},
	{Name: "Nairobi", Country: "KE", Lat: -1.29, Lon: 36.82, Zone: "Africa/Nairobi"},
	{Name: "Addis Ababa", Country: "ET", Lat: 9.03, Lon: 38.74, Zone: "Africa/Addis_Ababa"},
	{Name: "Kinshasa", Country: "CD", Lat: -4.44, Lon: 15.27, Zone: "Africa/Kinshasa"},
	{Name: "Lubumbashi", Country: "CD", Lat: -11.66, Lon: 27.48, Zone: "Africa/Lubumbashi"},
	{Name: "Johannesburg", Country: "ZA", Lat: -26.20, Lon: 28.05, Zone: "Africa/Johannesburg"},
	{Name: "Cape Town", Country: "ZA", Lat: -33.92, Lon: 18.42, Zone: "Africa/Johannesburg"},

	// North America
	{Name: "New York", Country: "US", Lat: 40.71, Lon: -74.01, Zone: "America/New_York", Aliases: []string{"new york city", "nyc"}},
	{Name: "Boston", Country: "US", Lat: 42.36, Lon: -71.06, Zone: "America/New_York"},
	{Name: "Philadelphia", Country: "US", Lat: 39.95, Lon: -75.17, Zone: "America/New_York"},
	{Name: "Washington", Country: "US", Lat: 38.91, Lon: -77.04, Zone: "America/New_York", Aliases: []string{"washington dc", "washington d c"}},
	{Name: "Atlanta", Country: "US", Lat: 33.75, Lon: -84.39, Zone: "America/New_York"},
	{Name: "Miami", Country: "US", Lat: 25.76, Lon: -80.19, Zone: "America/New_York"},
	{Name: "Detroit", Country: "US", Lat: 42.33, Lon: -83.05, Zone: "America/Detroit"},
	{Name: "Indianapolis", Country: "US", Lat: 39.77, Lon: -86.16, Zone: "America/Indiana/Indianapolis"},
	{Name: "Chicago", Country: "US", Lat: 41.88, Lon: -87.63, Zone: "America/Chicago"},
	{Name: "Houston", Country: "US", Lat: 29.76, Lon: -95.37, Zone: "America/Chicago"},
	{Name: "Dallas", Country: "US", Lat: 32.78, Lon: -96.80, Zone: "America/Chicago"},
	{Name: "Austin", Country: "US", Lat: 30.27, Lon: -97.74, Zone: "America/Chicago"},
	{Name: "Minneapolis", Country: "US", Lat: 44.98, Lon: -93.27, Zone: "America/Chicago"},
	{Name: "New Orleans", Country: "US", Lat: 29.95, Lon: -90.07, Zone: "America/Chicago"},
	{Name: "Denver", Country: "US", Lat: 39.74, Lon: -104.99, Zone: "America/Denver"},
	{Name: "Salt Lake City", Country: "US", Lat: 40.76, Lon: -111.89, Zone: "America/Denver"},
	{Name: "Phoenix", Country: "US", Lat: 33.45, Lon: -112.07, Zone: "America/Phoenix"},
	{Name: "Los Angeles", Country: "US", Lat: 34.05, Lon: -118.24, Zone: "America/Los_Angeles", Aliases: []string{"la"}},
	{Name: "San Francisco", Country: "US", Lat: 37.77, Lon: -122.42, Zone: "America/Los_Angeles", Aliases: []string{"sf"}},
	{Name: "San Diego", Country: "US", Lat: 32.72, Lon: -117.16, Zone: "America/Los_Angeles"},
	{Name: "San Jose", Country: "US", Lat: 37.34, Lon: -121.89, Zone: "America/Los_Angeles"},
	{Name: "Seattle", Country: "US", Lat: 47.61, Lon: -122.33, Zone: "America/Los_Angeles"},
	{Name: "Portland", Country: "US", Lat: 45.52, Lon: -122.68, Zone: "America/Los_Angeles"},
	{Name: "Las Vegas", Country: "US", Lat: 36.17, Lon: -115.14, Zone: "America/Los_Angeles"},
	{Name: "Anchorage", Country: "US", Lat: 61.22, Lon: -149.90, Zone: "America/Anchorage"},
	{Name: "Honolulu", Country: "US", Lat: 21.31, Lon: -157.86, Zone: "Pacific/Honolulu"},
	{Name: "Toronto", Country: "CA", Lat: 43.65, Lon: -79.38, Zone: "America/Toronto"},
	{Name: "Montreal", Country: "CA", Lat: 45.50, Lon: -73.57, Zone: "America/Toronto"},
	{Name: "Ottawa", Country: "CA", Lat: 45.42, Lon: -75.70, Zone: "America/Toronto"},
	{Name: "Halifax", Country: "CA", Lat: 44.65, Lon: -63.58, Zone: "America/Halifax"},
	{Name: "St. John's", Country: "CA", Lat: 47.56, Lon: -52.71, Zone: "America/St_Johns", Aliases: []string{"st johns", "saint johns"}},
	{Name: "Winnipeg", Country: "CA", Lat: 49.90, Lon: -97.14, Zone: "America/Winnipeg"},
	{Name: "Regina", Country: "CA", Lat: 50.45, Lon: -104.62, Zone: "America/Regina"},
	{Name: "Calgary", Country: "CA", Lat: 51.05, Lon: -114.07, Zone: "America/Edmonton"},
	{Name: "Edmonton", Country: "CA", Lat: 53.55, Lon: -113.49, Zone: "America/Edmonton"},
	{Name: "Vancouver", Country: "CA", Lat: 49.28, Lon: -123.12, Zone: "America/Vancouver"},
	{Name: "Mexico City", Country: "MX", Lat: 19.43, Lon: -99.13, Zone: "America/Mexico_City", Aliases: []string{"ciudad de mexico", "cdmx"}},
	{Name: "Guadalajara", Country: "MX", Lat: 20.66, Lon: -103.35, Zone: "America/Mexico_City"},
	{Name: "Monterrey", Country: "MX", Lat: 25.69, Lon: -100.32, Zone: "America/Monterrey"},
	{Name: "Cancun", Country: "MX", Lat: 21.16, Lon: -86.85, Zone: "America/Cancun"},
	{Name: "Tijuana", Country: "MX", Lat: 32.51, Lon: -117.04, Zone: "America/Tijuana"},
	{Name: "Havana", Country: "CU", Lat: 23.11, Lon: -82.37, Zone: "America/Havana"},
	{Name: "Panama City", Country: "PA", Lat: 8.98, Lon: -79.52, Zone: "America/Panama"},

	// South America
	{Name: "Sao Paulo", Country: "BR", Lat: -23.55, Lon: -46.63, Zone: "America/Sao_Paulo"},
	{Name: "Rio de Janeiro", Country: "BR", Lat: -22.91, Lon: -43.17, Zone: "America/Sao_Paulo", Aliases: []string{"rio"}},
	{Name: "Brasilia", Country: "BR", Lat: -15.79, Lon: -47.88, Zone: "America/Sao_Paulo"},
	{Name: "Manaus", Country: "BR", Lat: -3.12, Lon: -60.02, Zone: "America/Manaus"},
	{Name: "Recife", Country: "BR", Lat: -8.05, Lon: -34.88, Zone: "America/Recife"},
	{Name: "Buenos Aires", Country: "AR", Lat: -34.60, Lon: -58.38, Zone: "America/Argentina/Buenos_Aires"},
	{Name: "Santiago", Country: "CL", Lat: -33.45, Lon: -70.67, Zone: "America/Santiago"},
	{Name: "Lima", Country: "PE", Lat: -12.05, Lon: -77.04, Zone: "America/Lima"},
	{Name: "Bogota", Country: "CO", Lat: 4.71, Lon: -74.07, Zone: "America/Bogota"},
	{Name: "Caracas", Country: "VE", Lat: 10.48, Lon: -66.90, Zone: "America/Caracas"},
	{Name: "Quito", Country: "EC", Lat: -0.18, Lon: -78.47, Zone: "America/Guayaquil"},
	{Name: "Montevideo", Country: "UY", Lat: -34.90, Lon: -56.16, Zone: "America/Montevideo"},

	// Oceania
	{Name: "Sydney", Country: "AU", Lat: -33.87, Lon: 151.21, Zone: "Australia/Sydney"},
	{Name: "Melbourne", Country: "AU", Lat: -37.81, Lon: 144.96, Zone: "Australia/Melbourne"},
	{Name: "Canberra", Country: "AU", Lat: -35.28, Lon: 149.13, Zone: "Australia/Sydney"},
	{Name: "Brisbane", Country: "AU", Lat: -27.47, Lon: 153.03, Zone: "Australia/Brisbane"},
	{Name: "Adelaide", Country: "AU", Lat: -34.93, Lon: 138.60, Zone: "Australia/Adelaide"},
	{Name: "Darwin", Country: "AU", Lat: -12.46, Lon: 130.84, Zone: "Australia/Darwin"},
	{Name: "Perth", Country: "AU", Lat: -31.95, Lon: 115.86, Zone: "Australia/Perth"},
	{Name: "Hobart", Country: "AU", Lat: -42.88, Lon: 147.33, Zone: "Australia/Hobart"},
	{Name: "Auckland", Country: "NZ", Lat: -36.85, Lon: 174.76, Zone: "Pacific/Auckland"},
	{Name: "Wellington", Country: "NZ", Lat: -41.29, Lon: 174.78, Zone: "Pacific/Auckland"},
	{Name: "Suva", Country: "FJ", Lat: -18.14, Lon: 178.44, Zone: "Pacific/Fiji"},
}

var countries = []Country{
	{Code: "CN", Name: "China", Zone: "Asia/Shanghai", Aliases: []string{"prc", "people's republic of china", "mainland china", "中国"}},
	{Code: "HK", Name: "Hong Kong", Zone: "Asia/Hong_Kong", Aliases: []string{"hong kong sar", "香港"}},
	{Code: "MO", Name: "Macau", Zone: "Asia/Macau", Aliases: []string{"macao"}},
	{Code: "TW", Name: "Taiwan", Zone: "Asia/Taipei", Aliases: []string{"republic of china", "台湾"}},
	{Code: "JP", Name: "Japan", Zone: "Asia/Tokyo", Aliases: []string{"日本"}},
	{Code: "KR", Name: "South Korea", Zone: "Asia/Seoul", Aliases: []string{"korea", "republic of korea"}},
	{Code: "KP", Name: "North Korea", Zone: "Asia/Pyongyang"},
	{Code: "MN", Name: "Mongolia"},
	{Code: "SG", Name: "Singapore", Zone: "Asia/Singapore"},
	{Code: "MY", Name: "Malaysia", Zone: "Asia/Kuala_Lumpur"},
	{Code: "TH", Name: "Thailand", Zone: "Asia/Bangkok"},
	{Code: "VN", Name: "Vietnam", Zone: "Asia/Ho_Chi_Minh", Aliases: []string{"viet nam"}},
	{Code: "PH", Name: "Philippines", Zone: "Asia/Manila"},
	{Code: "ID", Name: "Indonesia"},
	{Code: "KH", Name: "Cambodia", Zone: "Asia/Phnom_Penh"},
	{Code: "LA", Name: "Laos", Zone: "Asia/Vientiane"},
	{Code: "MM", Name: "Myanmar", Zone: "Asia/Yangon", Aliases: []string{"burma"}},
	{Code: "IN", Name: "India", Zone: "Asia/Kolkata"},
	{Code: "PK", Name: "Pakistan", Zone: "Asia/Karachi"},
	{Code: "BD", Name: "Bangladesh", Zone: "Asia/Dhaka"},
	{Code: "NP", Name: "Nepal", Zone: "Asia/Kathmandu"},
	{Code: "LK", Name: "Sri Lanka", Zone: "Asia/Colombo"},
	{Code: "KZ", Name: "Kazakhstan"},
	{Code: "UZ", Name: "Uzbekistan", Zone: "Asia/Tashkent"},
	{Code: "AF", Name: "Afghanistan", Zone: "Asia/Kabul"},
	{Code: "IR", Name: "Iran", Zone: "Asia/Tehran"},
	{Code: "AE", Name: "United Arab Emirates", Zone: "Asia/Dubai", Aliases: []string{"uae"}},
	{Code: "QA", Name: "Qatar", Zone: "Asia/Qatar"},
	{Code: "SA", Name: "Saudi Arabia", Zone: "Asia/Riyadh"},
	{Code: "IQ", Name: "Iraq", Zone: "Asia/Baghdad"},
	{Code: "IL", Name: "Israel", Zone: "Asia/Jerusalem"},
	{Code: "LB", Name: "Lebanon", Zone: "Asia/Beirut"},
	{Code: "JO", Name: "Jordan", Zone: "Asia/Amman"},
	{Code: "TR", Name: "Turkey", Zone: "Europe/Istanbul", Aliases: []string{"turkiye"}},
	{Code: "GB", Name: "United Kingdom", Zone: "Europe/London", Aliases: []string{"uk", "great britain", "britain", "england", "scotland", "wales"}},
	{Code: "IE", Name: "Ireland", Zone: "Europe/Dublin"},
	{Code: "FR", Name: "France", Zone: "Europe/Paris"},
	{Code: "DE", Name: "Germany", Zone: "Europe/Berlin", Aliases: []string{"deutschland"}},
	{Code: "NL", Name: "Netherlands", Zone: "Europe/Amsterdam", Aliases: []string{"holland", "the netherlands"}},
	{Code: "BE", Name: "Belgium", Zone: "Europe/Brussels"},
	{Code: "LU", Name: "Luxembourg", Zone: "Europe/Luxembourg"},
	{Code: "CH", Name: "Switzerland", Zone: "Europe/Zurich"},
	{Code: "AT", Name: "Austria", Zone: "Europe/Vienna"},
	{Code: "ES", Name: "Spain", Zone: "Europe/Madrid", Aliases: []string{"espana"}},
	{Code: "PT", Name: "Portugal", Zone: "Europe/Lisbon"},
	{Code: "IT", Name: "Italy", Zone: "Europe/Rome", Aliases: []string{"italia"}},
	{Code: "GR", Name: "Greece", Zone: "Europe/Athens"},
	{Code: "SE", Name: "Sweden", Zone: "Europe/Stockholm"},
	{Code: "NO", Name: "Norway", Zone: "Europe/Oslo"},
	{Code: "DK", Name: "Denmark", Zone: "Europe/Copenhagen"},
	{Code: "FI", Name: "Finland", Zone: "Europe/Helsinki"},
	{Code: "IS", Name: "Iceland", Zone: "Atlantic/Reykjavik"},
	{Code: "PL", Name: "Poland", Zone: "Europe/Warsaw"},
	{Code: "CZ", Name: "Czech Republic", Zone: "Europe/Prague", Aliases: []string{"czechia"}},
	{Code: "HU", Name: "Hungary", Zone: "Europe/Budapest"},
	{Code: "RO", Name: "Romania", Zone: "Europe/Bucharest"},
	{Code: "BG", Name: "Bulgaria", Zone: "Europe/Sofia"},
	{Code: "RS", Name: "Serbia", Zone: "Europe/Belgrade"},
	{Code: "HR", Name: "Croatia", Zone: "Europe/Zagreb"},
	{Code: "UA", Name: "Ukraine", Zone: "Europe/Kyiv"},
	{Code: "BY", Name: "Belarus", Zone: "Europe/Minsk"},
	{Code: "LT", Name: "Lithuania", Zone: "Europe/Vilnius"},
	{Code: "LV", Name: "Latvia", Zone: "Europe/Riga"},
	{Code: "EE", Name: "Estonia", Zone: "Europe/Tallinn"},
	{Code: "RU", Name: "Russia", Aliases: []string{"russian federation"}},
	{Code: "EG", Name: "Egypt", Zone: "Africa/Cairo"},
	{Code: "MA", Name: "Morocco", Zone: "Africa/Casablanca"},
	{Code: "DZ", Name: "Algeria", Zone: "Africa/Algiers"},
	{Code: "TN", Name: "Tunisia", Zone: "Africa/Tunis"},
	{Code: "NG", Name: "Nigeria", Zone: "Africa/Lagos"},
	{Code: "GH", Name: "Ghana", Zone: "Africa/Accra"},
	{Code: "SN", Name: "Senegal", Zone: "Africa/Dakar"},
	{Code: "KE", Name: "Kenya", Zone: "Africa/Nairobi"},
	{Code: "ET", Name: "Ethiopia", Zone: "Africa/Addis_Ababa"},
	{Code: "CD", Name: "Democratic Republic of the Congo", Aliases: []string{"dr congo", "drc"}},
	{Code: "ZA", Name: "South Africa", Zone: "Africa/Johannesburg"},
	{Code: "US", Name: "United States", Aliases: []string{"usa", "us", "united states of america", "america"}},
	{Code: "CA", Name: "Canada"},
	{Code: "MX", Name: "Mexico"},
	{Code: "CU", Name: "Cuba", Zone: "America/Havana"},
	{Code: "PA", Name: "Panama", Zone: "America/Panama"},
	{Code: "BR", Name: "Brazil", Aliases: []string{"brasil"}},
	{Code: "AR", Name: "Argentina", Zone: "America/Argentina/Buenos_Aires"},
	{Code: "CL", Name: "Chile", Zone: "America/Santiago"},
	{Code: "PE", Name: "Peru", Zone: "America/Lima"},
	{Code: "CO", Name: "Colombia", Zone: "America/Bogota"},
	{Code: "VE", Name: "Venezuela", Zone: "America/Caracas"},
	{Code: "EC", Name: "Ecuador", Zone: "America/Guayaquil"},
	{Code: "UY", Name: "Uruguay", Zone: "America/Montevideo"},
	{Code: "AU", Name: "Australia"},
	{Code: "NZ", Name: "New Zealand", Zone: "Pacific/Auckland"},
	{Code: "FJ", Name: "Fiji", Zone: "Pacific/Fiji"},
}

var (
	cityIndex    map[string][]int // normalized name or alias -> indexes into cities
	countryIndex map[string]int   // normalized name, alias or code -> index into countries
)

func init() {
	cityIndex = make(map[string][]int, len(cities)*2)
	for i, c := range cities {
		for _, n := range append([]string{c.Name}, c.Aliases...) {
			k := Normalize(n)
			cityIndex[k] = append(cityIndex[k], i)
		}
	}
	countryIndex = make(map[string]int, len(countries)*3)
	for i, c := range countries {
		for _, n := range append([]string{c.Code, c.Name}, c.Aliases...) {
			countryIndex[Normalize(n)] = i
		}
	}
}

// Normalize folds a place name for lookup: accents are stripped, letters
// lowered, punctuation dropped and runs of spaces collapsed.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '\'' || r == '.' || r == '’':
			return -1
		default:
			return ' '
		}
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// LookupCountry returns the country named by name, alias or ISO code.
func LookupCountry(name string) (Country, bool) {
	i, ok := countryIndex[Normalize(name)]
	if !ok {
		return Country{}, false
	}
	return countries[i], true
}

// LookupCity returns the first city matching name. When countryCode is not
// empty only cities in that country match.
func LookupCity(name, countryCode string) (City, bool) {
	for _, i := range cityIndex[Normalize(name)] {
		if countryCode == "" || cities[i].Country == countryCode {
			return cities[i], true
		}
	}
	return City{}, false
}

// Nearest returns the gazetteer city in countryCode closest to (lat, lon).
func Nearest(countryCode string, lat, lon float64) (City, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range cities {
		if c.Country != countryCode {
			continue
		}
		if d := haversineKm(lat, lon, c.Lat, c.Lon); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return City{}, false
	}
	return cities[best], true
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
